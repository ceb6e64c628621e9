package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"sbfarm.id/api/config"
	"sbfarm.id/api/models"
)

type perlakuanMasterPayload struct {
	NamaPerlakuan string  `json:"nama_perlakuan" validate:"required,max=100"`
	Tipe          string  `json:"tipe" validate:"required,oneof=pupuk fungisida insektisida biopestisida kultur lainnya"`
	Deskripsi     *string `json:"deskripsi"`
	SatuanDefault *string `json:"satuan_default" validate:"omitempty,max=20"`
}

// PerlakuanMasterResource serves the treatment catalog.
var PerlakuanMasterResource = &resource[models.PerlakuanMaster, perlakuanMasterPayload]{
	table:       "perlakuan_master",
	label:       "perlakuan",
	defaultSort: "nama_perlakuan asc",
	filter: func(q *gorm.DB, r *http.Request) *gorm.DB {
		q = models.ExactFilter(q, r, "tipe", "tipe")
		return models.SearchFilter(q, r, "nama_perlakuan", "search")
	},
	check: func(tx *gorm.DB, p *perlakuanMasterPayload, id uint) error {
		taken, err := columnTaken(tx, "perlakuan_master", "nama_perlakuan", p.NamaPerlakuan, id)
		if err != nil {
			return err
		}
		if taken {
			return errFieldTaken("nama_perlakuan", "sudah digunakan")
		}
		return nil
	},
	assign: func(m *models.PerlakuanMaster, p *perlakuanMasterPayload) {
		m.NamaPerlakuan = p.NamaPerlakuan
		m.Tipe = p.Tipe
		m.Deskripsi = optString(p.Deskripsi)
		m.SatuanDefault = optString(p.SatuanDefault)
	},
	inUse: func(tx *gorm.DB, m *models.PerlakuanMaster) (string, error) {
		n, err := countWhere(tx, "jadwal_perlakuan", "perlakuan_id = ?", m.ID)
		if err != nil {
			return "", err
		}
		if n > 0 {
			return "Perlakuan tidak dapat dihapus karena masih digunakan pada jadwal perlakuan", nil
		}
		return "", nil
	},
	describe: func(m *models.PerlakuanMaster) string { return m.NamaPerlakuan },
}

// PerlakuanMasterSummary counts the catalog per type and lists recent entries.
func PerlakuanMasterSummary(w http.ResponseWriter, r *http.Request) {
	var total int64
	if err := config.DB.Model(&models.PerlakuanMaster{}).Count(&total).Error; err != nil {
		respondFailure(w, "Gagal memuat ringkasan perlakuan", err)
		return
	}

	type perTipe struct {
		Tipe  string `json:"tipe"`
		Count int64  `json:"count"`
	}
	var byTipe []perTipe
	err := config.DB.Model(&models.PerlakuanMaster{}).
		Select("tipe, COUNT(*) AS count").
		Group("tipe").
		Order("count desc").
		Scan(&byTipe).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan perlakuan", err)
		return
	}

	var recent []models.PerlakuanMaster
	err = config.DB.Order("created_at desc").Limit(5).Find(&recent).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan perlakuan", err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"total_perlakuan": total,
		"by_tipe":         byTipe,
		"recent_entries":  recent,
	})
}

// PerlakuanMasterByTipe lists catalog entries of one treatment type.
func PerlakuanMasterByTipe(w http.ResponseWriter, r *http.Request) {
	tipe := mux.Vars(r)["tipe"]
	var rows []models.PerlakuanMaster
	err := config.DB.Where("tipe = ?", tipe).Order("nama_perlakuan asc").Find(&rows).Error
	if err != nil {
		respondFailure(w, "Gagal memuat perlakuan", err)
		return
	}
	respondData(w, http.StatusOK, rows)
}
