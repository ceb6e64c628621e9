package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"sbfarm.id/api/config"
	"sbfarm.id/api/models"
)

type jenisPupukPayload struct {
	NamaPupuk      string   `json:"nama_pupuk" validate:"required,max=255"`
	Deskripsi      *string  `json:"deskripsi"`
	Satuan         *string  `json:"satuan" validate:"omitempty,max=50"`
	HargaPerSatuan *float64 `json:"harga_per_satuan" validate:"omitempty,gte=0"`
	Status         string   `json:"status" validate:"required,oneof=aktif tidak_aktif"`
}

// JenisPupukResource serves the fertilizer type catalog.
var JenisPupukResource = &resource[models.JenisPupuk, jenisPupukPayload]{
	table:       "jenis_pupuk",
	label:       "jenis pupuk",
	defaultSort: "nama_pupuk asc",
	filter: func(q *gorm.DB, r *http.Request) *gorm.DB {
		q = models.ExactFilter(q, r, "status", "status")
		return models.SearchFilter(q, r, "nama_pupuk", "search")
	},
	check: func(tx *gorm.DB, p *jenisPupukPayload, id uint) error {
		taken, err := columnTaken(tx, "jenis_pupuk", "nama_pupuk", p.NamaPupuk, id)
		if err != nil {
			return err
		}
		if taken {
			return errFieldTaken("nama_pupuk", "sudah digunakan")
		}
		return nil
	},
	assign: func(m *models.JenisPupuk, p *jenisPupukPayload) {
		m.NamaPupuk = p.NamaPupuk
		m.Deskripsi = optString(p.Deskripsi)
		m.Satuan = optString(p.Satuan)
		m.HargaPerSatuan = p.HargaPerSatuan
		m.Status = p.Status
	},
	inUse: func(tx *gorm.DB, m *models.JenisPupuk) (string, error) {
		n, err := countWhere(tx, "pencatatan_pupuk", "jenis_pupuk_id = ?", m.ID)
		if err != nil {
			return "", err
		}
		if n > 0 {
			return "Jenis pupuk tidak dapat dihapus karena masih digunakan pada pencatatan pupuk", nil
		}
		return "", nil
	},
	describe: func(m *models.JenisPupuk) string { return m.NamaPupuk },
}

// JenisPupukSummary aggregates the catalog: counts, price stats and how often
// each type shows up in the usage records.
func JenisPupukSummary(w http.ResponseWriter, r *http.Request) {
	var totals struct {
		TotalJenis    int64   `json:"total_jenis"`
		Aktif         int64   `json:"aktif"`
		TidakAktif    int64   `json:"tidak_aktif"`
		RataRataHarga float64 `json:"rata_rata_harga"`
	}
	err := config.DB.Model(&models.JenisPupuk{}).
		Select(`COUNT(*) AS total_jenis,
			SUM(CASE WHEN status = 'aktif' THEN 1 ELSE 0 END) AS aktif,
			SUM(CASE WHEN status = 'tidak_aktif' THEN 1 ELSE 0 END) AS tidak_aktif,
			COALESCE(AVG(harga_per_satuan), 0) AS rata_rata_harga`).
		Scan(&totals).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan jenis pupuk", err)
		return
	}

	var termahal, termurah models.JenisPupuk
	config.DB.Where("harga_per_satuan IS NOT NULL").Order("harga_per_satuan desc").First(&termahal)
	config.DB.Where("harga_per_satuan IS NOT NULL").Order("harga_per_satuan asc").First(&termurah)

	type usage struct {
		NamaPupuk      string `json:"nama_pupuk"`
		TotalPemakaian int64  `json:"total_pemakaian"`
	}
	var perPupuk []usage
	err = config.DB.Table("jenis_pupuk").
		Select("jenis_pupuk.nama_pupuk, COUNT(pencatatan_pupuk.id) AS total_pemakaian").
		Joins("LEFT JOIN pencatatan_pupuk ON pencatatan_pupuk.jenis_pupuk_id = jenis_pupuk.id").
		Group("jenis_pupuk.id, jenis_pupuk.nama_pupuk").
		Order("total_pemakaian desc").
		Scan(&perPupuk).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan jenis pupuk", err)
		return
	}

	data := map[string]any{
		"total_jenis":         totals.TotalJenis,
		"aktif":               totals.Aktif,
		"tidak_aktif":         totals.TidakAktif,
		"rata_rata_harga":     totals.RataRataHarga,
		"pemakaian_per_pupuk": perPupuk,
	}
	if termahal.ID != 0 {
		data["pupuk_termahal"] = map[string]any{"nama_pupuk": termahal.NamaPupuk, "harga_per_satuan": termahal.HargaPerSatuan}
	}
	if termurah.ID != 0 {
		data["pupuk_termurah"] = map[string]any{"nama_pupuk": termurah.NamaPupuk, "harga_per_satuan": termurah.HargaPerSatuan}
	}
	respondData(w, http.StatusOK, data)
}

// ActiveJenisPupuk lists active fertilizer types for the entry forms.
func ActiveJenisPupuk(w http.ResponseWriter, r *http.Request) {
	var items []models.JenisPupuk
	err := config.DB.Where("status = ?", "aktif").Order("nama_pupuk asc").Find(&items).Error
	if err != nil {
		respondFailure(w, "Gagal memuat jenis pupuk", err)
		return
	}
	respondData(w, http.StatusOK, items)
}
