package handlers

import (
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"sbfarm.id/api/config"
	"sbfarm.id/api/models"
)

type pencatatanPupukPayload struct {
	Tanggal      string  `json:"tanggal" validate:"required,datetime=2006-01-02"`
	JenisPupukID uint    `json:"jenis_pupuk_id" validate:"required"`
	JumlahPupuk  float64 `json:"jumlah_pupuk" validate:"required,gt=0"`
	Satuan       *string `json:"satuan" validate:"omitempty,max=50"`
	Keterangan   *string `json:"keterangan"`
}

// PencatatanPupukResource serves the daily fertilizer usage records.
var PencatatanPupukResource = &resource[models.PencatatanPupuk, pencatatanPupukPayload]{
	table:       "pencatatan_pupuk",
	label:       "pencatatan pupuk",
	preloads:    []string{"JenisPupuk", "User"},
	defaultSort: "tanggal desc",
	filter: func(q *gorm.DB, r *http.Request) *gorm.DB {
		q = models.DateRangeFilter(q, r, "tanggal", "tanggal_mulai", "tanggal_selesai")
		return models.ExactFilter(q, r, "jenis_pupuk_id", "jenis_pupuk_id")
	},
	check: func(tx *gorm.DB, p *pencatatanPupukPayload, id uint) error {
		return checkExists(tx, "jenis_pupuk", "jenis_pupuk_id", p.JenisPupukID)
	},
	assign: func(m *models.PencatatanPupuk, p *pencatatanPupukPayload) {
		m.Tanggal = mustDate(p.Tanggal)
		m.JenisPupukID = p.JenisPupukID
		m.JumlahPupuk = p.JumlahPupuk
		m.Satuan = optString(p.Satuan)
		m.Keterangan = optString(p.Keterangan)
	},
	setUser: func(m *models.PencatatanPupuk, uid uint) { m.UserID = uid },
	describe: func(m *models.PencatatanPupuk) string {
		return fmt.Sprintf("%s jenis_pupuk_id=%d jumlah=%.2f", m.Tanggal.String(), m.JenisPupukID, m.JumlahPupuk)
	},
}

// PencatatanPupukSummary totals usage per fertilizer type over an optional
// date range.
func PencatatanPupukSummary(w http.ResponseWriter, r *http.Request) {
	base := config.DB.Model(&models.PencatatanPupuk{})
	base = models.DateRangeFilter(base, r, "tanggal", "tanggal_mulai", "tanggal_selesai")

	var totals struct {
		TotalCatatan int64   `json:"total_catatan"`
		TotalJumlah  float64 `json:"total_jumlah"`
		RataRata     float64 `json:"rata_rata"`
	}
	err := base.Session(&gorm.Session{}).
		Select(`COUNT(*) AS total_catatan,
			COALESCE(SUM(jumlah_pupuk), 0) AS total_jumlah,
			COALESCE(AVG(jumlah_pupuk), 0) AS rata_rata`).
		Scan(&totals).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan pencatatan pupuk", err)
		return
	}

	type perPupuk struct {
		NamaPupuk    string  `json:"nama_pupuk"`
		TotalCatatan int64   `json:"total_catatan"`
		TotalJumlah  float64 `json:"total_jumlah"`
		RataRata     float64 `json:"rata_rata"`
	}
	var breakdown []perPupuk
	q := config.DB.Table("pencatatan_pupuk").
		Select(`jenis_pupuk.nama_pupuk, COUNT(pencatatan_pupuk.id) AS total_catatan,
			COALESCE(SUM(pencatatan_pupuk.jumlah_pupuk), 0) AS total_jumlah,
			COALESCE(AVG(pencatatan_pupuk.jumlah_pupuk), 0) AS rata_rata`).
		Joins("JOIN jenis_pupuk ON jenis_pupuk.id = pencatatan_pupuk.jenis_pupuk_id").
		Group("jenis_pupuk.id, jenis_pupuk.nama_pupuk").
		Order("total_jumlah desc")
	q = models.DateRangeFilter(q, r, "pencatatan_pupuk.tanggal", "tanggal_mulai", "tanggal_selesai")
	if err := q.Scan(&breakdown).Error; err != nil {
		respondFailure(w, "Gagal memuat ringkasan pencatatan pupuk", err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"total_catatan":       totals.TotalCatatan,
		"total_jumlah":        totals.TotalJumlah,
		"rata_rata":           totals.RataRata,
		"pemakaian_per_pupuk": breakdown,
	})
}
