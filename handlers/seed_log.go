package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"sbfarm.id/api/config"
	"sbfarm.id/api/models"
)

type seedLogPayload struct {
	TanggalSemai string  `json:"tanggal_semai" validate:"required,datetime=2006-01-02"`
	Hari         *string `json:"hari" validate:"omitempty,max=20"`
	NamaBenih    string  `json:"nama_benih" validate:"required,max=100"`
	Varietas     *string `json:"varietas" validate:"omitempty,max=100"`
	Satuan       string  `json:"satuan" validate:"required,oneof=tray hampan pak biji gram lainnya"`
	Jumlah       float64 `json:"jumlah" validate:"required,gt=0"`
	SumberBenih  *string `json:"sumber_benih" validate:"omitempty,max=255"`
	DataSayurID  *uint   `json:"data_sayur_id"`
	Keterangan   *string `json:"keterangan"`
}

// SeedLogResource serves sowing records.
var SeedLogResource = &resource[models.SeedLog, seedLogPayload]{
	table:       "seed_log",
	label:       "log benih",
	preloads:    []string{"DataSayur", "User"},
	defaultSort: "tanggal_semai desc",
	filter: func(q *gorm.DB, r *http.Request) *gorm.DB {
		q = models.DateRangeFilter(q, r, "tanggal_semai", "start_date", "end_date")
		q = models.SearchFilter(q, r, "nama_benih", "nama_benih")
		q = models.SearchFilter(q, r, "varietas", "varietas")
		q = models.ExactFilter(q, r, "satuan", "satuan")
		return models.ExactFilter(q, r, "data_sayur_id", "data_sayur_id")
	},
	check: func(tx *gorm.DB, p *seedLogPayload, id uint) error {
		if p.DataSayurID != nil {
			return checkExists(tx, "data_sayur", "data_sayur_id", *p.DataSayurID)
		}
		return nil
	},
	assign: func(m *models.SeedLog, p *seedLogPayload) {
		m.TanggalSemai = mustDate(p.TanggalSemai)
		m.Hari = optString(p.Hari)
		m.NamaBenih = p.NamaBenih
		m.Varietas = optString(p.Varietas)
		m.Satuan = p.Satuan
		m.Jumlah = p.Jumlah
		m.SumberBenih = optString(p.SumberBenih)
		m.DataSayurID = p.DataSayurID
		m.Keterangan = optString(p.Keterangan)
	},
	setUser: func(m *models.SeedLog, uid uint) { m.UserID = uid },
	describe: func(m *models.SeedLog) string {
		return fmt.Sprintf("%s %.2f %s (%s)", m.NamaBenih, m.Jumlah, m.Satuan, m.TanggalSemai.String())
	},
}

// SeedLogSummary totals sowings per unit and per seed name.
func SeedLogSummary(w http.ResponseWriter, r *http.Request) {
	base := config.DB.Model(&models.SeedLog{})
	base = models.DateRangeFilter(base, r, "tanggal_semai", "start_date", "end_date")

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		respondFailure(w, "Gagal memuat ringkasan log benih", err)
		return
	}

	type perSatuan struct {
		Satuan      string  `json:"satuan"`
		TotalJumlah float64 `json:"total_jumlah"`
		TotalLog    int64   `json:"total_log"`
	}
	var bySatuan []perSatuan
	q := config.DB.Model(&models.SeedLog{}).
		Select("satuan, COALESCE(SUM(jumlah), 0) AS total_jumlah, COUNT(*) AS total_log").
		Group("satuan").
		Order("satuan asc")
	q = models.DateRangeFilter(q, r, "tanggal_semai", "start_date", "end_date")
	if err := q.Scan(&bySatuan).Error; err != nil {
		respondFailure(w, "Gagal memuat ringkasan log benih", err)
		return
	}

	type perBenih struct {
		NamaBenih   string  `json:"nama_benih"`
		TotalJumlah float64 `json:"total_jumlah"`
		TotalLog    int64   `json:"total_log"`
	}
	var byBenih []perBenih
	q = config.DB.Model(&models.SeedLog{}).
		Select("nama_benih, COALESCE(SUM(jumlah), 0) AS total_jumlah, COUNT(*) AS total_log").
		Group("nama_benih").
		Order("total_log desc")
	q = models.DateRangeFilter(q, r, "tanggal_semai", "start_date", "end_date")
	if err := q.Scan(&byBenih).Error; err != nil {
		respondFailure(w, "Gagal memuat ringkasan log benih", err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"total_log":         total,
		"jumlah_per_satuan": bySatuan,
		"log_per_benih":     byBenih,
	})
}

// SeedLogByDataSayur lists sowings tied to one planting batch.
func SeedLogByDataSayur(w http.ResponseWriter, r *http.Request) {
	batchID := mux.Vars(r)["id"]
	var rows []models.SeedLog
	err := config.DB.Where("data_sayur_id = ?", batchID).
		Order("tanggal_semai desc").
		Find(&rows).Error
	if err != nil {
		respondFailure(w, "Gagal memuat log benih", err)
		return
	}
	respondData(w, http.StatusOK, rows)
}
