package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"sbfarm.id/api/config"
	"sbfarm.id/api/models"
)

type tandonPayload struct {
	AreaID         uint     `json:"area_id" validate:"required"`
	KodeTandon     string   `json:"kode_tandon" validate:"required,max=50"`
	NamaTandon     *string  `json:"nama_tandon" validate:"omitempty,max=100"`
	KapasitasLiter *float64 `json:"kapasitas_liter" validate:"omitempty,gte=0"`
	Status         string   `json:"status" validate:"omitempty,oneof=aktif nonaktif"`
	Keterangan     *string  `json:"keterangan"`
}

// TandonResource serves the water tank master data.
var TandonResource = &resource[models.Tandon, tandonPayload]{
	table:       "tandon",
	label:       "tandon",
	preloads:    []string{"Area"},
	defaultSort: "kode_tandon asc",
	filter: func(q *gorm.DB, r *http.Request) *gorm.DB {
		q = models.ExactFilter(q, r, "area_id", "area_id")
		return models.ExactFilter(q, r, "status", "status")
	},
	check: func(tx *gorm.DB, p *tandonPayload, id uint) error {
		if err := checkExists(tx, "area_kebun", "area_id", p.AreaID); err != nil {
			return err
		}
		taken, err := columnTaken(tx, "tandon", "kode_tandon", p.KodeTandon, id)
		if err != nil {
			return err
		}
		if taken {
			return errFieldTaken("kode_tandon", "sudah digunakan")
		}
		return nil
	},
	assign: func(m *models.Tandon, p *tandonPayload) {
		m.AreaID = p.AreaID
		m.KodeTandon = p.KodeTandon
		m.NamaTandon = optString(p.NamaTandon)
		m.KapasitasLiter = p.KapasitasLiter
		if p.Status != "" {
			m.Status = p.Status
		}
		m.Keterangan = optString(p.Keterangan)
	},
	describe: func(m *models.Tandon) string { return m.KodeTandon },
}

// TandonSummary aggregates tanks by status and per area.
func TandonSummary(w http.ResponseWriter, r *http.Request) {
	var totals struct {
		TotalTandon         int64   `json:"total_tandon"`
		Aktif               int64   `json:"aktif"`
		Nonaktif            int64   `json:"nonaktif"`
		TotalKapasitasLiter float64 `json:"total_kapasitas_liter"`
	}
	err := config.DB.Model(&models.Tandon{}).
		Select(`COUNT(*) AS total_tandon,
			SUM(CASE WHEN status = 'aktif' THEN 1 ELSE 0 END) AS aktif,
			SUM(CASE WHEN status = 'nonaktif' THEN 1 ELSE 0 END) AS nonaktif,
			COALESCE(SUM(kapasitas_liter), 0) AS total_kapasitas_liter`).
		Scan(&totals).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan tandon", err)
		return
	}

	type perArea struct {
		NamaArea    string  `json:"nama_area"`
		TotalTandon int64   `json:"total_tandon"`
		Kapasitas   float64 `json:"total_kapasitas_liter"`
	}
	var breakdown []perArea
	err = config.DB.Table("tandon").
		Select(`area_kebun.nama_area, COUNT(tandon.id) AS total_tandon,
			COALESCE(SUM(tandon.kapasitas_liter), 0) AS kapasitas`).
		Joins("JOIN area_kebun ON area_kebun.id = tandon.area_id").
		Group("area_kebun.id, area_kebun.nama_area").
		Order("area_kebun.nama_area asc").
		Scan(&breakdown).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan tandon", err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"total_tandon":          totals.TotalTandon,
		"aktif":                 totals.Aktif,
		"nonaktif":              totals.Nonaktif,
		"total_kapasitas_liter": totals.TotalKapasitasLiter,
		"tandon_per_area":       breakdown,
	})
}

// TandonByArea lists the tanks that belong to one area.
func TandonByArea(w http.ResponseWriter, r *http.Request) {
	areaID := mux.Vars(r)["areaId"]
	var tandon []models.Tandon
	err := config.DB.Where("area_id = ?", areaID).Order("kode_tandon asc").Find(&tandon).Error
	if err != nil {
		respondFailure(w, "Gagal memuat tandon", err)
		return
	}
	respondData(w, http.StatusOK, tandon)
}
