package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"sbfarm.id/api/config"
	"sbfarm.id/api/models"
)

type nutrisiPupukDetailPayload struct {
	NutrisiPupukID    uint     `json:"nutrisi_pupuk_id" validate:"required"`
	TandonID          uint     `json:"tandon_id" validate:"required"`
	PPM               *float64 `json:"ppm" validate:"omitempty,gte=0"`
	NutrisiDitambahML *float64 `json:"nutrisi_ditambah_ml" validate:"omitempty,gte=0"`
	AirDitambahLiter  *float64 `json:"air_ditambah_liter" validate:"omitempty,gte=0"`
	PH                *float64 `json:"ph" validate:"omitempty,gte=0,lte=14"`
	SuhuAir           *float64 `json:"suhu_air" validate:"omitempty,gte=0"`
	Keterangan        *string  `json:"keterangan"`
}

// NutrisiPupukDetailResource allows direct maintenance of per-tank readings
// outside the parent session endpoints.
var NutrisiPupukDetailResource = &resource[models.NutrisiPupukDetail, nutrisiPupukDetailPayload]{
	table:       "nutrisi_pupuk_detail",
	label:       "detail nutrisi pupuk",
	preloads:    []string{"Tandon"},
	defaultSort: "id asc",
	filter: func(q *gorm.DB, r *http.Request) *gorm.DB {
		q = models.ExactFilter(q, r, "nutrisi_pupuk_id", "nutrisi_pupuk_id")
		return models.ExactFilter(q, r, "tandon_id", "tandon_id")
	},
	check: func(tx *gorm.DB, p *nutrisiPupukDetailPayload, id uint) error {
		if err := checkExists(tx, "nutrisi_pupuk", "nutrisi_pupuk_id", p.NutrisiPupukID); err != nil {
			return err
		}
		return checkExists(tx, "tandon", "tandon_id", p.TandonID)
	},
	assign: func(m *models.NutrisiPupukDetail, p *nutrisiPupukDetailPayload) {
		m.NutrisiPupukID = p.NutrisiPupukID
		m.TandonID = p.TandonID
		m.PPM = p.PPM
		m.NutrisiDitambahML = p.NutrisiDitambahML
		m.AirDitambahLiter = p.AirDitambahLiter
		m.PH = p.PH
		m.SuhuAir = p.SuhuAir
		m.Keterangan = optString(p.Keterangan)
	},
	afterSave: func(tx *gorm.DB, m *models.NutrisiPupukDetail, p *nutrisiPupukDetailPayload, created bool) error {
		return syncHasDetail(tx, m.NutrisiPupukID)
	},
	afterDelete: func(tx *gorm.DB, m *models.NutrisiPupukDetail) error {
		return syncHasDetail(tx, m.NutrisiPupukID)
	},
	describe: func(m *models.NutrisiPupukDetail) string {
		return fmt.Sprintf("nutrisi_pupuk_id=%d tandon_id=%d", m.NutrisiPupukID, m.TandonID)
	},
}

// syncHasDetail keeps the parent's has_detail flag in line with its rows.
func syncHasDetail(tx *gorm.DB, nutrisiPupukID uint) error {
	n, err := countWhere(tx, "nutrisi_pupuk_detail", "nutrisi_pupuk_id = ?", nutrisiPupukID)
	if err != nil {
		return err
	}
	return tx.Model(&models.NutrisiPupuk{}).
		Where("id = ?", nutrisiPupukID).
		Update("has_detail", n > 0).Error
}

// NutrisiPupukDetailSummary aggregates readings per tank.
func NutrisiPupukDetailSummary(w http.ResponseWriter, r *http.Request) {
	var totals struct {
		TotalDetail    int64   `json:"total_detail"`
		RataRataPPM    float64 `json:"rata_rata_ppm"`
		RataRataPH     float64 `json:"rata_rata_ph"`
		TotalNutrisiML float64 `json:"total_nutrisi_ml"`
		TotalAirLiter  float64 `json:"total_air_liter"`
	}
	err := config.DB.Model(&models.NutrisiPupukDetail{}).
		Select(`COUNT(*) AS total_detail,
			COALESCE(AVG(ppm), 0) AS rata_rata_ppm,
			COALESCE(AVG(ph), 0) AS rata_rata_ph,
			COALESCE(SUM(nutrisi_ditambah_ml), 0) AS total_nutrisi_ml,
			COALESCE(SUM(air_ditambah_liter), 0) AS total_air_liter`).
		Scan(&totals).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan detail nutrisi pupuk", err)
		return
	}

	type perTandon struct {
		KodeTandon  string  `json:"kode_tandon"`
		TotalDetail int64   `json:"total_detail"`
		RataRataPPM float64 `json:"rata_rata_ppm"`
	}
	var breakdown []perTandon
	err = config.DB.Table("nutrisi_pupuk_detail").
		Select(`tandon.kode_tandon, COUNT(nutrisi_pupuk_detail.id) AS total_detail,
			COALESCE(AVG(nutrisi_pupuk_detail.ppm), 0) AS rata_rata_ppm`).
		Joins("JOIN tandon ON tandon.id = nutrisi_pupuk_detail.tandon_id").
		Group("tandon.id, tandon.kode_tandon").
		Order("tandon.kode_tandon asc").
		Scan(&breakdown).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan detail nutrisi pupuk", err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"total_detail":      totals.TotalDetail,
		"rata_rata_ppm":     totals.RataRataPPM,
		"rata_rata_ph":      totals.RataRataPH,
		"total_nutrisi_ml":  totals.TotalNutrisiML,
		"total_air_liter":   totals.TotalAirLiter,
		"detail_per_tandon": breakdown,
	})
}

// NutrisiPupukDetailByParent lists the per-tank rows of one mix session.
func NutrisiPupukDetailByParent(w http.ResponseWriter, r *http.Request) {
	parentID := mux.Vars(r)["id"]
	var rows []models.NutrisiPupukDetail
	err := config.DB.Preload("Tandon").
		Where("nutrisi_pupuk_id = ?", parentID).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		respondFailure(w, "Gagal memuat detail nutrisi pupuk", err)
		return
	}
	respondData(w, http.StatusOK, rows)
}
