package handlers

import (
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"sbfarm.id/api/config"
	"sbfarm.id/api/models"
)

type nutrisiDetailPayload struct {
	TandonID          uint     `json:"tandon_id" validate:"required"`
	PPM               *float64 `json:"ppm" validate:"omitempty,gte=0"`
	NutrisiDitambahML *float64 `json:"nutrisi_ditambah_ml" validate:"omitempty,gte=0"`
	AirDitambahLiter  *float64 `json:"air_ditambah_liter" validate:"omitempty,gte=0"`
	PH                *float64 `json:"ph" validate:"omitempty,gte=0,lte=14"`
	SuhuAir           *float64 `json:"suhu_air" validate:"omitempty,gte=0"`
	Keterangan        *string  `json:"keterangan"`
}

type nutrisiPupukPayload struct {
	TanggalPencatatan string                 `json:"tanggal_pencatatan" validate:"required,datetime=2006-01-02"`
	AreaID            uint                   `json:"area_id" validate:"required"`
	JumlahTandonAir   *float64               `json:"jumlah_tandon_air" validate:"omitempty,gte=0"`
	JumlahPupukML     *float64               `json:"jumlah_pupuk_ml" validate:"omitempty,gte=0"`
	JumlahAirLiter    *float64               `json:"jumlah_air_liter" validate:"omitempty,gte=0"`
	PPMSebelum        *float64               `json:"ppm_sebelum" validate:"omitempty,gte=0"`
	PPMSesudah        *float64               `json:"ppm_sesudah" validate:"omitempty,gte=0"`
	PHSebelum         *float64               `json:"ph_sebelum" validate:"omitempty,gte=0,lte=14"`
	PHSesudah         *float64               `json:"ph_sesudah" validate:"omitempty,gte=0,lte=14"`
	SuhuAir           *float64               `json:"suhu_air" validate:"omitempty,gte=0"`
	KondisiCuaca      *string                `json:"kondisi_cuaca" validate:"omitempty,oneof=cerah berawan hujan mendung"`
	Keterangan        *string                `json:"keterangan"`
	Details           []nutrisiDetailPayload `json:"details" validate:"omitempty,dive"`
}

// NutrisiPupukResource serves nutrient-mix sessions. Detail rows live and die
// with the parent: create inserts them, update replaces the whole set.
var NutrisiPupukResource = &resource[models.NutrisiPupuk, nutrisiPupukPayload]{
	table:       "nutrisi_pupuk",
	label:       "nutrisi pupuk",
	preloads:    []string{"Area", "User"},
	getPreloads: []string{"Area", "User", "Details", "Details.Tandon"},
	defaultSort: "tanggal_pencatatan desc",
	filter: func(q *gorm.DB, r *http.Request) *gorm.DB {
		q = models.DateRangeFilter(q, r, "tanggal_pencatatan", "tanggal_mulai", "tanggal_selesai")
		q = models.ExactFilter(q, r, "area_id", "area_id")
		return models.ExactFilter(q, r, "kondisi_cuaca", "kondisi_cuaca")
	},
	check: func(tx *gorm.DB, p *nutrisiPupukPayload, id uint) error {
		if err := checkExists(tx, "area_kebun", "area_id", p.AreaID); err != nil {
			return err
		}
		for _, d := range p.Details {
			if err := checkExists(tx, "tandon", "details.tandon_id", d.TandonID); err != nil {
				return err
			}
		}
		return nil
	},
	assign: func(m *models.NutrisiPupuk, p *nutrisiPupukPayload) {
		m.TanggalPencatatan = mustDate(p.TanggalPencatatan)
		m.AreaID = p.AreaID
		m.JumlahTandonAir = p.JumlahTandonAir
		m.JumlahPupukML = p.JumlahPupukML
		m.JumlahAirLiter = p.JumlahAirLiter
		m.PPMSebelum = p.PPMSebelum
		m.PPMSesudah = p.PPMSesudah
		m.PHSebelum = p.PHSebelum
		m.PHSesudah = p.PHSesudah
		m.SuhuAir = p.SuhuAir
		m.KondisiCuaca = optString(p.KondisiCuaca)
		m.Keterangan = optString(p.Keterangan)
		m.HasDetail = len(p.Details) > 0
	},
	setUser: func(m *models.NutrisiPupuk, uid uint) { m.UserID = uid },
	afterSave: func(tx *gorm.DB, m *models.NutrisiPupuk, p *nutrisiPupukPayload, created bool) error {
		if !created {
			err := tx.Where("nutrisi_pupuk_id = ?", m.ID).Delete(&models.NutrisiPupukDetail{}).Error
			if err != nil {
				return err
			}
		}
		for _, d := range p.Details {
			row := models.NutrisiPupukDetail{
				NutrisiPupukID:    m.ID,
				TandonID:          d.TandonID,
				PPM:               d.PPM,
				NutrisiDitambahML: d.NutrisiDitambahML,
				AirDitambahLiter:  d.AirDitambahLiter,
				PH:                d.PH,
				SuhuAir:           d.SuhuAir,
				Keterangan:        optString(d.Keterangan),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	},
	describe: func(m *models.NutrisiPupuk) string {
		return fmt.Sprintf("%s area_id=%d", m.TanggalPencatatan.String(), m.AreaID)
	},
}

// NutrisiPupukSummary aggregates mix sessions over an optional date range.
func NutrisiPupukSummary(w http.ResponseWriter, r *http.Request) {
	base := config.DB.Model(&models.NutrisiPupuk{})
	base = models.DateRangeFilter(base, r, "tanggal_pencatatan", "tanggal_mulai", "tanggal_selesai")
	base = models.ExactFilter(base, r, "area_id", "area_id")

	var totals struct {
		TotalCatatan    int64   `json:"total_catatan"`
		TotalPupukML    float64 `json:"total_pupuk_ml"`
		TotalAirLiter   float64 `json:"total_air_liter"`
		RataRataPPM     float64 `json:"rata_rata_ppm"`
		RataRataPH      float64 `json:"rata_rata_ph"`
		RataRataSuhuAir float64 `json:"rata_rata_suhu_air"`
	}
	err := base.Session(&gorm.Session{}).
		Select(`COUNT(*) AS total_catatan,
			COALESCE(SUM(jumlah_pupuk_ml), 0) AS total_pupuk_ml,
			COALESCE(SUM(jumlah_air_liter), 0) AS total_air_liter,
			COALESCE(AVG(ppm_sesudah), 0) AS rata_rata_ppm,
			COALESCE(AVG(ph_sesudah), 0) AS rata_rata_ph,
			COALESCE(AVG(suhu_air), 0) AS rata_rata_suhu_air`).
		Scan(&totals).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan nutrisi pupuk", err)
		return
	}

	type perArea struct {
		NamaArea     string  `json:"nama_area"`
		TotalCatatan int64   `json:"total_catatan"`
		TotalPupukML float64 `json:"total_pupuk_ml"`
	}
	var breakdown []perArea
	q := config.DB.Table("nutrisi_pupuk").
		Select(`area_kebun.nama_area, COUNT(nutrisi_pupuk.id) AS total_catatan,
			COALESCE(SUM(nutrisi_pupuk.jumlah_pupuk_ml), 0) AS total_pupuk_ml`).
		Joins("JOIN area_kebun ON area_kebun.id = nutrisi_pupuk.area_id").
		Group("area_kebun.id, area_kebun.nama_area").
		Order("total_catatan desc")
	q = models.DateRangeFilter(q, r, "nutrisi_pupuk.tanggal_pencatatan", "tanggal_mulai", "tanggal_selesai")
	if err := q.Scan(&breakdown).Error; err != nil {
		respondFailure(w, "Gagal memuat ringkasan nutrisi pupuk", err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"total_catatan":      totals.TotalCatatan,
		"total_pupuk_ml":     totals.TotalPupukML,
		"total_air_liter":    totals.TotalAirLiter,
		"rata_rata_ppm":      totals.RataRataPPM,
		"rata_rata_ph":       totals.RataRataPH,
		"rata_rata_suhu_air": totals.RataRataSuhuAir,
		"catatan_per_area":   breakdown,
	})
}
