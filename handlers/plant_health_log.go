package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"sbfarm.id/api/config"
	"sbfarm.id/api/models"
)

type plantHealthLogPayload struct {
	Tanggal                string  `json:"tanggal" validate:"required,datetime=2006-01-02"`
	DataSayurID            uint    `json:"data_sayur_id" validate:"required"`
	Gejala                 string  `json:"gejala" validate:"required,oneof=busuk layu jamur serangga nutrisi lainnya"`
	JumlahTanamanTerdampak int     `json:"jumlah_tanaman_terdampak" validate:"required,gt=0"`
	Tindakan               *string `json:"tindakan"`
	Keterangan             *string `json:"keterangan"`
}

// PlantHealthLogResource serves plant health incident records.
var PlantHealthLogResource = &resource[models.PlantHealthLog, plantHealthLogPayload]{
	table:       "plant_health_log",
	label:       "plant health log",
	preloads:    []string{"DataSayur", "User"},
	defaultSort: "tanggal desc",
	filter: func(q *gorm.DB, r *http.Request) *gorm.DB {
		q = models.DateRangeFilter(q, r, "tanggal", "start_date", "end_date")
		q = models.ExactFilter(q, r, "data_sayur_id", "data_sayur_id")
		return models.ExactFilter(q, r, "gejala", "gejala")
	},
	check: func(tx *gorm.DB, p *plantHealthLogPayload, id uint) error {
		return checkExists(tx, "data_sayur", "data_sayur_id", p.DataSayurID)
	},
	assign: func(m *models.PlantHealthLog, p *plantHealthLogPayload) {
		m.Tanggal = mustDate(p.Tanggal)
		m.DataSayurID = p.DataSayurID
		m.Gejala = p.Gejala
		m.JumlahTanamanTerdampak = p.JumlahTanamanTerdampak
		m.Tindakan = optString(p.Tindakan)
		m.Keterangan = optString(p.Keterangan)
	},
	setUser: func(m *models.PlantHealthLog, uid uint) { m.UserID = uid },
	describe: func(m *models.PlantHealthLog) string {
		return fmt.Sprintf("%s gejala=%s terdampak=%d", m.Tanggal.String(), m.Gejala, m.JumlahTanamanTerdampak)
	},
}

// PlantHealthLogSummary aggregates incidents by symptom and by crop.
func PlantHealthLogSummary(w http.ResponseWriter, r *http.Request) {
	base := config.DB.Model(&models.PlantHealthLog{})
	base = models.DateRangeFilter(base, r, "tanggal", "start_date", "end_date")

	var totals struct {
		TotalEntries          int64 `json:"total_entries"`
		TotalTanamanTerdampak int64 `json:"total_tanaman_terdampak"`
	}
	err := base.Session(&gorm.Session{}).
		Select("COUNT(*) AS total_entries, COALESCE(SUM(jumlah_tanaman_terdampak), 0) AS total_tanaman_terdampak").
		Scan(&totals).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan plant health log", err)
		return
	}

	type perGejala struct {
		Gejala         string `json:"gejala"`
		Count          int64  `json:"count"`
		TotalTerdampak int64  `json:"total_terdampak"`
	}
	var byGejala []perGejala
	q := config.DB.Model(&models.PlantHealthLog{}).
		Select("gejala, COUNT(*) AS count, COALESCE(SUM(jumlah_tanaman_terdampak), 0) AS total_terdampak").
		Group("gejala").
		Order("total_terdampak desc")
	q = models.DateRangeFilter(q, r, "tanggal", "start_date", "end_date")
	if err := q.Scan(&byGejala).Error; err != nil {
		respondFailure(w, "Gagal memuat ringkasan plant health log", err)
		return
	}

	type perSayur struct {
		JenisSayur     string  `json:"jenis_sayur"`
		Varietas       *string `json:"varietas"`
		Count          int64   `json:"count"`
		TotalTerdampak int64   `json:"total_terdampak"`
	}
	var bySayur []perSayur
	q = config.DB.Table("plant_health_log").
		Select(`data_sayur.jenis_sayur, data_sayur.varietas, COUNT(*) AS count,
			COALESCE(SUM(plant_health_log.jumlah_tanaman_terdampak), 0) AS total_terdampak`).
		Joins("JOIN data_sayur ON data_sayur.id = plant_health_log.data_sayur_id").
		Group("data_sayur.jenis_sayur, data_sayur.varietas").
		Order("total_terdampak desc").
		Limit(10)
	q = models.DateRangeFilter(q, r, "plant_health_log.tanggal", "start_date", "end_date")
	if err := q.Scan(&bySayur).Error; err != nil {
		respondFailure(w, "Gagal memuat ringkasan plant health log", err)
		return
	}

	var recent []models.PlantHealthLog
	rq := config.DB.Preload("User").Preload("DataSayur").
		Order("tanggal desc").
		Limit(5)
	rq = models.DateRangeFilter(rq, r, "tanggal", "start_date", "end_date")
	if err := rq.Find(&recent).Error; err != nil {
		respondFailure(w, "Gagal memuat ringkasan plant health log", err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"total_entries":           totals.TotalEntries,
		"total_tanaman_terdampak": totals.TotalTanamanTerdampak,
		"by_gejala":               byGejala,
		"by_data_sayur":           bySayur,
		"recent_entries":          recent,
	})
}

// PlantHealthStats answers the daily incident trend and symptom distribution.
func PlantHealthStats(w http.ResponseWriter, r *http.Request) {
	type daily struct {
		Tanggal             models.Date `json:"tanggal"`
		TotalIncidents      int64       `json:"total_incidents"`
		TotalAffectedPlants int64       `json:"total_affected_plants"`
	}
	var dailyStats []daily
	q := config.DB.Model(&models.PlantHealthLog{}).
		Select(`tanggal, COUNT(*) AS total_incidents,
			COALESCE(SUM(jumlah_tanaman_terdampak), 0) AS total_affected_plants`).
		Group("tanggal").
		Order("tanggal desc").
		Limit(30)
	q = models.DateRangeFilter(q, r, "tanggal", "start_date", "end_date")
	if err := q.Scan(&dailyStats).Error; err != nil {
		respondFailure(w, "Gagal memuat statistik kesehatan tanaman", err)
		return
	}

	type gejalaStat struct {
		Gejala                 string  `json:"gejala"`
		IncidentCount          int64   `json:"incident_count"`
		AffectedPlants         int64   `json:"affected_plants"`
		AvgAffectedPerIncident float64 `json:"avg_affected_per_incident"`
	}
	var gejalaStats []gejalaStat
	q = config.DB.Model(&models.PlantHealthLog{}).
		Select(`gejala, COUNT(*) AS incident_count,
			COALESCE(SUM(jumlah_tanaman_terdampak), 0) AS affected_plants,
			COALESCE(AVG(jumlah_tanaman_terdampak), 0) AS avg_affected_per_incident`).
		Group("gejala").
		Order("affected_plants desc")
	q = models.DateRangeFilter(q, r, "tanggal", "start_date", "end_date")
	if err := q.Scan(&gejalaStats).Error; err != nil {
		respondFailure(w, "Gagal memuat statistik kesehatan tanaman", err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"daily_stats":  dailyStats,
		"gejala_stats": gejalaStats,
	})
}

// PlantHealthLogByDataSayur lists incidents for one planting batch.
func PlantHealthLogByDataSayur(w http.ResponseWriter, r *http.Request) {
	batchID := mux.Vars(r)["id"]
	var rows []models.PlantHealthLog
	err := config.DB.Preload("User").
		Where("data_sayur_id = ?", batchID).
		Order("tanggal desc").
		Find(&rows).Error
	if err != nil {
		respondFailure(w, "Gagal memuat plant health log", err)
		return
	}
	respondData(w, http.StatusOK, rows)
}
