package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"sbfarm.id/api/config"
	"sbfarm.id/api/models"
)

type jadwalPerlakuanPayload struct {
	Tanggal         string   `json:"tanggal" validate:"required,datetime=2006-01-02"`
	MingguKe        *int     `json:"minggu_ke" validate:"omitempty,gte=1,lte=5"`
	HariDalamMinggu *string  `json:"hari_dalam_minggu" validate:"omitempty,oneof=Senin Selasa Rabu Kamis Jumat Sabtu Minggu"`
	AreaID          *uint    `json:"area_id"`
	TandonID        *uint    `json:"tandon_id"`
	PerlakuanID     uint     `json:"perlakuan_id" validate:"required"`
	Dosis           *float64 `json:"dosis" validate:"omitempty,gte=0"`
	Satuan          *string  `json:"satuan" validate:"omitempty,max=20"`
	Keterangan      *string  `json:"keterangan"`
}

// JadwalPerlakuanResource serves dated treatment applications.
var JadwalPerlakuanResource = &resource[models.JadwalPerlakuan, jadwalPerlakuanPayload]{
	table:       "jadwal_perlakuan",
	label:       "jadwal perlakuan",
	preloads:    []string{"Area", "Tandon", "Perlakuan", "User"},
	defaultSort: "tanggal desc",
	filter: func(q *gorm.DB, r *http.Request) *gorm.DB {
		q = models.DateRangeFilter(q, r, "tanggal", "start_date", "end_date")
		q = models.ExactFilter(q, r, "area_id", "area_id")
		q = models.ExactFilter(q, r, "tandon_id", "tandon_id")
		q = models.ExactFilter(q, r, "perlakuan_id", "perlakuan_id")
		return models.ExactFilter(q, r, "minggu_ke", "minggu_ke")
	},
	check: func(tx *gorm.DB, p *jadwalPerlakuanPayload, id uint) error {
		if err := checkExists(tx, "perlakuan_master", "perlakuan_id", p.PerlakuanID); err != nil {
			return err
		}
		if p.AreaID != nil {
			if err := checkExists(tx, "area_kebun", "area_id", *p.AreaID); err != nil {
				return err
			}
		}
		if p.TandonID != nil {
			if err := checkExists(tx, "tandon", "tandon_id", *p.TandonID); err != nil {
				return err
			}
		}
		return nil
	},
	assign: func(m *models.JadwalPerlakuan, p *jadwalPerlakuanPayload) {
		m.Tanggal = mustDate(p.Tanggal)
		m.MingguKe = p.MingguKe
		m.HariDalamMinggu = optString(p.HariDalamMinggu)
		m.AreaID = p.AreaID
		m.TandonID = p.TandonID
		m.PerlakuanID = p.PerlakuanID
		m.Dosis = p.Dosis
		m.Satuan = optString(p.Satuan)
		m.Keterangan = optString(p.Keterangan)
	},
	setUser: func(m *models.JadwalPerlakuan, uid uint) { m.UserID = uid },
	describe: func(m *models.JadwalPerlakuan) string {
		return fmt.Sprintf("%s perlakuan_id=%d", m.Tanggal.String(), m.PerlakuanID)
	},
}

// JadwalPerlakuanSummary aggregates schedules by treatment, area and weekday,
// plus the next upcoming entries.
func JadwalPerlakuanSummary(w http.ResponseWriter, r *http.Request) {
	base := config.DB.Model(&models.JadwalPerlakuan{})
	base = models.DateRangeFilter(base, r, "tanggal", "start_date", "end_date")

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		respondFailure(w, "Gagal memuat ringkasan jadwal perlakuan", err)
		return
	}

	type perPerlakuan struct {
		NamaPerlakuan string `json:"nama_perlakuan"`
		Tipe          string `json:"tipe"`
		Count         int64  `json:"count"`
	}
	var byPerlakuan []perPerlakuan
	q := config.DB.Table("jadwal_perlakuan").
		Select("perlakuan_master.nama_perlakuan, perlakuan_master.tipe, COUNT(*) AS count").
		Joins("JOIN perlakuan_master ON perlakuan_master.id = jadwal_perlakuan.perlakuan_id").
		Group("perlakuan_master.nama_perlakuan, perlakuan_master.tipe").
		Order("count desc").
		Limit(10)
	q = models.DateRangeFilter(q, r, "jadwal_perlakuan.tanggal", "start_date", "end_date")
	if err := q.Scan(&byPerlakuan).Error; err != nil {
		respondFailure(w, "Gagal memuat ringkasan jadwal perlakuan", err)
		return
	}

	type perArea struct {
		NamaArea string `json:"nama_area"`
		Count    int64  `json:"count"`
	}
	var byArea []perArea
	q = config.DB.Table("jadwal_perlakuan").
		Select("area_kebun.nama_area, COUNT(*) AS count").
		Joins("JOIN area_kebun ON area_kebun.id = jadwal_perlakuan.area_id").
		Group("area_kebun.nama_area").
		Order("count desc")
	q = models.DateRangeFilter(q, r, "jadwal_perlakuan.tanggal", "start_date", "end_date")
	if err := q.Scan(&byArea).Error; err != nil {
		respondFailure(w, "Gagal memuat ringkasan jadwal perlakuan", err)
		return
	}

	type perHari struct {
		HariDalamMinggu string `json:"hari_dalam_minggu"`
		Count           int64  `json:"count"`
	}
	var byHari []perHari
	q = config.DB.Model(&models.JadwalPerlakuan{}).
		Select("hari_dalam_minggu, COUNT(*) AS count").
		Where("hari_dalam_minggu IS NOT NULL").
		Group("hari_dalam_minggu").
		Order("count desc")
	q = models.DateRangeFilter(q, r, "tanggal", "start_date", "end_date")
	if err := q.Scan(&byHari).Error; err != nil {
		respondFailure(w, "Gagal memuat ringkasan jadwal perlakuan", err)
		return
	}

	var upcoming []models.JadwalPerlakuan
	err := config.DB.Preload("Area").Preload("Tandon").Preload("Perlakuan").
		Where("tanggal >= ?", time.Now().Format(models.DateLayout)).
		Order("tanggal asc").
		Limit(10).
		Find(&upcoming).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan jadwal perlakuan", err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"total_jadwal":       total,
		"by_perlakuan":       byPerlakuan,
		"by_area":            byArea,
		"by_hari":            byHari,
		"upcoming_schedules": upcoming,
	})
}

// JadwalPerlakuanByMonth answers one month's schedules grouped per day, for
// the calendar view.
func JadwalPerlakuanByMonth(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, errY := strconv.Atoi(vars["year"])
	month, errM := strconv.Atoi(vars["month"])
	if errY != nil || errM != nil || month < 1 || month > 12 {
		respondError(w, http.StatusBadRequest, "Periode tidak valid")
		return
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	var rows []models.JadwalPerlakuan
	err := config.DB.Preload("User").Preload("Area").Preload("Tandon").Preload("Perlakuan").
		Where("tanggal BETWEEN ? AND ?", start.Format(models.DateLayout), end.Format(models.DateLayout)).
		Order("tanggal asc").
		Find(&rows).Error
	if err != nil {
		respondFailure(w, "Gagal memuat jadwal perlakuan bulanan", err)
		return
	}

	grouped := make(map[string][]models.JadwalPerlakuan)
	for _, row := range rows {
		key := row.Tanggal.String()
		grouped[key] = append(grouped[key], row)
	}

	respondData(w, http.StatusOK, map[string]any{
		"schedules": grouped,
		"month_info": map[string]any{
			"year":            year,
			"month":           month,
			"start_date":      start.Format(models.DateLayout),
			"end_date":        end.Format(models.DateLayout),
			"total_schedules": len(rows),
		},
	})
}

// JadwalPerlakuanByArea lists the schedules scoped to one area.
func JadwalPerlakuanByArea(w http.ResponseWriter, r *http.Request) {
	areaID := mux.Vars(r)["areaId"]
	var rows []models.JadwalPerlakuan
	err := config.DB.Preload("User").Preload("Tandon").Preload("Perlakuan").
		Where("area_id = ?", areaID).
		Order("tanggal desc").
		Find(&rows).Error
	if err != nil {
		respondFailure(w, "Gagal memuat jadwal perlakuan", err)
		return
	}
	respondData(w, http.StatusOK, rows)
}

// JadwalPerlakuanByPerlakuan lists the schedules of one treatment.
func JadwalPerlakuanByPerlakuan(w http.ResponseWriter, r *http.Request) {
	perlakuanID := mux.Vars(r)["perlakuanId"]
	var rows []models.JadwalPerlakuan
	err := config.DB.Preload("User").Preload("Area").Preload("Tandon").
		Where("perlakuan_id = ?", perlakuanID).
		Order("tanggal desc").
		Find(&rows).Error
	if err != nil {
		respondFailure(w, "Gagal memuat jadwal perlakuan", err)
		return
	}
	respondData(w, http.StatusOK, rows)
}

// JadwalPerlakuanRotation answers the week-by-weekday rotation grid. Defaults
// to the current month when no range is given.
func JadwalPerlakuanRotation(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	start := r.URL.Query().Get("start_date")
	if start == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format(models.DateLayout)
	}
	end := r.URL.Query().Get("end_date")
	if end == "" {
		end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 1, -1).Format(models.DateLayout)
	}

	q := config.DB.Preload("Area").Preload("Tandon").Preload("Perlakuan").
		Where("tanggal BETWEEN ? AND ?", start, end)
	q = models.ExactFilter(q, r, "area_id", "area_id")

	var rows []models.JadwalPerlakuan
	if err := q.Order("tanggal asc").Find(&rows).Error; err != nil {
		respondFailure(w, "Gagal memuat jadwal rotasi perlakuan", err)
		return
	}

	// minggu_ke -> hari -> schedules
	rotation := make(map[string]map[string][]models.JadwalPerlakuan)
	for _, row := range rows {
		week := "tanpa_minggu"
		if row.MingguKe != nil {
			week = strconv.Itoa(*row.MingguKe)
		}
		day := "tanpa_hari"
		if row.HariDalamMinggu != nil {
			day = *row.HariDalamMinggu
		}
		if rotation[week] == nil {
			rotation[week] = make(map[string][]models.JadwalPerlakuan)
		}
		rotation[week][day] = append(rotation[week][day], row)
	}

	respondData(w, http.StatusOK, map[string]any{
		"rotation": rotation,
		"period": map[string]any{
			"start_date":      start,
			"end_date":        end,
			"total_schedules": len(rows),
		},
	})
}
