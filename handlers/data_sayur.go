package handlers

import (
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"sbfarm.id/api/config"
	"sbfarm.id/api/models"
)

type dataSayurPayload struct {
	TanggalTanam       string   `json:"tanggal_tanam" validate:"required,datetime=2006-01-02"`
	JenisSayur         string   `json:"jenis_sayur" validate:"required,max=255"`
	Varietas           *string  `json:"varietas" validate:"omitempty,max=255"`
	AreaID             uint     `json:"area_id" validate:"required"`
	JumlahBibit        int      `json:"jumlah_bibit" validate:"required,gt=0"`
	MetodeTanam        *string  `json:"metode_tanam" validate:"omitempty,oneof=hidroponik tanah pot"`
	JenisMedia         *string  `json:"jenis_media" validate:"omitempty,max=100"`
	TanggalPanenTarget *string  `json:"tanggal_panen_target" validate:"omitempty,datetime=2006-01-02"`
	TanggalPanenAktual *string  `json:"tanggal_panen_aktual" validate:"omitempty,datetime=2006-01-02"`
	StatusPanen        string   `json:"status_panen" validate:"required,oneof=belum_panen panen_sukses gagal_panen"`
	JumlahPanenKg      *float64 `json:"jumlah_panen_kg" validate:"omitempty,gte=0"`
	PenyebabGagal      *string  `json:"penyebab_gagal" validate:"omitempty,max=255"`
	Keterangan         *string  `json:"keterangan"`
}

// DataSayurResource serves the planting batches.
var DataSayurResource = &resource[models.DataSayur, dataSayurPayload]{
	table:       "data_sayur",
	label:       "data sayur",
	preloads:    []string{"Area", "User"},
	defaultSort: "tanggal_tanam desc",
	filter: func(q *gorm.DB, r *http.Request) *gorm.DB {
		q = models.DateRangeFilter(q, r, "tanggal_tanam", "tanggal_mulai", "tanggal_selesai")
		q = models.SearchFilter(q, r, "jenis_sayur", "jenis_sayur")
		q = models.ExactFilter(q, r, "area_id", "area_id")
		return models.ExactFilter(q, r, "status_panen", "status_panen")
	},
	check: func(tx *gorm.DB, p *dataSayurPayload, id uint) error {
		return checkExists(tx, "area_kebun", "area_id", p.AreaID)
	},
	assign: func(m *models.DataSayur, p *dataSayurPayload) {
		m.TanggalTanam = mustDate(p.TanggalTanam)
		m.JenisSayur = p.JenisSayur
		m.Varietas = optString(p.Varietas)
		m.AreaID = p.AreaID
		m.JumlahBibit = p.JumlahBibit
		m.MetodeTanam = optString(p.MetodeTanam)
		m.JenisMedia = optString(p.JenisMedia)
		m.TanggalPanenTarget = optDate(p.TanggalPanenTarget)
		m.TanggalPanenAktual = optDate(p.TanggalPanenAktual)
		m.StatusPanen = p.StatusPanen
		m.JumlahPanenKg = p.JumlahPanenKg
		m.PenyebabGagal = optString(p.PenyebabGagal)
		m.Keterangan = optString(p.Keterangan)
	},
	setUser: func(m *models.DataSayur, uid uint) { m.UserID = uid },
	inUse: func(tx *gorm.DB, m *models.DataSayur) (string, error) {
		if n, err := countWhere(tx, "seed_log", "data_sayur_id = ?", m.ID); err != nil {
			return "", err
		} else if n > 0 {
			return "Data sayur tidak dapat dihapus karena masih digunakan pada log benih", nil
		}
		if n, err := countWhere(tx, "plant_health_log", "data_sayur_id = ?", m.ID); err != nil {
			return "", err
		} else if n > 0 {
			return "Data sayur tidak dapat dihapus karena masih digunakan pada log kesehatan tanaman", nil
		}
		if n, err := countWhere(tx, "penjualan_detail_batch", "data_sayur_id = ?", m.ID); err != nil {
			return "", err
		} else if n > 0 {
			return "Data sayur tidak dapat dihapus karena masih digunakan pada detail penjualan", nil
		}
		return "", nil
	},
	describe: func(m *models.DataSayur) string {
		return fmt.Sprintf("%s (tanam %s)", m.JenisSayur, m.TanggalTanam.String())
	},
}

// DataSayurSummary aggregates batches: harvest outcomes, per crop, per area
// and per planting method.
func DataSayurSummary(w http.ResponseWriter, r *http.Request) {
	base := config.DB.Model(&models.DataSayur{})
	base = models.DateRangeFilter(base, r, "tanggal_tanam", "tanggal_mulai", "tanggal_selesai")

	var totals struct {
		TotalBatch   int64   `json:"total_batch"`
		BelumPanen   int64   `json:"belum_panen"`
		PanenSukses  int64   `json:"panen_sukses"`
		GagalPanen   int64   `json:"gagal_panen"`
		TotalBibit   int64   `json:"total_bibit"`
		TotalPanenKg float64 `json:"total_panen_kg"`
	}
	err := base.Session(&gorm.Session{}).
		Select(`COUNT(*) AS total_batch,
			SUM(CASE WHEN status_panen = 'belum_panen' THEN 1 ELSE 0 END) AS belum_panen,
			SUM(CASE WHEN status_panen = 'panen_sukses' THEN 1 ELSE 0 END) AS panen_sukses,
			SUM(CASE WHEN status_panen = 'gagal_panen' THEN 1 ELSE 0 END) AS gagal_panen,
			COALESCE(SUM(jumlah_bibit), 0) AS total_bibit,
			COALESCE(SUM(jumlah_panen_kg), 0) AS total_panen_kg`).
		Scan(&totals).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan data sayur", err)
		return
	}

	var successRate float64
	if done := totals.PanenSukses + totals.GagalPanen; done > 0 {
		successRate = float64(totals.PanenSukses) / float64(done) * 100
	}

	type perJenis struct {
		JenisSayur   string  `json:"jenis_sayur"`
		TotalBatch   int64   `json:"total_batch"`
		TotalPanenKg float64 `json:"total_panen_kg"`
	}
	var perCrop []perJenis
	err = config.DB.Model(&models.DataSayur{}).
		Select(`jenis_sayur, COUNT(*) AS total_batch,
			COALESCE(SUM(jumlah_panen_kg), 0) AS total_panen_kg`).
		Group("jenis_sayur").
		Order("total_batch desc").
		Scan(&perCrop).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan data sayur", err)
		return
	}

	type perArea struct {
		NamaArea     string  `json:"nama_area"`
		TotalBatch   int64   `json:"total_batch"`
		TotalPanenKg float64 `json:"total_panen_kg"`
	}
	var perAreaRows []perArea
	err = config.DB.Table("data_sayur").
		Select(`area_kebun.nama_area, COUNT(data_sayur.id) AS total_batch,
			COALESCE(SUM(data_sayur.jumlah_panen_kg), 0) AS total_panen_kg`).
		Joins("JOIN area_kebun ON area_kebun.id = data_sayur.area_id").
		Group("area_kebun.id, area_kebun.nama_area").
		Order("total_batch desc").
		Scan(&perAreaRows).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan data sayur", err)
		return
	}

	type perMetode struct {
		MetodeTanam string `json:"metode_tanam"`
		TotalBatch  int64  `json:"total_batch"`
	}
	var perMethod []perMetode
	err = config.DB.Model(&models.DataSayur{}).
		Select("COALESCE(metode_tanam, 'tidak diisi') AS metode_tanam, COUNT(*) AS total_batch").
		Group("metode_tanam").
		Order("total_batch desc").
		Scan(&perMethod).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan data sayur", err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"total_batch":          totals.TotalBatch,
		"belum_panen":          totals.BelumPanen,
		"panen_sukses":         totals.PanenSukses,
		"gagal_panen":          totals.GagalPanen,
		"total_bibit":          totals.TotalBibit,
		"total_panen_kg":       totals.TotalPanenKg,
		"tingkat_keberhasilan": successRate,
		"sayur_per_jenis":      perCrop,
		"sayur_per_area":       perAreaRows,
		"metode_tanam_stats":   perMethod,
	})
}
