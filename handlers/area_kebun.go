package handlers

import (
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"sbfarm.id/api/config"
	"sbfarm.id/api/models"
)

type areaPayload struct {
	NamaArea         string   `json:"nama_area" validate:"required,max=100"`
	Deskripsi        *string  `json:"deskripsi"`
	LuasM2           *float64 `json:"luas_m2" validate:"omitempty,gte=0"`
	KapasitasTanaman *int     `json:"kapasitas_tanaman" validate:"omitempty,gte=0"`
	Status           string   `json:"status" validate:"required,oneof=aktif tidak_aktif"`
}

// AreaResource serves the garden area master data.
var AreaResource = &resource[models.AreaKebun, areaPayload]{
	table:       "area_kebun",
	label:       "area kebun",
	defaultSort: "nama_area asc",
	filter: func(q *gorm.DB, r *http.Request) *gorm.DB {
		q = models.ExactFilter(q, r, "status", "status")
		return models.SearchFilter(q, r, "nama_area", "search")
	},
	check: func(tx *gorm.DB, p *areaPayload, id uint) error {
		taken, err := columnTaken(tx, "area_kebun", "nama_area", p.NamaArea, id)
		if err != nil {
			return err
		}
		if taken {
			return errFieldTaken("nama_area", "sudah digunakan")
		}
		return nil
	},
	assign: func(m *models.AreaKebun, p *areaPayload) {
		m.NamaArea = p.NamaArea
		m.Deskripsi = optString(p.Deskripsi)
		m.LuasM2 = p.LuasM2
		m.KapasitasTanaman = p.KapasitasTanaman
		m.Status = p.Status
	},
	inUse: func(tx *gorm.DB, m *models.AreaKebun) (string, error) {
		if n, err := countWhere(tx, "nutrisi_pupuk", "area_id = ?", m.ID); err != nil {
			return "", err
		} else if n > 0 {
			return "Area tidak dapat dihapus karena masih digunakan pada data nutrisi pupuk", nil
		}
		if n, err := countWhere(tx, "data_sayur", "area_id = ?", m.ID); err != nil {
			return "", err
		} else if n > 0 {
			return "Area tidak dapat dihapus karena masih digunakan pada data sayur", nil
		}
		return "", nil
	},
	describe: func(m *models.AreaKebun) string {
		if m.LuasM2 != nil {
			return fmt.Sprintf("%s (%.1f m2)", m.NamaArea, *m.LuasM2)
		}
		return m.NamaArea
	},
}

// AreaSummary aggregates the area master: counts by status, capacity totals
// and utilization per area.
func AreaSummary(w http.ResponseWriter, r *http.Request) {
	var totals struct {
		TotalArea         int64   `json:"total_area"`
		Aktif             int64   `json:"total_area_aktif"`
		TidakAktif        int64   `json:"total_area_tidak_aktif"`
		TotalLuasM2       float64 `json:"total_luas_m2"`
		RataRataLuasM2    float64 `json:"rata_rata_luas_m2"`
		TotalKapasitas    int64   `json:"total_kapasitas_tanaman"`
		RataRataKapasitas float64 `json:"rata_rata_kapasitas_tanaman"`
	}
	err := config.DB.Model(&models.AreaKebun{}).
		Select(`COUNT(*) AS total_area,
			SUM(CASE WHEN status = 'aktif' THEN 1 ELSE 0 END) AS aktif,
			SUM(CASE WHEN status = 'tidak_aktif' THEN 1 ELSE 0 END) AS tidak_aktif,
			COALESCE(SUM(luas_m2), 0) AS total_luas_m2,
			COALESCE(AVG(luas_m2), 0) AS rata_rata_luas_m2,
			COALESCE(SUM(kapasitas_tanaman), 0) AS total_kapasitas,
			COALESCE(AVG(kapasitas_tanaman), 0) AS rata_rata_kapasitas`).
		Scan(&totals).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan area kebun", err)
		return
	}

	var terbesar, terkecil models.AreaKebun
	largest := config.DB.Where("luas_m2 IS NOT NULL").Order("luas_m2 desc").First(&terbesar).Error
	smallest := config.DB.Where("luas_m2 IS NOT NULL").Order("luas_m2 asc").First(&terkecil).Error

	type areaUsage struct {
		NamaArea   string `json:"nama_area"`
		TotalBatch int64  `json:"total_batch"`
	}
	var usage []areaUsage
	err = config.DB.Table("area_kebun").
		Select("area_kebun.nama_area, COUNT(data_sayur.id) AS total_batch").
		Joins("LEFT JOIN data_sayur ON data_sayur.area_id = area_kebun.id").
		Group("area_kebun.id, area_kebun.nama_area").
		Order("total_batch desc").
		Scan(&usage).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan area kebun", err)
		return
	}

	data := map[string]any{
		"total_area":                  totals.TotalArea,
		"total_area_aktif":            totals.Aktif,
		"total_area_tidak_aktif":      totals.TidakAktif,
		"total_luas_m2":               totals.TotalLuasM2,
		"rata_rata_luas_m2":           totals.RataRataLuasM2,
		"total_kapasitas_tanaman":     totals.TotalKapasitas,
		"rata_rata_kapasitas_tanaman": totals.RataRataKapasitas,
		"pemakaian_per_area":          usage,
	}
	if largest == nil {
		data["area_terbesar"] = map[string]any{"nama_area": terbesar.NamaArea, "luas_m2": terbesar.LuasM2}
	}
	if smallest == nil {
		data["area_terkecil"] = map[string]any{"nama_area": terkecil.NamaArea, "luas_m2": terkecil.LuasM2}
	}
	respondData(w, http.StatusOK, data)
}

// ActiveAreas lists areas with status aktif, for the entry-form dropdowns.
func ActiveAreas(w http.ResponseWriter, r *http.Request) {
	var areas []models.AreaKebun
	err := config.DB.Where("status = ?", "aktif").Order("nama_area asc").Find(&areas).Error
	if err != nil {
		respondFailure(w, "Gagal memuat area kebun", err)
		return
	}
	respondData(w, http.StatusOK, areas)
}
