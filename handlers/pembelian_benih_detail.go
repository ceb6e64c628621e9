package handlers

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"sbfarm.id/api/config"
	"sbfarm.id/api/models"
)

type pembelianBenihDetailPayload struct {
	BelanjaModalID uint     `json:"belanja_modal_id" validate:"required"`
	NamaBenih      string   `json:"nama_benih" validate:"required,max=100"`
	Varietas       *string  `json:"varietas" validate:"omitempty,max=100"`
	Qty            float64  `json:"qty" validate:"required,gt=0"`
	Unit           string   `json:"unit" validate:"required,oneof=gram biji pak lainnya"`
	HargaPerUnit   *float64 `json:"harga_per_unit" validate:"omitempty,gte=0"`
	Keterangan     *string  `json:"keterangan"`
}

// PembelianBenihDetailResource maintains individual seed purchase lines.
var PembelianBenihDetailResource = &resource[models.PembelianBenihDetail, pembelianBenihDetailPayload]{
	table:       "pembelian_benih_detail",
	label:       "pembelian benih",
	preloads:    []string{"BelanjaModal"},
	defaultSort: "id desc",
	filter: func(q *gorm.DB, r *http.Request) *gorm.DB {
		q = models.ExactFilter(q, r, "belanja_modal_id", "belanja_modal_id")
		q = models.SearchFilter(q, r, "nama_benih", "nama_benih")
		return models.ExactFilter(q, r, "unit", "unit")
	},
	check: func(tx *gorm.DB, p *pembelianBenihDetailPayload, id uint) error {
		return checkExists(tx, "belanja_modal", "belanja_modal_id", p.BelanjaModalID)
	},
	assign: func(m *models.PembelianBenihDetail, p *pembelianBenihDetailPayload) {
		m.BelanjaModalID = p.BelanjaModalID
		m.NamaBenih = p.NamaBenih
		m.Varietas = optString(p.Varietas)
		m.Qty = p.Qty
		m.Unit = p.Unit
		m.HargaPerUnit = p.HargaPerUnit
		m.Keterangan = optString(p.Keterangan)
	},
	describe: func(m *models.PembelianBenihDetail) string {
		return fmt.Sprintf("%s %.2f %s", m.NamaBenih, m.Qty, m.Unit)
	},
}

// PembelianBenihDetailSummary totals purchases per unit and per seed name.
func PembelianBenihDetailSummary(w http.ResponseWriter, r *http.Request) {
	var totals struct {
		TotalPembelian int64   `json:"total_pembelian"`
		TotalNilai     float64 `json:"total_nilai"`
	}
	err := config.DB.Model(&models.PembelianBenihDetail{}).
		Select(`COUNT(*) AS total_pembelian,
			COALESCE(SUM(qty * COALESCE(harga_per_unit, 0)), 0) AS total_nilai`).
		Scan(&totals).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan pembelian benih", err)
		return
	}

	type perUnit struct {
		Unit           string  `json:"unit"`
		TotalQty       float64 `json:"total_qty"`
		TotalPembelian int64   `json:"total_pembelian"`
	}
	var byUnit []perUnit
	err = config.DB.Model(&models.PembelianBenihDetail{}).
		Select("unit, COALESCE(SUM(qty), 0) AS total_qty, COUNT(*) AS total_pembelian").
		Group("unit").
		Order("unit asc").
		Scan(&byUnit).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan pembelian benih", err)
		return
	}

	type perBenih struct {
		NamaBenih      string  `json:"nama_benih"`
		TotalQty       float64 `json:"total_qty"`
		TotalPembelian int64   `json:"total_pembelian"`
		TotalNilai     float64 `json:"total_nilai"`
	}
	var byBenih []perBenih
	err = config.DB.Model(&models.PembelianBenihDetail{}).
		Select(`nama_benih, COALESCE(SUM(qty), 0) AS total_qty,
			COUNT(*) AS total_pembelian,
			COALESCE(SUM(qty * COALESCE(harga_per_unit, 0)), 0) AS total_nilai`).
		Group("nama_benih").
		Order("total_nilai desc").
		Scan(&byBenih).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan pembelian benih", err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"total_pembelian":     totals.TotalPembelian,
		"total_nilai":         totals.TotalNilai,
		"pembelian_per_unit":  byUnit,
		"pembelian_per_benih": byBenih,
	})
}

// PembelianBenihDetailByBelanjaModal lists the seed lines of one expense.
func PembelianBenihDetailByBelanjaModal(w http.ResponseWriter, r *http.Request) {
	expenseID := mux.Vars(r)["id"]
	var rows []models.PembelianBenihDetail
	err := config.DB.Where("belanja_modal_id = ?", expenseID).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		respondFailure(w, "Gagal memuat pembelian benih", err)
		return
	}
	respondData(w, http.StatusOK, rows)
}

// SeedPriceAnalysis answers monthly price trends plus a per-seed price
// comparison. Month bucketing happens in Go to stay portable across engines.
func SeedPriceAnalysis(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Model(&models.PembelianBenihDetail{}).
		Where("harga_per_unit IS NOT NULL")
	q = models.ExactFilter(q, r, "nama_benih", "nama_benih")
	q = models.ExactFilter(q, r, "unit", "unit")

	var rows []models.PembelianBenihDetail
	if err := q.Order("created_at desc").Find(&rows).Error; err != nil {
		respondFailure(w, "Gagal memuat analisis harga", err)
		return
	}

	type trend struct {
		Year     int     `json:"year"`
		Month    int     `json:"month"`
		AvgPrice float64 `json:"avg_price"`
		MinPrice float64 `json:"min_price"`
		MaxPrice float64 `json:"max_price"`
		Count    int64   `json:"count"`
		sum      float64
	}
	byMonth := make(map[[2]int]*trend)
	for _, row := range rows {
		key := [2]int{row.CreatedAt.Year(), int(row.CreatedAt.Month())}
		t := byMonth[key]
		price := *row.HargaPerUnit
		if t == nil {
			t = &trend{Year: key[0], Month: key[1], MinPrice: price, MaxPrice: price}
			byMonth[key] = t
		}
		if price < t.MinPrice {
			t.MinPrice = price
		}
		if price > t.MaxPrice {
			t.MaxPrice = price
		}
		t.sum += price
		t.Count++
	}
	trends := make([]trend, 0, len(byMonth))
	for _, t := range byMonth {
		t.AvgPrice = t.sum / float64(t.Count)
		trends = append(trends, *t)
	}
	sort.Slice(trends, func(i, j int) bool {
		if trends[i].Year != trends[j].Year {
			return trends[i].Year > trends[j].Year
		}
		return trends[i].Month > trends[j].Month
	})
	if len(trends) > 12 {
		trends = trends[:12]
	}

	type comparison struct {
		NamaBenih     string  `json:"nama_benih"`
		Unit          string  `json:"unit"`
		AvgPrice      float64 `json:"avg_price"`
		MinPrice      float64 `json:"min_price"`
		MaxPrice      float64 `json:"max_price"`
		PurchaseCount int64   `json:"purchase_count"`
	}
	var priceComparison []comparison
	err := config.DB.Model(&models.PembelianBenihDetail{}).
		Select(`nama_benih, unit, COALESCE(AVG(harga_per_unit), 0) AS avg_price,
			COALESCE(MIN(harga_per_unit), 0) AS min_price,
			COALESCE(MAX(harga_per_unit), 0) AS max_price,
			COUNT(*) AS purchase_count`).
		Where("harga_per_unit IS NOT NULL").
		Group("nama_benih, unit").
		Order("avg_price desc").
		Limit(20).
		Scan(&priceComparison).Error
	if err != nil {
		respondFailure(w, "Gagal memuat analisis harga", err)
		return
	}

	respondMessage(w, http.StatusOK, "Analisis harga berhasil diambil", map[string]any{
		"price_trends":     trends,
		"price_comparison": priceComparison,
	})
}
