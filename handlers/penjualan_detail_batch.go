package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"sbfarm.id/api/config"
	"sbfarm.id/api/models"
)

type penjualanDetailBatchPayload struct {
	PenjualanID uint    `json:"penjualan_id" validate:"required"`
	DataSayurID uint    `json:"data_sayur_id" validate:"required"`
	QtyKg       float64 `json:"qty_kg" validate:"required,gt=0"`
	Keterangan  *string `json:"keterangan"`
}

// PenjualanDetailBatchResource links sales to the planting batches they were
// fulfilled from. A sale can reference a batch at most once.
var PenjualanDetailBatchResource = &resource[models.PenjualanDetailBatch, penjualanDetailBatchPayload]{
	table:       "penjualan_detail_batch",
	label:       "detail penjualan batch",
	preloads:    []string{"Penjualan", "DataSayur"},
	defaultSort: "id desc",
	filter: func(q *gorm.DB, r *http.Request) *gorm.DB {
		q = models.ExactFilter(q, r, "penjualan_id", "penjualan_id")
		return models.ExactFilter(q, r, "data_sayur_id", "data_sayur_id")
	},
	check: func(tx *gorm.DB, p *penjualanDetailBatchPayload, id uint) error {
		if err := checkExists(tx, "penjualan_sayur", "penjualan_id", p.PenjualanID); err != nil {
			return err
		}
		if err := checkExists(tx, "data_sayur", "data_sayur_id", p.DataSayurID); err != nil {
			return err
		}
		q := tx.Table("penjualan_detail_batch").
			Where("penjualan_id = ? AND data_sayur_id = ?", p.PenjualanID, p.DataSayurID)
		if id != 0 {
			q = q.Where("id <> ?", id)
		}
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return errUnprocessable("Kombinasi penjualan dan batch sayur sudah ada")
		}
		return nil
	},
	assign: func(m *models.PenjualanDetailBatch, p *penjualanDetailBatchPayload) {
		m.PenjualanID = p.PenjualanID
		m.DataSayurID = p.DataSayurID
		m.QtyKg = p.QtyKg
		m.Keterangan = optString(p.Keterangan)
	},
	describe: func(m *models.PenjualanDetailBatch) string {
		return fmt.Sprintf("penjualan_id=%d data_sayur_id=%d qty=%.2f kg", m.PenjualanID, m.DataSayurID, m.QtyKg)
	},
}

// PenjualanDetailBatchSummary totals allocations per crop.
func PenjualanDetailBatchSummary(w http.ResponseWriter, r *http.Request) {
	var totals struct {
		TotalAlokasi int64   `json:"total_alokasi"`
		TotalQtyKg   float64 `json:"total_qty_kg"`
		RataRataQty  float64 `json:"rata_rata_qty"`
	}
	err := config.DB.Model(&models.PenjualanDetailBatch{}).
		Select(`COUNT(*) AS total_alokasi,
			COALESCE(SUM(qty_kg), 0) AS total_qty_kg,
			COALESCE(AVG(qty_kg), 0) AS rata_rata_qty`).
		Scan(&totals).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan detail penjualan batch", err)
		return
	}

	type perJenis struct {
		JenisSayur   string  `json:"jenis_sayur"`
		TotalAlokasi int64   `json:"total_alokasi"`
		TotalQtyKg   float64 `json:"total_qty_kg"`
	}
	var perCrop []perJenis
	err = config.DB.Table("penjualan_detail_batch").
		Select(`data_sayur.jenis_sayur, COUNT(*) AS total_alokasi,
			COALESCE(SUM(penjualan_detail_batch.qty_kg), 0) AS total_qty_kg`).
		Joins("JOIN data_sayur ON data_sayur.id = penjualan_detail_batch.data_sayur_id").
		Group("data_sayur.jenis_sayur").
		Order("total_qty_kg desc").
		Scan(&perCrop).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan detail penjualan batch", err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"total_alokasi":     totals.TotalAlokasi,
		"total_qty_kg":      totals.TotalQtyKg,
		"rata_rata_qty":     totals.RataRataQty,
		"alokasi_per_jenis": perCrop,
	})
}

// PenjualanDetailBatchByPenjualan lists the batch rows of one sale.
func PenjualanDetailBatchByPenjualan(w http.ResponseWriter, r *http.Request) {
	saleID := mux.Vars(r)["id"]
	var rows []models.PenjualanDetailBatch
	err := config.DB.Preload("DataSayur").
		Where("penjualan_id = ?", saleID).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		respondFailure(w, "Gagal memuat detail penjualan batch", err)
		return
	}
	respondData(w, http.StatusOK, rows)
}

// PenjualanDetailBatchByDataSayur lists the sales a batch supplied.
func PenjualanDetailBatchByDataSayur(w http.ResponseWriter, r *http.Request) {
	batchID := mux.Vars(r)["id"]
	var rows []models.PenjualanDetailBatch
	err := config.DB.Preload("Penjualan").
		Where("data_sayur_id = ?", batchID).
		Order("id desc").
		Find(&rows).Error
	if err != nil {
		respondFailure(w, "Gagal memuat detail penjualan batch", err)
		return
	}
	respondData(w, http.StatusOK, rows)
}

// BatchPerformance ranks batches by quantity sold and buckets sales by the
// age of the batch at sale time.
func BatchPerformance(w http.ResponseWriter, r *http.Request) {
	type topBatch struct {
		ID            uint        `json:"id"`
		JenisSayur    string      `json:"jenis_sayur"`
		Varietas      *string     `json:"varietas"`
		TanggalTanam  models.Date `json:"tanggal_tanam"`
		SalesCount    int64       `json:"sales_count"`
		TotalSold     float64     `json:"total_sold"`
		AvgQtyPerSale float64     `json:"avg_qty_per_sale"`
	}
	var top []topBatch
	q := config.DB.Table("penjualan_detail_batch").
		Select(`data_sayur.id, data_sayur.jenis_sayur, data_sayur.varietas,
			data_sayur.tanggal_tanam, COUNT(*) AS sales_count,
			COALESCE(SUM(penjualan_detail_batch.qty_kg), 0) AS total_sold,
			COALESCE(AVG(penjualan_detail_batch.qty_kg), 0) AS avg_qty_per_sale`).
		Joins("JOIN data_sayur ON data_sayur.id = penjualan_detail_batch.data_sayur_id").
		Joins("JOIN penjualan_sayur ON penjualan_sayur.id = penjualan_detail_batch.penjualan_id").
		Group("data_sayur.id, data_sayur.jenis_sayur, data_sayur.varietas, data_sayur.tanggal_tanam").
		Order("total_sold desc").
		Limit(20)
	q = models.DateRangeFilter(q, r, "penjualan_sayur.tanggal_penjualan", "start_date", "end_date")
	if err := q.Scan(&top).Error; err != nil {
		respondFailure(w, "Gagal memuat analisis performa batch", err)
		return
	}

	// Age buckets are computed in Go so the grouping stays portable across
	// database engines.
	type ageRow struct {
		TanggalTanam     models.Date `json:"-"`
		TanggalPenjualan models.Date `json:"-"`
		QtyKg            float64     `json:"-"`
	}
	var rows []ageRow
	q = config.DB.Table("penjualan_detail_batch").
		Select(`data_sayur.tanggal_tanam, penjualan_sayur.tanggal_penjualan,
			penjualan_detail_batch.qty_kg`).
		Joins("JOIN data_sayur ON data_sayur.id = penjualan_detail_batch.data_sayur_id").
		Joins("JOIN penjualan_sayur ON penjualan_sayur.id = penjualan_detail_batch.penjualan_id")
	q = models.DateRangeFilter(q, r, "penjualan_sayur.tanggal_penjualan", "start_date", "end_date")
	if err := q.Scan(&rows).Error; err != nil {
		respondFailure(w, "Gagal memuat analisis performa batch", err)
		return
	}

	type ageBucket struct {
		AgeGroup string  `json:"age_group"`
		Count    int64   `json:"count"`
		TotalQty float64 `json:"total_qty"`
		AvgQty   float64 `json:"avg_qty"`
	}
	order := []string{"0-30 hari", "31-60 hari", "61-90 hari", "90+ hari"}
	buckets := make(map[string]*ageBucket, len(order))
	for _, row := range rows {
		days := int(row.TanggalPenjualan.Time().Sub(row.TanggalTanam.Time()).Hours() / 24)
		var key string
		switch {
		case days <= 30:
			key = order[0]
		case days <= 60:
			key = order[1]
		case days <= 90:
			key = order[2]
		default:
			key = order[3]
		}
		b := buckets[key]
		if b == nil {
			b = &ageBucket{AgeGroup: key}
			buckets[key] = b
		}
		b.Count++
		b.TotalQty += row.QtyKg
	}
	analysis := make([]ageBucket, 0, len(buckets))
	for _, key := range order {
		if b, ok := buckets[key]; ok {
			b.AvgQty = b.TotalQty / float64(b.Count)
			analysis = append(analysis, *b)
		}
	}

	respondMessage(w, http.StatusOK, "Analisis performa batch berhasil diambil", map[string]any{
		"top_batches":        top,
		"batch_age_analysis": analysis,
	})
}
