package handlers

import (
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"sbfarm.id/api/config"
	"sbfarm.id/api/models"
)

type penjualanSayurPayload struct {
	TanggalPenjualan string   `json:"tanggal_penjualan" validate:"required,datetime=2006-01-02"`
	NamaPembeli      string   `json:"nama_pembeli" validate:"required,max=255"`
	TipePembeli      string   `json:"tipe_pembeli" validate:"required,oneof=restoran hotel pasar individu lainnya"`
	AlamatPembeli    *string  `json:"alamat_pembeli"`
	JenisSayur       string   `json:"jenis_sayur" validate:"required,max=100"`
	JumlahKg         *float64 `json:"jumlah_kg" validate:"required,gte=0"`
	HargaPerKg       *float64 `json:"harga_per_kg" validate:"required,gte=0"`
	MetodePembayaran string   `json:"metode_pembayaran" validate:"omitempty,oneof=tunai transfer kredit"`
	StatusPembayaran string   `json:"status_pembayaran" validate:"omitempty,oneof=lunas belum_lunas cicilan"`
	Keterangan       *string  `json:"keterangan"`
}

// PenjualanSayurResource serves vegetable sales. total_harga is always
// recomputed from quantity and unit price; client-supplied totals are ignored.
var PenjualanSayurResource = &resource[models.PenjualanSayur, penjualanSayurPayload]{
	table:       "penjualan_sayur",
	label:       "penjualan sayur",
	preloads:    []string{"User"},
	getPreloads: []string{"User", "DetailBatch", "DetailBatch.DataSayur"},
	defaultSort: "tanggal_penjualan desc",
	filter: func(q *gorm.DB, r *http.Request) *gorm.DB {
		q = models.DateRangeFilter(q, r, "tanggal_penjualan", "tanggal_mulai", "tanggal_selesai")
		q = models.ExactFilter(q, r, "tipe_pembeli", "tipe_pembeli")
		q = models.SearchFilter(q, r, "jenis_sayur", "jenis_sayur")
		return models.ExactFilter(q, r, "status_pembayaran", "status_pembayaran")
	},
	assign: func(m *models.PenjualanSayur, p *penjualanSayurPayload) {
		m.TanggalPenjualan = mustDate(p.TanggalPenjualan)
		m.NamaPembeli = p.NamaPembeli
		m.TipePembeli = p.TipePembeli
		m.AlamatPembeli = optString(p.AlamatPembeli)
		m.JenisSayur = p.JenisSayur
		m.JumlahKg = *p.JumlahKg
		m.HargaPerKg = *p.HargaPerKg
		m.TotalHarga = *p.JumlahKg * *p.HargaPerKg
		if p.MetodePembayaran != "" {
			m.MetodePembayaran = p.MetodePembayaran
		}
		if p.StatusPembayaran != "" {
			m.StatusPembayaran = p.StatusPembayaran
		}
		m.Keterangan = optString(p.Keterangan)
	},
	setUser: func(m *models.PenjualanSayur, uid uint) { m.UserID = uid },
	describe: func(m *models.PenjualanSayur) string {
		return fmt.Sprintf("%s %.2f kg ke %s", m.JenisSayur, m.JumlahKg, m.NamaPembeli)
	},
}

// PenjualanSayurSummary totals revenue and volume, broken down per crop and
// buyer type, over an optional date range.
func PenjualanSayurSummary(w http.ResponseWriter, r *http.Request) {
	base := config.DB.Model(&models.PenjualanSayur{})
	base = models.DateRangeFilter(base, r, "tanggal_penjualan", "tanggal_mulai", "tanggal_selesai")

	var totals struct {
		TotalPenjualan     float64 `json:"total_penjualan"`
		TotalKgTerjual     float64 `json:"total_kg_terjual"`
		TotalTransaksi     int64   `json:"total_transaksi"`
		RataRataHargaPerKg float64 `json:"rata_rata_harga_per_kg"`
	}
	err := base.Session(&gorm.Session{}).
		Select(`COALESCE(SUM(total_harga), 0) AS total_penjualan,
			COALESCE(SUM(jumlah_kg), 0) AS total_kg_terjual,
			COUNT(*) AS total_transaksi,
			COALESCE(AVG(harga_per_kg), 0) AS rata_rata_harga_per_kg`).
		Scan(&totals).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan penjualan sayur", err)
		return
	}

	type perJenis struct {
		JenisSayur      string  `json:"jenis_sayur"`
		TotalKg         float64 `json:"total_kg"`
		TotalPendapatan float64 `json:"total_pendapatan"`
		TotalTransaksi  int64   `json:"total_transaksi"`
	}
	var perCrop []perJenis
	q := config.DB.Model(&models.PenjualanSayur{}).
		Select(`jenis_sayur, COALESCE(SUM(jumlah_kg), 0) AS total_kg,
			COALESCE(SUM(total_harga), 0) AS total_pendapatan,
			COUNT(*) AS total_transaksi`).
		Group("jenis_sayur").
		Order("total_pendapatan desc")
	q = models.DateRangeFilter(q, r, "tanggal_penjualan", "tanggal_mulai", "tanggal_selesai")
	if err := q.Scan(&perCrop).Error; err != nil {
		respondFailure(w, "Gagal memuat ringkasan penjualan sayur", err)
		return
	}

	type perTipe struct {
		TipePembeli     string  `json:"tipe_pembeli"`
		TotalPendapatan float64 `json:"total_pendapatan"`
		TotalTransaksi  int64   `json:"total_transaksi"`
	}
	var perBuyer []perTipe
	q = config.DB.Model(&models.PenjualanSayur{}).
		Select(`tipe_pembeli, COALESCE(SUM(total_harga), 0) AS total_pendapatan,
			COUNT(*) AS total_transaksi`).
		Group("tipe_pembeli").
		Order("total_pendapatan desc")
	q = models.DateRangeFilter(q, r, "tanggal_penjualan", "tanggal_mulai", "tanggal_selesai")
	if err := q.Scan(&perBuyer).Error; err != nil {
		respondFailure(w, "Gagal memuat ringkasan penjualan sayur", err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"total_penjualan":            totals.TotalPenjualan,
		"total_kg_terjual":           totals.TotalKgTerjual,
		"total_transaksi":            totals.TotalTransaksi,
		"rata_rata_harga_per_kg":     totals.RataRataHargaPerKg,
		"penjualan_per_jenis":        perCrop,
		"penjualan_per_tipe_pembeli": perBuyer,
	})
}
