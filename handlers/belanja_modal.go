package handlers

import (
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"sbfarm.id/api/config"
	"sbfarm.id/api/models"
)

type pembelianBenihPayload struct {
	NamaBenih    string   `json:"nama_benih" validate:"required,max=100"`
	Varietas     *string  `json:"varietas" validate:"omitempty,max=100"`
	Qty          float64  `json:"qty" validate:"required,gt=0"`
	Unit         string   `json:"unit" validate:"required,oneof=gram biji pak lainnya"`
	HargaPerUnit *float64 `json:"harga_per_unit" validate:"omitempty,gte=0"`
	Keterangan   *string  `json:"keterangan"`
}

type belanjaModalPayload struct {
	TanggalBelanja   string                  `json:"tanggal_belanja" validate:"required,datetime=2006-01-02"`
	Kategori         string                  `json:"kategori" validate:"required,oneof=listrik bensin benih rockwool pupuk lain-lain"`
	Deskripsi        string                  `json:"deskripsi" validate:"required,max=255"`
	Jumlah           float64                 `json:"jumlah" validate:"required,gt=0"`
	Satuan           *string                 `json:"satuan" validate:"omitempty,max=50"`
	NamaToko         *string                 `json:"nama_toko" validate:"omitempty,max=255"`
	AlamatToko       *string                 `json:"alamat_toko"`
	MetodePembayaran string                  `json:"metode_pembayaran" validate:"omitempty,oneof=tunai transfer kredit"`
	BuktiPembayaran  *string                 `json:"bukti_pembayaran" validate:"omitempty,max=255"`
	Keterangan       *string                 `json:"keterangan"`
	PembelianBenih   []pembelianBenihPayload `json:"pembelian_benih" validate:"omitempty,dive"`
}

// BelanjaModalResource serves capital expenditures. Seed purchases may carry
// itemized pembelian_benih rows, written in the same transaction.
var BelanjaModalResource = &resource[models.BelanjaModal, belanjaModalPayload]{
	table:       "belanja_modal",
	label:       "belanja modal",
	preloads:    []string{"User"},
	getPreloads: []string{"User", "PembelianBenih"},
	defaultSort: "tanggal_belanja desc",
	filter: func(q *gorm.DB, r *http.Request) *gorm.DB {
		q = models.DateRangeFilter(q, r, "tanggal_belanja", "tanggal_mulai", "tanggal_selesai")
		q = models.ExactFilter(q, r, "kategori", "kategori")
		return models.ExactFilter(q, r, "metode_pembayaran", "metode_pembayaran")
	},
	check: func(tx *gorm.DB, p *belanjaModalPayload, id uint) error {
		if len(p.PembelianBenih) > 0 && p.Kategori != "benih" {
			return errFieldTaken("pembelian_benih", "hanya untuk kategori benih")
		}
		return nil
	},
	assign: func(m *models.BelanjaModal, p *belanjaModalPayload) {
		m.TanggalBelanja = mustDate(p.TanggalBelanja)
		m.Kategori = p.Kategori
		m.Deskripsi = p.Deskripsi
		m.Jumlah = p.Jumlah
		m.Satuan = optString(p.Satuan)
		m.NamaToko = optString(p.NamaToko)
		m.AlamatToko = optString(p.AlamatToko)
		if p.MetodePembayaran != "" {
			m.MetodePembayaran = p.MetodePembayaran
		}
		m.BuktiPembayaran = optString(p.BuktiPembayaran)
		m.Keterangan = optString(p.Keterangan)
	},
	setUser: func(m *models.BelanjaModal, uid uint) { m.UserID = uid },
	afterSave: func(tx *gorm.DB, m *models.BelanjaModal, p *belanjaModalPayload, created bool) error {
		if created && len(p.PembelianBenih) == 0 {
			return nil
		}
		if !created {
			err := tx.Where("belanja_modal_id = ?", m.ID).Delete(&models.PembelianBenihDetail{}).Error
			if err != nil {
				return err
			}
		}
		for _, d := range p.PembelianBenih {
			row := models.PembelianBenihDetail{
				BelanjaModalID: m.ID,
				NamaBenih:      d.NamaBenih,
				Varietas:       optString(d.Varietas),
				Qty:            d.Qty,
				Unit:           d.Unit,
				HargaPerUnit:   d.HargaPerUnit,
				Keterangan:     optString(d.Keterangan),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	},
	describe: func(m *models.BelanjaModal) string {
		return fmt.Sprintf("%s %s Rp%.0f", m.Kategori, m.Deskripsi, m.Jumlah)
	},
}

// BelanjaModalSummary totals spend per category and payment method over an
// optional date range.
func BelanjaModalSummary(w http.ResponseWriter, r *http.Request) {
	base := config.DB.Model(&models.BelanjaModal{})
	base = models.DateRangeFilter(base, r, "tanggal_belanja", "tanggal_mulai", "tanggal_selesai")

	var totals struct {
		TotalPengeluaran    float64 `json:"total_pengeluaran"`
		TotalTransaksi      int64   `json:"total_transaksi"`
		RataRataPengeluaran float64 `json:"rata_rata_pengeluaran"`
	}
	err := base.Session(&gorm.Session{}).
		Select(`COALESCE(SUM(jumlah), 0) AS total_pengeluaran,
			COUNT(*) AS total_transaksi,
			COALESCE(AVG(jumlah), 0) AS rata_rata_pengeluaran`).
		Scan(&totals).Error
	if err != nil {
		respondFailure(w, "Gagal memuat ringkasan belanja modal", err)
		return
	}

	type perKategori struct {
		Kategori            string  `json:"kategori"`
		TotalPengeluaran    float64 `json:"total_pengeluaran"`
		TotalTransaksi      int64   `json:"total_transaksi"`
		RataRataPengeluaran float64 `json:"rata_rata_pengeluaran"`
	}
	var byKategori []perKategori
	q := config.DB.Model(&models.BelanjaModal{}).
		Select(`kategori, COALESCE(SUM(jumlah), 0) AS total_pengeluaran,
			COUNT(*) AS total_transaksi,
			COALESCE(AVG(jumlah), 0) AS rata_rata_pengeluaran`).
		Group("kategori").
		Order("total_pengeluaran desc")
	q = models.DateRangeFilter(q, r, "tanggal_belanja", "tanggal_mulai", "tanggal_selesai")
	if err := q.Scan(&byKategori).Error; err != nil {
		respondFailure(w, "Gagal memuat ringkasan belanja modal", err)
		return
	}

	type perMetode struct {
		MetodePembayaran string  `json:"metode_pembayaran"`
		TotalPengeluaran float64 `json:"total_pengeluaran"`
		TotalTransaksi   int64   `json:"total_transaksi"`
	}
	var byMetode []perMetode
	q = config.DB.Model(&models.BelanjaModal{}).
		Select(`metode_pembayaran, COALESCE(SUM(jumlah), 0) AS total_pengeluaran,
			COUNT(*) AS total_transaksi`).
		Group("metode_pembayaran").
		Order("total_pengeluaran desc")
	q = models.DateRangeFilter(q, r, "tanggal_belanja", "tanggal_mulai", "tanggal_selesai")
	if err := q.Scan(&byMetode).Error; err != nil {
		respondFailure(w, "Gagal memuat ringkasan belanja modal", err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"total_pengeluaran":                 totals.TotalPengeluaran,
		"total_transaksi":                   totals.TotalTransaksi,
		"rata_rata_pengeluaran":             totals.RataRataPengeluaran,
		"pengeluaran_per_kategori":          byKategori,
		"pengeluaran_per_metode_pembayaran": byMetode,
	})
}

// BelanjaModalKategori answers the fixed category list.
func BelanjaModalKategori(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, models.BelanjaKategori)
}
