package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"sbfarm.id/api/config"
	"sbfarm.id/api/models"
)

// ExportPenjualanSayur streams the filtered sales listing as an .xlsx file.
func ExportPenjualanSayur(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Model(&models.PenjualanSayur{}).Order("tanggal_penjualan desc")
	q = models.DateRangeFilter(q, r, "tanggal_penjualan", "tanggal_mulai", "tanggal_selesai")
	q = models.ExactFilter(q, r, "tipe_pembeli", "tipe_pembeli")
	q = models.ExactFilter(q, r, "status_pembayaran", "status_pembayaran")

	var rows []models.PenjualanSayur
	if err := q.Find(&rows).Error; err != nil {
		respondFailure(w, "Gagal memuat data penjualan sayur", err)
		return
	}

	headers := []string{
		"Tanggal", "Nama Pembeli", "Tipe Pembeli", "Jenis Sayur",
		"Jumlah (kg)", "Harga per kg", "Total Harga", "Metode Pembayaran", "Status Pembayaran",
	}
	writeWorkbook(w, "Penjualan Sayur", "penjualan_sayur", headers, len(rows), func(f *excelize.File, sheet string, i int, rowNum int) {
		row := rows[i]
		values := []any{
			row.TanggalPenjualan.String(), row.NamaPembeli, row.TipePembeli, row.JenisSayur,
			row.JumlahKg, row.HargaPerKg, row.TotalHarga, row.MetodePembayaran, row.StatusPembayaran,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			f.SetCellValue(sheet, cell, v)
		}
	})
}

// ExportBelanjaModal streams the filtered expense listing as an .xlsx file.
func ExportBelanjaModal(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Model(&models.BelanjaModal{}).Order("tanggal_belanja desc")
	q = models.DateRangeFilter(q, r, "tanggal_belanja", "tanggal_mulai", "tanggal_selesai")
	q = models.ExactFilter(q, r, "kategori", "kategori")
	q = models.ExactFilter(q, r, "metode_pembayaran", "metode_pembayaran")

	var rows []models.BelanjaModal
	if err := q.Find(&rows).Error; err != nil {
		respondFailure(w, "Gagal memuat data belanja modal", err)
		return
	}

	headers := []string{
		"Tanggal", "Kategori", "Deskripsi", "Jumlah", "Satuan",
		"Nama Toko", "Metode Pembayaran",
	}
	writeWorkbook(w, "Belanja Modal", "belanja_modal", headers, len(rows), func(f *excelize.File, sheet string, i int, rowNum int) {
		row := rows[i]
		satuan := ""
		if row.Satuan != nil {
			satuan = *row.Satuan
		}
		toko := ""
		if row.NamaToko != nil {
			toko = *row.NamaToko
		}
		values := []any{
			row.TanggalBelanja.String(), row.Kategori, row.Deskripsi, row.Jumlah,
			satuan, toko, row.MetodePembayaran,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			f.SetCellValue(sheet, cell, v)
		}
	})
}

// writeWorkbook builds a single-sheet workbook with a styled header row and
// sends it as an attachment.
func writeWorkbook(w http.ResponseWriter, title, filePrefix string, headers []string, rowCount int, fill func(f *excelize.File, sheet string, i int, rowNum int)) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	f.SetSheetName(sheet, title)
	sheet = title

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
		name, _ := excelize.ColumnNumberToName(col + 1)
		f.SetColWidth(sheet, name, name, 20)
	}
	for i := 0; i < rowCount; i++ {
		fill(f, sheet, i, i+2)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Error().Err(err).Str("export", filePrefix).Msg("workbook write failed")
		respondFailure(w, "Gagal membuat file export", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.xlsx", filePrefix, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
