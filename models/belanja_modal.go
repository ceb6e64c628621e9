package models

// BelanjaKategori lists the closed set of expense categories.
var BelanjaKategori = []string{"listrik", "bensin", "benih", "rockwool", "pupuk", "lain-lain"}

// BelanjaModal is a capital expenditure. Seed purchases carry
// PembelianBenihDetail children created in the same transaction.
type BelanjaModal struct {
	Model
	TanggalBelanja   Date    `gorm:"not null;index" json:"tanggal_belanja"`
	Kategori         string  `gorm:"size:20;not null" json:"kategori"`
	Deskripsi        string  `gorm:"size:255;not null" json:"deskripsi"`
	Jumlah           float64 `gorm:"not null" json:"jumlah"`
	Satuan           *string `gorm:"size:50" json:"satuan,omitempty"`
	NamaToko         *string `gorm:"size:255" json:"nama_toko,omitempty"`
	AlamatToko       *string `gorm:"type:text" json:"alamat_toko,omitempty"`
	MetodePembayaran string  `gorm:"size:20;default:tunai" json:"metode_pembayaran"`
	BuktiPembayaran  *string `gorm:"size:255" json:"bukti_pembayaran,omitempty"`
	Keterangan       *string `gorm:"type:text" json:"keterangan,omitempty"`
	UserID           uint    `gorm:"index;not null" json:"user_id"`
	User             *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	PembelianBenih []PembelianBenihDetail `gorm:"foreignKey:BelanjaModalID" json:"pembelian_benih,omitempty"`
}

func (BelanjaModal) TableName() string { return "belanja_modal" }

// PembelianBenihDetail itemizes the seeds bought under one expense.
type PembelianBenihDetail struct {
	Model
	BelanjaModalID uint          `gorm:"index;not null" json:"belanja_modal_id"`
	BelanjaModal   *BelanjaModal `gorm:"foreignKey:BelanjaModalID" json:"belanja_modal,omitempty"`
	NamaBenih      string        `gorm:"size:100;not null" json:"nama_benih"`
	Varietas       *string       `gorm:"size:100" json:"varietas,omitempty"`
	Qty            float64       `gorm:"not null" json:"qty"`
	Unit           string        `gorm:"size:20;not null" json:"unit"`
	HargaPerUnit   *float64      `json:"harga_per_unit,omitempty"`
	Keterangan     *string       `gorm:"type:text" json:"keterangan,omitempty"`
}

func (PembelianBenihDetail) TableName() string { return "pembelian_benih_detail" }
