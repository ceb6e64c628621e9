package models

// PenjualanSayur is one vegetable sale. TotalHarga is computed server-side
// from jumlah_kg and harga_per_kg at write time and stored.
type PenjualanSayur struct {
	Model
	TanggalPenjualan Date    `gorm:"not null;index" json:"tanggal_penjualan"`
	NamaPembeli      string  `gorm:"size:255;not null" json:"nama_pembeli"`
	TipePembeli      string  `gorm:"size:20;default:individu" json:"tipe_pembeli"`
	AlamatPembeli    *string `gorm:"type:text" json:"alamat_pembeli,omitempty"`
	JenisSayur       string  `gorm:"size:100;not null" json:"jenis_sayur"`
	JumlahKg         float64 `gorm:"not null" json:"jumlah_kg"`
	HargaPerKg       float64 `gorm:"not null" json:"harga_per_kg"`
	TotalHarga       float64 `gorm:"not null" json:"total_harga"`
	MetodePembayaran string  `gorm:"size:20;default:tunai" json:"metode_pembayaran"`
	StatusPembayaran string  `gorm:"size:20;default:lunas" json:"status_pembayaran"`
	Keterangan       *string `gorm:"type:text" json:"keterangan,omitempty"`
	UserID           uint    `gorm:"index;not null" json:"user_id"`
	User             *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	DetailBatch []PenjualanDetailBatch `gorm:"foreignKey:PenjualanID" json:"detail_batch,omitempty"`
}

func (PenjualanSayur) TableName() string { return "penjualan_sayur" }

// PenjualanDetailBatch links a sale to the planting batch it was fulfilled
// from. The (penjualan_id, data_sayur_id) pair is unique.
type PenjualanDetailBatch struct {
	Model
	PenjualanID uint            `gorm:"index:idx_penjualan_batch,unique;not null" json:"penjualan_id"`
	Penjualan   *PenjualanSayur `gorm:"foreignKey:PenjualanID" json:"penjualan,omitempty"`
	DataSayurID uint            `gorm:"index:idx_penjualan_batch,unique;not null" json:"data_sayur_id"`
	DataSayur   *DataSayur      `gorm:"foreignKey:DataSayurID" json:"data_sayur,omitempty"`
	QtyKg       float64         `gorm:"not null" json:"qty_kg"`
	Keterangan  *string         `gorm:"type:text" json:"keterangan,omitempty"`
}

func (PenjualanDetailBatch) TableName() string { return "penjualan_detail_batch" }
