package models

// JenisPupuk is a fertilizer type from the master catalog.
type JenisPupuk struct {
	Model
	NamaPupuk      string   `gorm:"size:255;uniqueIndex;not null" json:"nama_pupuk"`
	Deskripsi      *string  `gorm:"type:text" json:"deskripsi,omitempty"`
	Satuan         *string  `gorm:"size:50" json:"satuan,omitempty"`
	HargaPerSatuan *float64 `json:"harga_per_satuan,omitempty"`
	Status         string   `gorm:"size:20;default:aktif" json:"status"`

	PencatatanPupuk []PencatatanPupuk `gorm:"foreignKey:JenisPupukID" json:"pencatatan_pupuk,omitempty"`
}

func (JenisPupuk) TableName() string { return "jenis_pupuk" }

// PencatatanPupuk records one fertilizer usage.
type PencatatanPupuk struct {
	Model
	Tanggal      Date        `gorm:"not null;index" json:"tanggal"`
	JenisPupukID uint        `gorm:"index;not null" json:"jenis_pupuk_id"`
	JenisPupuk   *JenisPupuk `gorm:"foreignKey:JenisPupukID" json:"jenis_pupuk,omitempty"`
	JumlahPupuk  float64     `gorm:"not null" json:"jumlah_pupuk"`
	Satuan       *string     `gorm:"size:50" json:"satuan,omitempty"`
	Keterangan   *string     `gorm:"type:text" json:"keterangan,omitempty"`
	UserID       uint        `gorm:"index;not null" json:"user_id"`
	User         *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PencatatanPupuk) TableName() string { return "pencatatan_pupuk" }
