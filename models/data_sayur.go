package models

// Harvest statuses for DataSayur.
const (
	StatusBelumPanen  = "belum_panen"
	StatusPanenSukses = "panen_sukses"
	StatusGagalPanen  = "gagal_panen"
)

// DataSayur is one sowing-to-harvest cycle of a crop in an area.
type DataSayur struct {
	Model
	TanggalTanam       Date       `gorm:"not null;index" json:"tanggal_tanam"`
	JenisSayur         string     `gorm:"size:255;not null" json:"jenis_sayur"`
	Varietas           *string    `gorm:"size:255" json:"varietas,omitempty"`
	AreaID             uint       `gorm:"index;not null" json:"area_id"`
	Area               *AreaKebun `gorm:"foreignKey:AreaID" json:"area,omitempty"`
	JumlahBibit        int        `gorm:"not null" json:"jumlah_bibit"`
	MetodeTanam        *string    `gorm:"size:100" json:"metode_tanam,omitempty"`
	JenisMedia         *string    `gorm:"size:100" json:"jenis_media,omitempty"`
	TanggalPanenTarget *Date      `json:"tanggal_panen_target,omitempty"`
	TanggalPanenAktual *Date      `json:"tanggal_panen_aktual,omitempty"`
	StatusPanen        string     `gorm:"size:20;default:belum_panen" json:"status_panen"`
	JumlahPanenKg      *float64   `json:"jumlah_panen_kg,omitempty"`
	PenyebabGagal      *string    `gorm:"size:255" json:"penyebab_gagal,omitempty"`
	Keterangan         *string    `gorm:"type:text" json:"keterangan,omitempty"`
	UserID             uint       `gorm:"index;not null" json:"user_id"`
	User               *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (DataSayur) TableName() string { return "data_sayur" }

// SeedLog records one seed sowing, optionally tied to a planting batch.
type SeedLog struct {
	Model
	TanggalSemai Date       `gorm:"not null;index" json:"tanggal_semai"`
	Hari         *string    `gorm:"size:20" json:"hari,omitempty"`
	NamaBenih    string     `gorm:"size:100;not null" json:"nama_benih"`
	Varietas     *string    `gorm:"size:100" json:"varietas,omitempty"`
	Satuan       string     `gorm:"size:20;not null" json:"satuan"`
	Jumlah       float64    `gorm:"not null" json:"jumlah"`
	SumberBenih  *string    `gorm:"size:255" json:"sumber_benih,omitempty"`
	DataSayurID  *uint      `gorm:"index" json:"data_sayur_id,omitempty"`
	DataSayur    *DataSayur `gorm:"foreignKey:DataSayurID" json:"data_sayur,omitempty"`
	Keterangan   *string    `gorm:"type:text" json:"keterangan,omitempty"`
	UserID       uint       `gorm:"index;not null" json:"user_id"`
	User         *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (SeedLog) TableName() string { return "seed_log" }

// PlantHealthLog records a plant health incident on a batch.
type PlantHealthLog struct {
	Model
	Tanggal                Date       `gorm:"not null;index" json:"tanggal"`
	DataSayurID            uint       `gorm:"index;not null" json:"data_sayur_id"`
	DataSayur              *DataSayur `gorm:"foreignKey:DataSayurID" json:"data_sayur,omitempty"`
	Gejala                 string     `gorm:"size:20;not null" json:"gejala"`
	JumlahTanamanTerdampak int        `gorm:"not null" json:"jumlah_tanaman_terdampak"`
	Tindakan               *string    `gorm:"type:text" json:"tindakan,omitempty"`
	Keterangan             *string    `gorm:"type:text" json:"keterangan,omitempty"`
	UserID                 uint       `gorm:"index;not null" json:"user_id"`
	User                   *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PlantHealthLog) TableName() string { return "plant_health_log" }
