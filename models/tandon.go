package models

// Tandon is a water reservoir supplying one area.
type Tandon struct {
	Model
	AreaID         uint       `gorm:"index;not null" json:"area_id"`
	Area           *AreaKebun `gorm:"foreignKey:AreaID" json:"area,omitempty"`
	KodeTandon     string     `gorm:"size:50;uniqueIndex;not null" json:"kode_tandon"`
	NamaTandon     *string    `gorm:"size:100" json:"nama_tandon,omitempty"`
	KapasitasLiter *float64   `json:"kapasitas_liter,omitempty"`
	Status         string     `gorm:"size:20;default:aktif" json:"status"`
	Keterangan     *string    `gorm:"type:text" json:"keterangan,omitempty"`
}

func (Tandon) TableName() string { return "tandon" }
