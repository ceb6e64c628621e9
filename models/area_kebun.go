package models

// AreaKebun is a physical garden plot or greenhouse section.
type AreaKebun struct {
	Model
	NamaArea         string   `gorm:"size:100;uniqueIndex;not null" json:"nama_area"`
	Deskripsi        *string  `gorm:"type:text" json:"deskripsi,omitempty"`
	LuasM2           *float64 `json:"luas_m2,omitempty"`
	KapasitasTanaman *int     `json:"kapasitas_tanaman,omitempty"`
	Status           string   `gorm:"size:20;default:aktif" json:"status"`

	NutrisiPupuk []NutrisiPupuk `gorm:"foreignKey:AreaID" json:"nutrisi_pupuk,omitempty"`
	DataSayur    []DataSayur    `gorm:"foreignKey:AreaID" json:"data_sayur,omitempty"`
}

func (AreaKebun) TableName() string { return "area_kebun" }
