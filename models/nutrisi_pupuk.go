package models

// NutrisiPupuk is one nutrient-mix session for an area. When the mix was
// measured per tank, HasDetail is true and Details carries one row per tandon.
type NutrisiPupuk struct {
	Model
	TanggalPencatatan Date       `gorm:"not null;index" json:"tanggal_pencatatan"`
	AreaID            uint       `gorm:"index;not null" json:"area_id"`
	Area              *AreaKebun `gorm:"foreignKey:AreaID" json:"area,omitempty"`
	JumlahTandonAir   *float64   `json:"jumlah_tandon_air,omitempty"`
	JumlahPupukML     *float64   `gorm:"column:jumlah_pupuk_ml" json:"jumlah_pupuk_ml,omitempty"`
	JumlahAirLiter    *float64   `json:"jumlah_air_liter,omitempty"`
	PPMSebelum        *float64   `gorm:"column:ppm_sebelum" json:"ppm_sebelum,omitempty"`
	PPMSesudah        *float64   `gorm:"column:ppm_sesudah" json:"ppm_sesudah,omitempty"`
	PHSebelum         *float64   `gorm:"column:ph_sebelum" json:"ph_sebelum,omitempty"`
	PHSesudah         *float64   `gorm:"column:ph_sesudah" json:"ph_sesudah,omitempty"`
	SuhuAir           *float64   `json:"suhu_air,omitempty"`
	KondisiCuaca      *string    `gorm:"size:100" json:"kondisi_cuaca,omitempty"`
	Keterangan        *string    `gorm:"type:text" json:"keterangan,omitempty"`
	HasDetail         bool       `gorm:"default:false" json:"has_detail"`
	UserID            uint       `gorm:"index;not null" json:"user_id"`
	User              *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Details []NutrisiPupukDetail `gorm:"foreignKey:NutrisiPupukID" json:"details,omitempty"`
}

func (NutrisiPupuk) TableName() string { return "nutrisi_pupuk" }

// NutrisiPupukDetail is the per-tank breakdown of a nutrient mix.
type NutrisiPupukDetail struct {
	Model
	NutrisiPupukID    uint          `gorm:"index;not null" json:"nutrisi_pupuk_id"`
	NutrisiPupuk      *NutrisiPupuk `gorm:"foreignKey:NutrisiPupukID" json:"nutrisi_pupuk,omitempty"`
	TandonID          uint          `gorm:"index;not null" json:"tandon_id"`
	Tandon            *Tandon       `gorm:"foreignKey:TandonID" json:"tandon,omitempty"`
	PPM               *float64      `gorm:"column:ppm" json:"ppm,omitempty"`
	NutrisiDitambahML *float64      `gorm:"column:nutrisi_ditambah_ml" json:"nutrisi_ditambah_ml,omitempty"`
	AirDitambahLiter  *float64      `json:"air_ditambah_liter,omitempty"`
	PH                *float64      `gorm:"column:ph" json:"ph,omitempty"`
	SuhuAir           *float64      `json:"suhu_air,omitempty"`
	Keterangan        *string       `gorm:"type:text" json:"keterangan,omitempty"`
}

func (NutrisiPupukDetail) TableName() string { return "nutrisi_pupuk_detail" }
