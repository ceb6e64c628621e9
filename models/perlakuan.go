package models

// PerlakuanMaster is the treatment catalog (fertilizing, spraying, ...).
type PerlakuanMaster struct {
	Model
	NamaPerlakuan string  `gorm:"size:100;uniqueIndex;not null" json:"nama_perlakuan"`
	Tipe          string  `gorm:"size:20;not null" json:"tipe"`
	Deskripsi     *string `gorm:"type:text" json:"deskripsi,omitempty"`
	SatuanDefault *string `gorm:"size:20" json:"satuan_default,omitempty"`

	JadwalPerlakuan []JadwalPerlakuan `gorm:"foreignKey:PerlakuanID" json:"jadwal_perlakuan,omitempty"`
}

func (PerlakuanMaster) TableName() string { return "perlakuan_master" }

// JadwalPerlakuan is a dated treatment application, optionally scoped to an
// area and/or tank.
type JadwalPerlakuan struct {
	Model
	Tanggal         Date             `gorm:"not null;index" json:"tanggal"`
	MingguKe        *int             `json:"minggu_ke,omitempty"`
	HariDalamMinggu *string          `gorm:"size:10" json:"hari_dalam_minggu,omitempty"`
	AreaID          *uint            `gorm:"index" json:"area_id,omitempty"`
	Area            *AreaKebun       `gorm:"foreignKey:AreaID" json:"area,omitempty"`
	TandonID        *uint            `gorm:"index" json:"tandon_id,omitempty"`
	Tandon          *Tandon          `gorm:"foreignKey:TandonID" json:"tandon,omitempty"`
	PerlakuanID     uint             `gorm:"index;not null" json:"perlakuan_id"`
	Perlakuan       *PerlakuanMaster `gorm:"foreignKey:PerlakuanID" json:"perlakuan,omitempty"`
	Dosis           *float64         `json:"dosis,omitempty"`
	Satuan          *string          `gorm:"size:20" json:"satuan,omitempty"`
	Keterangan      *string          `gorm:"type:text" json:"keterangan,omitempty"`
	UserID          uint             `gorm:"index;not null" json:"user_id"`
	User            *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (JadwalPerlakuan) TableName() string { return "jadwal_perlakuan" }
