package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"sbfarm.id/api/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250301_create_auth_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Role{}, &models.Permission{},
					&models.ActivityLog{})
			},
		},
		{
			ID: "20250301_create_master_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.AreaKebun{}, &models.Tandon{},
					&models.JenisPupuk{}, &models.PerlakuanMaster{})
			},
		},
		{
			ID: "20250301_create_recording_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.PencatatanPupuk{}, &models.NutrisiPupuk{},
					&models.NutrisiPupukDetail{}, &models.DataSayur{}, &models.SeedLog{},
					&models.PlantHealthLog{}, &models.JadwalPerlakuan{})
			},
		},
		{
			ID: "20250301_create_sales_expense_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.PenjualanSayur{}, &models.PenjualanDetailBatch{},
					&models.BelanjaModal{}, &models.PembelianBenihDetail{})
			},
		},
	})
	return m.Migrate()
}
