package config

import (
	"gorm.io/gorm"

	"sbfarm.id/api/models"
)

var defaultPermissions = []models.Permission{
	{Nama: "manage_users", Deskripsi: "Mengelola data pengguna"},
	{Nama: "manage_areas", Deskripsi: "Mengelola area kebun dan tandon"},
	{Nama: "manage_fertilizers", Deskripsi: "Mengelola data pupuk"},
	{Nama: "manage_sales", Deskripsi: "Mengelola penjualan sayur"},
	{Nama: "manage_expenses", Deskripsi: "Mengelola belanja modal"},
	{Nama: "manage_nutrition", Deskripsi: "Mengelola nutrisi pupuk"},
	{Nama: "manage_vegetables", Deskripsi: "Mengelola data sayur dan perlakuan"},
	{Nama: "view_reports", Deskripsi: "Melihat laporan"},
}

// userPermissions is everything except user management.
var userPermissions = []string{
	"manage_areas", "manage_fertilizers", "manage_sales",
	"manage_expenses", "manage_nutrition", "manage_vegetables", "view_reports",
}

// SeedRoles inserts the default roles and permissions once. Registration
// attaches the "user" role, so it must exist before the first register call.
func SeedRoles(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Role{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		perms := make(map[string]models.Permission, len(defaultPermissions))
		for _, p := range defaultPermissions {
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
			perms[p.Nama] = p
		}

		admin := models.Role{Nama: "admin", Deskripsi: "Administrator dengan akses penuh"}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		for _, p := range perms {
			if err := tx.Model(&admin).Association("Permissions").Append(&p); err != nil {
				return err
			}
		}

		user := models.Role{Nama: "user", Deskripsi: "User biasa dengan akses terbatas"}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		for _, name := range userPermissions {
			p := perms[name]
			if err := tx.Model(&user).Association("Permissions").Append(&p); err != nil {
				return err
			}
		}
		return nil
	})
}
