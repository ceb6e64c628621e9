package models

import "time"

// User is an account that can log in and own farm records.
type User struct {
	Model
	Username     string     `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password     string     `gorm:"size:255;not null" json:"-"`
	Nama         string     `gorm:"size:255;not null" json:"nama"`
	Telepon      *string    `gorm:"size:20" json:"telepon,omitempty"`
	Alamat       *string    `gorm:"type:text" json:"alamat,omitempty"`
	TanggalLahir *Date      `json:"tanggal_lahir,omitempty"`
	JenisKelamin string     `gorm:"size:1;default:L" json:"jenis_kelamin"`
	Status       string     `gorm:"size:20;default:aktif" json:"status"`
	LastLogin    *time.Time `json:"last_login,omitempty"`

	Roles []Role `gorm:"many2many:user_roles" json:"roles,omitempty"`
}

func (User) TableName() string { return "users" }

// HasPermission reports whether any of the user's roles carries the named
// permission. Roles and their permissions must be preloaded.
func (u *User) HasPermission(name string) bool {
	for _, role := range u.Roles {
		for _, perm := range role.Permissions {
			if perm.Nama == name {
				return true
			}
		}
	}
	return false
}

// PermissionNames flattens the user's role permissions into a unique list.
func (u *User) PermissionNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, role := range u.Roles {
		for _, perm := range role.Permissions {
			if !seen[perm.Nama] {
				seen[perm.Nama] = true
				names = append(names, perm.Nama)
			}
		}
	}
	return names
}

// Role groups permissions; users get roles through user_roles.
type Role struct {
	Model
	Nama      string `gorm:"size:255;uniqueIndex;not null" json:"nama"`
	Deskripsi string `gorm:"type:text" json:"deskripsi,omitempty"`

	Permissions []Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`
}

func (Role) TableName() string { return "roles" }

// Permission is a named capability attached to roles.
type Permission struct {
	Model
	Nama      string `gorm:"size:255;uniqueIndex;not null" json:"nama"`
	Deskripsi string `gorm:"type:text" json:"deskripsi,omitempty"`
}

func (Permission) TableName() string { return "permissions" }
