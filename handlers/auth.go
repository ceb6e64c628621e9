package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sbfarm.id/api/config"
	"sbfarm.id/api/middleware"
	"sbfarm.id/api/models"
)

type registerPayload struct {
	Username     string  `json:"username" validate:"required,min=3,max=50"`
	Email        string  `json:"email" validate:"required,email,max=255"`
	Password     string  `json:"password" validate:"required,min=6"`
	Nama         string  `json:"nama" validate:"required,max=255"`
	Telepon      *string `json:"telepon" validate:"omitempty,max=20"`
	Alamat       *string `json:"alamat"`
	TanggalLahir *string `json:"tanggal_lahir" validate:"omitempty,datetime=2006-01-02"`
	JenisKelamin string  `json:"jenis_kelamin" validate:"omitempty,oneof=L P"`
}

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates an account, grants it the default role and logs it in the
// audit trail.
func Register(w http.ResponseWriter, r *http.Request) {
	var p registerPayload
	if !decodeBody(w, r, &p) {
		return
	}
	if errs := validateStruct(&p); errs != nil {
		respondValidation(w, errs)
		return
	}

	var user models.User
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if taken, err := columnTaken(tx, "users", "username", p.Username, 0); err != nil {
			return err
		} else if taken {
			return errFieldTaken("username", "sudah digunakan")
		}
		if taken, err := columnTaken(tx, "users", "email", p.Email, 0); err != nil {
			return err
		} else if taken {
			return errFieldTaken("email", "sudah digunakan")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user = models.User{
			Username:     p.Username,
			Email:        p.Email,
			Password:     string(hash),
			Nama:         p.Nama,
			Telepon:      optString(p.Telepon),
			Alamat:       optString(p.Alamat),
			TanggalLahir: optDate(p.TanggalLahir),
			JenisKelamin: p.JenisKelamin,
			Status:       "aktif",
		}
		if user.JenisKelamin == "" {
			user.JenisKelamin = "L"
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		var role models.Role
		if err := tx.First(&role, "nama = ?", "user").Error; err == nil {
			if err := tx.Model(&user).Association("Roles").Append(&role); err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		entry := models.ActivityLog{
			UserID:    &user.ID,
			Action:    "register",
			RefTable:  "users",
			RecordID:  &user.ID,
			Details:   fmt.Sprintf("Registered user: %s", user.Username),
			IPAddress: middleware.ClientIP(r),
			UserAgent: r.UserAgent(),
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		var reqErr *requestError
		if errors.As(err, &reqErr) {
			respondRequestError(w, reqErr)
			return
		}
		log.Error().Err(err).Msg("register failed")
		respondFailure(w, "Gagal mendaftarkan user", err)
		return
	}

	respondMessage(w, http.StatusCreated, "Registrasi berhasil", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
		"nama":     user.Nama,
	})
}

// Login authenticates an active account and hands out a bearer token.
func Login(w http.ResponseWriter, r *http.Request) {
	var p loginPayload
	if !decodeBody(w, r, &p) {
		return
	}
	if errs := validateStruct(&p); errs != nil {
		respondValidation(w, errs)
		return
	}

	var user models.User
	err := config.DB.Preload("Roles").
		First(&user, "username = ? AND status = ?", p.Username, "aktif").Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusUnauthorized, "Username atau password salah")
			return
		}
		respondFailure(w, "Gagal memproses login", err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(p.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "Username atau password salah")
		return
	}

	token, expiresAt, err := middleware.GenerateToken(user.ID)
	if err != nil {
		respondFailure(w, "Gagal membuat token", err)
		return
	}

	now := time.Now()
	if err := config.DB.Model(&user).Update("last_login", now).Error; err != nil {
		log.Warn().Err(err).Uint("user_id", user.ID).Msg("last_login update failed")
	}

	entry := models.ActivityLog{
		UserID:    &user.ID,
		Action:    "login",
		RefTable:  "users",
		RecordID:  &user.ID,
		Details:   fmt.Sprintf("User logged in: %s", user.Username),
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		log.Warn().Err(err).Msg("login audit write failed")
	}

	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, role.Nama)
	}

	respondMessage(w, http.StatusOK, "Login berhasil", map[string]any{
		"token":      token,
		"token_type": "Bearer",
		"expires_in": int(time.Until(expiresAt).Seconds()),
		"user": map[string]any{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"nama":     user.Nama,
			"roles":    roles,
		},
	})
}

// Me answers the authenticated user's profile with roles and permissions.
func Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Token tidak valid")
		return
	}
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, role.Nama)
	}
	respondData(w, http.StatusOK, map[string]any{
		"id":            user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"nama":          user.Nama,
		"telepon":       user.Telepon,
		"alamat":        user.Alamat,
		"tanggal_lahir": user.TanggalLahir,
		"jenis_kelamin": user.JenisKelamin,
		"status":        user.Status,
		"last_login":    user.LastLogin,
		"roles":         roles,
		"permissions":   user.PermissionNames(),
	})
}

// Logout records the event; the token stays valid until it expires.
func Logout(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Token tidak valid")
		return
	}
	entry := models.ActivityLog{
		UserID:    &user.ID,
		Action:    "logout",
		RefTable:  "users",
		RecordID:  &user.ID,
		Details:   fmt.Sprintf("User logged out: %s", user.Username),
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		log.Warn().Err(err).Msg("logout audit write failed")
	}
	respondMessage(w, http.StatusOK, "Logout berhasil", nil)
}
