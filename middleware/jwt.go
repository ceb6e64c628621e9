package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"sbfarm.id/api/config"
	"sbfarm.id/api/models"
)

// TokenIssuer is the iss claim stamped on every session token.
const TokenIssuer = "sb-farm-api"

// DefaultTokenTTL applies when JWT_TTL_MINUTES is unset.
const DefaultTokenTTL = 60 * time.Minute

// unexported type prevents collisions in context
type ctxKey int

const (
	userKey ctxKey = iota
	requestIDKey
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// TokenTTL returns the configured token lifetime.
func TokenTTL() time.Duration {
	if v, err := strconv.Atoi(os.Getenv("JWT_TTL_MINUTES")); err == nil && v > 0 {
		return time.Duration(v) * time.Minute
	}
	return DefaultTokenTTL
}

// GenerateToken mints a signed session token for the user.
func GenerateToken(userID uint) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(TokenTTL())
	claims := jwt.RegisteredClaims{
		Issuer:    TokenIssuer,
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret())
	return signed, expiresAt, err
}

// ValidateToken verifies signature and expiry and returns the subject user id.
func ValidateToken(tokenStr string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, jwt.ErrTokenMalformed
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, jwt.ErrTokenInvalidSubject
	}
	return uint(id), nil
}

// JWTMiddleware validates the bearer token, resolves the acting user and
// stashes it in the request context. Role/permission data is preloaded so
// downstream permission checks need no extra query.
func JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			unauthorized(w, "Token tidak ditemukan")
			return
		}
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			unauthorized(w, "Token tidak ditemukan")
			return
		}

		userID, err := ValidateToken(parts[1])
		if err != nil {
			// expired vs forged is only interesting in the logs
			if errors.Is(err, jwt.ErrTokenExpired) {
				log.Debug().Str("path", r.URL.Path).Msg("expired token rejected")
			} else {
				log.Warn().Err(err).Str("ip", ClientIP(r)).Msg("invalid token rejected")
			}
			unauthorized(w, "Token tidak valid")
			return
		}

		var user models.User
		if err := config.DB.Preload("Roles.Permissions").First(&user, "id = ?", userID).Error; err != nil {
			unauthorized(w, "User tidak ditemukan")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUser pulls the authenticated *User out of the request context (or nil).
func GetUser(r *http.Request) *models.User {
	if u, ok := r.Context().Value(userKey).(*models.User); ok {
		return u
	}
	return nil
}

// GetUserID returns the authenticated user's id, or 0.
func GetUserID(r *http.Request) uint {
	if u := GetUser(r); u != nil {
		return u.ID
	}
	return 0
}

// ClientIP extracts the client address from headers or the remote addr.
func ClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": msg,
	})
}
