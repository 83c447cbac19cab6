package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeAdmin distingue los tokens de admin de los de usuario.
const TokenTypeAdmin = "admin"

// ErrNotAdminToken el token es válido pero no es de admin.
var ErrNotAdminToken = errors.New("jwt: no es un token de admin")

// AdminClaims claims que emite el backend para sesiones de administración.
type AdminClaims struct {
	jwt.RegisteredClaims
	AdminID string `json:"admin_id"`
	Role    string `json:"role"`
	Type    string `json:"type"`
}

// GenerateAdmin firma un token de admin (desarrollo local y tests; en producción lo emite el backend).
func GenerateAdmin(secret, adminID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		AdminID: adminID,
		Role:    role,
		Type:    TokenTypeAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAdmin valida firma, expiración y tipo del token y devuelve sus claims.
// No sustituye a la resolución de identidad: los permisos siguen viniendo del backend.
func ParseAdmin(secret, tokenString string) (*AdminClaims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Type != TokenTypeAdmin {
		return nil, ErrNotAdminToken
	}
	if claims.AdminID == "" {
		return nil, fmt.Errorf("jwt: admin_id vacío")
	}
	return claims, nil
}
