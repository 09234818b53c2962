// internals/features/users/auth/service/token_service.go
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	userModel "presensiku_backend/internals/features/users/user/model"
)

const accessTokenTTL = 1 * time.Hour

// CreateAccessToken menandatangani JWT HS256 berumur 1 jam dengan payload
// {id, nama, role} — kontrak yang sama dengan backend lama.
func CreateAccessToken(user *userModel.UserModel, secret string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"id":   user.ID.String(),
		"nama": user.Nama,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken memverifikasi signature & mengembalikan claims.
func ParseAccessToken(tokenString, secret string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
