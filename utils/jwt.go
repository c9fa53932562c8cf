package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var secretKey = []byte("rice-bikes-dev-secret")

// SetJWTSecret installs the signing key at boot.
func SetJWTSecret(secret string) {
	if secret != "" {
		secretKey = []byte(secret)
	}
}

func GenerateToken(userID uint, username string, admin bool) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"admin":    admin,
		"exp":      time.Now().Add(12 * time.Hour).Unix(),
	})
	return token.SignedString(secretKey)
}

func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, _ := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})

	if token != nil {
		if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
			return claims, nil
		}
	}
	return nil, errors.New("invalid token")
}
