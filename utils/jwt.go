package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT mints an HS256 token carrying the user id and email. The
// middleware resolves identity from the userId claim first.
func GenerateJWT(secret []byte, userID uint, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"exp":    time.Now().Add(72 * time.Hour).Unix(),
	})
	return token.SignedString(secret)
}
