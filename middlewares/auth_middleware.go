package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/Cavista-Hackathon-2025/carepulse/models"
)

// AuthMiddleware validates a Bearer token and sets "userID" and "email" on
// the request context. HS256 only.
func AuthMiddleware(secret []byte, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(authHeader, "Bearer "), func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c)
			return
		}

		if email, _ := claims["email"].(string); email != "" {
			c.Set("email", email)
		}

		// userId arrives as float64 after JSON round-tripping
		if id, ok := claims["userId"].(float64); ok {
			c.Set("userID", uint(id))
			c.Next()
			return
		}

		// legacy tokens carry only the email claim
		email, _ := claims["email"].(string)
		if email == "" {
			abortUnauthorized(c)
			return
		}
		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			abortUnauthorized(c)
			return
		}
		c.Set("userID", user.ID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
}
