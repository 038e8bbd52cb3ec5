package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// AuthRequired extrait user_id / email / role du token Bearer et les met dans
// le context Gin. L'émission des tokens est faite par le service d'auth amont.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c)
		if !ok {
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok || userID <= 0 {
			log.Warn().Msg("❌ user_id manquant ou invalide dans les claims")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user_id manquant"})
			c.Abort()
			return
		}

		c.Set("user_id", int64(userID))
		c.Set("email", claims["email"])
		c.Set("role", claims["role"])
		c.Next()
	}
}

// OptionalAuth alimente le context si un token valide est présent, mais laisse
// passer les invités (checkout sans compte autorisé).
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		claims, ok := parseBearer(c)
		if !ok {
			return
		}
		if userID, ok := claims["user_id"].(float64); ok && userID > 0 {
			c.Set("user_id", int64(userID))
			c.Set("email", claims["email"])
			c.Set("role", claims["role"])
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context) (jwt.MapClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token manquant"})
		c.Abort()
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Format Authorization invalide"})
		c.Abort()
		return nil, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		log.Warn().Err(err).Msg("❌ Erreur parsing JWT")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
		c.Abort()
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
		c.Abort()
		return nil, false
	}

	if exp, ok := claims["exp"].(float64); ok && time.Now().Unix() > int64(exp) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expiré"})
		c.Abort()
		return nil, false
	}

	return claims, true
}
