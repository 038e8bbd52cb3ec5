package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"benign_fashion_backend/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	// Limite générale par IP sur le groupe /api
	APIMaxRequests = 100 // par minute
	APICooldown    = 1 * time.Minute
)

// APIRateLimit limite le nombre de requêtes par IP (fenêtre fixe Redis)
func APIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := "api_requests:" + c.ClientIP()

		count, err := database.Redis.Incr(ctx, key).Result()
		if err != nil {
			// Redis indisponible : on ne bloque pas le trafic pour autant
			c.Next()
			return
		}

		if count == 1 {
			database.Redis.Expire(ctx, key, APICooldown)
		}

		if count > APIMaxRequests {
			ttl := database.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de requêtes. Réessayez dans %d secondes", int(ttl.Seconds())),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
