package middlewares

import (
	"net/http"
	"strings"

	"github.com/SriramAtmakuri/QueryCraft/internal/repositories"
	"github.com/SriramAtmakuri/QueryCraft/internal/utils"

	"github.com/gin-gonic/gin"
)

// Authenticate requires a valid, non-revoked Bearer access token and puts
// the user ID in the context under "userId".
func Authenticate(redisRepo *repositories.RedisRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c)
		if !ok {
			return
		}

		if redisRepo != nil {
			revoked, err := redisRepo.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token has been revoked"})
				return
			}
		}

		c.Set("userId", claims.UserID)
		c.Next()
	}
}

// OptionalAuthenticate sets "userId" when a valid token is present but lets
// anonymous requests through. Endpoints that only record history for signed
// in users run behind this.
func OptionalAuthenticate(redisRepo *repositories.RedisRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := utils.VerifyJWT(parts[1], utils.AccessTokenSecret)
		if err != nil {
			c.Next()
			return
		}

		if redisRepo != nil {
			if revoked, err := redisRepo.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && revoked {
				c.Next()
				return
			}
		}

		c.Set("userId", claims.UserID)
		c.Next()
	}
}

func parseBearer(c *gin.Context) (*utils.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing Authorization header"})
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid Authorization format"})
		return nil, false
	}

	claims, err := utils.VerifyJWT(parts[1], utils.AccessTokenSecret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		return nil, false
	}

	return claims, true
}
