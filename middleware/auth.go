package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Context keys set by the auth middlewares.
const (
	ContextActorID = "actorID"
	ContextRole    = "actorRole"
)

// JWTAuthMiddleware authenticates the bearer token and requires the given
// role claim. The token hash is checked against the Redis auth cache so a
// revoked token stops working before its expiry; if the cache is
// unreachable the signed claim alone is accepted.
//
// Authorization of individual lifecycle transitions is not decided here;
// that lives in the appointment service's access guard.
func JWTAuthMiddleware(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		if role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied for this role"})
			return
		}

		// Revocation check. auth:<role>:<subject> holds the hash of the
		// last revoked-before boundary; a listed hash is rejected.
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			revokedKey := utils.AuthCachePrefix + "revoked:" + utils.HashToken(tokenString)
			if _, err := authCache.Get(ctx, revokedKey).Result(); err == nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
				return
			} else if err != redis.Nil {
				zap.L().Warn("auth cache unavailable, accepting signed claim", zap.Error(err))
			}
		}

		c.Set(ContextActorID, subject)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// JWTAuthPatientMiddleware guards patient-only routes.
func JWTAuthPatientMiddleware() gin.HandlerFunc {
	return JWTAuthMiddleware("patient")
}

// JWTAuthDoctorMiddleware guards doctor-only routes.
func JWTAuthDoctorMiddleware() gin.HandlerFunc {
	return JWTAuthMiddleware("doctor")
}

// JWTAuthAdminMiddleware guards admin-only routes.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return JWTAuthMiddleware("admin")
}

// RevokeToken blacklists a token hash until its natural expiry window lapses.
func RevokeToken(tokenString string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	key := utils.AuthCachePrefix + "revoked:" + utils.HashToken(tokenString)
	return utils.GetAuthCacheClient().Set(ctx, key, "1", ttl).Err()
}
