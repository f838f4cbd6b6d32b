package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medibook/middleware"
)

// SignOutHandler revokes the presented bearer token. The blacklist entry
// outlives the longest token TTL so the token can never be replayed.
func SignOutHandler(c *gin.Context) {
	logger := getLogger(c)
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if tokenString == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing bearer token"})
		return
	}
	if err := middleware.RevokeToken(tokenString, 72*time.Hour); err != nil {
		logger.Error("failed to revoke token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
