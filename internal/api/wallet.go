package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client

	"github.com/Zagreus0809/School-Digital-Wallet/internal/domain"     // Domain models
	"github.com/Zagreus0809/School-Digital-Wallet/internal/ledger"     // Ledger store
	"github.com/Zagreus0809/School-Digital-Wallet/internal/middleware" // Authenticated user id helper
	"github.com/Zagreus0809/School-Digital-Wallet/internal/utils"      // Cache utilities
)

// GetWalletHandler returns wallet info for the authenticated user
func GetWalletHandler(store ledger.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Authenticated user id
		if !ok {
			// If not set, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := utils.WalletCacheKey(userID) // Cache key for wallet
		// Try the cache first
		if rdb != nil {
			var cached domain.Wallet
			found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
			if err == nil && found {
				c.JSON(http.StatusOK, cached) // Serve cached wallet
				return
			}
		}
		wallet, err := store.GetWalletByUserID(ctx, userID)
		if err != nil {
			// If wallet not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
			return
		}
		// Cache the wallet for future reads; every transfer invalidates it
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, wallet, utils.CacheTTL)
		}
		c.JSON(http.StatusOK, wallet) // Return the wallet
	}
}
