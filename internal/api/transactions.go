package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client

	"github.com/Zagreus0809/School-Digital-Wallet/internal/domain"     // Domain models
	"github.com/Zagreus0809/School-Digital-Wallet/internal/ledger"     // Ledger store
	"github.com/Zagreus0809/School-Digital-Wallet/internal/middleware" // Authenticated user id helper
	"github.com/Zagreus0809/School-Digital-Wallet/internal/processor"  // Transaction processor
	"github.com/Zagreus0809/School-Digital-Wallet/internal/utils"      // Cache utilities
)

// TransferRequest represents a transfer request
type TransferRequest struct {
	ReceiverWalletID string `json:"receiverWalletId" binding:"required"` // Target wallet identifier
	Amount           string `json:"amount" binding:"required"`           // Transfer amount as a decimal string
	Note             string `json:"note"`                                // Optional note
}

// TransferHandler executes a transfer from the authenticated user's
// wallet to the wallet named in the request
func TransferHandler(p *processor.Processor, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Authenticated sender
		if !ok {
			// If not set, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req TransferRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context()
		details, err := p.Transfer(ctx, userID, req.ReceiverWalletID, req.Amount, req.Note)
		if err != nil {
			// Map each failure kind to its status
			switch {
			case errors.Is(err, processor.ErrInvalidAmount),
				errors.Is(err, processor.ErrSelfTransfer),
				errors.Is(err, processor.ErrInsufficientFunds):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, processor.ErrSenderNotFound),
				errors.Is(err, processor.ErrReceiverNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Transfer failed"})
			}
			return
		}
		// Invalidate cached wallet and history views for both parties
		if rdb != nil {
			utils.InvalidateUserCaches(ctx, rdb, details.SenderID)
			utils.InvalidateUserCaches(ctx, rdb, details.ReceiverID)
		}
		// Return the enriched transaction record
		c.JSON(http.StatusCreated, details)
	}
}

// ListTransactionsHandler returns the full transaction history for the
// authenticated user, newest first
func ListTransactionsHandler(store ledger.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Authenticated user id
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := utils.HistoryCacheKey(userID) // Cache key for full history
		// Try the cache first
		if rdb != nil {
			var cached []domain.Transaction
			found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
			if err == nil && found {
				c.JSON(http.StatusOK, cached) // Serve cached history
				return
			}
		}
		txs, err := store.ListTransactionsForUser(ctx, userID, 0) // 0 means full history
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		// Cache the history; transfers invalidate it for both parties
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, txs, utils.CacheTTL)
		}
		c.JSON(http.StatusOK, txs) // Return the history
	}
}

// RecentTransactionsHandler returns the most recent transactions for
// the authenticated user (default 5, overridable with ?limit=n)
func RecentTransactionsHandler(store ledger.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Authenticated user id
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		limit := ledger.RecentLimit // Default recent window
		if l := c.Query("limit"); l != "" {
			// If a valid positive limit is supplied, use it
			if v, err := strconv.Atoi(l); err == nil && v > 0 {
				limit = v
			}
		}
		ctx := c.Request.Context()
		// Only the default window is cached; invalidation would otherwise
		// have to chase every caller-supplied limit
		useCache := rdb != nil && limit == ledger.RecentLimit
		cacheKey := utils.RecentCacheKey(userID) // Cache key for the default window
		// Try the cache first
		if useCache {
			var cached []domain.Transaction
			found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
			if err == nil && found {
				c.JSON(http.StatusOK, cached) // Serve cached slice
				return
			}
		}
		txs, err := store.ListTransactionsForUser(ctx, userID, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		// Cache the slice; transfers invalidate it for both parties
		if useCache {
			_ = utils.SetCache(ctx, rdb, cacheKey, txs, utils.CacheTTL)
		}
		c.JSON(http.StatusOK, txs) // Return the recent slice
	}
}
