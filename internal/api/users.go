package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"github.com/gin-gonic/gin" // Gin web framework

	"github.com/Zagreus0809/School-Digital-Wallet/internal/ledger" // Ledger store
)

// GetUserHandler looks up a user by numeric id
func GetUserHandler(store ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64) // Parse path parameter
		if err != nil {
			// Not a number, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}
		user, err := store.GetUserByID(c.Request.Context(), uint(id))
		if err != nil {
			// If user not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user) // Password hash never serializes
	}
}

// GetUserByWalletHandler resolves a wallet identifier to its owner.
// Used to preview the receiver before confirming a transfer.
func GetUserByWalletHandler(store ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		walletID := c.Param("walletId") // Wallet identifier from path
		user, err := store.GetUserByWalletID(c.Request.Context(), walletID)
		if err != nil {
			// If no user owns this wallet id, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
