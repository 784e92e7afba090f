package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework

	"github.com/Zagreus0809/School-Digital-Wallet/internal/ledger"     // Ledger store
	"github.com/Zagreus0809/School-Digital-Wallet/internal/middleware" // Authenticated user id helper
	"github.com/Zagreus0809/School-Digital-Wallet/internal/utils"      // JWT and password utilities
)

// RegisterRequest carries the profile fields for a new user
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3"` // Username, at least 3 characters
	Password  string `json:"password" binding:"required,min=6"` // Password, at least 6 characters
	Email     string `json:"email" binding:"required,email"`    // Valid email address
	FullName  string `json:"fullName" binding:"required,min=2"` // Display name, at least 2 characters
	WalletID  string `json:"walletId" binding:"required,min=5"` // Desired wallet identifier, at least 5 characters
	Phone     string `json:"phone"`                             // Optional phone number
	StudentID string `json:"studentId"`                         // Optional student id
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3"` // Username must be provided
	Password string `json:"password" binding:"required,min=6"` // Password must be provided
}

// RegisterHandler creates a user and its zero-balance wallet
func RegisterHandler(store ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		// Hash the password before it ever reaches the store
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		// Create user with lowercase username to ensure uniqueness
		user, err := store.CreateUser(c.Request.Context(), ledger.NewUser{
			Username:  strings.ToLower(req.Username), // Normalized username
			Password:  hash,                          // Hashed credential
			Email:     strings.ToLower(req.Email),    // Normalized email
			FullName:  req.FullName,                  // Display name
			WalletID:  req.WalletID,                  // Wallet identifier
			Phone:     req.Phone,                     // Optional phone
			StudentID: req.StudentID,                 // Optional student id
		})
		if err != nil {
			// Uniqueness violation on username, email or wallet id
			if errors.Is(err, ledger.ErrConflict) {
				c.JSON(http.StatusConflict, gin.H{"error": "Username, email or wallet ID already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}
		// Return the created user; the password hash never serializes
		c.JSON(http.StatusCreated, user)
	}
}

// LoginHandler authenticates a user and returns a session token
func LoginHandler(store ledger.Store, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Fetch user from the store
		user, err := store.GetUserByUsername(c.Request.Context(), strings.ToLower(req.Username))
		if err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if !utils.CheckPassword(user.Password, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate session token
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token alongside the user profile
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}

// LogoutHandler acknowledges a logout. Tokens are stateless, so the
// client discards its copy; nothing is revoked server-side
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}

// MeHandler returns the profile of the authenticated caller
func MeHandler(store ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Authenticated user id
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := store.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			// Token refers to a user that no longer exists
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
