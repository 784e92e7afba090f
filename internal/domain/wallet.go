package domain

import (
	"time"

	"github.com/shopspring/decimal" // Fixed-point decimal for money
)

// Wallet Model
type Wallet struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                       // Primary key
	UserID    uint            `gorm:"uniqueIndex;not null" json:"userId"`         // Foreign key to User, unique enforces 1:1
	Balance   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"balance"` // Wallet balance, two-digit scale, never negative
	CreatedAt time.Time       `json:"createdAt"`                                  // Timestamp of creation
	UpdatedAt time.Time       `json:"updatedAt"`                                  // Timestamp of last update
}
