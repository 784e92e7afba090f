package domain

import (
	"time"

	"github.com/shopspring/decimal" // Fixed-point decimal for money
)

// Transaction status values. Failed attempts never persist a record,
// so "completed" is the only status currently written.
const StatusCompleted = "completed"

// Transaction Model. Records are append-only: never updated or deleted.
type Transaction struct {
	ID            uint            `gorm:"primaryKey" json:"id"`                              // Internal primary key
	SenderID      uint            `gorm:"index;not null" json:"senderId"`                    // Foreign key to the sending User
	ReceiverID    uint            `gorm:"index;not null" json:"receiverId"`                  // Foreign key to the receiving User
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`         // Transferred amount, strictly positive
	Note          string          `json:"note,omitempty"`                                    // Optional note from the sender
	Status        string          `gorm:"not null;default:completed" json:"status"`          // Transaction status
	TransactionID string          `gorm:"uniqueIndex;size:64;not null" json:"transactionId"` // Externally shareable identifier
	CreatedAt     time.Time       `json:"createdAt"`                                         // Timestamp of creation
}
