package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                   // Primary key
	Username  string    `gorm:"uniqueIndex;size:64;not null" json:"username"`           // Unique username
	Password  string    `gorm:"not null" json:"-"`                                      // Hashed password, never serialized
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`             // Unique email address
	FullName  string    `gorm:"not null" json:"fullName"`                               // Display name
	WalletID  string    `gorm:"uniqueIndex;size:64;not null" json:"walletId"`           // Human-shareable wallet identifier
	Phone     string    `json:"phone,omitempty"`                                        // Optional phone number
	StudentID string    `json:"studentId,omitempty"`                                    // Optional student id
	CreatedAt time.Time `json:"createdAt"`                                              // Timestamp of creation
	UpdatedAt time.Time `json:"updatedAt"`                                              // Timestamp of last update
	Wallet    Wallet    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // One-to-one relationship with Wallet
}
