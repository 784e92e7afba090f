package db

import (
	"context"

	"github.com/shopspring/decimal" // Fixed-point decimal for money
	"github.com/sirupsen/logrus"    // Structured logging
	"gorm.io/gorm"                  // GORM ORM library

	"github.com/Zagreus0809/School-Digital-Wallet/internal/domain"
	"github.com/Zagreus0809/School-Digital-Wallet/internal/ledger"
	"github.com/Zagreus0809/School-Digital-Wallet/internal/utils"
)

// seedUser pairs a demo profile with its starting balance. Starting
// balances are administrative minting, not transfers, so they sit
// outside the conservation invariant.
type seedUser struct {
	profile ledger.NewUser
	balance string
}

var seedUsers = []seedUser{
	{
		profile: ledger.NewUser{
			Username: "jessica", Password: "password123",
			Email: "jessica.smith@school.edu", FullName: "Jessica Smith",
			WalletID: "wallet-jsmith-2023", Phone: "(555) 123-4567", StudentID: "S12345678",
		},
		balance: "245.50",
	},
	{
		profile: ledger.NewUser{
			Username: "mike", Password: "password123",
			Email: "mike.johnson@school.edu", FullName: "Mike Johnson",
			WalletID: "wallet-mjohnson-2023", Phone: "(555) 987-6543", StudentID: "S87654321",
		},
		balance: "100.00",
	},
	{
		profile: ledger.NewUser{
			Username: "alex", Password: "password123",
			Email: "alex.brown@school.edu", FullName: "Alex Brown",
			WalletID: "wallet-abrown-2023", Phone: "(555) 456-7890", StudentID: "S45678901",
		},
		balance: "150.00",
	},
	{
		profile: ledger.NewUser{
			Username: "cafeteria", Password: "password123",
			Email: "cafeteria@school.edu", FullName: "School Cafeteria",
			WalletID: "wallet-cafeteria-2023",
		},
	},
	{
		profile: ledger.NewUser{
			Username: "bookstore", Password: "password123",
			Email: "bookstore@school.edu", FullName: "Book Store",
			WalletID: "wallet-bookstore-2023",
		},
	},
}

// Seed creates the demo users with their starting balances. Skips
// entirely when any user already exists.
func Seed(gdb *gorm.DB) error {
	ctx := context.Background()
	var count int64
	if err := gdb.Model(&domain.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logrus.Info("Database already has users, skipping seed")
		return nil
	}
	store := ledger.NewGormStore(gdb)
	for _, su := range seedUsers {
		hash, err := utils.HashPassword(su.profile.Password) // Hash the demo password
		if err != nil {
			return err
		}
		nu := su.profile
		nu.Password = hash
		user, err := store.CreateUser(ctx, nu)
		if err != nil {
			return err
		}
		logrus.WithField("username", user.Username).Info("Seeded user")
		if su.balance == "" {
			continue
		}
		bal, err := decimal.NewFromString(su.balance)
		if err != nil {
			return err
		}
		if _, err := store.SetWalletBalance(ctx, user.ID, bal); err != nil {
			return err
		}
	}
	logrus.Info("Seed completed.")
	return nil
}
