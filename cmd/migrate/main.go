package main

import (
	"flag" // Command-line flags

	"github.com/sirupsen/logrus" // Structured logging

	"github.com/Zagreus0809/School-Digital-Wallet/internal/config" // Configuration
	"github.com/Zagreus0809/School-Digital-Wallet/internal/db"     // Database migration and seeding
)

// Main entry point for migration
func main() {
	seed := flag.Bool("seed", false, "seed demo users after migrating")
	flag.Parse()

	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Run schema migration

	// Optionally seed demo users with starting balances
	if *seed {
		gdb, err := db.Open(cfg.DSN())
		if err != nil {
			logrus.Fatalf("failed to connect database: %v", err)
		}
		if err := db.Seed(gdb); err != nil {
			logrus.Fatalf("seed failed: %v", err)
		}
	}
}
