package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jmlee/fantasy-shop-backend/config"
	"github.com/jmlee/fantasy-shop-backend/internal/db"
)

// Seeds the category tree, a generated CS fantasy item catalog and an admin
// account. Existing items and categories are replaced.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	database, err := db.Connect(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close(database)

	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Println("This will replace all existing categories and items.")
	fmt.Print("Do you want to proceed? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Seed cancelled.")
		return
	}

	if err := db.Seed(database); err != nil {
		log.Fatal("Failed to seed catalog:", err)
	}
	fmt.Println("Catalog seeded.")

	adminEmail := getEnv("ADMIN_EMAIL", "admin@fantasy-shop.local")
	adminPassword := getEnv("ADMIN_PASSWORD", "")
	adminNickname := getEnv("ADMIN_NICKNAME", "관리자")
	if adminPassword == "" {
		fmt.Println("ADMIN_PASSWORD not set, skipping admin account.")
		return
	}

	if err := db.SeedAdmin(database, adminEmail, adminPassword, adminNickname); err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}
	fmt.Printf("Admin account ready: %s\n", adminEmail)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
