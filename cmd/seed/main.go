package main

import (
	"fmt"
	"log"
	"os"

	"github.com/creatorpulse/backend/internal/database"
	"github.com/creatorpulse/backend/internal/logger"
	"github.com/creatorpulse/backend/internal/seed"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	if err := logger.Initialize("info", "seed.log"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Parse command
	command := "dev"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "dev":
		seedDev()
	case "test":
		seedTest()
	case "templates":
		seedTemplates()
	case "clean":
		cleanSeed()
	default:
		fmt.Println("Usage: seed [dev|test|templates|clean]")
		fmt.Println("  dev       - Seed development database with realistic data")
		fmt.Println("  test      - Seed test database with minimal fixed data")
		fmt.Println("  templates - Seed only the template catalog")
		fmt.Println("  clean     - Remove all seed data (use with caution)")
		os.Exit(1)
	}
}

func connect() {
	if err := database.Initialize(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database connected")
}

func seedDev() {
	log.Println("Seeding development database...")
	connect()
	defer database.Close()

	seeder := seed.NewSeeder(database.DB)
	if err := seeder.SeedDev(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Development database seeded successfully")
}

func seedTest() {
	log.Println("Seeding test database...")
	connect()
	defer database.Close()

	seeder := seed.NewSeeder(database.DB)
	if err := seeder.SeedTest(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Test database seeded successfully")
}

func seedTemplates() {
	log.Println("Seeding template catalog...")
	connect()
	defer database.Close()

	seeder := seed.NewSeeder(database.DB)
	if err := seeder.SeedTemplates(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Template catalog seeded successfully")
}

func cleanSeed() {
	log.Println("Cleaning seed data...")
	connect()
	defer database.Close()

	seeder := seed.NewSeeder(database.DB)
	if err := seeder.Clean(); err != nil {
		log.Fatalf("Clean failed: %v", err)
	}

	log.Println("Seed data cleaned successfully")
}
