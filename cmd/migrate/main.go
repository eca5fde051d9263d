package main

import (
	"log"
	"os"

	"ai-datavault-be/internal/model"
	"ai-datavault-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS pg_trgm;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models (The Core Task)
	log.Println("Step 2: Running AutoMigrate for 4 Tables...")

	models := []interface{}{
		&model.Conversation{},
		&model.Project{},
		&model.User{},
		&model.ImportRecord{},
	}

	// Migrate strictly
	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	// 5. Post-Migration: search indexes AutoMigrate doesn't cover
	log.Println("Step 3: Creating full-text indexes...")

	postMigrationSQL := []string{
		// Trigram GIN indexes back the ILIKE search over names.
		`CREATE INDEX IF NOT EXISTS idx_conversations_name_trgm ON conversations USING gin (name gin_trgm_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_projects_name_trgm ON projects USING gin (name gin_trgm_ops);`,
		// Containment checks on lineage sets.
		`CREATE INDEX IF NOT EXISTS idx_conversations_import_ids ON conversations USING gin (import_ids);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v. Continuing...", err)
		}
	}

	color.Green("✅ Migration completed successfully.")
}
