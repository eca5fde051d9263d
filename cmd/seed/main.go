package main

import (
	"context"
	"flag"
	"log"
	"os"

	"ai-datavault-be/internal/config"
	"ai-datavault-be/internal/pkg/logger"
	"ai-datavault-be/internal/repository/memory"
	"ai-datavault-be/internal/repository/unitofwork"
	"ai-datavault-be/internal/service"
	"ai-datavault-be/pkg/database"

	"github.com/fatih/color"
)

// Seeds the vault from a local export archive without going through HTTP.
func main() {
	archivePath := flag.String("archive", "", "path to the export zip")
	accountName := flag.String("account", "seed", "account label for the batch")
	flag.Parse()

	if *archivePath == "" {
		log.Fatal("Error: -archive is required")
	}

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)

	data, err := os.ReadFile(*archivePath)
	if err != nil {
		log.Fatal("Error: Failed to read archive:", err)
	}

	importService := service.NewImportService(
		unitofwork.NewRepositoryFactory(db),
		memory.NewJobRepository(),
		nil, // no queue for the inline path
		cfg.Import.JobTopic,
		cfg.Import.UploadDir,
		service.NewEventPublisher(nil, nil, sysLogger),
		sysLogger,
	)

	result, err := importService.ProcessArchive(context.Background(), data, *accountName)
	if err != nil {
		color.Red("Import failed: %v", err)
		os.Exit(1)
	}

	color.Green("✅ Imported batch %s", result.ImportId)
	for entityType, counts := range result.Counts {
		log.Printf("  %s: %d inserted, %d already present", entityType, counts.Inserted, counts.AlreadyPresent)
	}
}
