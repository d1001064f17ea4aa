package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"gorm.io/gorm/clause"

	"github.com/denotehq/denote/internal/config"
	"github.com/denotehq/denote/internal/database"
	"github.com/denotehq/denote/internal/models"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Reset the denote database: drop all application tables, recreate them, and
seed the default system settings. DESTRUCTIVE - all rows are lost.

Usage:

setupdb [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  setupdb -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	log.Println("Resetting schema...")
	if err := database.Reset(db); err != nil {
		log.Fatalf("Failed to reset schema: %v", err)
	}

	log.Println("Seeding default settings...")
	defaults := []models.ConfigSetting{
		{
			SettingName:       "AI_MODEL_NAME",
			SettingValue:      cfg.GenerateModel,
			Description:       "Generative model used for chat and coaching reports",
			DataType:          "string",
			IsEditableByAdmin: true,
		},
		{
			SettingName:       "SEARCH_ENGINE_ID",
			SettingValue:      cfg.SearchEngineID,
			Description:       "Custom search engine identifier for online lookups",
			DataType:          "string",
			IsEditableByAdmin: true,
		},
		{
			SettingName:       "REPORT_HOUR",
			SettingValue:      fmt.Sprintf("%d", cfg.ReportHour),
			Description:       "Local hour (0-23) when the daily coaching analysis runs",
			DataType:          "number",
			IsEditableByAdmin: true,
		},
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&defaults).Error; err != nil {
		log.Fatalf("Failed to seed settings: %v", err)
	}

	log.Println("Database setup complete.")
}
