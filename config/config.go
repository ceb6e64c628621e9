package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect loads the environment, opens the database and prepares the schema.
func Connect() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using system environment variables")
	}

	dsn := os.Getenv("DB_DSN")
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := Migrations(DB); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	if err := SeedRoles(DB); err != nil {
		log.Fatal().Err(err).Msg("failed to seed roles and permissions")
	}
}
