package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nordeck/worldle-go/assets"
	"github.com/nordeck/worldle-go/internal/catalog"
	"github.com/nordeck/worldle-go/internal/httpserver"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	raw, err := assets.CountriesJSON()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read bundled country data")
	}
	flagCodes, err := assets.FlagCodes()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read flag asset listing")
	}
	countries, err := catalog.Load(raw, flagCodes)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load country catalog")
	}
	log.Info().Int("countries", len(countries)).Msg("catalog loaded")

	db, err := openDB(getEnv("DB_PATH", "./data/worldle.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	srv := httpserver.New(countries, db)
	defer srv.Close()

	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting worldle-go server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
