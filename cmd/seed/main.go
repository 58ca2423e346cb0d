package main

import (
	"context"
	"flag"
	"os"

	"sepaku_backend/internals/configs"
	database "sepaku_backend/internals/databases"
	"sepaku_backend/internals/seeds"
)

func main() {
	dir := flag.String("dir", "internals/seeds", "seed data root")
	migrate := flag.Bool("migrate", true, "migrate the schema before seeding")
	flag.Parse()

	src := configs.LoadEnv()
	cfg, err := configs.Load()
	log := configs.NewLogger(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	log.Info().Str("env_source", src).Msg("configuration loaded")

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("db")
	}
	defer database.Close(db)

	ctx := context.Background()
	if *migrate {
		if err := database.Migrate(ctx, db, log); err != nil {
			log.Error().Err(err).Msg("migrate")
			os.Exit(1)
		}
	}
	if err := seeds.RunAllSeeds(ctx, db, *dir, log); err != nil {
		log.Error().Err(err).Msg("seed")
		os.Exit(1)
	}
	log.Info().Msg("seed finished")
}
