package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/progen-app/progen/internal/pkg/bmc"
	"github.com/progen-app/progen/internal/pkg/database"
	"github.com/progen-app/progen/internal/pkg/env"
	"github.com/progen-app/progen/internal/pkg/quota"
)

// bmcsync pulls the supporter feed once and reconciles it against the usage
// records. Run it from cron or a scheduler; every run is safe to repeat.
func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	env.SetupEnvOptional()
	database.SetupDatabase()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	syncer := bmc.NewSyncer(
		bmc.NewClientFromEnv(),
		bmc.NewStore(database.GetDB()),
		quota.NewServiceFromDB(database.GetDB()),
		log,
	)

	res, err := syncer.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("supporter sync failed")
		os.Exit(1)
	}

	log.Info().
		Int("seen", res.Seen).
		Int("appended", res.Appended).
		Int("extended", res.Extended).
		Msg("supporter sync finished")
}
