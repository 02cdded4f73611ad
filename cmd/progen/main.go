package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/progen-app/progen/internal/pkg/constants"
	"github.com/progen-app/progen/internal/pkg/database"
	"github.com/progen-app/progen/internal/pkg/env"
	"github.com/progen-app/progen/internal/pkg/publisher"
	"github.com/progen-app/progen/internal/pkg/quota"
	"github.com/progen-app/progen/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()

	pubCfg, err := publisher.LoadConfig()
	if err != nil {
		log.Fatalf("site publisher config: %v", err)
	}
	pub, err := publisher.NewS3Publisher(context.Background(), pubCfg)
	if err != nil {
		log.Fatalf("site publisher init: %v", err)
	}

	quotaSvc := quota.NewServiceFromDB(database.GetDB())

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // portfolio payloads can embed a data-URI CV
	})
	app.Use(recover.New(), logger.New())
	app.Get(constants.MetricsRoute, monitor.New())

	router.InstallRouter(app, quotaSvc, pub)

	return app
}
