package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/progen-app/progen/app/controllers"
	"github.com/progen-app/progen/internal/pkg/publisher"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// InstallRouter registers all route groups on the app.
func InstallRouter(app *fiber.App, quotaSvc controllers.QuotaService, pub publisher.Publisher) {
	setup(app, NewApiRouter(quotaSvc, pub))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
