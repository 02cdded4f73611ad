package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/progen-app/progen/app/controllers"
	"github.com/progen-app/progen/internal/pkg/constants"
	"github.com/progen-app/progen/internal/pkg/publisher"
)

type ApiRouter struct {
	quota     controllers.QuotaService
	publisher publisher.Publisher
}

func NewApiRouter(quotaSvc controllers.QuotaService, pub publisher.Publisher) *ApiRouter {
	return &ApiRouter{quota: quotaSvc, publisher: pub}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	// Registered before the limiter so provider retries are never throttled
	// into extra redeliveries.
	app.Post(constants.CheckoutWebhookRoute, controllers.HandleCheckoutWebhook(h.quota))

	api := app.Group(constants.APIRoute, limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	api.Post(constants.DeployRoute, controllers.HandleDeploy(h.quota, h.publisher))
	api.Post(constants.FeedbackRoute, controllers.HandleFeedback)
}
