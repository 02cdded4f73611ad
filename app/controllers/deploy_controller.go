package controllers

import (
	"context"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/progen-app/progen/internal/pkg/env"
	"github.com/progen-app/progen/internal/pkg/portfolio"
	"github.com/progen-app/progen/internal/pkg/publisher"
)

type deployRequest struct {
	Fingerprint string          `json:"fingerprint" validate:"required,min=6,max=64"`
	TemplateID  string          `json:"templateId"`
	Data        json.RawMessage `json:"data" validate:"required"`
}

func (r *deployRequest) Validate() error {
	v := validator.New()
	return v.Struct(r)
}

// HandleDeploy renders the portfolio bundle and publishes it under a fresh
// slug. Recording the deploy against the usage record is best effort; a
// bookkeeping failure never takes down a deploy that already published.
func HandleDeploy(svc QuotaService, pub publisher.Publisher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req deployRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
		}
		if err := req.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
		}

		var raw interface{}
		if err := json.Unmarshal(req.Data, &raw); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
		}
		data := portfolio.Sanitize(raw)
		switch req.TemplateID {
		case portfolio.TemplateClassic, portfolio.TemplateMinimal, portfolio.TemplateModern:
			data.TemplateID = req.TemplateID
		}

		bundle := portfolio.BuildStaticFiles(data, time.Now().Year())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		slug := uuid.NewString()
		url, err := pub.Publish(ctx, slug, bundle)
		if err != nil {
			log.Errorf("site publish failed for %s: %v", req.Fingerprint, err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "publish_failed"})
		}

		if _, err := svc.RegisterDeploy(ctx, req.Fingerprint, freeHostingWindow()); err != nil {
			log.Errorf("deploy bookkeeping failed for %s: %v", req.Fingerprint, err)
		}

		return c.JSON(fiber.Map{"url": url})
	}
}

func freeHostingWindow() time.Duration {
	days, err := strconv.Atoi(env.GetEnv("FREE_HOSTING_DAYS", "7"))
	if err != nil || days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}
