package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	json "github.com/goccy/go-json"

	"github.com/progen-app/progen/app/models"
	"github.com/progen-app/progen/internal/pkg/env"
	"github.com/progen-app/progen/internal/pkg/quota"
)

// QuotaService is the slice of the quota service the HTTP layer needs.
type QuotaService interface {
	ApplyCheckoutCompletion(ctx context.Context, fingerprint, plan string) (*models.UsageRecord, error)
	RegisterDeploy(ctx context.Context, fingerprint string, freeWindow time.Duration) (*models.UsageRecord, error)
	RecordWebhookEvent(ctx context.Context, in quota.WebhookEventInput) (bool, *models.WebhookEvent, error)
	MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error
}

type checkoutEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// HandleCheckoutWebhook processes signed checkout events from the payment
// provider. Valid-signature events are always acknowledged, even when no
// fingerprint is present, so the provider does not retry-storm us over
// payloads we cannot act on.
func HandleCheckoutWebhook(svc QuotaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawBody := append([]byte(nil), c.BodyRaw()...)
		signature := strings.TrimSpace(c.Get("Stripe-Signature"))
		secret := env.GetEnv("STRIPE_WEBHOOK_SECRET", "")

		if !quota.VerifyCheckoutWebhookSignature(rawBody, signature, secret, time.Now()) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_signature"})
		}

		var event checkoutEvent
		if err := json.Unmarshal(rawBody, &event); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		created, stored, err := svc.RecordWebhookEvent(ctx, quota.WebhookEventInput{
			Provider:        quota.ProviderStripe,
			ProviderEventID: event.ID,
			EventType:       event.Type,
			PayloadJSON:     string(rawBody),
			SignatureValid:  true,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_persist_failed"})
		}
		if !created {
			return c.JSON(fiber.Map{"received": true, "duplicate": true})
		}

		if event.Type != "checkout.session.completed" {
			_ = svc.MarkWebhookProcessed(ctx, stored.ID, nil)
			return c.JSON(fiber.Map{"received": true})
		}

		fingerprint := strings.TrimSpace(event.Data.Object.Metadata["fingerprint"])
		plan := event.Data.Object.Metadata["plan"]
		if plan == "" {
			plan = quota.PlanSupporter
		}
		if fingerprint == "" {
			_ = svc.MarkWebhookProcessed(ctx, stored.ID, errors.New("no fingerprint in event metadata"))
			return c.JSON(fiber.Map{"received": true})
		}

		_, applyErr := svc.ApplyCheckoutCompletion(ctx, fingerprint, plan)
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, applyErr)
		if applyErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "quota_update_failed"})
		}

		return c.JSON(fiber.Map{"received": true})
	}
}
