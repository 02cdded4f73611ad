package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/progen-app/progen/internal/pkg/mail"
)

type feedbackRequest struct {
	Name    string `json:"name" validate:"max=120"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=3,max=5000"`
}

func (r *feedbackRequest) Validate() error {
	v := validator.New()
	return v.Struct(r)
}

// HandleFeedback forwards user feedback to the configured inbox.
func HandleFeedback(c *fiber.Ctx) error {
	var req feedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	sender := req.Email
	if req.Name != "" {
		sender = req.Name + " <" + req.Email + ">"
	}
	if err := mail.SendFeedback(sender, req.Message); err != nil {
		log.Errorf("feedback mail failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "mail_failed"})
	}

	return c.JSON(fiber.Map{"ok": true})
}
