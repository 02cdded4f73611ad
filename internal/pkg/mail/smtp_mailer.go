package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/progen-app/progen/internal/pkg/env"
)

// SendMail sends an HTML email via SMTP
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	} else {
		log.Printf("Email sent to %s via %s", to, addr)
	}
	return err
}

// SendFeedback forwards a user feedback message to the configured inbox.
func SendFeedback(fromEmail, message string) error {
	recipient := env.GetEnv("FEEDBACK_RECIPIENT", "")
	if recipient == "" {
		return fmt.Errorf("FEEDBACK_RECIPIENT is not configured")
	}

	body := fmt.Sprintf("<p><strong>From:</strong> %s</p><p>%s</p>", fromEmail, message)
	return SendMail(recipient, "New ProGen feedback", body)
}
