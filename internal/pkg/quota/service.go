package quota

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/progen-app/progen/app/models"
	"gorm.io/gorm"
)

// casRetries bounds how often an extension re-reads when racing the other
// trigger on the same fingerprint.
const casRetries = 3

// Service applies hosting-window extensions from the two event sources (the
// checkout webhook and the supporter-feed sync) against usage_tracking. It
// only ever moves expiry forward; lapse is a read-time comparison elsewhere.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a quota service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// NewServiceFromDB creates a quota service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// WebhookEventInput carries one inbound webhook delivery for persistence.
type WebhookEventInput struct {
	Provider        string
	ProviderEventID string
	EventType       string
	PayloadJSON     string
	SignatureValid  bool
}

// ApplyCheckoutCompletion extends the hosting window for one verified checkout
// event. A lapsed record extends from now, an active one from its current
// expiry; the window never moves backward. Unknown plans fall back to the
// one-month supporter extension.
func (s *Service) ApplyCheckoutCompletion(ctx context.Context, fingerprint, plan string) (*models.UsageRecord, error) {
	_ = ctx
	fp := strings.TrimSpace(fingerprint)
	if fp == "" {
		return nil, errors.New("fingerprint is required")
	}
	return s.extend(fp, planDuration(plan), true)
}

// ExtendSupporter applies the one-month supporter extension for a feed event.
// A fingerprint match wins; email is the fallback. Returns false when neither
// resolves to an existing record (the event is still logged by the caller).
func (s *Service) ExtendSupporter(ctx context.Context, fingerprint, email string) (bool, error) {
	_ = ctx
	if fp := strings.TrimSpace(fingerprint); fp != "" {
		_, err := s.repo.GetUsageByFingerprint(fp)
		switch {
		case err == nil:
			if _, err := s.extend(fp, month, false); err != nil {
				return false, err
			}
			return true, nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return false, err
		}
	}

	if em := strings.TrimSpace(email); em != "" {
		rec, err := s.repo.GetUsageByEmail(em)
		switch {
		case err == nil:
			if _, err := s.extend(rec.Fingerprint, month, false); err != nil {
				return false, err
			}
			return true, nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return false, err
		}
	}

	return false, nil
}

// RegisterDeploy records a successful deploy for a fingerprint. A first deploy
// creates the record with the free hosting window; later deploys only stamp
// last_created and leave the expiry untouched.
func (s *Service) RegisterDeploy(ctx context.Context, fingerprint string, freeWindow time.Duration) (*models.UsageRecord, error) {
	_ = ctx
	fp := strings.TrimSpace(fingerprint)
	if fp == "" {
		return nil, errors.New("fingerprint is required")
	}

	now := s.now()
	rec, err := s.repo.GetUsageByFingerprint(fp)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		expiry := now.Add(freeWindow)
		rec = &models.UsageRecord{Fingerprint: fp, ExpiryDate: &expiry, LastCreated: &now}
		if err := s.repo.CreateUsage(rec); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		return rec, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.TouchLastCreated(fp, now); err != nil {
		return nil, err
	}
	rec.LastCreated = &now
	return rec, nil
}

// RecordWebhookEvent persists webhook payloads idempotently.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.WebhookEvent, error) {
	_ = ctx
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		return false, nil, errors.New("provider is required")
	}
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.WebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       strings.TrimSpace(in.EventType),
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  in.SignatureValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	_ = ctx
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(webhookEventID, errMsg)
}

// extend moves the expiry forward by d. The write is a compare-and-swap on the
// previously read expiry so the webhook handler and the sync job cannot lose
// each other's updates when they race on one fingerprint.
func (s *Service) extend(fingerprint string, d time.Duration, createMissing bool) (*models.UsageRecord, error) {
	for i := 0; i < casRetries; i++ {
		now := s.now()
		rec, err := s.repo.GetUsageByFingerprint(fingerprint)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if !createMissing {
				return nil, err
			}
			expiry := now.Add(d)
			created := &models.UsageRecord{
				Fingerprint: fingerprint,
				ExpiryDate:  &expiry,
				IsSupporter: true,
				LastCreated: &now,
			}
			switch err := s.repo.CreateUsage(created); {
			case err == nil:
				return created, nil
			case errors.Is(err, gorm.ErrDuplicatedKey):
				// Lost the insert race; extend the winner's row instead.
				continue
			default:
				return nil, err
			}
		}
		if err != nil {
			return nil, err
		}

		next := nextExpiry(rec.ExpiryDate, now, d)
		ok, err := s.repo.UpdateExpiry(fingerprint, rec.ExpiryDate, next, true)
		if err != nil {
			return nil, err
		}
		if ok {
			rec.ExpiryDate = &next
			rec.IsSupporter = true
			return rec, nil
		}
		// CAS lost against a concurrent extension; re-read and retry.
	}
	return nil, fmt.Errorf("expiry update for %s kept losing races", fingerprint)
}

// nextExpiry implements the extend-from-the-later-of-now-or-current-expiry
// rule: lapsed records extend from now, active ones from their current expiry.
func nextExpiry(current *time.Time, now time.Time, d time.Duration) time.Time {
	base := now
	if current != nil && current.After(now) {
		base = *current
	}
	return base.Add(d)
}
