package quota

import (
	"time"

	"github.com/progen-app/progen/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides DB operations used by the quota service.
type Repository interface {
	GetUsageByFingerprint(fingerprint string) (*models.UsageRecord, error)
	GetUsageByEmail(email string) (*models.UsageRecord, error)
	CreateUsage(rec *models.UsageRecord) error
	// UpdateExpiry writes the new expiry only when the stored expiry still
	// matches expected (compare-and-swap). Returns false when another writer
	// got there first.
	UpdateExpiry(fingerprint string, expected *time.Time, next time.Time, markSupporter bool) (bool, error)
	TouchLastCreated(fingerprint string, at time.Time) error
	CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error)
	MarkWebhookProcessed(id uint, processingError string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a quota repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetUsageByFingerprint(fingerprint string) (*models.UsageRecord, error) {
	var rec models.UsageRecord
	if err := r.db.Where("fingerprint = ?", fingerprint).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *gormRepository) GetUsageByEmail(email string) (*models.UsageRecord, error) {
	var rec models.UsageRecord
	err := r.db.Where("email = ?", email).Order("updated_at DESC").First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *gormRepository) CreateUsage(rec *models.UsageRecord) error {
	return r.db.Create(rec).Error
}

func (r *gormRepository) UpdateExpiry(fingerprint string, expected *time.Time, next time.Time, markSupporter bool) (bool, error) {
	updates := map[string]interface{}{"expiry_date": next}
	if markSupporter {
		updates["is_supporter"] = true
	}

	q := r.db.Model(&models.UsageRecord{}).Where("fingerprint = ?", fingerprint)
	if expected == nil {
		q = q.Where("expiry_date IS NULL")
	} else {
		q = q.Where("expiry_date = ?", *expected)
	}

	tx := q.Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *gormRepository) TouchLastCreated(fingerprint string, at time.Time) error {
	return r.db.Model(&models.UsageRecord{}).
		Where("fingerprint = ?", fingerprint).
		Update("last_created", at).Error
}

func (r *gormRepository) CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_event_id"},
		},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.WebhookEvent
	if err := r.db.Where("provider = ? AND provider_event_id = ?", event.Provider, event.ProviderEventID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *gormRepository) MarkWebhookProcessed(id uint, processingError string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"processed_at":     &now,
		"processing_error": processingError,
	}
	return r.db.Model(&models.WebhookEvent{}).Where("id = ?", id).Updates(updates).Error
}
