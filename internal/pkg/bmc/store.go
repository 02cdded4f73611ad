package bmc

import (
	"errors"

	"gorm.io/gorm"

	"github.com/progen-app/progen/app/models"
)

type gormStore struct {
	db *gorm.DB
}

// NewStore returns the GORM-backed Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) LatestSyncState() (*models.SyncState, error) {
	var state models.SyncState
	err := s.db.Order("id DESC").First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *gormStore) AppendSyncState(state *models.SyncState) error {
	return s.db.Create(state).Error
}

func (s *gormStore) AppendSupporterEvent(event *models.SupporterEvent) error {
	return s.db.Create(event).Error
}
