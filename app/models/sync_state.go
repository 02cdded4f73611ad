package models

import "time"

// SyncState is the supporter-feed sync cursor. Rows are append-only; the
// newest row by id wins. LastSupporterISO is the timestamp of the most
// recently processed supporter event.
type SyncState struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	LastCursor       string     `gorm:"type:varchar(255)" json:"last_cursor"`
	LastSupporterISO *time.Time `gorm:"type:timestamp" json:"last_supporter_iso"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SyncState) TableName() string {
	return "bmc_sync_state"
}
