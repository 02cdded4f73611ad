package models

import "time"

// SupporterEvent is one normalized support occurrence pulled from the Buy Me a
// Coffee feed. The table is an append-only log; rows are never mutated after
// insert. Raw keeps the original payload for audit and debugging.
type SupporterEvent struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	SupporterID string     `gorm:"type:varchar(64);index" json:"supporter_id"`
	OccurredAt  *time.Time `gorm:"type:timestamp;index" json:"occurred_at"`
	Email       string     `gorm:"type:varchar(255);index" json:"email"`
	Name        string     `gorm:"type:varchar(255)" json:"name"`
	Amount      float64    `json:"amount"`
	Currency    string     `gorm:"type:varchar(8)" json:"currency"`
	Note        string     `gorm:"type:text" json:"note"`
	Raw         string     `gorm:"type:longtext" json:"raw"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (SupporterEvent) TableName() string {
	return "bmc_supporter_events"
}
