package models

import "time"

// UsageRecord tracks the hosting window for one deployed portfolio, keyed by a
// client-derived browser fingerprint. The fingerprint is a soft identifier:
// collisions are possible and accepted. Rows are never deleted here; expiry is
// enforced by comparison at read time.
type UsageRecord struct {
	Fingerprint string     `gorm:"primaryKey;type:varchar(64)" json:"fingerprint"`
	Email       string     `gorm:"type:varchar(255);index;default:''" json:"email"`
	ExpiryDate  *time.Time `gorm:"type:timestamp;default:null" json:"expiry_date"`
	IsSupporter bool       `gorm:"default:false" json:"is_supporter"`
	LastCreated *time.Time `gorm:"type:timestamp;default:null" json:"last_created"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UsageRecord) TableName() string {
	return "usage_tracking"
}

// Lapsed reports whether the hosting window has passed at the given instant.
func (u *UsageRecord) Lapsed(now time.Time) bool {
	return u.ExpiryDate == nil || u.ExpiryDate.Before(now)
}
