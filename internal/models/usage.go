package models

import (
	"gorm.io/gorm"
)

// UsageRecord captures the credit accounting returned with each API call.
// One row per request; balances are snapshots, not aggregates.
type UsageRecord struct {
	gorm.Model
	Endpoint               string `gorm:"not null;index" json:"endpoint"`
	Query                  string `json:"query"`
	Location               string `json:"location,omitempty"`
	Success                bool   `gorm:"not null" json:"success"`
	CreditsUsed            uint   `json:"credits_used"`
	CreditsUsedThisRequest uint   `json:"credits_used_this_request"`
	CreditsRemaining       uint   `json:"credits_remaining"`
	CreditsResetAt         string `json:"credits_reset_at,omitempty"`
}

func (UsageRecord) TableName() string {
	return "usage_records"
}
