package models

import (
	"time"
)

// Customer is one row of the operator's customer directory.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Phone     string    `gorm:"type:varchar(32);not null;index" json:"phone"`
	Area      string    `gorm:"type:varchar(255);not null;index" json:"area"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	AccountID string    `gorm:"type:varchar(64);not null" json:"account_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// SendAudit is one audit row per live send attempt.
type SendAudit struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	AttemptID       string    `gorm:"type:varchar(36);uniqueIndex" json:"attempt_id"`
	Area            string    `gorm:"type:varchar(255);not null" json:"area"`
	Channel         string    `gorm:"type:varchar(20);not null" json:"channel"`
	Count           int       `json:"count"`
	Sent            int       `json:"sent"`
	Failed          int       `json:"failed"`
	Fingerprint     string    `gorm:"type:varchar(16)" json:"fingerprint"`
	MsgType         string    `gorm:"type:varchar(20)" json:"msg_type"`
	ETA             string    `gorm:"type:varchar(20)" json:"eta"`
	PricingCategory string    `gorm:"type:varchar(50)" json:"pricing_category"`
	UnitPrice       float64   `json:"unit_price"`
	EstimatedCost   float64   `json:"estimated_cost"`
	Currency        string    `gorm:"type:varchar(10)" json:"currency"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (SendAudit) TableName() string {
	return "send_audits"
}
