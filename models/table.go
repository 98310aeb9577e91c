package models

import "time"

// Table invariant: at most one session in ACTIVE or PAYMENT_PENDING per
// table. Enforced with a locked check-then-act in services.SessionService.
type Table struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	RestaurantID uint   `gorm:"not null;index" json:"restaurant_id"`
	Number       string `gorm:"type:varchar(50);not null" json:"number"`
	IsEnabled    bool   `gorm:"not null" json:"is_enabled"`
	QRKey        string `gorm:"type:varchar(64);uniqueIndex" json:"qr_key"`

	Sessions []Session `gorm:"foreignKey:TableID" json:"sessions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
