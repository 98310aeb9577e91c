package models

import "time"

// Consumer is a named participant within exactly one session. There are no
// persistent customer accounts, so every consumer is a guest.
type Consumer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID uint      `gorm:"not null;index" json:"session_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	GuestKey  string    `gorm:"type:varchar(64)" json:"guest_key"`
	JoinedAt  time.Time `gorm:"not null" json:"joined_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
