package models

import "time"

// Order statuses (staff-settable, independent of session status).
const (
	OrderOpen   = "OPEN"
	OrderClosed = "CLOSED"
)

func ValidOrderStatus(status string) bool {
	return status == OrderOpen || status == OrderClosed
}

// Order is the single running cart of a session, created lazily on the
// first item addition.
type Order struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	SessionID uint   `gorm:"not null;uniqueIndex" json:"session_id"`
	Status    string `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
