package models

import "time"

// ServiceCall types and statuses.
const (
	CallWaiter = "WAITER"
	CallBill   = "BILL"
	CallOther  = "OTHER"

	CallPending  = "PENDING"
	CallResolved = "RESOLVED"
)

func ValidServiceCallType(t string) bool {
	switch t {
	case CallWaiter, CallBill, CallOther:
		return true
	}
	return false
}

// ServiceCall belongs to a session, or for entrance calls to the
// restaurant directly with no session.
type ServiceCall struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	SessionID    *uint      `gorm:"index" json:"session_id,omitempty"`
	Session      *Session   `gorm:"foreignKey:SessionID" json:"session,omitempty"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Type         string     `gorm:"type:varchar(20);not null" json:"type"`
	Status       string     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
