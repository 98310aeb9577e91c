package models

import "time"

// Session statuses. CLOSED is terminal: a closed session accepts no
// further mutation and is kept as the durable record of the visit.
const (
	SessionActive         = "ACTIVE"
	SessionPaymentPending = "PAYMENT_PENDING"
	SessionClosed         = "CLOSED"
)

func ValidSessionStatus(status string) bool {
	switch status {
	case SessionActive, SessionPaymentPending, SessionClosed:
		return true
	}
	return false
}

type Session struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	TableID   uint       `gorm:"not null;index" json:"table_id"`
	Table     Table      `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Status    string     `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	StartedAt time.Time  `gorm:"not null" json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`

	Consumers    []Consumer    `gorm:"foreignKey:SessionID" json:"consumers,omitempty"`
	Order        *Order        `gorm:"foreignKey:SessionID" json:"order,omitempty"`
	ServiceCalls []ServiceCall `gorm:"foreignKey:SessionID" json:"service_calls,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsLive reports whether the session still occupies its table.
func (s *Session) IsLive() bool {
	return s.Status == SessionActive || s.Status == SessionPaymentPending
}
