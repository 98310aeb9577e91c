package models

import "time"

// Domain event types. The log is append-only and restaurant-scoped; it
// backs the admin notification feed and the audit trail.
const (
	EventSessionStarted = "SESSION_STARTED"
	EventConsumerJoined = "CONSUMER_JOINED"
	EventOrderPlaced    = "ORDER_PLACED"
	EventItemShared     = "ITEM_SHARED"
	EventWaiterCalled   = "WAITER_CALLED"
	EventBillRequested  = "BILL_REQUESTED"
	EventSessionClosed  = "SESSION_CLOSED"
	EventProductCreated = "PRODUCT_CREATED"
	EventProductUpdated = "PRODUCT_UPDATED"
	EventTableCreated   = "TABLE_CREATED"
)

type DomainEvent struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	EventType    string    `gorm:"type:varchar(50);not null" json:"event_type"`
	Payload      string    `gorm:"type:text" json:"payload"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}
