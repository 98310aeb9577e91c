package models

import "time"

// OrderItem kitchen statuses, independent of payment.
const (
	ItemPending   = "PENDING"
	ItemPreparing = "PREPARING"
	ItemServed    = "SERVED"
	ItemCancelled = "CANCELLED"
)

func ValidOrderItemStatus(status string) bool {
	switch status {
	case ItemPending, ItemPreparing, ItemServed, ItemCancelled:
		return true
	}
	return false
}

// OrderItem captures the product price at creation time; later price
// changes never alter already-placed items. Every item has at least one
// consumer attribution.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	Order     Order   `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"product"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice int64   `gorm:"not null" json:"unit_price"`
	Status    string  `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`

	Consumers []OrderItemConsumer `gorm:"foreignKey:OrderItemID" json:"consumers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItemConsumer is the attribution row between an item and one of the
// consumers sharing it.
type OrderItemConsumer struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	OrderItemID uint     `gorm:"not null;index:idx_item_consumer,unique" json:"order_item_id"`
	ConsumerID  uint     `gorm:"not null;index:idx_item_consumer,unique" json:"consumer_id"`
	Consumer    Consumer `gorm:"foreignKey:ConsumerID" json:"consumer,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
