package models

import "time"

type Restaurant struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Slug     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Timezone string `gorm:"type:varchar(64);not null;default:'America/Argentina/Buenos_Aires'" json:"timezone"`
	OwnerID  uint   `gorm:"not null;index" json:"owner_id"`
	Owner    User   `gorm:"foreignKey:OwnerID" json:"-"`

	Categories []Category `gorm:"foreignKey:RestaurantID" json:"categories,omitempty"`
	Tables     []Table    `gorm:"foreignKey:RestaurantID" json:"tables,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
