package models

import "time"

type Category struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	RestaurantID uint    `gorm:"not null;index" json:"restaurant_id"`
	Name         string  `gorm:"type:varchar(100);not null" json:"name"`
	DisplayOrder int     `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool    `gorm:"not null" json:"is_active"`
	ImageURL     *string `gorm:"type:varchar(255)" json:"image_url,omitempty"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
