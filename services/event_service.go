package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/mozoqr/mozo-app/models"
	"github.com/mozoqr/mozo-app/utils"
)

// EventPublisher records domain occurrences keyed by restaurant. Publishing
// is best-effort: a failed write is logged and never propagated, so a
// notification failure can never roll back a committed business change.
type EventPublisher interface {
	Publish(restaurantID uint, eventType string, payload map[string]interface{})
}

// EventService persists domain events to the restaurant-scoped append-only
// log that backs the admin notification feed.
type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

func (s *EventService) Publish(restaurantID uint, eventType string, payload map[string]interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to encode domain event %s: %v", eventType, err)
		return
	}

	event := models.DomainEvent{
		RestaurantID: restaurantID,
		EventType:    eventType,
		Payload:      string(raw),
	}

	if err := s.db.Create(&event).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to publish domain event %s: %v", eventType, err)
	}
}
