package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mozoqr/mozo-app/models"
	"github.com/mozoqr/mozo-app/utils"
)

// SessionService drives the table-session state machine:
// ACTIVE -> PAYMENT_PENDING -> CLOSED, or ACTIVE -> CLOSED directly.
// No transition leaves CLOSED.
type SessionService struct {
	db     *gorm.DB
	events EventPublisher
}

func NewSessionService(db *gorm.DB, events EventPublisher) *SessionService {
	return &SessionService{db: db, events: events}
}

// StartOrJoin starts a visit at a table, or joins the one already running.
// The check-then-act runs inside one transaction with the table row locked,
// so two concurrent first joins cannot both create a session.
func (s *SessionService) StartOrJoin(tableID uint, consumerName string) (*models.Session, *models.Consumer, error) {
	var (
		session  models.Session
		consumer models.Consumer
		table    models.Table
		joined   bool
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundErr("Table not found")
			}
			return err
		}

		var live models.Session
		err := tx.Where("table_id = ? AND status IN ?", tableID,
			[]string{models.SessionActive, models.SessionPaymentPending}).
			First(&live).Error
		switch {
		case err == nil && live.Status == models.SessionPaymentPending:
			return utils.ConflictErr("Table is settling payment, not accepting new guests")
		case err == nil:
			// Shared table: join the running session.
			consumer = models.Consumer{
				SessionID: live.ID,
				Name:      consumerName,
				GuestKey:  uuid.NewString(),
				JoinedAt:  time.Now(),
			}
			if err := tx.Create(&consumer).Error; err != nil {
				return err
			}
			session = live
			joined = true
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if !table.IsEnabled {
			return utils.ConflictErr("Table is not available")
		}

		session = models.Session{
			TableID:   tableID,
			Status:    models.SessionActive,
			StartedAt: time.Now(),
		}
		if err := tx.Create(&session).Error; err != nil {
			return err
		}

		consumer = models.Consumer{
			SessionID: session.ID,
			Name:      consumerName,
			GuestKey:  uuid.NewString(),
			JoinedAt:  time.Now(),
		}
		return tx.Create(&consumer).Error
	})
	if err != nil {
		return nil, nil, err
	}

	if joined {
		s.events.Publish(table.RestaurantID, models.EventConsumerJoined, map[string]interface{}{
			"sessionId":  session.ID,
			"consumerId": consumer.ID,
			"name":       consumer.Name,
		})
	} else {
		s.events.Publish(table.RestaurantID, models.EventSessionStarted, map[string]interface{}{
			"sessionId":     session.ID,
			"tableId":       table.ID,
			"tableNumber":   table.Number,
			"firstConsumer": consumer.Name,
		})
	}

	return &session, &consumer, nil
}

// AddConsumer appends a named participant to an existing session. Joining
// is blocked on CLOSED and on PAYMENT_PENDING, matching the table-level
// start-or-join path.
func (s *SessionService) AddConsumer(sessionID uint, name string) (*models.Consumer, error) {
	var session models.Session
	if err := s.db.Preload("Table").First(&session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundErr("Session not found")
		}
		return nil, err
	}

	if session.Status == models.SessionClosed {
		return nil, utils.ConflictErr("Session is closed")
	}
	if session.Status == models.SessionPaymentPending {
		return nil, utils.ConflictErr("Table is settling payment, not accepting new guests")
	}

	consumer := models.Consumer{
		SessionID: sessionID,
		Name:      name,
		GuestKey:  uuid.NewString(),
		JoinedAt:  time.Now(),
	}
	if err := s.db.Create(&consumer).Error; err != nil {
		return nil, err
	}

	s.events.Publish(session.Table.RestaurantID, models.EventConsumerJoined, map[string]interface{}{
		"sessionId":  sessionID,
		"consumerId": consumer.ID,
		"name":       consumer.Name,
	})

	return &consumer, nil
}

// UpdateStatus moves the session to a new status. Setting CLOSED stamps
// EndedAt and emits SESSION_CLOSED with the visit duration; the other
// transitions emit nothing.
func (s *SessionService) UpdateStatus(sessionID uint, status string) (*models.Session, error) {
	if !models.ValidSessionStatus(status) {
		return nil, utils.InvalidStateErr("Invalid session status: %s", status)
	}

	var session models.Session
	if err := s.db.Preload("Table").First(&session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundErr("Session not found")
		}
		return nil, err
	}

	if session.Status == models.SessionClosed {
		return nil, utils.ConflictErr("Session is closed")
	}

	session.Status = status
	if status == models.SessionClosed {
		now := time.Now()
		session.EndedAt = &now
	}
	if err := s.db.Save(&session).Error; err != nil {
		return nil, err
	}

	if status == models.SessionClosed {
		s.events.Publish(session.Table.RestaurantID, models.EventSessionClosed, map[string]interface{}{
			"sessionId":   session.ID,
			"tableNumber": session.Table.Number,
			"duration":    session.EndedAt.UnixMilli() - session.StartedAt.UnixMilli(),
		})
	}

	return &session, nil
}

// GetSessionDetail loads a session with everything the canonical view
// needs: table, consumers in join order, the order with items, products and
// attributions, and service calls newest first.
func (s *SessionService) GetSessionDetail(sessionID uint) (*models.Session, error) {
	var session models.Session
	err := s.db.
		Preload("Table").
		Preload("Consumers", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at asc")
		}).
		Preload("Order").
		Preload("Order.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc")
		}).
		Preload("Order.Items.Product").
		Preload("Order.Items.Consumers").
		Preload("ServiceCalls", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc")
		}).
		First(&session, sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundErr("Session not found")
		}
		return nil, err
	}
	return &session, nil
}
