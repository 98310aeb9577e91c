package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mozoqr/mozo-app/models"
	"github.com/mozoqr/mozo-app/utils"
)

// OrderService accumulates items against a session's single open order and
// computes the proportional split of the bill across consumers.
type OrderService struct {
	db     *gorm.DB
	events EventPublisher
}

func NewOrderService(db *gorm.DB, events EventPublisher) *OrderService {
	return &OrderService{db: db, events: events}
}

// OrderItemRequest is one line of an AddItems batch.
type OrderItemRequest struct {
	ProductID   uint   `json:"product_id" binding:"required"`
	Quantity    int    `json:"quantity"`
	ConsumerIDs []uint `json:"consumer_ids" binding:"required,min=1"`
}

// AddItems appends the batch to the session's order, creating the order
// lazily. The whole batch is one transaction: a failure on any line (missing
// or unavailable product) leaves nothing behind. Each item captures the
// product's current price as its unit price.
func (s *OrderService) AddItems(sessionID uint, requests []OrderItemRequest) (*models.Order, []models.OrderItem, error) {
	if len(requests) == 0 {
		return nil, nil, utils.ValidationErr("At least one item is required")
	}
	for _, req := range requests {
		if len(req.ConsumerIDs) == 0 {
			return nil, nil, utils.ValidationErr("Each item needs at least one consumer")
		}
	}

	var (
		session models.Session
		order   models.Order
		created []models.OrderItem
		shared  []map[string]interface{}
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Table").First(&session, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundErr("Session not found")
			}
			return err
		}

		if session.Status == models.SessionClosed {
			return utils.ConflictErr("Session is closed")
		}
		if session.Status == models.SessionPaymentPending {
			return utils.ConflictErr("Cannot add items after requesting bill")
		}

		// Every attribution must point at a consumer of this session,
		// otherwise the totals would no longer add up to the session total.
		var memberIDs []uint
		if err := tx.Model(&models.Consumer{}).
			Where("session_id = ?", sessionID).
			Pluck("id", &memberIDs).Error; err != nil {
			return err
		}
		members := make(map[uint]bool, len(memberIDs))
		for _, id := range memberIDs {
			members[id] = true
		}
		for _, req := range requests {
			for _, consumerID := range req.ConsumerIDs {
				if !members[consumerID] {
					return utils.NotFoundErr("Consumer %d is not part of this session", consumerID)
				}
			}
		}

		err := tx.Where("session_id = ?", sessionID).First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			order = models.Order{SessionID: sessionID, Status: models.OrderOpen}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		for _, req := range requests {
			var product models.Product
			if err := tx.First(&product, req.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return utils.NotFoundErr("Product %d not found", req.ProductID)
				}
				return err
			}
			if !product.IsAvailable {
				return utils.ConflictErr("Product %s is not available", product.Name)
			}

			quantity := req.Quantity
			if quantity <= 0 {
				quantity = 1
			}

			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  quantity,
				UnitPrice: product.Price,
				Status:    models.ItemPending,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			for _, consumerID := range req.ConsumerIDs {
				attribution := models.OrderItemConsumer{
					OrderItemID: item.ID,
					ConsumerID:  consumerID,
				}
				if err := tx.Create(&attribution).Error; err != nil {
					return err
				}
				item.Consumers = append(item.Consumers, attribution)
			}

			item.Product = product
			created = append(created, item)

			if len(req.ConsumerIDs) > 1 {
				shared = append(shared, map[string]interface{}{
					"orderItemId":   item.ID,
					"productId":     product.ID,
					"productName":   product.Name,
					"consumerCount": len(req.ConsumerIDs),
				})
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	// Events go out only after the batch committed.
	restaurantID := session.Table.RestaurantID
	for _, payload := range shared {
		s.events.Publish(restaurantID, models.EventItemShared, payload)
	}
	s.events.Publish(restaurantID, models.EventOrderPlaced, map[string]interface{}{
		"sessionId":   sessionID,
		"orderId":     order.ID,
		"itemCount":   len(created),
		"tableNumber": session.Table.Number,
	})

	return &order, created, nil
}

// ConsumerTotal is one consumer's share of the session bill.
type ConsumerTotal struct {
	ConsumerID uint            `json:"consumerId"`
	Name       string          `json:"name"`
	Total      int64           `json:"total"`
	Items      []ConsumerShare `json:"items"`
}

// ConsumerShare is one breakdown line in a consumer's total.
type ConsumerShare struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	SharePrice  int64  `json:"sharePrice"`
	IsShared    bool   `json:"isShared"`
}

// SessionTotals is the full split of a session's bill.
type SessionTotals struct {
	SessionTotal   int64           `json:"sessionTotal"`
	ConsumerTotals []ConsumerTotal `json:"consumerTotals"`
}

// ComputeTotals splits every item's cost evenly across its attributed
// consumers with the largest-remainder rule, so each item's shares sum back
// to exactly unitPrice*quantity and the session total is the plain sum over
// items. Consumers with no items still appear with total 0.
func (s *OrderService) ComputeTotals(sessionID uint) (*SessionTotals, error) {
	var session models.Session
	err := s.db.
		Preload("Consumers", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at asc")
		}).
		Preload("Order").
		Preload("Order.Items").
		Preload("Order.Items.Product").
		Preload("Order.Items.Consumers").
		First(&session, sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundErr("Session not found")
		}
		return nil, err
	}

	totals := &SessionTotals{
		ConsumerTotals: make([]ConsumerTotal, 0, len(session.Consumers)),
	}

	index := make(map[uint]*ConsumerTotal, len(session.Consumers))
	for _, consumer := range session.Consumers {
		totals.ConsumerTotals = append(totals.ConsumerTotals, ConsumerTotal{
			ConsumerID: consumer.ID,
			Name:       consumer.Name,
			Items:      []ConsumerShare{},
		})
		index[consumer.ID] = &totals.ConsumerTotals[len(totals.ConsumerTotals)-1]
	}

	if session.Order == nil {
		return totals, nil
	}

	for _, item := range session.Order.Items {
		itemTotal := item.UnitPrice * int64(item.Quantity)
		totals.SessionTotal += itemTotal

		splitCount := len(item.Consumers)
		if splitCount == 0 {
			continue
		}
		shares := utils.SplitEven(itemTotal, splitCount)
		isShared := splitCount > 1

		for i, attribution := range item.Consumers {
			entry, ok := index[attribution.ConsumerID]
			if !ok {
				continue
			}
			entry.Total += shares[i]
			entry.Items = append(entry.Items, ConsumerShare{
				ProductName: item.Product.Name,
				Quantity:    item.Quantity,
				SharePrice:  shares[i],
				IsShared:    isShared,
			})
		}
	}

	return totals, nil
}
