package models

import "strings"

// Canonical client-facing projection of a session. Every surface (customer
// polling, admin dashboards) uses this one shape: lowercase enum strings,
// epoch-millisecond timestamps, a single possibly-absent order.

type SessionView struct {
	ID           uint              `json:"id"`
	TableID      uint              `json:"tableId"`
	TableNumber  string            `json:"tableNumber"`
	RestaurantID uint              `json:"restaurantId"`
	Status       string            `json:"status"`
	StartTime    int64             `json:"startTime"`
	EndTime      *int64            `json:"endTime,omitempty"`
	Consumers    []ConsumerView    `json:"consumers"`
	Order        *OrderView        `json:"order,omitempty"`
	ServiceCalls []ServiceCallView `json:"serviceCalls"`
}

type ConsumerView struct {
	ID        uint   `json:"id"`
	SessionID uint   `json:"sessionId"`
	Name      string `json:"name"`
	IsGuest   bool   `json:"isGuest"`
}

type OrderView struct {
	ID        uint            `json:"id"`
	SessionID uint            `json:"sessionId"`
	Status    string          `json:"status"`
	Items     []OrderItemView `json:"items"`
	CreatedAt int64           `json:"createdAt"`
}

type OrderItemView struct {
	ID          uint        `json:"id"`
	ProductID   uint        `json:"productId"`
	Product     ProductView `json:"product"`
	Quantity    int         `json:"quantity"`
	UnitPrice   int64       `json:"unitPrice"`
	ConsumerIDs []uint      `json:"consumerIds"`
	Status      string      `json:"status"`
	Timestamp   int64       `json:"timestamp"`
}

type ProductView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	IsAvailable bool   `json:"isAvailable"`
}

type ServiceCallView struct {
	ID        uint   `json:"id"`
	SessionID *uint  `json:"sessionId,omitempty"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// BuildSessionView maps a session with preloaded table, consumers, order
// (items, products, attributions) and service calls into the canonical view.
func BuildSessionView(s *Session) SessionView {
	view := SessionView{
		ID:           s.ID,
		TableID:      s.TableID,
		TableNumber:  s.Table.Number,
		RestaurantID: s.Table.RestaurantID,
		Status:       strings.ToLower(s.Status),
		StartTime:    s.StartedAt.UnixMilli(),
		Consumers:    make([]ConsumerView, 0, len(s.Consumers)),
		ServiceCalls: make([]ServiceCallView, 0, len(s.ServiceCalls)),
	}

	if s.EndedAt != nil {
		end := s.EndedAt.UnixMilli()
		view.EndTime = &end
	}

	for _, consumer := range s.Consumers {
		view.Consumers = append(view.Consumers, ConsumerView{
			ID:        consumer.ID,
			SessionID: consumer.SessionID,
			Name:      consumer.Name,
			IsGuest:   true,
		})
	}

	if s.Order != nil {
		order := OrderView{
			ID:        s.Order.ID,
			SessionID: s.Order.SessionID,
			Status:    strings.ToLower(s.Order.Status),
			Items:     make([]OrderItemView, 0, len(s.Order.Items)),
			CreatedAt: s.Order.CreatedAt.UnixMilli(),
		}
		for _, item := range s.Order.Items {
			order.Items = append(order.Items, BuildOrderItemView(&item))
		}
		view.Order = &order
	}

	for _, call := range s.ServiceCalls {
		view.ServiceCalls = append(view.ServiceCalls, ServiceCallView{
			ID:        call.ID,
			SessionID: call.SessionID,
			Type:      strings.ToLower(call.Type),
			Status:    strings.ToLower(call.Status),
			Timestamp: call.CreatedAt.UnixMilli(),
		})
	}

	return view
}

func BuildOrderItemView(item *OrderItem) OrderItemView {
	consumerIDs := make([]uint, 0, len(item.Consumers))
	for _, attribution := range item.Consumers {
		consumerIDs = append(consumerIDs, attribution.ConsumerID)
	}

	image := ""
	if item.Product.ImageURL != nil {
		image = *item.Product.ImageURL
	}

	return OrderItemView{
		ID:        item.ID,
		ProductID: item.ProductID,
		Product: ProductView{
			ID:          item.Product.ID,
			Name:        item.Product.Name,
			Description: item.Product.Description,
			Price:       item.Product.Price,
			Image:       image,
			IsAvailable: item.Product.IsAvailable,
		},
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		ConsumerIDs: consumerIDs,
		Status:      strings.ToLower(item.Status),
		Timestamp:   item.CreatedAt.UnixMilli(),
	}
}
