package controllers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mozoqr/mozo-app/models"
	"github.com/mozoqr/mozo-app/utils"
)

// AdminController serves the read-only dashboard projections: live
// sessions with computed totals, the notification feed and sales metrics.
type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// EnrichedSessionView is the canonical session view plus the dashboard
// aggregates.
type EnrichedSessionView struct {
	models.SessionView
	TotalAmount       int64 `json:"totalAmount"`
	PendingCallsCount int   `json:"pendingCallsCount"`
}

// NotificationView is one entry of the admin notification feed.
type NotificationView struct {
	ID        uint   `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	SessionID *uint  `json:"sessionId,omitempty"`
	TableID   string `json:"tableId"`
	Timestamp int64  `json:"timestamp"`
	Read      bool   `json:"read"`
	Status    string `json:"status"`
}

// GetActiveSessions -> every ACTIVE or PAYMENT_PENDING session on the
// restaurant's tables, newest first.
func (ac *AdminController) GetActiveSessions(c *gin.Context) {
	restaurantID, ok := restaurantScope(c)
	if !ok {
		return
	}

	sessions, err := ac.loadSessions(restaurantID, func(db *gorm.DB) *gorm.DB {
		return db.Where("sessions.status IN ?", []string{models.SessionActive, models.SessionPaymentPending})
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Active sessions", ac.enrich(sessions))
}

// GetSessionsByDate -> sessions of any status whose visit started in the
// requested window (defaults to today), for historical reporting.
func (ac *AdminController) GetSessionsByDate(c *gin.Context) {
	restaurantID, ok := restaurantScope(c)
	if !ok {
		return
	}

	from, to, err := dateRange(c)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	sessions, err := ac.loadSessions(restaurantID, func(db *gorm.DB) *gorm.DB {
		return db.Where("sessions.started_at BETWEEN ? AND ?", from, to)
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Sessions by date", ac.enrich(sessions))
}

// GetNotifications -> without a date range: pending calls only, the live
// feed. With from/to: every call in the window flagged read/unread, the
// audit view.
func (ac *AdminController) GetNotifications(c *gin.Context) {
	restaurantID, ok := restaurantScope(c)
	if !ok {
		return
	}

	query := ac.DB.
		Preload("Session.Table").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at desc")

	if c.Query("from") != "" && c.Query("to") != "" {
		from, to, err := dateRange(c)
		if err != nil {
			utils.RespondDomainError(c, err)
			return
		}
		query = query.Where("created_at BETWEEN ? AND ?", from, to)
	} else {
		query = query.Where("status = ?", models.CallPending)
	}

	var calls []models.ServiceCall
	if err := query.Find(&calls).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	notifications := make([]NotificationView, 0, len(calls))
	for _, call := range calls {
		notifications = append(notifications, buildNotification(call))
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications", notifications)
}

func buildNotification(call models.ServiceCall) NotificationView {
	var message, tableID string
	if call.Session != nil && call.Session.Table.ID != 0 {
		tableID = call.Session.Table.Number
		if call.Type == models.CallBill {
			message = "Mesa " + tableID + " solicita la cuenta"
		} else {
			message = "Mesa " + tableID + " solicita mozo"
		}
	} else {
		tableID = "Entrada"
		message = "Cliente en Entrada solicita mozo"
	}

	return NotificationView{
		ID:        call.ID,
		Type:      strings.ToLower(call.Type),
		Message:   message,
		SessionID: call.SessionID,
		TableID:   tableID,
		Timestamp: call.CreatedAt.UnixMilli(),
		Read:      call.Status == models.CallResolved,
		Status:    strings.ToLower(call.Status),
	}
}

// GetMetrics -> revenue, order count, average ticket and top-5 products by
// quantity sold, derived from the session/order rows in the window.
func (ac *AdminController) GetMetrics(c *gin.Context) {
	restaurantID, ok := restaurantScope(c)
	if !ok {
		return
	}

	from, to, err := dateRange(c)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	sessions, err := ac.loadSessions(restaurantID, func(db *gorm.DB) *gorm.DB {
		return db.Where("sessions.started_at BETWEEN ? AND ?", from, to)
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type productSales struct {
		ProductID uint   `json:"productId"`
		Name      string `json:"name"`
		Quantity  int    `json:"quantity"`
		Revenue   int64  `json:"revenue"`
	}

	var totalRevenue int64
	var totalOrders int
	sales := make(map[uint]*productSales)

	for _, session := range sessions {
		if session.Order == nil {
			continue
		}
		totalOrders++
		for _, item := range session.Order.Items {
			itemTotal := item.UnitPrice * int64(item.Quantity)
			totalRevenue += itemTotal

			entry, exists := sales[item.ProductID]
			if !exists {
				entry = &productSales{ProductID: item.ProductID, Name: item.Product.Name}
				sales[item.ProductID] = entry
			}
			entry.Quantity += item.Quantity
			entry.Revenue += itemTotal
		}
	}

	topProducts := make([]productSales, 0, len(sales))
	for _, entry := range sales {
		topProducts = append(topProducts, *entry)
	}
	sort.Slice(topProducts, func(i, j int) bool {
		if topProducts[i].Quantity != topProducts[j].Quantity {
			return topProducts[i].Quantity > topProducts[j].Quantity
		}
		return topProducts[i].Revenue > topProducts[j].Revenue
	})
	if len(topProducts) > 5 {
		topProducts = topProducts[:5]
	}

	var averageTicket int64
	if totalOrders > 0 {
		averageTicket = totalRevenue / int64(totalOrders)
	}

	utils.RespondJSON(c, http.StatusOK, "Metrics", gin.H{
		"totalRevenue":  totalRevenue,
		"totalOrders":   totalOrders,
		"averageTicket": averageTicket,
		"topProducts":   topProducts,
	})
}

func (ac *AdminController) loadSessions(restaurantID uint, filter func(*gorm.DB) *gorm.DB) ([]models.Session, error) {
	var sessions []models.Session
	err := filter(ac.DB.
		Joins("JOIN tables ON tables.id = sessions.table_id").
		Where("tables.restaurant_id = ?", restaurantID)).
		Preload("Table").
		Preload("Consumers", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at asc")
		}).
		Preload("Order").
		Preload("Order.Items").
		Preload("Order.Items.Product").
		Preload("Order.Items.Consumers").
		Preload("ServiceCalls").
		Order("sessions.started_at desc").
		Find(&sessions).Error
	return sessions, err
}

func (ac *AdminController) enrich(sessions []models.Session) []EnrichedSessionView {
	views := make([]EnrichedSessionView, 0, len(sessions))
	for i := range sessions {
		session := &sessions[i]

		var total int64
		if session.Order != nil {
			for _, item := range session.Order.Items {
				total += item.UnitPrice * int64(item.Quantity)
			}
		}

		pending := 0
		for _, call := range session.ServiceCalls {
			if call.Status == models.CallPending {
				pending++
			}
		}

		views = append(views, EnrichedSessionView{
			SessionView:       models.BuildSessionView(session),
			TotalAmount:       total,
			PendingCallsCount: pending,
		})
	}
	return views
}
