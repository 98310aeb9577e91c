package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mozoqr/mozo-app/models"
	"github.com/mozoqr/mozo-app/services"
	"github.com/mozoqr/mozo-app/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:     db,
		Orders: services.NewOrderService(db, services.NewEventService(db)),
	}
}

// AddOrderItems -> append a batch of items to the session's running order.
// The batch is all-or-nothing.
func (oc *OrderController) AddOrderItems(c *gin.Context) {
	sessionID, ok := parseID(c, "session_id")
	if !ok {
		return
	}

	var req struct {
		Items []services.OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, items, err := oc.Orders.AddItems(sessionID, req.Items)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	views := make([]models.OrderItemView, 0, len(items))
	for i := range items {
		views = append(views, models.BuildOrderItemView(&items[i]))
	}

	utils.RespondJSON(c, http.StatusCreated, "Order items added", gin.H{
		"order": order,
		"items": views,
	})
}

// GetSessionTotals -> the per-consumer split of the bill
func (oc *OrderController) GetSessionTotals(c *gin.Context) {
	sessionID, ok := parseID(c, "session_id")
	if !ok {
		return
	}

	totals, err := oc.Orders.ComputeTotals(sessionID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session totals", totals)
}

// GetOrderByID -> order detail with items newest first
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	var order models.Order
	if err := oc.DB.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc")
		}).
		Preload("Items.Product").
		Preload("Items.Consumers.Consumer").
		First(&order, orderID).Error; err != nil {
		utils.RespondDomainError(c, utils.NotFoundErr("Order not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> staff opens/closes the running order, independent of
// the session status.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		utils.RespondDomainError(c, utils.InvalidStateErr("Invalid order status: %s", req.Status))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondDomainError(c, utils.NotFoundErr("Order not found"))
		return
	}

	order.Status = req.Status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// UpdateOrderItemStatus -> kitchen workflow on one item
func (oc *OrderController) UpdateOrderItemStatus(c *gin.Context) {
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidOrderItemStatus(req.Status) {
		utils.RespondDomainError(c, utils.InvalidStateErr("Invalid item status: %s", req.Status))
		return
	}

	var item models.OrderItem
	if err := oc.DB.First(&item, itemID).Error; err != nil {
		utils.RespondDomainError(c, utils.NotFoundErr("Order item not found"))
		return
	}

	item.Status = req.Status
	if err := oc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order item status updated", item)
}
