package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mozoqr/mozo-app/models"
	"github.com/mozoqr/mozo-app/services"
	"github.com/mozoqr/mozo-app/utils"
)

type ServiceCallController struct {
	DB     *gorm.DB
	Events services.EventPublisher
}

func NewServiceCallController(db *gorm.DB) *ServiceCallController {
	return &ServiceCallController{DB: db, Events: services.NewEventService(db)}
}

// CreateServiceCall -> a table raises a waiter/bill call. A BILL call also
// drives the session to PAYMENT_PENDING.
func (scc *ServiceCallController) CreateServiceCall(c *gin.Context) {
	sessionID, ok := parseID(c, "session_id")
	if !ok {
		return
	}

	var req struct {
		Type string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidServiceCallType(req.Type) {
		utils.RespondDomainError(c, utils.InvalidStateErr("Invalid service call type: %s", req.Type))
		return
	}

	var session models.Session
	if err := scc.DB.Preload("Table").First(&session, sessionID).Error; err != nil {
		utils.RespondDomainError(c, utils.NotFoundErr("Session not found"))
		return
	}
	if session.Status == models.SessionClosed {
		utils.RespondDomainError(c, utils.ConflictErr("Session is closed"))
		return
	}

	call := models.ServiceCall{
		SessionID:    &session.ID,
		RestaurantID: session.Table.RestaurantID,
		Type:         req.Type,
		Status:       models.CallPending,
	}
	if err := scc.DB.Create(&call).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if req.Type == models.CallBill {
		if err := scc.DB.Model(&session).Update("status", models.SessionPaymentPending).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		scc.Events.Publish(session.Table.RestaurantID, models.EventBillRequested, map[string]interface{}{
			"sessionId":   session.ID,
			"tableNumber": session.Table.Number,
		})
	} else {
		scc.Events.Publish(session.Table.RestaurantID, models.EventWaiterCalled, map[string]interface{}{
			"sessionId":   session.ID,
			"tableNumber": session.Table.Number,
		})
	}

	utils.RespondJSON(c, http.StatusCreated, "Service call created", call)
}

// CreateEntranceCall -> raised at the door with no session; scoped to the
// restaurant and never touches any session status.
func (scc *ServiceCallController) CreateEntranceCall(c *gin.Context) {
	restaurantID, ok := parseID(c, "restaurant_id")
	if !ok {
		return
	}

	var req struct {
		Type string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Type == "" {
		req.Type = models.CallWaiter
	}
	if !models.ValidServiceCallType(req.Type) {
		utils.RespondDomainError(c, utils.InvalidStateErr("Invalid service call type: %s", req.Type))
		return
	}

	var restaurant models.Restaurant
	if err := scc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondDomainError(c, utils.NotFoundErr("Restaurant not found"))
		return
	}

	call := models.ServiceCall{
		RestaurantID: restaurantID,
		Type:         req.Type,
		Status:       models.CallPending,
	}
	if err := scc.DB.Create(&call).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	scc.Events.Publish(restaurantID, models.EventWaiterCalled, map[string]interface{}{
		"location": "Entrance",
		"callId":   call.ID,
	})

	utils.RespondJSON(c, http.StatusCreated, "Service call created", call)
}

// ResolveServiceCall -> mark resolved. Resolving twice keeps the original
// ResolvedAt; it never moves. No cascade back to the session status.
func (scc *ServiceCallController) ResolveServiceCall(c *gin.Context) {
	callID, ok := parseID(c, "call_id")
	if !ok {
		return
	}

	var call models.ServiceCall
	if err := scc.DB.First(&call, callID).Error; err != nil {
		utils.RespondDomainError(c, utils.NotFoundErr("Service call not found"))
		return
	}

	if call.Status != models.CallResolved {
		now := time.Now()
		call.Status = models.CallResolved
		call.ResolvedAt = &now
		if err := scc.DB.Save(&call).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Service call resolved", call)
}
