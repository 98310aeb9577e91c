package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mozoqr/mozo-app/models"
	"github.com/mozoqr/mozo-app/services"
	"github.com/mozoqr/mozo-app/utils"
)

type SessionController struct {
	DB       *gorm.DB
	Sessions *services.SessionService
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{
		DB:       db,
		Sessions: services.NewSessionService(db, services.NewEventService(db)),
	}
}

// StartOrJoinSession -> a consumer scans the table QR and either starts a
// new visit or joins the one already running at that table.
func (sc *SessionController) StartOrJoinSession(c *gin.Context) {
	tableID, ok := parseID(c, "table_id")
	if !ok {
		return
	}

	var req struct {
		ConsumerName string `json:"consumer_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, consumer, err := sc.Sessions.StartOrJoin(tableID, req.ConsumerName)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	detail, err := sc.Sessions.GetSessionDetail(session.ID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Session joined", gin.H{
		"session":  models.BuildSessionView(detail),
		"consumer": consumer,
	})
}

// GetSessionByID -> the canonical session view
func (sc *SessionController) GetSessionByID(c *gin.Context) {
	sessionID, ok := parseID(c, "session_id")
	if !ok {
		return
	}

	session, err := sc.Sessions.GetSessionDetail(sessionID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session detail", models.BuildSessionView(session))
}

// AddConsumer -> join by session id
func (sc *SessionController) AddConsumer(c *gin.Context) {
	sessionID, ok := parseID(c, "session_id")
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	consumer, err := sc.Sessions.AddConsumer(sessionID, req.Name)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Consumer added", consumer)
}

// UpdateSessionStatus -> staff moves the session along its lifecycle
func (sc *SessionController) UpdateSessionStatus(c *gin.Context) {
	sessionID, ok := parseID(c, "session_id")
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

	session, err := sc.Sessions.UpdateStatus(sessionID, req.Status)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session status updated", session)
}
