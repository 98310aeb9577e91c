package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mozoqr/mozo-app/models"
	"github.com/mozoqr/mozo-app/services"
	"github.com/mozoqr/mozo-app/utils"
)

type TableController struct {
	DB     *gorm.DB
	Events services.EventPublisher
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db, Events: services.NewEventService(db)}
}

// CreateTable -> single table with a fresh QR key
func (tc *TableController) CreateTable(c *gin.Context) {
	restaurantID, ok := restaurantScope(c)
	if !ok {
		return
	}

	var req struct {
		Number string `json:"number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		RestaurantID: restaurantID,
		Number:       req.Number,
		IsEnabled:    true,
		QRKey:        uuid.NewString(),
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tc.Events.Publish(restaurantID, models.EventTableCreated, map[string]interface{}{
		"tableId": table.ID,
		"number":  table.Number,
	})

	utils.InfoLogger.Printf("New table created: %s (restaurant=%d)", table.Number, restaurantID)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// CreateTablesBatch -> numeric range, e.g. {"from": 1, "to": 12}
func (tc *TableController) CreateTablesBatch(c *gin.Context) {
	restaurantID, ok := restaurantScope(c)
	if !ok {
		return
	}

	var req struct {
		From int `json:"from" binding:"required"`
		To   int `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.To < req.From {
		utils.RespondDomainError(c, utils.ValidationErr("Invalid table range"))
		return
	}

	var tables []models.Table
	for i := req.From; i <= req.To; i++ {
		table := models.Table{
			RestaurantID: restaurantID,
			Number:       strconv.Itoa(i),
			IsEnabled:    true,
			QRKey:        uuid.NewString(),
		}
		if err := tc.DB.Create(&table).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		tables = append(tables, table)
	}

	utils.RespondJSON(c, http.StatusCreated, "Tables created", tables)
}

// GetAllTables -> the restaurant's tables with their live session, if any
func (tc *TableController) GetAllTables(c *gin.Context) {
	restaurantID, ok := parseID(c, "restaurant_id")
	if !ok {
		return
	}

	var tables []models.Table
	if err := tc.DB.
		Preload("Sessions", func(db *gorm.DB) *gorm.DB {
			return db.Where("status IN ?", []string{models.SessionActive, models.SessionPaymentPending})
		}).
		Preload("Sessions.Consumers").
		Where("restaurant_id = ?", restaurantID).
		Order("id asc").
		Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID, ok := parseID(c, "table_id")
	if !ok {
		return
	}

	var table models.Table
	if err := tc.DB.
		Preload("Sessions", func(db *gorm.DB) *gorm.DB {
			return db.Where("status IN ?", []string{models.SessionActive, models.SessionPaymentPending})
		}).
		Preload("Sessions.Consumers").
		First(&table, tableID).Error; err != nil {
		utils.RespondDomainError(c, utils.NotFoundErr("Table not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// ScanTable -> QR entry point: resolve a QR key to the table and its live
// session so the client knows whether to start or join.
func (tc *TableController) ScanTable(c *gin.Context) {
	qrKey := c.Param("qr_key")

	var table models.Table
	if err := tc.DB.
		Preload("Sessions", func(db *gorm.DB) *gorm.DB {
			return db.Where("status IN ?", []string{models.SessionActive, models.SessionPaymentPending})
		}).
		Where("qr_key = ?", qrKey).
		First(&table).Error; err != nil {
		utils.RespondDomainError(c, utils.NotFoundErr("Table not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTable -> rename the table number
func (tc *TableController) UpdateTable(c *gin.Context) {
	table, ok := tc.loadOwnedTable(c)
	if !ok {
		return
	}

	var req struct {
		Number string `json:"number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table.Number = req.Number
	if err := tc.DB.Save(table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// ToggleTable -> enable/disable; disabled tables reject new sessions
func (tc *TableController) ToggleTable(c *gin.Context) {
	table, ok := tc.loadOwnedTable(c)
	if !ok {
		return
	}

	table.IsEnabled = !table.IsEnabled
	if err := tc.DB.Save(table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d enabled=%v", table.ID, table.IsEnabled)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable
func (tc *TableController) DeleteTable(c *gin.Context) {
	table, ok := tc.loadOwnedTable(c)
	if !ok {
		return
	}

	if err := tc.DB.Delete(table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"table_id": table.ID})
}

func (tc *TableController) loadOwnedTable(c *gin.Context) (*models.Table, bool) {
	tableID, ok := parseID(c, "table_id")
	if !ok {
		return nil, false
	}

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondDomainError(c, utils.NotFoundErr("Table not found"))
		return nil, false
	}

	if claimed, exists := c.Get("restaurant_id"); !exists || claimed.(uint) != table.RestaurantID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return nil, false
	}

	return &table, true
}
