package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/mozoqr/mozo-app/controllers"
	"github.com/mozoqr/mozo-app/models"
)

func setupTableRouter(db *gorm.DB, restaurantID uint) *gin.Engine {
	r := gin.New()
	tableCtrl := controllers.NewTableController(db)
	r.GET("/tables/scan/:qr_key", tableCtrl.ScanTable)
	auth := r.Group("/admin", asTenant(1, restaurantID))
	auth.POST("/restaurants/:restaurant_id/tables", tableCtrl.CreateTable)
	auth.POST("/restaurants/:restaurant_id/tables/batch", tableCtrl.CreateTablesBatch)
	auth.GET("/restaurants/:restaurant_id/tables", tableCtrl.GetAllTables)
	auth.PATCH("/tables/:table_id/toggle", tableCtrl.ToggleTable)
	return r
}

func TestCreateTableGeneratesQRKey(t *testing.T) {
	db := newTestDB(t, "tables_create")
	restaurant := seedRestaurant(t, db)
	r := setupTableRouter(db, restaurant.ID)

	w := performJSON(t, r, http.MethodPost,
		fmt.Sprintf("/admin/restaurants/%d/tables", restaurant.ID),
		map[string]string{"number": "12"})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "12", data["number"])
	assert.NotEmpty(t, data["qr_key"])
	assert.Equal(t, true, data["is_enabled"])

	assert.EqualValues(t, 1, countEvents(t, db, restaurant.ID, models.EventTableCreated))
}

func TestCreateTablesBatch(t *testing.T) {
	db := newTestDB(t, "tables_batch")
	restaurant := seedRestaurant(t, db)
	r := setupTableRouter(db, restaurant.ID)

	url := fmt.Sprintf("/admin/restaurants/%d/tables/batch", restaurant.ID)
	w := performJSON(t, r, http.MethodPost, url, map[string]int{"from": 1, "to": 4})
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.Table{}).Where("restaurant_id = ?", restaurant.ID).Count(&count)
	assert.EqualValues(t, 4, count)

	// Every table gets its own QR key.
	var tables []models.Table
	db.Where("restaurant_id = ?", restaurant.ID).Find(&tables)
	seen := make(map[string]bool)
	for _, table := range tables {
		assert.NotEmpty(t, table.QRKey)
		assert.False(t, seen[table.QRKey])
		seen[table.QRKey] = true
	}

	w = performJSON(t, r, http.MethodPost, url, map[string]int{"from": 8, "to": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScanTableResolvesLiveSession(t *testing.T) {
	db := newTestDB(t, "tables_scan")
	restaurant := seedRestaurant(t, db)
	table := seedTable(t, db, restaurant.ID, "4")
	seedSession(t, db, table.ID, models.SessionActive, "Ana")
	r := setupTableRouter(db, restaurant.ID)

	w := performJSON(t, r, http.MethodGet, "/tables/scan/"+table.QRKey, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.EqualValues(t, table.ID, data["id"])
	sessions := data["sessions"].([]interface{})
	assert.Len(t, sessions, 1)

	w = performJSON(t, r, http.MethodGet, "/tables/scan/not-a-key", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScanTableOmitsClosedSessions(t *testing.T) {
	db := newTestDB(t, "tables_scan_closed")
	restaurant := seedRestaurant(t, db)
	table := seedTable(t, db, restaurant.ID, "6")
	seedSession(t, db, table.ID, models.SessionClosed, "Ana")
	r := setupTableRouter(db, restaurant.ID)

	w := performJSON(t, r, http.MethodGet, "/tables/scan/"+table.QRKey, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parseResponse(t, w)["data"].(map[string]interface{})
	if sessions, ok := data["sessions"].([]interface{}); ok {
		assert.Empty(t, sessions)
	}
}

func TestToggleTableBlocksWrongTenant(t *testing.T) {
	db := newTestDB(t, "tables_toggle")
	restaurant := seedRestaurant(t, db)
	table := seedTable(t, db, restaurant.ID, "3")

	r := setupTableRouter(db, restaurant.ID+99)
	w := performJSON(t, r, http.MethodPatch, fmt.Sprintf("/admin/tables/%d/toggle", table.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = setupTableRouter(db, restaurant.ID)
	w = performJSON(t, r, http.MethodPatch, fmt.Sprintf("/admin/tables/%d/toggle", table.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Table
	assert.NoError(t, db.First(&reloaded, table.ID).Error)
	assert.False(t, reloaded.IsEnabled)
}
