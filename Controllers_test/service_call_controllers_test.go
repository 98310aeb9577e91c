package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/mozoqr/mozo-app/controllers"
	"github.com/mozoqr/mozo-app/models"
)

func setupServiceCallRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	callCtrl := controllers.NewServiceCallController(db)
	r.POST("/sessions/:session_id/service-calls", callCtrl.CreateServiceCall)
	r.POST("/restaurants/:restaurant_id/service-calls", callCtrl.CreateEntranceCall)
	r.PATCH("/service-calls/:call_id/resolve", callCtrl.ResolveServiceCall)
	return r
}

func TestBillCallMovesSessionToSettling(t *testing.T) {
	db := newTestDB(t, "calls_bill")
	restaurant := seedRestaurant(t, db)
	table := seedTable(t, db, restaurant.ID, "5")
	session, _ := seedSession(t, db, table.ID, models.SessionActive, "Ana")
	r := setupServiceCallRouter(db)

	w := performJSON(t, r, http.MethodPost,
		fmt.Sprintf("/sessions/%d/service-calls", session.ID),
		map[string]string{"type": models.CallBill})
	assert.Equal(t, http.StatusCreated, w.Code)

	var reloaded models.Session
	assert.NoError(t, db.First(&reloaded, session.ID).Error)
	assert.Equal(t, models.SessionPaymentPending, reloaded.Status)
	assert.EqualValues(t, 1, countEvents(t, db, restaurant.ID, models.EventBillRequested))
}

func TestWaiterCallKeepsSessionActive(t *testing.T) {
	db := newTestDB(t, "calls_waiter")
	restaurant := seedRestaurant(t, db)
	table := seedTable(t, db, restaurant.ID, "6")
	session, _ := seedSession(t, db, table.ID, models.SessionActive, "Ana")
	r := setupServiceCallRouter(db)

	w := performJSON(t, r, http.MethodPost,
		fmt.Sprintf("/sessions/%d/service-calls", session.ID),
		map[string]string{"type": models.CallWaiter})
	assert.Equal(t, http.StatusCreated, w.Code)

	var reloaded models.Session
	assert.NoError(t, db.First(&reloaded, session.ID).Error)
	assert.Equal(t, models.SessionActive, reloaded.Status)
	assert.EqualValues(t, 1, countEvents(t, db, restaurant.ID, models.EventWaiterCalled))
}

func TestServiceCallRejectedOnClosedSession(t *testing.T) {
	db := newTestDB(t, "calls_closed")
	restaurant := seedRestaurant(t, db)
	table := seedTable(t, db, restaurant.ID, "7")
	session, _ := seedSession(t, db, table.ID, models.SessionClosed, "Ana")
	r := setupServiceCallRouter(db)

	w := performJSON(t, r, http.MethodPost,
		fmt.Sprintf("/sessions/%d/service-calls", session.ID),
		map[string]string{"type": models.CallWaiter})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestServiceCallRejectsUnknownType(t *testing.T) {
	db := newTestDB(t, "calls_badtype")
	restaurant := seedRestaurant(t, db)
	table := seedTable(t, db, restaurant.ID, "8")
	session, _ := seedSession(t, db, table.ID, models.SessionActive, "Ana")
	r := setupServiceCallRouter(db)

	w := performJSON(t, r, http.MethodPost,
		fmt.Sprintf("/sessions/%d/service-calls", session.ID),
		map[string]string{"type": "KARAOKE"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEntranceCallHasNoSession(t *testing.T) {
	db := newTestDB(t, "calls_entrance")
	restaurant := seedRestaurant(t, db)
	r := setupServiceCallRouter(db)

	w := performJSON(t, r, http.MethodPost,
		fmt.Sprintf("/restaurants/%d/service-calls", restaurant.ID),
		map[string]string{})
	assert.Equal(t, http.StatusCreated, w.Code)

	var call models.ServiceCall
	assert.NoError(t, db.Where("restaurant_id = ?", restaurant.ID).First(&call).Error)
	assert.Nil(t, call.SessionID)
	assert.Equal(t, models.CallWaiter, call.Type)
	assert.Equal(t, models.CallPending, call.Status)
}

func TestResolveServiceCallIsIdempotent(t *testing.T) {
	db := newTestDB(t, "calls_resolve")
	restaurant := seedRestaurant(t, db)
	table := seedTable(t, db, restaurant.ID, "9")
	session, _ := seedSession(t, db, table.ID, models.SessionActive, "Ana")

	call := models.ServiceCall{
		SessionID:    &session.ID,
		RestaurantID: restaurant.ID,
		Type:         models.CallWaiter,
		Status:       models.CallPending,
	}
	assert.NoError(t, db.Create(&call).Error)
	r := setupServiceCallRouter(db)

	url := fmt.Sprintf("/service-calls/%d/resolve", call.ID)
	w := performJSON(t, r, http.MethodPatch, url, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var first models.ServiceCall
	assert.NoError(t, db.First(&first, call.ID).Error)
	assert.Equal(t, models.CallResolved, first.Status)
	assert.NotNil(t, first.ResolvedAt)

	time.Sleep(20 * time.Millisecond)

	w = performJSON(t, r, http.MethodPatch, url, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var second models.ServiceCall
	assert.NoError(t, db.First(&second, call.ID).Error)
	assert.True(t, first.ResolvedAt.Equal(*second.ResolvedAt),
		"resolving twice must keep the original timestamp")

	// Resolving never cascades back to the session.
	var reloaded models.Session
	assert.NoError(t, db.First(&reloaded, session.ID).Error)
	assert.Equal(t, models.SessionActive, reloaded.Status)
}
