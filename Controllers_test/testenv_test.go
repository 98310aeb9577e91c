package Controllers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mozoqr/mozo-app/models"
	"github.com/mozoqr/mozo-app/utils"
)

// newTestDB opens a named in-memory SQLite database. Each test passes its
// own name so rows never leak between tests in this package.
func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Category{},
		&models.Product{},
		&models.Table{},
		&models.Session{},
		&models.Consumer{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemConsumer{},
		&models.ServiceCall{},
		&models.DomainEvent{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// asTenant stands in for the auth middleware on admin routes.
func asTenant(userID, restaurantID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("restaurant_id", restaurantID)
		c.Next()
	}
}

func seedRestaurant(t *testing.T, db *gorm.DB) *models.Restaurant {
	t.Helper()
	owner := models.User{Name: "Owner", Email: uuid.NewString() + "@test.com", Password: "x"}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	restaurant := models.Restaurant{
		Name:     "La Esquina",
		Slug:     "la-esquina-" + uuid.NewString()[:8],
		Timezone: "America/Argentina/Buenos_Aires",
		OwnerID:  owner.ID,
	}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}
	return &restaurant
}

func seedTable(t *testing.T, db *gorm.DB, restaurantID uint, number string) *models.Table {
	t.Helper()
	table := models.Table{
		RestaurantID: restaurantID,
		Number:       number,
		IsEnabled:    true,
		QRKey:        uuid.NewString(),
	}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("seed table: %v", err)
	}
	return &table
}

func seedProduct(t *testing.T, db *gorm.DB, restaurantID uint, name string, price int64) *models.Product {
	t.Helper()
	product := models.Product{
		RestaurantID: restaurantID,
		Name:         name,
		Price:        price,
		IsAvailable:  true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return &product
}

func seedSession(t *testing.T, db *gorm.DB, tableID uint, status string, names ...string) (*models.Session, []models.Consumer) {
	t.Helper()
	session := models.Session{TableID: tableID, Status: status, StartedAt: time.Now()}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	consumers := make([]models.Consumer, 0, len(names))
	for _, name := range names {
		consumer := models.Consumer{
			SessionID: session.ID,
			Name:      name,
			GuestKey:  uuid.NewString(),
			JoinedAt:  time.Now(),
		}
		if err := db.Create(&consumer).Error; err != nil {
			t.Fatalf("seed consumer: %v", err)
		}
		consumers = append(consumers, consumer)
	}
	return &session, consumers
}

func seedOrderItem(t *testing.T, db *gorm.DB, sessionID uint, product *models.Product, quantity int, consumerIDs ...uint) *models.OrderItem {
	t.Helper()
	var order models.Order
	err := db.Where("session_id = ?", sessionID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		order = models.Order{SessionID: sessionID, Status: models.OrderOpen}
		if err := db.Create(&order).Error; err != nil {
			t.Fatalf("seed order: %v", err)
		}
	} else if err != nil {
		t.Fatalf("seed order lookup: %v", err)
	}

	item := models.OrderItem{
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: product.Price,
		Status:    models.ItemPending,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed order item: %v", err)
	}
	for _, consumerID := range consumerIDs {
		attribution := models.OrderItemConsumer{OrderItemID: item.ID, ConsumerID: consumerID}
		if err := db.Create(&attribution).Error; err != nil {
			t.Fatalf("seed attribution: %v", err)
		}
	}
	return &item
}

func performJSON(t *testing.T, r *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
	}
	return response
}

func countEvents(t *testing.T, db *gorm.DB, restaurantID uint, eventType string) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.DomainEvent{}).
		Where("restaurant_id = ? AND event_type = ?", restaurantID, eventType).
		Count(&count).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	return count
}
