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

func setupRestaurantRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	restaurantCtrl := controllers.NewRestaurantController(db)
	r.GET("/restaurants/by-slug/:slug", restaurantCtrl.GetBySlug)
	r.GET("/restaurants/:restaurant_id/menu", restaurantCtrl.GetMenu)
	auth := r.Group("/admin", asTenant(1, 0))
	auth.POST("/restaurants", restaurantCtrl.CreateRestaurant)
	return r
}

func setupProductRouter(db *gorm.DB, restaurantID uint) *gin.Engine {
	r := gin.New()
	productCtrl := controllers.NewProductController(db)
	auth := r.Group("/admin", asTenant(1, restaurantID))
	auth.POST("/restaurants/:restaurant_id/products", productCtrl.CreateProduct)
	auth.PUT("/products/:product_id", productCtrl.UpdateProduct)
	auth.PATCH("/products/:product_id/availability", productCtrl.ToggleAvailability)
	return r
}

func TestCreateRestaurantSeedsDefaultCategories(t *testing.T) {
	db := newTestDB(t, "restaurants_create")
	r := setupRestaurantRouter(db)

	w := performJSON(t, r, http.MethodPost, "/admin/restaurants", map[string]string{
		"name": "La Parrilla",
		"slug": "la-parrilla",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "la-parrilla", data["slug"])
	assert.Equal(t, "America/Argentina/Buenos_Aires", data["timezone"])

	var categories []models.Category
	db.Where("restaurant_id = ?", uint(data["id"].(float64))).
		Order("display_order asc").Find(&categories)
	assert.Len(t, categories, 4)
	assert.Equal(t, "Entradas", categories[0].Name)
	assert.Equal(t, "Postres", categories[3].Name)

	// Slug collision.
	w = performJSON(t, r, http.MethodPost, "/admin/restaurants", map[string]string{
		"name": "Otra",
		"slug": "la-parrilla",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetBySlug(t *testing.T) {
	db := newTestDB(t, "restaurants_slug")
	restaurant := seedRestaurant(t, db)
	seedTable(t, db, restaurant.ID, "1")
	r := setupRestaurantRouter(db)

	w := performJSON(t, r, http.MethodGet, "/restaurants/by-slug/"+restaurant.Slug, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, restaurant.Name, data["name"])
	assert.Len(t, data["tables"].([]interface{}), 1)

	w = performJSON(t, r, http.MethodGet, "/restaurants/by-slug/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMenuFiltersUnavailableProducts(t *testing.T) {
	db := newTestDB(t, "restaurants_menu")
	restaurant := seedRestaurant(t, db)

	category := models.Category{RestaurantID: restaurant.ID, Name: "Comida", IsActive: true}
	assert.NoError(t, db.Create(&category).Error)

	available := seedProduct(t, db, restaurant.ID, "Milanesa", 12000)
	soldOut := seedProduct(t, db, restaurant.ID, "Flan", 3000)
	db.Model(available).Update("category_id", category.ID)
	db.Model(soldOut).Updates(map[string]interface{}{"category_id": category.ID, "is_available": false})

	r := setupRestaurantRouter(db)
	w := performJSON(t, r, http.MethodGet, fmt.Sprintf("/restaurants/%d/menu", restaurant.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parseResponse(t, w)["data"].(map[string]interface{})
	categories := data["categories"].([]interface{})
	assert.Len(t, categories, 1)
	products := categories[0].(map[string]interface{})["products"].([]interface{})
	assert.Len(t, products, 1)
	assert.Equal(t, "Milanesa", products[0].(map[string]interface{})["name"])

	// The flat product list carries everything for the admin side.
	assert.Len(t, data["products"].([]interface{}), 2)
}

func TestCreateProductValidatesPrice(t *testing.T) {
	db := newTestDB(t, "products_create")
	restaurant := seedRestaurant(t, db)
	r := setupProductRouter(db, restaurant.ID)

	url := fmt.Sprintf("/admin/restaurants/%d/products", restaurant.ID)
	w := performJSON(t, r, http.MethodPost, url, map[string]interface{}{
		"name":  "Milanesa",
		"price": 12000,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 1, countEvents(t, db, restaurant.ID, models.EventProductCreated))

	w = performJSON(t, r, http.MethodPost, url, map[string]interface{}{
		"name":  "Gratis",
		"price": -100,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductUnavailableStaysUnavailable(t *testing.T) {
	db := newTestDB(t, "products_hidden")
	restaurant := seedRestaurant(t, db)
	r := setupProductRouter(db, restaurant.ID)

	url := fmt.Sprintf("/admin/restaurants/%d/products", restaurant.ID)
	w := performJSON(t, r, http.MethodPost, url, map[string]interface{}{
		"name":         "Flan",
		"price":        3000,
		"is_available": false,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, false, data["is_available"])

	// The stored row must agree with the request, not a column default.
	var stored models.Product
	assert.NoError(t, db.First(&stored, uint(data["id"].(float64))).Error)
	assert.False(t, stored.IsAvailable)
}

func TestUpdateProductPriceNeverTouchesPlacedItems(t *testing.T) {
	db := newTestDB(t, "products_reprice")
	restaurant := seedRestaurant(t, db)
	table := seedTable(t, db, restaurant.ID, "1")
	session, consumers := seedSession(t, db, table.ID, models.SessionActive, "Ana")
	product := seedProduct(t, db, restaurant.ID, "Milanesa", 12000)
	item := seedOrderItem(t, db, session.ID, product, 1, consumers[0].ID)

	r := setupProductRouter(db, restaurant.ID)
	w := performJSON(t, r, http.MethodPut,
		fmt.Sprintf("/admin/products/%d", product.ID),
		map[string]interface{}{"price": 15000})
	assert.Equal(t, http.StatusOK, w.Code)

	var reloadedProduct models.Product
	assert.NoError(t, db.First(&reloadedProduct, product.ID).Error)
	assert.EqualValues(t, 15000, reloadedProduct.Price)

	var reloadedItem models.OrderItem
	assert.NoError(t, db.First(&reloadedItem, item.ID).Error)
	assert.EqualValues(t, 12000, reloadedItem.UnitPrice)
}

func TestToggleAvailability(t *testing.T) {
	db := newTestDB(t, "products_toggle")
	restaurant := seedRestaurant(t, db)
	product := seedProduct(t, db, restaurant.ID, "Flan", 3000)

	r := setupProductRouter(db, restaurant.ID)
	w := performJSON(t, r, http.MethodPatch,
		fmt.Sprintf("/admin/products/%d/availability", product.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Product
	assert.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.False(t, reloaded.IsAvailable)
}
