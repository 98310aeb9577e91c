package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mozoqr/mozo-app/models"
	"github.com/mozoqr/mozo-app/utils"
)

type RestaurantController struct {
	DB *gorm.DB
}

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{DB: db}
}

var defaultCategories = []models.Category{
	{Name: "Entradas", DisplayOrder: 1, IsActive: true},
	{Name: "Comida", DisplayOrder: 2, IsActive: true},
	{Name: "Bebidas", DisplayOrder: 3, IsActive: true},
	{Name: "Postres", DisplayOrder: 4, IsActive: true},
}

// CreateRestaurant -> tenant bootstrap for the authenticated owner.
// The slug is immutable once created; collisions are rejected.
func (rc *RestaurantController) CreateRestaurant(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Slug     string `json:"slug" binding:"required"`
		Timezone string `json:"timezone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID := c.GetUint("user_id")

	var existing models.Restaurant
	if err := rc.DB.Where("slug = ?", req.Slug).First(&existing).Error; err == nil {
		utils.RespondDomainError(c, utils.ConflictErr("Restaurant with this slug already exists"))
		return
	}

	restaurant := models.Restaurant{
		Name:    req.Name,
		Slug:    req.Slug,
		OwnerID: userID,
	}
	if req.Timezone != "" {
		restaurant.Timezone = req.Timezone
	} else {
		restaurant.Timezone = "America/Argentina/Buenos_Aires"
	}

	if err := rc.DB.Create(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for _, category := range defaultCategories {
		category.RestaurantID = restaurant.ID
		if err := rc.DB.Create(&category).Error; err != nil {
			utils.ErrorLogger.Printf("Failed to seed category %s: %v", category.Name, err)
		}
	}

	utils.InfoLogger.Printf("Restaurant created: %s (slug=%s)", restaurant.Name, restaurant.Slug)
	utils.RespondJSON(c, http.StatusCreated, "Restaurant created", restaurant)
}

// GetBySlug -> public restaurant page (active categories + tables)
func (rc *RestaurantController) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	var restaurant models.Restaurant
	err := rc.DB.
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("display_order asc")
		}).
		Preload("Tables").
		Where("slug = ?", slug).
		First(&restaurant).Error
	if err != nil {
		utils.RespondDomainError(c, utils.NotFoundErr("Restaurant not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", restaurant)
}

// GetMenu -> active categories with available products, plus the full
// product list for the admin side.
func (rc *RestaurantController) GetMenu(c *gin.Context) {
	restaurantID, ok := parseID(c, "restaurant_id")
	if !ok {
		return
	}

	var categories []models.Category
	if err := rc.DB.
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_available = ?", true).Order("name asc")
		}).
		Where("restaurant_id = ? AND is_active = ?", restaurantID, true).
		Order("display_order asc").
		Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var products []models.Product
	if err := rc.DB.
		Preload("Category").
		Where("restaurant_id = ?", restaurantID).
		Order("name asc").
		Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Restaurant menu", gin.H{
		"categories": categories,
		"products":   products,
	})
}
