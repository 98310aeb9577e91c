package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mozoqr/mozo-app/models"
	"github.com/mozoqr/mozo-app/services"
	"github.com/mozoqr/mozo-app/utils"
)

type ProductController struct {
	DB     *gorm.DB
	Events services.EventPublisher
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db, Events: services.NewEventService(db)}
}

// CreateProduct
func (pc *ProductController) CreateProduct(c *gin.Context) {
	restaurantID, ok := restaurantScope(c)
	if !ok {
		return
	}

	var req struct {
		CategoryID  *uint   `json:"category_id"`
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       *int64  `json:"price" binding:"required"`
		ImageURL    *string `json:"image_url"`
		IsAvailable *bool   `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if *req.Price < 0 {
		utils.RespondDomainError(c, utils.ValidationErr("Price must be non-negative"))
		return
	}

	product := models.Product{
		RestaurantID: restaurantID,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        *req.Price,
		ImageURL:     req.ImageURL,
		IsAvailable:  true,
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}

	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	pc.Events.Publish(restaurantID, models.EventProductCreated, map[string]interface{}{
		"productId": product.ID,
		"name":      product.Name,
		"price":     product.Price,
	})

	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

// UpdateProduct -> price changes never touch already-placed order items,
// which keep the unit price captured at creation.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	product, ok := pc.loadOwnedProduct(c)
	if !ok {
		return
	}

	var req struct {
		CategoryID  *uint   `json:"category_id"`
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Price       *int64  `json:"price"`
		ImageURL    *string `json:"image_url"`
		IsAvailable *bool   `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Price != nil {
		if *req.Price < 0 {
			utils.RespondDomainError(c, utils.ValidationErr("Price must be non-negative"))
			return
		}
		product.Price = *req.Price
	}
	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}

	if err := pc.DB.Save(product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	pc.Events.Publish(product.RestaurantID, models.EventProductUpdated, map[string]interface{}{
		"productId": product.ID,
		"name":      product.Name,
		"price":     product.Price,
	})

	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// ToggleAvailability -> flips the flag, never deletes
func (pc *ProductController) ToggleAvailability(c *gin.Context) {
	product, ok := pc.loadOwnedProduct(c)
	if !ok {
		return
	}

	product.IsAvailable = !product.IsAvailable
	if err := pc.DB.Save(product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product availability updated", product)
}

// DeleteProduct -> hard delete
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	product, ok := pc.loadOwnedProduct(c)
	if !ok {
		return
	}

	if err := pc.DB.Delete(product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"product_id": product.ID})
}

func (pc *ProductController) loadOwnedProduct(c *gin.Context) (*models.Product, bool) {
	productID, ok := parseID(c, "product_id")
	if !ok {
		return nil, false
	}

	var product models.Product
	if err := pc.DB.First(&product, productID).Error; err != nil {
		utils.RespondDomainError(c, utils.NotFoundErr("Product not found"))
		return nil, false
	}

	if claimed, exists := c.Get("restaurant_id"); !exists || claimed.(uint) != product.RestaurantID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return nil, false
	}

	return &product, true
}
