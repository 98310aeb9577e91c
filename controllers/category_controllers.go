package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mozoqr/mozo-app/models"
	"github.com/mozoqr/mozo-app/utils"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// CreateCategory
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	restaurantID, ok := restaurantScope(c)
	if !ok {
		return
	}

	var req struct {
		Name         string  `json:"name" binding:"required"`
		DisplayOrder int     `json:"display_order"`
		ImageURL     *string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.Category{
		RestaurantID: restaurantID,
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
		ImageURL:     req.ImageURL,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// GetCategories -> active categories in display order
func (cc *CategoryController) GetCategories(c *gin.Context) {
	restaurantID, ok := parseID(c, "restaurant_id")
	if !ok {
		return
	}

	var categories []models.Category
	if err := cc.DB.
		Where("restaurant_id = ? AND is_active = ?", restaurantID, true).
		Order("display_order asc").
		Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

// UpdateCategory -> name, order, active flag, image
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	categoryID, ok := parseID(c, "category_id")
	if !ok {
		return
	}

	var req struct {
		Name         *string `json:"name"`
		DisplayOrder *int    `json:"display_order"`
		IsActive     *bool   `json:"is_active"`
		ImageURL     *string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.Category
	if err := cc.DB.First(&category, categoryID).Error; err != nil {
		utils.RespondDomainError(c, utils.NotFoundErr("Category not found"))
		return
	}

	if claimed, exists := c.Get("restaurant_id"); !exists || claimed.(uint) != category.RestaurantID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.DisplayOrder != nil {
		category.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.ImageURL != nil {
		category.ImageURL = req.ImageURL
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}
