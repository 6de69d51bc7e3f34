package handlers

import (
	"net/http"

	"cimsel/internal/db"
	"cimsel/internal/models"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

func (h *CategoryHandler) List(c *gin.Context) {
	var categories []models.Category
	if err := db.DB.Order("name ASC").Find(&categories).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "categories retrieved", categories)
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}

	category := models.Category{Name: req.Name, Description: req.Description}
	if err := db.DB.Create(&category).Error; err != nil {
		respondError(c, http.StatusBadRequest, "category name already exists")
		return
	}
	respondCreated(c, "category created", category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	categoryID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}

	var category models.Category
	if err := db.DB.First(&category, categoryID).Error; err != nil {
		respondError(c, http.StatusNotFound, "category not found")
		return
	}

	category.Name = req.Name
	category.Description = req.Description
	if err := db.DB.Save(&category).Error; err != nil {
		respondError(c, http.StatusBadRequest, "category name already exists")
		return
	}
	respondOK(c, "category updated", category)
}

// Delete refuses to remove a category that still has blogs.
func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := db.DB.First(&category, categoryID).Error; err != nil {
		respondError(c, http.StatusNotFound, "category not found")
		return
	}

	var blogCount int64
	if err := db.DB.Model(&models.Blog{}).Where("category_id = ?", category.ID).Count(&blogCount).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	if blogCount > 0 {
		respondError(c, http.StatusBadRequest, "category still has blogs")
		return
	}

	if err := db.DB.Delete(&category).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "category deleted", nil)
}
