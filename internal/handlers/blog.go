package handlers

import (
	"net/http"
	"time"

	"cimsel/internal/db"
	"cimsel/internal/models"
	"cimsel/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BlogHandler struct{}

func NewBlogHandler() *BlogHandler {
	return &BlogHandler{}
}

// List returns published blogs newest first, optionally filtered by category.
// Admins may pass status=draft to browse unpublished posts.
func (h *BlogHandler) List(c *gin.Context) {
	page, limit, offset := pagination(c)

	query := db.DB.Model(&models.Blog{})
	status := models.BlogStatusPublished
	if requested := c.Query("status"); requested == models.BlogStatusDraft {
		user := currentUser(c)
		if user == nil || !user.IsAdmin() {
			respondError(c, http.StatusForbidden, "admin access required")
			return
		}
		status = models.BlogStatusDraft
	}
	query = query.Where("status = ?", status)

	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var blogs []models.Blog
	err := query.
		Preload("Category").
		Preload("User").
		Order("published_at DESC NULLS LAST, created_at DESC").
		Offset(offset).Limit(limit).
		Find(&blogs).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, "blogs retrieved", gin.H{
		"blogs": blogs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// Get returns one blog with its markdown rendered to sanitized HTML. Drafts
// are only visible to admins.
func (h *BlogHandler) Get(c *gin.Context) {
	blogID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var blog models.Blog
	if err := db.DB.Preload("Category").Preload("User").First(&blog, blogID).Error; err != nil {
		respondError(c, http.StatusNotFound, "blog not found")
		return
	}
	if blog.Status != models.BlogStatusPublished {
		user := currentUser(c)
		if user == nil || !user.IsAdmin() {
			respondError(c, http.StatusNotFound, "blog not found")
			return
		}
	}

	respondOK(c, "blog retrieved", gin.H{
		"blog":         blog,
		"content_html": utils.RenderMarkdown(blog.Content),
	})
}

type blogRequest struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content" binding:"required"`
	Image      string `json:"image"`
	Status     string `json:"status"`
	CategoryID uint   `json:"category_id" binding:"required"`
}

func (r *blogRequest) status() string {
	if r.Status == "" {
		return models.BlogStatusDraft
	}
	return r.Status
}

// Create stores a new blog post. Publishing stamps PublishedAt.
func (h *BlogHandler) Create(c *gin.Context) {
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "title, content and category_id are required")
		return
	}
	status := req.status()
	if status != models.BlogStatusDraft && status != models.BlogStatusPublished {
		respondError(c, http.StatusBadRequest, "invalid status, use draft or published")
		return
	}

	var category models.Category
	if err := db.DB.First(&category, req.CategoryID).Error; err != nil {
		respondError(c, http.StatusBadRequest, "category not found")
		return
	}

	blog := models.Blog{
		Title:      req.Title,
		Content:    req.Content,
		Image:      req.Image,
		Status:     status,
		UserID:     currentUser(c).ID,
		CategoryID: req.CategoryID,
	}
	if status == models.BlogStatusPublished {
		now := time.Now()
		blog.PublishedAt = &now
	}

	if err := db.DB.Create(&blog).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, "blog created", blog)
}

// Update rewrites a blog post. The first transition to published stamps
// PublishedAt; re-publishing keeps the original timestamp.
func (h *BlogHandler) Update(c *gin.Context) {
	blogID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "title, content and category_id are required")
		return
	}
	status := req.status()
	if status != models.BlogStatusDraft && status != models.BlogStatusPublished {
		respondError(c, http.StatusBadRequest, "invalid status, use draft or published")
		return
	}

	var blog models.Blog
	if err := db.DB.First(&blog, blogID).Error; err != nil {
		respondError(c, http.StatusNotFound, "blog not found")
		return
	}
	var category models.Category
	if err := db.DB.First(&category, req.CategoryID).Error; err != nil {
		respondError(c, http.StatusBadRequest, "category not found")
		return
	}

	blog.Title = req.Title
	blog.Content = req.Content
	blog.Image = req.Image
	blog.CategoryID = req.CategoryID
	blog.Status = status
	if status == models.BlogStatusPublished && blog.PublishedAt == nil {
		now := time.Now()
		blog.PublishedAt = &now
	}

	if err := db.DB.Save(&blog).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "blog updated", blog)
}

// Delete removes a blog together with its comments.
func (h *BlogHandler) Delete(c *gin.Context) {
	blogID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var blog models.Blog
	if err := db.DB.First(&blog, blogID).Error; err != nil {
		respondError(c, http.StatusNotFound, "blog not found")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", blog.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&blog).Error
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "blog deleted", nil)
}
