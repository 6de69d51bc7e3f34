package handlers

import (
	"net/http"

	"cimsel/internal/db"
	"cimsel/internal/models"

	"github.com/gin-gonic/gin"
)

// BookmarkHandler manages a user's saved items: blogs, Quran verses and
// prayer times, each identified by a type plus an external reference id.
type BookmarkHandler struct{}

func NewBookmarkHandler() *BookmarkHandler {
	return &BookmarkHandler{}
}

type bookmarkRequest struct {
	Type        string `json:"type" binding:"required"`
	ReferenceID string `json:"reference_id" binding:"required"`
	Notes       string `json:"notes"`
}

// Create saves a bookmark. Saving the same reference twice updates the notes
// instead of erroring on the unique index.
func (h *BookmarkHandler) Create(c *gin.Context) {
	var req bookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "type and reference_id are required")
		return
	}
	if !models.ValidBookmarkType(req.Type) {
		respondError(c, http.StatusBadRequest, "invalid type, use blog, quran or prayer")
		return
	}
	user := currentUser(c)

	if req.Type == models.BookmarkTypeBlog {
		var blog models.Blog
		if err := db.DB.Where("id = ? AND status = ?", req.ReferenceID, models.BlogStatusPublished).
			First(&blog).Error; err != nil {
			respondError(c, http.StatusNotFound, "blog not found")
			return
		}
	}

	var existing models.Bookmark
	err := db.DB.Where("user_id = ? AND type = ? AND reference_id = ?",
		user.ID, req.Type, req.ReferenceID).First(&existing).Error
	if err == nil {
		existing.Notes = req.Notes
		if err := db.DB.Save(&existing).Error; err != nil {
			respondServiceError(c, err)
			return
		}
		respondOK(c, "bookmark updated", existing)
		return
	}

	bookmark := models.Bookmark{
		UserID:      user.ID,
		Type:        req.Type,
		ReferenceID: req.ReferenceID,
		Notes:       req.Notes,
	}
	if err := db.DB.Create(&bookmark).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, "bookmark created", bookmark)
}

// List returns the current user's bookmarks, optionally filtered by type.
func (h *BookmarkHandler) List(c *gin.Context) {
	query := db.DB.Where("user_id = ?", currentUser(c).ID)
	if t := c.Query("type"); t != "" {
		if !models.ValidBookmarkType(t) {
			respondError(c, http.StatusBadRequest, "invalid type, use blog, quran or prayer")
			return
		}
		query = query.Where("type = ?", t)
	}

	var bookmarks []models.Bookmark
	if err := query.Order("created_at DESC").Find(&bookmarks).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "bookmarks retrieved", bookmarks)
}

type bookmarkNotesRequest struct {
	Notes string `json:"notes"`
}

// UpdateNotes edits the notes on one of the current user's bookmarks.
func (h *BookmarkHandler) UpdateNotes(c *gin.Context) {
	bookmarkID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req bookmarkNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var bookmark models.Bookmark
	if err := db.DB.Where("id = ? AND user_id = ?", bookmarkID, currentUser(c).ID).
		First(&bookmark).Error; err != nil {
		respondError(c, http.StatusNotFound, "bookmark not found")
		return
	}

	bookmark.Notes = req.Notes
	if err := db.DB.Save(&bookmark).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "bookmark updated", bookmark)
}

func (h *BookmarkHandler) Delete(c *gin.Context) {
	bookmarkID, ok := paramID(c, "id")
	if !ok {
		return
	}

	result := db.DB.Where("id = ? AND user_id = ?", bookmarkID, currentUser(c).ID).
		Delete(&models.Bookmark{})
	if result.Error != nil {
		respondServiceError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "bookmark not found")
		return
	}
	respondOK(c, "bookmark deleted", nil)
}
