package handlers

import (
	"net/http"

	"cimsel/internal/db"
	"cimsel/internal/models"
	"cimsel/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminCommentHandler is the moderation console: queue listing, per-comment
// decisions and batch operations.
type AdminCommentHandler struct {
	comments *services.CommentService
}

func NewAdminCommentHandler(comments *services.CommentService) *AdminCommentHandler {
	return &AdminCommentHandler{comments: comments}
}

// List returns comments for the moderation queue, filterable by status, read
// flag and blog, newest first.
func (h *AdminCommentHandler) List(c *gin.Context) {
	page, limit, offset := pagination(c)

	query := db.DB.Model(&models.Comment{})
	if status := c.Query("status"); status != "" {
		if !models.CommentStatus(status).Valid() {
			respondError(c, http.StatusBadRequest, "invalid status filter")
			return
		}
		query = query.Where("status = ?", status)
	}
	if isRead := c.Query("is_read"); isRead != "" {
		query = query.Where("is_read = ?", isRead == "true")
	}
	if blogID := c.Query("blog_id"); blogID != "" {
		query = query.Where("blog_id = ?", blogID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var comments []models.Comment
	err := query.
		Preload("User").
		Preload("Blog").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, "comments retrieved", gin.H{
		"comments": comments,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// Counts returns the queue badge numbers: one count per status plus unread.
func (h *AdminCommentHandler) Counts(c *gin.Context) {
	counts := gin.H{}
	for _, status := range []models.CommentStatus{
		models.CommentStatusPending,
		models.CommentStatusApproved,
		models.CommentStatusRejected,
		models.CommentStatusSpam,
	} {
		var n int64
		if err := db.DB.Model(&models.Comment{}).Where("status = ?", status).Count(&n).Error; err != nil {
			respondServiceError(c, err)
			return
		}
		counts[string(status)] = n
	}

	var unread int64
	if err := db.DB.Model(&models.Comment{}).Where("is_read = ?", false).Count(&unread).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	counts["unread"] = unread

	respondOK(c, "comment counts retrieved", counts)
}

type moderateRequest struct {
	Status    string `json:"status" binding:"required"`
	AdminNote string `json:"admin_note"`
}

// UpdateStatus applies a moderation decision to one comment.
func (h *AdminCommentHandler) UpdateStatus(c *gin.Context) {
	commentID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req moderateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "status is required")
		return
	}

	comment, err := h.comments.Moderate(commentID, models.CommentStatus(req.Status), req.AdminNote)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "comment "+req.Status, comment)
}

// MarkRead flags a comment as seen without changing its status.
func (h *AdminCommentHandler) MarkRead(c *gin.Context) {
	commentID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.comments.MarkAsRead(commentID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "comment marked as read", nil)
}

// Delete removes a comment and, for top-level ones, its replies.
func (h *AdminCommentHandler) Delete(c *gin.Context) {
	commentID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.comments.Delete(commentID, currentUser(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "comment deleted", nil)
}

type bulkRequest struct {
	IDs       []uint `json:"ids" binding:"required"`
	Action    string `json:"action" binding:"required"`
	AdminNote string `json:"admin_note"`
}

// Bulk applies one action to a batch of comments.
func (h *AdminCommentHandler) Bulk(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "ids and action are required")
		return
	}
	if len(req.IDs) == 0 {
		respondError(c, http.StatusBadRequest, "ids must not be empty")
		return
	}

	result, err := h.comments.BulkAction(req.IDs, services.BulkAction(req.Action), req.AdminNote)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "bulk "+req.Action+" completed", result)
}
