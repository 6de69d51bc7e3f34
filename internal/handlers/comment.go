package handlers

import (
	"net/http"

	"cimsel/internal/db"
	"cimsel/internal/models"
	"cimsel/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type commentContentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListForBlog returns the approved comment tree for a blog: top-level
// comments newest first, each with its approved replies oldest first.
func (h *CommentHandler) ListForBlog(c *gin.Context) {
	blogID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var blog models.Blog
	if err := db.DB.First(&blog, blogID).Error; err != nil {
		respondError(c, http.StatusNotFound, "blog not found")
		return
	}

	var comments []models.Comment
	err := db.DB.
		Where("blog_id = ? AND parent_id IS NULL AND status = ?", blogID, models.CommentStatusApproved).
		Preload("User").
		Preload("Replies", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("status = ?", models.CommentStatusApproved).Order("created_at ASC")
		}).
		Preload("Replies.User").
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, "comments retrieved", gin.H{
		"comments": comments,
		"total":    len(comments),
	})
}

// Create posts a top-level comment on a blog.
func (h *CommentHandler) Create(c *gin.Context) {
	blogID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req commentContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "content is required")
		return
	}

	comment, err := h.comments.Create(blogID, currentUser(c).ID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "comment submitted and awaiting moderation"
	if comment.Status == models.CommentStatusApproved {
		message = "comment published"
	}
	respondCreated(c, message, comment)
}

// Reply posts an answer to a top-level comment.
func (h *CommentHandler) Reply(c *gin.Context) {
	parentID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req commentContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "content is required")
		return
	}

	reply, err := h.comments.Reply(parentID, currentUser(c).ID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "reply submitted and awaiting moderation"
	if reply.Status == models.CommentStatusApproved {
		message = "reply published"
	}
	respondCreated(c, message, reply)
}

// Update lets the author rewrite their own comment.
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req commentContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "content is required")
		return
	}

	comment, err := h.comments.UpdateOwn(commentID, currentUser(c).ID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "comment updated", comment)
}

// Delete removes a comment; owners may delete their own, admins anyone's.
func (h *CommentHandler) Delete(c *gin.Context) {
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
