package handlers

import (
	"net/http"

	"cimsel/internal/db"
	"cimsel/internal/models"
	"cimsel/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminHandler covers the dashboard overview and user management.
type AdminHandler struct {
	comments *services.CommentService
}

func NewAdminHandler(comments *services.CommentService) *AdminHandler {
	return &AdminHandler{comments: comments}
}

// Dashboard returns the headline counts for the admin overview page.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	counts := gin.H{}
	tables := []struct {
		name  string
		model interface{}
	}{
		{"blogs", &models.Blog{}},
		{"comments", &models.Comment{}},
		{"users", &models.User{}},
		{"categories", &models.Category{}},
		{"bookmarks", &models.Bookmark{}},
	}
	for _, t := range tables {
		var n int64
		if err := db.DB.Model(t.model).Count(&n).Error; err != nil {
			respondServiceError(c, err)
			return
		}
		counts[t.name] = n
	}

	var pending int64
	if err := db.DB.Model(&models.Comment{}).
		Where("status = ?", models.CommentStatusPending).Count(&pending).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	counts["pending_comments"] = pending

	for _, status := range []string{models.BlogStatusPublished, models.BlogStatusDraft} {
		var n int64
		if err := db.DB.Model(&models.Blog{}).Where("status = ?", status).Count(&n).Error; err != nil {
			respondServiceError(c, err)
			return
		}
		counts[status+"_blogs"] = n
	}

	respondOK(c, "dashboard counts retrieved", counts)
}

// ListUsers returns regular users with their trust records, searchable by
// name or email.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit, offset := pagination(c)

	query := db.DB.Model(&models.User{}).Where("role = ?", models.RoleUser)
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, "users retrieved", gin.H{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetUser returns one user plus their trust record and comment tallies.
func (h *AdminHandler) GetUser(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}

	var trust models.UserTrust
	if err := db.DB.Where("user_id = ?", user.ID).First(&trust).Error; err != nil {
		// No trust row yet means the user has never been moderated.
		trust = models.UserTrust{UserID: user.ID, TrustLevel: models.TrustLevelNew}
	}

	var commentCount int64
	if err := db.DB.Model(&models.Comment{}).Where("user_id = ?", user.ID).Count(&commentCount).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, "user retrieved", gin.H{
		"user":          user,
		"trust":         trust,
		"comment_count": commentCount,
	})
}

type updateUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUser edits a user's profile fields; a non-empty password is rehashed.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		user.Password = string(hashed)
	}

	if err := db.DB.Save(&user).Error; err != nil {
		respondError(c, http.StatusBadRequest, "username or email already taken")
		return
	}
	respondOK(c, "user updated", user)
}

// DeleteUser removes a user together with their comments, bookmarks and
// trust record. Admin accounts cannot be deleted through this endpoint.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}
	if user.IsAdmin() {
		respondError(c, http.StatusForbidden, "cannot delete an admin account")
		return
	}

	// Comments go through the service so reply cascades run and every approved
	// row removed decrements its blog counter.
	if _, err := h.comments.DeleteAllByUser(user.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserTrust{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "user deleted", nil)
}
