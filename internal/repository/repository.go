// Package repository defines the persistence collaborators consumed by the
// moderation services, plus their gorm implementations.
package repository

import (
	"errors"

	"cimsel/internal/models"
)

var ErrNotFound = errors.New("record not found")

// BlogRepository is the slice of blog persistence the comment service needs:
// existence checks and the denormalized approved-comment counter.
type BlogRepository interface {
	FindByID(id uint) (*models.Blog, error)
	// IncrementCommentCount / DecrementCommentCount must be atomic column
	// updates at the storage layer, not read-compute-write in Go.
	IncrementCommentCount(blogID uint) error
	DecrementCommentCount(blogID uint) error
}

type CommentRepository interface {
	FindByID(id uint) (*models.Comment, error)
	// FindByIDs silently skips ids that do not exist.
	FindByIDs(ids []uint) ([]models.Comment, error)
	// FindReplies returns every comment whose parent is one of parentIDs.
	FindReplies(parentIDs []uint) ([]models.Comment, error)
	// FindByUser returns every comment authored by the user.
	FindByUser(userID uint) ([]models.Comment, error)
	Create(c *models.Comment) error
	Update(c *models.Comment) error
	// DeleteByIDs removes the given rows and reports how many actually existed.
	DeleteByIDs(ids []uint) (int64, error)
	MarkRead(ids []uint) (int64, error)
}

// TrustRepository persists the per-user trust row. Update runs mutate against
// the row (created on demand) inside a single serialized read-modify-write, so
// concurrent moderation decisions for the same user cannot lose counts.
type TrustRepository interface {
	GetOrCreate(userID uint) (*models.UserTrust, error)
	Update(userID uint, mutate func(*models.UserTrust)) (*models.UserTrust, error)
}
