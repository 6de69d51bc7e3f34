package repository

import (
	"errors"

	"cimsel/internal/models"

	"gorm.io/gorm"
)

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) FindByID(id uint) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) IncrementCommentCount(blogID uint) error {
	return r.db.Model(&models.Blog{}).
		Where("id = ?", blogID).
		UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1)).
		Error
}

// DecrementCommentCount floors at zero. The comment service only issues one
// decrement per approved row removed, so the floor should never be hit.
func (r *blogRepository) DecrementCommentCount(blogID uint) error {
	return r.db.Model(&models.Blog{}).
		Where("id = ? AND comment_count > 0", blogID).
		UpdateColumn("comment_count", gorm.Expr("comment_count - ?", 1)).
		Error
}
