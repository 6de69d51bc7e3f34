package repository

import (
	"errors"

	"cimsel/internal/models"

	"gorm.io/gorm"
)

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) FindByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindByIDs(ids []uint) ([]models.Comment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var comments []models.Comment
	if err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) FindReplies(parentIDs []uint) ([]models.Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var replies []models.Comment
	if err := r.db.Where("parent_id IN ?", parentIDs).Order("id ASC").Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}

func (r *commentRepository) FindByUser(userID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Create(c *models.Comment) error {
	return r.db.Create(c).Error
}

func (r *commentRepository) Update(c *models.Comment) error {
	// Select("*") so zero values (is_read=false, cleared admin note) persist too.
	return r.db.Model(c).Select("*").Omit("created_at").Updates(c).Error
}

func (r *commentRepository) DeleteByIDs(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.Where("id IN ?", ids).Delete(&models.Comment{})
	return res.RowsAffected, res.Error
}

func (r *commentRepository) MarkRead(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.Model(&models.Comment{}).
		Where("id IN ?", ids).
		UpdateColumn("is_read", true)
	return res.RowsAffected, res.Error
}
