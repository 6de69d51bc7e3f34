package repository

import (
	"errors"

	"cimsel/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type trustRepository struct {
	db *gorm.DB
}

func NewTrustRepository(db *gorm.DB) TrustRepository {
	return &trustRepository{db: db}
}

func (r *trustRepository) GetOrCreate(userID uint) (*models.UserTrust, error) {
	var trust models.UserTrust
	err := r.db.Where("user_id = ?", userID).First(&trust).Error
	if err == nil {
		return &trust, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	trust = models.UserTrust{
		UserID:     userID,
		TrustLevel: models.TrustLevelNew,
	}
	// A concurrent first call may have created the row in between; fall back to
	// reading it so GetOrCreate stays idempotent.
	if err := r.db.Create(&trust).Error; err != nil {
		if readErr := r.db.Where("user_id = ?", userID).First(&trust).Error; readErr == nil {
			return &trust, nil
		}
		return nil, err
	}
	return &trust, nil
}

// Update locks the user's trust row for the duration of the transaction, so
// the counter read-modify-write cannot race with a concurrent admin action.
func (r *trustRepository) Update(userID uint, mutate func(*models.UserTrust)) (*models.UserTrust, error) {
	if _, err := r.GetOrCreate(userID); err != nil {
		return nil, err
	}

	var trust models.UserTrust
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&trust).Error; err != nil {
			return err
		}

		mutate(&trust)

		return tx.Model(&trust).Select("*").Omit("created_at").Updates(&trust).Error
	})
	if err != nil {
		return nil, err
	}
	return &trust, nil
}
