package models

import (
	"time"
)

const (
	BookmarkTypeBlog   = "blog"
	BookmarkTypeQuran  = "quran"
	BookmarkTypePrayer = "prayer"
)

func ValidBookmarkType(t string) bool {
	switch t {
	case BookmarkTypeBlog, BookmarkTypeQuran, BookmarkTypePrayer:
		return true
	}
	return false
}

type Bookmark struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index;uniqueIndex:idx_user_type_ref" json:"user_id"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Type        string    `gorm:"size:20;not null;uniqueIndex:idx_user_type_ref" json:"type"` // blog, quran, prayer
	ReferenceID string    `gorm:"size:100;not null;uniqueIndex:idx_user_type_ref" json:"reference_id"`
	Notes       string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
