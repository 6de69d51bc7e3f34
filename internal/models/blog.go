package models

import (
	"time"
)

const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

type Blog struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Image       string     `json:"image"` // Optional cover image URL
	Status      string     `gorm:"size:20;default:'draft';not null" json:"status"` // draft, published
	PublishedAt *time.Time `json:"published_at"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	User        User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	CategoryID  uint       `gorm:"not null;index" json:"category_id"`
	Category    Category   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	// Denormalized count of approved comments. Maintained incrementally by the
	// comment service, never recomputed by scanning.
	CommentCount int       `gorm:"default:0;not null" json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
