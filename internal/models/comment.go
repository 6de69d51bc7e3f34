package models

import (
	"time"
)

type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusRejected CommentStatus = "rejected"
	CommentStatusSpam     CommentStatus = "spam"

	// CommentStatusNone is the sentinel "previous status" of a comment that is
	// being created, so a create-as-approved counts as a boundary crossing.
	CommentStatusNone CommentStatus = ""
)

func (s CommentStatus) Valid() bool {
	switch s {
	case CommentStatusPending, CommentStatusApproved, CommentStatusRejected, CommentStatusSpam:
		return true
	}
	return false
}

type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	BlogID   uint      `gorm:"not null;index" json:"blog_id"`
	Blog     Blog      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID   uint      `gorm:"not null;index" json:"user_id"`
	User     User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	ParentID *uint     `gorm:"index" json:"parent_id"` // Nullable for top-level comments
	Replies  []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`

	Status    CommentStatus `gorm:"size:20;default:'pending';not null;index" json:"status"`
	IsRead    bool          `gorm:"default:false;not null" json:"is_read"`
	AdminNote string        `gorm:"type:text" json:"admin_note"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// IsReply reports whether this comment answers another one. Replies can never
// be replied to themselves (max depth 1).
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
