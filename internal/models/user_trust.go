package models

import (
	"time"
)

type TrustLevel string

const (
	TrustLevelNew     TrustLevel = "new"
	TrustLevelTrusted TrustLevel = "trusted"
)

// UserTrust tracks the moderation history of a single user. One row per user,
// created lazily on the first moderation event. Comments of trusted users are
// auto-approved.
type UserTrust struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	User             User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	TrustLevel       TrustLevel `gorm:"size:20;default:'new';not null" json:"trust_level"` // new, trusted
	ApprovedComments int        `gorm:"default:0;not null" json:"approved_comments"`
	RejectedComments int        `gorm:"default:0;not null" json:"rejected_comments"`
	LastStatusChange *time.Time `json:"last_status_change"` // Set only when TrustLevel flips
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
