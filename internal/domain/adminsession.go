package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdminSession backs an issued access token. A token is only accepted while
// its row exists and has not expired; logout deletes the row.
type AdminSession struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AccessToken string    `gorm:"column:access_token;uniqueIndex;not null" json:"-"`
	ExpiresAt   time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
}

func (AdminSession) TableName() string { return "admin_sessions" }
