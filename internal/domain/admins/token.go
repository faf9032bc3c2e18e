package admins

import (
	"time"

	"github.com/google/uuid"
)

// AdminToken is a refresh-token row; one live row per admin.
type AdminToken struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:admin_id" json:"admin_id"`

	Token     string    `gorm:"not null;uniqueIndex;column:token" json:"-"`
	ExpiresAt time.Time `gorm:"not null;column:expires_at" json:"expires_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (AdminToken) TableName() string { return "admin_token" }
