package admins

import (
	"time"

	"github.com/google/uuid"
)

const (
	AdminRoleSuperadmin = "SUPERADMIN"
	AdminRoleStaff      = "STAFF"
)

const (
	AdminStatusActive   = "ACTIVE"
	AdminStatusInactive = "INACTIVE"
)

// Admin is a back-office operator account. Deletion is a status flip.
type Admin struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Email     string `gorm:"not null;index;column:email" json:"email"`
	Password  string `gorm:"not null;column:password" json:"-"`
	FirstName string `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string `gorm:"not null;column:last_name" json:"last_name"`
	Role      string `gorm:"not null;default:STAFF;column:role" json:"role"`
	Status    string `gorm:"not null;default:ACTIVE;index;column:status" json:"status"`

	AvatarBucketKey string `gorm:"column:avatar_bucket_key" json:"-"`
	AvatarURL       string `gorm:"column:avatar_url" json:"avatar_url"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Admin) TableName() string { return "admin" }

func ValidAdminRole(s string) bool {
	return s == AdminRoleSuperadmin || s == AdminRoleStaff
}

func ValidAdminStatus(s string) bool {
	return s == AdminStatusActive || s == AdminStatusInactive
}
