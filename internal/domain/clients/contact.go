package clients

import (
	"time"

	"github.com/google/uuid"
)

const (
	ContactTypePrimary   = "PRIMARY"
	ContactTypeSecondary = "SECONDARY"
	ContactTypeInvoice   = "INVOICE"
)

type ClientContact struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index;column:client_id" json:"client_id"`

	Type  string `gorm:"not null;default:PRIMARY;column:type" json:"type"`
	Name  string `gorm:"not null;column:name" json:"name"`
	Email string `gorm:"column:email" json:"email"`
	Phone string `gorm:"column:phone" json:"phone"`
	Role  string `gorm:"column:role" json:"role"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ClientContact) TableName() string { return "client_contact" }

func ValidContactType(s string) bool {
	switch s {
	case ContactTypePrimary, ContactTypeSecondary, ContactTypeInvoice:
		return true
	}
	return false
}
