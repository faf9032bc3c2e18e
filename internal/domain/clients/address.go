package clients

import (
	"time"

	"github.com/google/uuid"
)

const (
	AddressTypeService = "SERVICE"
	AddressTypeInvoice = "INVOICE"
)

type ClientAddress struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index;column:client_id" json:"client_id"`

	Type     string `gorm:"not null;default:SERVICE;column:type" json:"type"`
	Line1    string `gorm:"not null;column:line1" json:"line1"`
	Line2    string `gorm:"column:line2" json:"line2"`
	City     string `gorm:"column:city" json:"city"`
	Postcode string `gorm:"column:postcode" json:"postcode"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ClientAddress) TableName() string { return "client_address" }

func ValidAddressType(s string) bool {
	return s == AddressTypeService || s == AddressTypeInvoice
}
