package clients

import (
	"time"

	"github.com/google/uuid"
)

const (
	ClientTypeCompany    = "COMPANY"
	ClientTypeIndividual = "INDIVIDUAL"
)

const (
	ClientStatusActive   = "ACTIVE"
	ClientStatusPending  = "PENDING"
	ClientStatusInactive = "INACTIVE"
)

const (
	ServiceTierTier1   = "TIER_1"
	ServiceTierDocOnly = "DOC_ONLY"
	ServiceTierAdHoc   = "AD_HOC"
)

const (
	PaymentMethodInvoice     = "INVOICE"
	PaymentMethodDirectDebit = "DIRECT_DEBIT"
)

// Client is a company or individual the consultancy serves. Clients are
// never hard-deleted; deactivation flips Status to INACTIVE.
type Client struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Seq           int64     `gorm:"uniqueIndex;not null;column:seq" json:"seq"`
	Name          string    `gorm:"not null;index;column:name" json:"name"`
	CompanyNumber string    `gorm:"column:company_number" json:"company_number"`
	Sector        *string   `gorm:"column:sector" json:"sector,omitempty"`
	Type          string    `gorm:"not null;default:COMPANY;column:type" json:"type"`

	ServiceTier     string `gorm:"not null;column:service_tier" json:"service_tier"`
	MonthlyRetainer int64  `gorm:"not null;default:0;column:monthly_retainer" json:"monthly_retainer"`
	PaymentMethod   string `gorm:"not null;default:INVOICE;column:payment_method" json:"payment_method"`

	Email  string `gorm:"not null;index;column:email" json:"email"`
	Phone  string `gorm:"column:phone" json:"phone"`
	Status string `gorm:"not null;default:PENDING;index;column:status" json:"status"`

	ExternalAudit bool `gorm:"not null;default:false;column:external_audit" json:"external_audit"`

	Contacts  []ClientContact `gorm:"foreignKey:ClientID" json:"contacts,omitempty"`
	Addresses []ClientAddress `gorm:"foreignKey:ClientID" json:"addresses,omitempty"`
	Audits    []ClientAudit   `gorm:"foreignKey:ClientID" json:"audits,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Client) TableName() string { return "client" }

func ValidClientStatus(s string) bool {
	switch s {
	case ClientStatusActive, ClientStatusPending, ClientStatusInactive:
		return true
	}
	return false
}

func ValidServiceTier(s string) bool {
	switch s {
	case ServiceTierTier1, ServiceTierDocOnly, ServiceTierAdHoc:
		return true
	}
	return false
}

func ValidClientType(s string) bool {
	return s == ClientTypeCompany || s == ClientTypeIndividual
}

func ValidPaymentMethod(s string) bool {
	return s == PaymentMethodInvoice || s == PaymentMethodDirectDebit
}
