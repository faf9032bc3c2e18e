package contracts

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ContractStatusDraft    = "DRAFT"
	ContractStatusActive   = "ACTIVE"
	ContractStatusArchived = "ARCHIVED"
)

// Contract is a versioned service agreement with a client. The lifecycle
// is one-way: DRAFT -> ACTIVE -> ARCHIVED. Only DRAFT rows may be hard
// deleted, and at most one contract per client is ACTIVE at a time.
type Contract struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index;column:client_id" json:"client_id"`

	ContractNumber string `gorm:"not null;uniqueIndex;column:contract_number" json:"contract_number"`
	Version        int64  `gorm:"not null;column:version" json:"version"`
	Status         string `gorm:"not null;default:DRAFT;index;column:status" json:"status"`

	StartDate   time.Time  `gorm:"not null;column:start_date" json:"start_date"`
	RenewalDate time.Time  `gorm:"not null;index;column:renewal_date" json:"renewal_date"`
	SignedDate  *time.Time `gorm:"column:signed_date" json:"signed_date,omitempty"`

	// Pricing terms, pence.
	InclusiveHours int64 `gorm:"not null;default:0;column:inclusive_hours" json:"inclusive_hours"`
	HourlyRate     int64 `gorm:"not null;default:0;column:hourly_rate" json:"hourly_rate"`
	DailyRate      int64 `gorm:"not null;default:0;column:daily_rate" json:"daily_rate"`
	MileageRate    int64 `gorm:"not null;default:0;column:mileage_rate" json:"mileage_rate"`
	OvernightRate  int64 `gorm:"not null;default:0;column:overnight_rate" json:"overnight_rate"`

	// JSON string arrays of service names.
	ServicesInScope    datatypes.JSON `gorm:"column:services_in_scope" json:"services_in_scope,omitempty"`
	ServicesOutOfScope datatypes.JSON `gorm:"column:services_out_of_scope" json:"services_out_of_scope,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Contract) TableName() string { return "contract" }

func ValidContractStatus(s string) bool {
	switch s {
	case ContractStatusDraft, ContractStatusActive, ContractStatusArchived:
		return true
	}
	return false
}
