package cases

import (
	"time"

	"github.com/google/uuid"
)

const (
	PartyTypeArgan      = "ARGAN"
	PartyTypeClient     = "CLIENT"
	PartyTypeContractor = "CONTRACTOR"
	PartyTypeEmployee   = "EMPLOYEE"
	PartyTypeThirdParty = "THIRD_PARTY"
)

// Interaction is one entry in a case timeline: two parties, what was
// said, and an optional follow-up action. At most one interaction per
// case carries IsActiveAction.
type Interaction struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CaseID uuid.UUID `gorm:"type:uuid;not null;index;column:case_id" json:"case_id"`

	PartyAType string `gorm:"not null;column:party_a_type" json:"party_a_type"`
	PartyAName string `gorm:"not null;column:party_a_name" json:"party_a_name"`
	PartyBType string `gorm:"not null;column:party_b_type" json:"party_b_type"`
	PartyBName string `gorm:"not null;column:party_b_name" json:"party_b_name"`

	Content string `gorm:"type:text;not null;column:content" json:"content"`

	ActionOwner    string     `gorm:"column:action_owner" json:"action_owner"`
	ActionSummary  string     `gorm:"column:action_summary" json:"action_summary"`
	ActionDueAt    *time.Time `gorm:"column:action_due_at" json:"action_due_at,omitempty"`
	IsActiveAction bool       `gorm:"not null;default:false;index;column:is_active_action" json:"is_active_action"`

	OccurredAt time.Time `gorm:"not null;index;column:occurred_at" json:"occurred_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Interaction) TableName() string { return "interaction" }

func ValidPartyType(s string) bool {
	switch s {
	case PartyTypeArgan, PartyTypeClient, PartyTypeContractor, PartyTypeEmployee, PartyTypeThirdParty:
		return true
	}
	return false
}
