package cases

import (
	"time"

	"github.com/google/uuid"
)

const (
	CaseStatusOpen     = "OPEN"
	CaseStatusAwaiting = "AWAITING"
	CaseStatusClosed   = "CLOSED"
)

// Case is a unit of consultancy work for a client, carrying an ordered
// interaction timeline and attached files.
type Case struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index;column:client_id" json:"client_id"`

	Seq         int64  `gorm:"not null;index;column:seq" json:"seq"`
	CaseNumber  string `gorm:"not null;uniqueIndex;column:case_number" json:"case_number"`
	Title       string `gorm:"not null;column:title" json:"title"`
	Status      string `gorm:"not null;default:OPEN;index;column:status" json:"status"`
	Escalated   bool   `gorm:"not null;default:false;column:escalated" json:"escalated"`
	Description string `gorm:"type:text;column:description" json:"description"`

	AssignedTo *uuid.UUID `gorm:"type:uuid;column:assigned_to" json:"assigned_to,omitempty"`
	ClosedAt   *time.Time `gorm:"column:closed_at" json:"closed_at,omitempty"`

	Interactions []Interaction `gorm:"foreignKey:CaseID" json:"interactions,omitempty"`
	Files        []CaseFile    `gorm:"foreignKey:CaseID" json:"files,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Case) TableName() string { return "case" }

func ValidCaseStatus(s string) bool {
	switch s {
	case CaseStatusOpen, CaseStatusAwaiting, CaseStatusClosed:
		return true
	}
	return false
}
