package clients

import (
	"time"

	"github.com/google/uuid"
)

const (
	AuditIntervalQuarterly  = "QUARTERLY"
	AuditIntervalSemiAnnual = "SEMI_ANNUAL"
	AuditIntervalAnnual     = "ANNUAL"
)

// ClientAudit records an external auditor engagement and when the next
// audit falls due.
type ClientAudit struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index;column:client_id" json:"client_id"`

	Auditor       string     `gorm:"not null;column:auditor" json:"auditor"`
	Interval      string     `gorm:"not null;default:ANNUAL;column:interval" json:"interval"`
	NextAuditDate *time.Time `gorm:"column:next_audit_date" json:"next_audit_date,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ClientAudit) TableName() string { return "client_audit" }

func ValidAuditInterval(s string) bool {
	switch s {
	case AuditIntervalQuarterly, AuditIntervalSemiAnnual, AuditIntervalAnnual:
		return true
	}
	return false
}
