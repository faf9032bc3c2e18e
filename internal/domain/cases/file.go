package cases

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CaseFile points at an object in external storage. The row is metadata
// only; bytes live in the bucket.
type CaseFile struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CaseID        uuid.UUID  `gorm:"type:uuid;not null;index;column:case_id" json:"case_id"`
	InteractionID *uuid.UUID `gorm:"type:uuid;index;column:interaction_id" json:"interaction_id,omitempty"`

	Name       string         `gorm:"not null;column:name" json:"name"`
	Size       int64          `gorm:"not null;default:0;column:size" json:"size"`
	BucketKey  string         `gorm:"column:bucket_key" json:"-"`
	URL        string         `gorm:"not null;column:url" json:"url"`
	UploadedBy *uuid.UUID     `gorm:"type:uuid;column:uploaded_by" json:"uploaded_by,omitempty"`
	Tags       datatypes.JSON `gorm:"column:tags" json:"tags,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (CaseFile) TableName() string { return "case_file" }
