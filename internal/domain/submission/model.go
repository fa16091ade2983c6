package submission

import (
	"time"

	"gorm.io/datatypes"

	"github.com/msaleh/formgate/internal/domain/schema"
)

type Status string

const (
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusDeleted     Status = "deleted"
)

// ReasonDelimiter joins individual violation messages into the stored
// rejection reason strings.
const ReasonDelimiter = ", "

func (s Status) Valid() bool {
	switch s {
	case StatusUnderReview, StatusApproved, StatusRejected, StatusDeleted:
		return true
	}
	return false
}

// Submission is one user submission against a schema version. Rows are
// never physically removed; soft deletion sets Status to deleted.
type Submission struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	ReferenceNo       string    `json:"reference_no" gorm:"size:36;uniqueIndex"`
	SchemaID          uint      `json:"schema_id" gorm:"index"`
	SubmitterName     string    `json:"submitter_name"`
	Status            Status    `json:"status" gorm:"default:'under_review';index"`
	RejectionReasonAr string    `json:"rejection_reason_ar" gorm:"type:text"`
	RejectionReasonEn string    `json:"rejection_reason_en" gorm:"type:text"`
	SubmittedAt       time.Time `json:"submitted_at" gorm:"index"`
	Values            []Value   `json:"values" gorm:"foreignKey:SubmissionID"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Value stores one submitted field value together with a write-once
// snapshot of the field definition as it was at submission time. The
// snapshot is what all later display and reporting reads; it is never
// recomputed from the live schema.
type Value struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	SubmissionID uint             `json:"submission_id" gorm:"index"`
	Value        string           `json:"value" gorm:"type:text"`
	FieldName    string           `json:"field_name" gorm:"index"`
	FieldType    schema.FieldType `json:"field_type"`
	FieldLabel   string           `json:"field_label"`
	FieldLabelAr string           `json:"field_label_ar"`
	FieldOptions datatypes.JSON   `json:"field_options"`
	CreatedAt    time.Time        `json:"created_at"`
}

func (Value) TableName() string { return "submission_values" }

// ValueMap flattens the stored values into a field-name keyed map.
func (s *Submission) ValueMap() map[string]string {
	m := make(map[string]string, len(s.Values))
	for _, v := range s.Values {
		m[v.FieldName] = v.Value
	}
	return m
}
