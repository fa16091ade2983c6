package submission

import "time"

type SubmitDTO struct {
	SchemaID      uint              `json:"schema_id"` // 0 resolves to the active schema
	SubmitterName string            `json:"submitter_name" binding:"required"`
	Values        map[string]string `json:"values" binding:"required"`
}

// Result is the definite outcome returned to the caller: every accepted
// submission ends approved or rejected, never ambiguous.
type Result struct {
	SubmissionID      uint   `json:"submission_id"`
	ReferenceNo       string `json:"reference_no"`
	Status            Status `json:"status"`
	RejectionReasonAr string `json:"rejection_reason_ar,omitempty"`
	RejectionReasonEn string `json:"rejection_reason_en,omitempty"`
}

type UpdateStatusDTO struct {
	Status   Status  `json:"status" binding:"required"`
	ReasonAr *string `json:"reason_ar"`
	ReasonEn *string `json:"reason_en"`
}

// QueryFilter narrows submission listings. Marker matches submissions
// holding a snapshot value with MarkerField equal to MarkerValue.
type QueryFilter struct {
	SchemaID    uint
	Status      Status
	From        *time.Time
	To          *time.Time
	MarkerField string
	MarkerValue string
	Page        int
	PageSize    int
}

func (f *QueryFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 200 {
		f.PageSize = 50
	}
}

type Page struct {
	Items    []Submission `json:"items"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// ReasonCount is one row of the rejection-reason breakdown.
type ReasonCount struct {
	ReasonEn   string  `json:"reason_en"`
	ReasonAr   string  `json:"reason_ar"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}
