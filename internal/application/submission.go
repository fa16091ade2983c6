package application

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/msaleh/formgate/internal/domain/schema"
	"github.com/msaleh/formgate/internal/domain/submission"
	"github.com/msaleh/formgate/internal/notify"
	"github.com/msaleh/formgate/internal/repository"
)

// ErrSchemaNotFound is returned when no target (or active) schema exists.
var ErrSchemaNotFound = errors.New("schema not found")

// MissingRequiredFieldsError is the only hard precondition failure after
// schema resolution: nothing is persisted when required fields are absent.
type MissingRequiredFieldsError struct {
	Labels   []string
	LabelsAr []string
}

func (e *MissingRequiredFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Labels, ", "))
}

// Enqueuer is the post-commit notification hook. A nil enqueuer disables
// notifications entirely.
type Enqueuer interface {
	Enqueue(event notify.Event)
}

// SubmissionService orchestrates the submission pipeline: schema
// resolution, the required-field precondition, field validation, atomic
// persistence of the submission with its value snapshots, the approval
// decision over the persisted snapshot, and post-commit notification.
type SubmissionService struct {
	repos      *repository.Repos
	validator  *FieldValidationEngine
	approver   *ApprovalDecisionEngine
	dispatcher Enqueuer
	logger     *zap.Logger
}

func NewSubmissionService(repos *repository.Repos, policy ApprovalPolicy, dispatcher Enqueuer, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{
		repos:      repos,
		validator:  NewFieldValidationEngine(),
		approver:   NewApprovalDecisionEngine(policy),
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Submit processes one submission end to end. schemaID 0 resolves to the
// active schema. Validation and business-rule failures are recorded on
// the stored submission, never returned as errors; only precondition and
// persistence failures surface to the caller.
func (s *SubmissionService) Submit(schemaID uint, submitterName string, values map[string]string) (*submission.Result, error) {
	sch, err := s.resolveSchema(schemaID)
	if err != nil {
		return nil, err
	}

	if missErr := missingRequired(sch, values); missErr != nil {
		return nil, missErr
	}

	validation := s.validator.ValidateAll(values, sch.Fields)

	var sub *submission.Submission
	var finalStatus submission.Status
	var reasonAr, reasonEn string

	err = s.repos.ExecTx(func(tx *repository.Repos) error {
		sub = &submission.Submission{
			ReferenceNo:   uuid.NewString(),
			SchemaID:      sch.ID,
			SubmitterName: submitterName,
			Status:        submission.StatusUnderReview,
			SubmittedAt:   time.Now().UTC(),
			Values:        snapshotValues(sch, values),
		}
		if err := tx.Submission.Create(sub); err != nil {
			return err
		}

		// Decide over what was actually persisted, not the raw input.
		decision := s.approver.Decide(sub.ValueMap())

		arParts := append(append([]string{}, validation.Errors...), decision.ReasonsAr...)
		enParts := append(append([]string{}, validation.ErrorsEn...), decision.ReasonsEn...)

		if len(arParts) > 0 {
			finalStatus = submission.StatusRejected
			reasonAr = strings.Join(arParts, submission.ReasonDelimiter)
			reasonEn = strings.Join(enParts, submission.ReasonDelimiter)
		} else {
			finalStatus = submission.StatusApproved
		}

		return tx.Submission.UpdateStatus(sub.ID, finalStatus, &reasonAr, &reasonEn)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("submission processed",
		zap.Uint("submission_id", sub.ID),
		zap.String("reference_no", sub.ReferenceNo),
		zap.String("status", string(finalStatus)))

	if s.dispatcher != nil {
		s.dispatcher.Enqueue(notify.Event{
			SubmissionID:  sub.ID,
			ReferenceNo:   sub.ReferenceNo,
			SubmitterName: submitterName,
			Approved:      finalStatus == submission.StatusApproved,
			Values:        sub.ValueMap(),
			ReasonAr:      reasonAr,
			ReasonEn:      reasonEn,
		})
	}

	return &submission.Result{
		SubmissionID:      sub.ID,
		ReferenceNo:       sub.ReferenceNo,
		Status:            finalStatus,
		RejectionReasonAr: reasonAr,
		RejectionReasonEn: reasonEn,
	}, nil
}

func (s *SubmissionService) resolveSchema(schemaID uint) (*schema.FormSchema, error) {
	var sch *schema.FormSchema
	var err error
	if schemaID == 0 {
		sch, err = s.repos.Schema.FindActive()
	} else {
		sch, err = s.repos.Schema.FindByID(schemaID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchemaNotFound
		}
		return nil, err
	}
	return sch, nil
}

// missingRequired reports active required fields that are absent or blank.
func missingRequired(sch *schema.FormSchema, values map[string]string) *MissingRequiredFieldsError {
	var missErr MissingRequiredFieldsError
	for _, field := range sch.ActiveFields() {
		if !field.Required {
			continue
		}
		if strings.TrimSpace(values[field.Name]) == "" {
			label, labelAr := fieldLabels(&field)
			missErr.Labels = append(missErr.Labels, label)
			missErr.LabelsAr = append(missErr.LabelsAr, labelAr)
		}
	}
	if len(missErr.Labels) > 0 {
		return &missErr
	}
	return nil
}

// snapshotValues freezes each supplied schema-known value with a copy of
// its field definition. Values for names the schema does not know are
// dropped; the snapshot is what all later reads use.
func snapshotValues(sch *schema.FormSchema, values map[string]string) []submission.Value {
	snapshots := make([]submission.Value, 0, len(values))
	for i := range sch.Fields {
		field := &sch.Fields[i]
		raw, ok := values[field.Name]
		if !ok {
			continue
		}
		var options datatypes.JSON
		if len(field.Options) > 0 {
			options = append(datatypes.JSON{}, field.Options...)
		}
		snapshots = append(snapshots, submission.Value{
			Value:        raw,
			FieldName:    field.Name,
			FieldType:    field.Type,
			FieldLabel:   field.Label,
			FieldLabelAr: field.LabelAr,
			FieldOptions: options,
		})
	}
	return snapshots
}

// GetSubmission returns a submission with its stored values.
func (s *SubmissionService) GetSubmission(id uint) (*submission.Submission, error) {
	return s.repos.Submission.FindByID(id)
}

// List pages through submissions using the given filter.
func (s *SubmissionService) List(filter submission.QueryFilter) (*submission.Page, error) {
	filter.Normalize()
	items, total, err := s.repos.Submission.Query(filter)
	if err != nil {
		return nil, err
	}
	return &submission.Page{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// UpdateStatus moves a submission to any status, including back out of
// deleted: the current design carries no terminal-state guard, matching
// the manual-review workflow where an admin can revive any record.
func (s *SubmissionService) UpdateStatus(id uint, input submission.UpdateStatusDTO) (*submission.Submission, error) {
	if !input.Status.Valid() {
		return nil, fmt.Errorf("invalid status %q", input.Status)
	}
	if err := s.repos.Submission.UpdateStatus(id, input.Status, input.ReasonAr, input.ReasonEn); err != nil {
		return nil, err
	}
	return s.repos.Submission.FindByID(id)
}

// SoftDelete marks the submission deleted; the row and its value
// snapshots remain.
func (s *SubmissionService) SoftDelete(id uint) error {
	return s.repos.Submission.UpdateStatus(id, submission.StatusDeleted, nil, nil)
}
