package application

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/msaleh/formgate/internal/domain/schema"
	"github.com/msaleh/formgate/internal/domain/submission"
	"github.com/msaleh/formgate/internal/notify"
	"github.com/msaleh/formgate/internal/repository"
	"github.com/msaleh/formgate/internal/testutils"
)

type captureEnqueuer struct {
	events []notify.Event
}

func (c *captureEnqueuer) Enqueue(event notify.Event) {
	c.events = append(c.events, event)
}

func seedLoanSchema(t *testing.T, repos *repository.Repos) *schema.FormSchema {
	t.Helper()

	sch := &schema.FormSchema{
		Name:     "loan-application",
		IsActive: true,
		Fields: []schema.FieldDefinition{
			{Name: schema.FieldPhoneNumber, Type: schema.FieldTypeText, Label: "Phone Number", LabelAr: "رقم الجوال", Required: true, Active: true, DisplayOrder: 1},
			{Name: schema.FieldBirthDate, Type: schema.FieldTypeDate, Label: "Birth Date", LabelAr: "تاريخ الميلاد", Required: true, Active: true, DisplayOrder: 2},
			{Name: schema.FieldAge, Type: schema.FieldTypeNumber, Label: "Age", LabelAr: "العمر", Active: true, DisplayOrder: 3},
			{Name: schema.FieldCitizenshipStatus, Type: schema.FieldTypeDropdown, Label: "Citizenship", LabelAr: "الجنسية", Active: true, DisplayOrder: 4},
			{Name: schema.FieldMonthlySalary, Type: schema.FieldTypeNumber, Label: "Monthly Salary", LabelAr: "الراتب الشهري", Required: true, Active: true, DisplayOrder: 5},
			{Name: schema.FieldMonthlyCommitments, Type: schema.FieldTypeNumber, Label: "Monthly Commitments", LabelAr: "الالتزامات الشهرية", Required: true, Active: true, DisplayOrder: 6},
			{Name: schema.FieldHasMortgage, Type: schema.FieldTypeDropdown, Label: "Has Mortgage", LabelAr: "لديه رهن عقاري", Active: true, DisplayOrder: 7},
		},
	}
	require.NoError(t, repos.Schema.Create(sch))
	return sch
}

// eligibleSubmission mirrors eligibleValues but with a birth date computed
// against the wall clock, since the service decides with real time.
func eligibleSubmission() map[string]string {
	birth := time.Now().UTC().AddDate(-30, 0, 0)
	return map[string]string{
		schema.FieldPhoneNumber:        "0501234567",
		schema.FieldBirthDate:          birth.Format("2006-01-02"),
		schema.FieldAge:                "30",
		schema.FieldCitizenshipStatus:  "citizen",
		schema.FieldMonthlySalary:      "10000",
		schema.FieldMonthlyCommitments: "2000",
		schema.FieldHasMortgage:        "no",
	}
}

func newSubmissionFixture(t *testing.T) (*SubmissionService, *repository.Repos, *captureEnqueuer) {
	t.Helper()
	db := testutils.OpenTestDB(t)
	repos := repository.NewRepositories(db)
	enq := &captureEnqueuer{}
	svc := NewSubmissionService(repos, DefaultPolicy(), enq, zap.NewNop())
	return svc, repos, enq
}

func TestSubmitApprovesAndNotifies(t *testing.T) {
	svc, repos, enq := newSubmissionFixture(t)
	sch := seedLoanSchema(t, repos)

	result, err := svc.Submit(0, "Ahmed", eligibleSubmission())
	require.NoError(t, err)

	assert.Equal(t, submission.StatusApproved, result.Status)
	assert.NotEmpty(t, result.ReferenceNo)
	assert.Empty(t, result.RejectionReasonEn)

	stored, err := repos.Submission.FindByID(result.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, sch.ID, stored.SchemaID)
	assert.Equal(t, submission.StatusApproved, stored.Status)
	assert.Len(t, stored.Values, 7)

	require.Len(t, enq.events, 1)
	assert.True(t, enq.events[0].Approved)
	assert.Equal(t, result.ReferenceNo, enq.events[0].ReferenceNo)
}

func TestSubmitRejectsWithJoinedReasons(t *testing.T) {
	svc, repos, enq := newSubmissionFixture(t)
	seedLoanSchema(t, repos)

	values := eligibleSubmission()
	values[schema.FieldPhoneNumber] = "123"
	values[schema.FieldCitizenshipStatus] = "resident"

	result, err := svc.Submit(0, "Ahmed", values)
	require.NoError(t, err)

	assert.Equal(t, submission.StatusRejected, result.Status)
	assert.Contains(t, result.RejectionReasonEn, patternPhoneInvalidEn)
	assert.Contains(t, result.RejectionReasonEn, msgCitizensOnlyEn)
	assert.Contains(t, result.RejectionReasonEn, submission.ReasonDelimiter)

	stored, err := repos.Submission.FindByID(result.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, result.RejectionReasonAr, stored.RejectionReasonAr)
	assert.Equal(t, result.RejectionReasonEn, stored.RejectionReasonEn)

	require.Len(t, enq.events, 1)
	assert.False(t, enq.events[0].Approved)
	assert.Equal(t, result.RejectionReasonEn, enq.events[0].ReasonEn)
}

func TestSubmitMissingRequiredPersistsNothing(t *testing.T) {
	svc, repos, _ := newSubmissionFixture(t)
	seedLoanSchema(t, repos)

	values := eligibleSubmission()
	delete(values, schema.FieldPhoneNumber)
	values[schema.FieldMonthlySalary] = "   "

	_, err := svc.Submit(0, "Ahmed", values)
	var missErr *MissingRequiredFieldsError
	require.ErrorAs(t, err, &missErr)
	assert.ElementsMatch(t, []string{"Phone Number", "Monthly Salary"}, missErr.Labels)
	assert.Len(t, missErr.LabelsAr, 2)

	page, err := svc.List(submission.QueryFilter{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestSubmitUnknownSchema(t *testing.T) {
	svc, _, _ := newSubmissionFixture(t)

	_, err := svc.Submit(42, "Ahmed", eligibleSubmission())
	assert.ErrorIs(t, err, ErrSchemaNotFound)

	// No active schema either.
	_, err = svc.Submit(0, "Ahmed", eligibleSubmission())
	assert.ErrorIs(t, err, ErrSchemaNotFound)
}

func TestSubmitSnapshotSurvivesSchemaEdits(t *testing.T) {
	svc, repos, _ := newSubmissionFixture(t)
	sch := seedLoanSchema(t, repos)

	result, err := svc.Submit(sch.ID, "Ahmed", eligibleSubmission())
	require.NoError(t, err)

	// Rename a field after the fact.
	field, ok := sch.FieldByName(schema.FieldMonthlySalary)
	require.True(t, ok)
	field.Label = "Base Salary"
	require.NoError(t, repos.Schema.UpdateField(field))

	stored, err := svc.GetSubmission(result.SubmissionID)
	require.NoError(t, err)
	for _, v := range stored.Values {
		if v.FieldName == schema.FieldMonthlySalary {
			assert.Equal(t, "Monthly Salary", v.FieldLabel)
			return
		}
	}
	t.Fatal("salary snapshot not found")
}

func TestSubmitDropsValuesForUnknownFields(t *testing.T) {
	svc, repos, _ := newSubmissionFixture(t)
	seedLoanSchema(t, repos)

	values := eligibleSubmission()
	values["favoriteColor"] = "blue"

	result, err := svc.Submit(0, "Ahmed", values)
	require.NoError(t, err)

	stored, err := svc.GetSubmission(result.SubmissionID)
	require.NoError(t, err)
	assert.Len(t, stored.Values, 7)
	_, ok := stored.ValueMap()["favoriteColor"]
	assert.False(t, ok)
}

func TestUpdateStatusAndSoftDelete(t *testing.T) {
	svc, repos, _ := newSubmissionFixture(t)
	seedLoanSchema(t, repos)

	result, err := svc.Submit(0, "Ahmed", eligibleSubmission())
	require.NoError(t, err)

	reasonAr, reasonEn := "سبب يدوي", "manual override"
	updated, err := svc.UpdateStatus(result.SubmissionID, submission.UpdateStatusDTO{
		Status:   submission.StatusRejected,
		ReasonAr: &reasonAr,
		ReasonEn: &reasonEn,
	})
	require.NoError(t, err)
	assert.Equal(t, submission.StatusRejected, updated.Status)
	assert.Equal(t, "manual override", updated.RejectionReasonEn)

	_, err = svc.UpdateStatus(result.SubmissionID, submission.UpdateStatusDTO{Status: "archived"})
	assert.Error(t, err)

	require.NoError(t, svc.SoftDelete(result.SubmissionID))
	stored, err := repos.Submission.FindByID(result.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, submission.StatusDeleted, stored.Status)
	// Reasons survive soft deletion.
	assert.Equal(t, "manual override", stored.RejectionReasonEn)

	// Revival is allowed.
	revived, err := svc.UpdateStatus(result.SubmissionID, submission.UpdateStatusDTO{Status: submission.StatusUnderReview})
	require.NoError(t, err)
	assert.Equal(t, submission.StatusUnderReview, revived.Status)
}

func TestSubmitMergesFieldRuleViolations(t *testing.T) {
	svc, repos, _ := newSubmissionFixture(t)
	sch := seedLoanSchema(t, repos)

	// Attach a custom rule to the service duration field.
	duration := schema.FieldDefinition{
		SchemaID:     sch.ID,
		Name:         schema.FieldServiceDuration,
		Type:         schema.FieldTypeNumber,
		Label:        "Service Duration",
		LabelAr:      "مدة الخدمة",
		Active:       true,
		DisplayOrder: 8,
	}
	require.NoError(t, repos.Schema.UpdateField(&duration))
	require.NoError(t, repos.Schema.SaveRule(&schema.ValidationRule{
		FieldID:        duration.ID,
		Operator:       ">=",
		Operand:        "12",
		IsValid:        true,
		ErrorMessageAr: "مدة الخدمة يجب ألا تقل عن ١٢ شهراً",
		ErrorMessageEn: "service duration must be at least 12 months",
	}))

	values := eligibleSubmission()
	values[schema.FieldServiceDuration] = "6"
	values[schema.FieldCitizenshipStatus] = "resident"

	result, err := svc.Submit(sch.ID, "Ahmed", values)
	require.NoError(t, err)

	assert.Equal(t, submission.StatusRejected, result.Status)
	// Field-rule violations come before business-rule violations.
	idxRule := strings.Index(result.RejectionReasonEn, "service duration must be at least 12 months")
	idxBusiness := strings.Index(result.RejectionReasonEn, msgCitizensOnlyEn)
	require.GreaterOrEqual(t, idxRule, 0)
	require.GreaterOrEqual(t, idxBusiness, 0)
	assert.Less(t, idxRule, idxBusiness)
}
