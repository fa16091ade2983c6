package application

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msaleh/formgate/internal/domain/schema"
	"github.com/msaleh/formgate/internal/domain/submission"
)

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestEngine() *ApprovalDecisionEngine {
	e := NewApprovalDecisionEngine(DefaultPolicy())
	e.now = func() time.Time { return fixedNow }
	return e
}

// eligibleValues is a baseline every rule passes on; tests override single
// fields to isolate one rule.
func eligibleValues() map[string]string {
	return map[string]string{
		schema.FieldPhoneNumber:        "0501234567",
		schema.FieldBirthDate:          "1990-01-10",
		schema.FieldAge:                "35",
		schema.FieldCitizenshipStatus:  "citizen",
		schema.FieldMonthlySalary:      "10000",
		schema.FieldMonthlyCommitments: "2000",
		schema.FieldHasMortgage:        "no",
	}
}

func TestDecideApprovesEligibleValues(t *testing.T) {
	d := newTestEngine().Decide(eligibleValues())

	assert.True(t, d.Approved)
	assert.Equal(t, submission.StatusApproved, d.Status)
	assert.Empty(t, d.ReasonsEn)
	assert.Empty(t, d.RejectionReasonEn)
}

func TestDecidePhoneRule(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		values := eligibleValues()
		delete(values, schema.FieldPhoneNumber)

		d := newTestEngine().Decide(values)
		require.False(t, d.Approved)
		assert.Contains(t, d.ReasonsEn, msgPhoneMissingEn)
		assert.Contains(t, d.ReasonsAr, msgPhoneMissingAr)
	})

	t.Run("invalid", func(t *testing.T) {
		values := eligibleValues()
		values[schema.FieldPhoneNumber] = "123456789"

		d := newTestEngine().Decide(values)
		require.False(t, d.Approved)
		require.Len(t, d.ReasonsEn, 1)
		assert.Contains(t, d.ReasonsEn[0], patternPhoneInvalidEn)
		assert.Contains(t, d.ReasonsAr[0], patternPhoneInvalidAr)
	})
}

func TestDecideBirthDateRule(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		values := eligibleValues()
		delete(values, schema.FieldBirthDate)
		delete(values, schema.FieldAge)

		d := newTestEngine().Decide(values)
		require.False(t, d.Approved)
		assert.Contains(t, d.ReasonsEn, msgBirthDateMissingEn)
	})

	t.Run("unparseable", func(t *testing.T) {
		values := eligibleValues()
		values[schema.FieldBirthDate] = "10/01/1990"
		delete(values, schema.FieldAge)

		d := newTestEngine().Decide(values)
		require.False(t, d.Approved)
		assert.Contains(t, d.ReasonsEn, msgBirthDateInvalidEn)
	})

	t.Run("birthday today reaches the floor", func(t *testing.T) {
		values := eligibleValues()
		values[schema.FieldBirthDate] = fixedNow.AddDate(-20, 0, 0).Format("2006-01-02")
		values[schema.FieldAge] = "20"

		d := newTestEngine().Decide(values)
		assert.True(t, d.Approved)
	})

	t.Run("one day under the floor", func(t *testing.T) {
		values := eligibleValues()
		values[schema.FieldBirthDate] = fixedNow.AddDate(-20, 0, 1).Format("2006-01-02")
		values[schema.FieldAge] = "19"

		d := newTestEngine().Decide(values)
		require.False(t, d.Approved)
		require.Len(t, d.ReasonsEn, 1)
		assert.Contains(t, d.ReasonsEn[0], patternAgeBelowMinimumEn)
		assert.Contains(t, d.ReasonsEn[0], "19")
	})
}

func TestDecideAgeConsistency(t *testing.T) {
	t.Run("within tolerance", func(t *testing.T) {
		values := eligibleValues()
		values[schema.FieldAge] = "34" // computed 35, tolerance 1

		d := newTestEngine().Decide(values)
		assert.True(t, d.Approved)
	})

	t.Run("beyond tolerance", func(t *testing.T) {
		values := eligibleValues()
		values[schema.FieldAge] = "33"

		d := newTestEngine().Decide(values)
		require.False(t, d.Approved)
		require.Len(t, d.ReasonsEn, 1)
		assert.Contains(t, d.ReasonsEn[0], patternAgeMismatchEn)
	})

	t.Run("non numeric declared age", func(t *testing.T) {
		values := eligibleValues()
		values[schema.FieldAge] = "thirty"

		d := newTestEngine().Decide(values)
		require.False(t, d.Approved)
		assert.Contains(t, d.ReasonsEn[0], patternAgeMismatchEn)
	})

	t.Run("skipped without a parsed birth date", func(t *testing.T) {
		values := eligibleValues()
		values[schema.FieldBirthDate] = "not-a-date"
		values[schema.FieldAge] = "99"

		d := newTestEngine().Decide(values)
		require.False(t, d.Approved)
		require.Len(t, d.ReasonsEn, 1)
		assert.Equal(t, msgBirthDateInvalidEn, d.ReasonsEn[0])
	})
}

func TestDecideCitizenship(t *testing.T) {
	t.Run("resident rejected case insensitively", func(t *testing.T) {
		values := eligibleValues()
		values[schema.FieldCitizenshipStatus] = "Resident"

		d := newTestEngine().Decide(values)
		require.False(t, d.Approved)
		assert.Contains(t, d.ReasonsEn, msgCitizensOnlyEn)
	})

	t.Run("absent value passes", func(t *testing.T) {
		values := eligibleValues()
		delete(values, schema.FieldCitizenshipStatus)

		d := newTestEngine().Decide(values)
		assert.True(t, d.Approved)
	})
}

func TestDecideCommitmentRatio(t *testing.T) {
	cases := []struct {
		name        string
		salary      string
		commitments string
		mortgage    string
		approved    bool
	}{
		{"at ceiling", "10000", "4300", "no", true},
		{"just over ceiling", "10000", "4301", "no", false},
		{"mortgage raises ceiling", "10000", "5500", "yes", true},
		{"over mortgage ceiling", "10000", "5501", "yes", false},
		{"arabic yes counts as mortgage", "10000", "5000", "نعم", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := eligibleValues()
			values[schema.FieldMonthlySalary] = tc.salary
			values[schema.FieldMonthlyCommitments] = tc.commitments
			values[schema.FieldHasMortgage] = tc.mortgage

			d := newTestEngine().Decide(values)
			assert.Equal(t, tc.approved, d.Approved)
			if !tc.approved {
				require.Len(t, d.ReasonsEn, 1)
				assert.Contains(t, d.ReasonsEn[0], patternRatioExceededEn)
			}
		})
	}

	t.Run("non numeric financials collapse to one reason", func(t *testing.T) {
		values := eligibleValues()
		values[schema.FieldMonthlySalary] = "a lot"
		values[schema.FieldMonthlyCommitments] = "none"

		d := newTestEngine().Decide(values)
		require.False(t, d.Approved)
		require.Len(t, d.ReasonsEn, 1)
		assert.Equal(t, msgFinancialsNotNumericEn, d.ReasonsEn[0])
	})

	t.Run("zero salary", func(t *testing.T) {
		values := eligibleValues()
		values[schema.FieldMonthlySalary] = "0"

		d := newTestEngine().Decide(values)
		require.False(t, d.Approved)
		assert.Contains(t, d.ReasonsEn, msgSalaryNotPositiveEn)
	})

	t.Run("ratio quoted to one decimal", func(t *testing.T) {
		values := eligibleValues()
		values[schema.FieldMonthlySalary] = "3000"
		values[schema.FieldMonthlyCommitments] = "2000" // 66.666...%

		d := newTestEngine().Decide(values)
		require.False(t, d.Approved)
		assert.Contains(t, d.ReasonsEn[0], "66.7%")
	})
}

func TestDecideAccumulatesViolationsInRuleOrder(t *testing.T) {
	values := eligibleValues()
	values[schema.FieldPhoneNumber] = "123"
	values[schema.FieldCitizenshipStatus] = "resident"

	d := newTestEngine().Decide(values)
	require.False(t, d.Approved)
	require.Len(t, d.ReasonsEn, 2)
	assert.Contains(t, d.ReasonsEn[0], patternPhoneInvalidEn)
	assert.Equal(t, msgCitizensOnlyEn, d.ReasonsEn[1])

	joined := strings.Join(d.ReasonsEn, submission.ReasonDelimiter)
	assert.Equal(t, joined, d.RejectionReasonEn)
	assert.Equal(t, strings.Join(d.ReasonsAr, submission.ReasonDelimiter), d.RejectionReasonAr)
}

func TestDecideRecoversFromRulePanic(t *testing.T) {
	e := newTestEngine()
	e.rules = append(e.rules, approvalRule{
		name:  "exploding",
		check: func(ctx *ruleContext) *violation { panic("boom") },
	})

	d := e.Decide(eligibleValues())
	require.False(t, d.Approved)
	assert.Equal(t, submission.StatusRejected, d.Status)
	assert.Equal(t, msgProcessingErrorEn, d.RejectionReasonEn)
	assert.Equal(t, msgProcessingErrorAr, d.RejectionReasonAr)
}

func TestAgeAtCountsBirthdayOnce(t *testing.T) {
	birth := time.Date(2000, time.June, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 24, ageAt(birth, fixedNow))
	assert.Equal(t, 25, ageAt(birth, fixedNow.AddDate(0, 0, 1)))
}
