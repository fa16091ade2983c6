package application

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/msaleh/formgate/internal/domain/schema"
	"github.com/msaleh/formgate/internal/domain/submission"
	"github.com/msaleh/formgate/pkg/phone"
)

// Decision is the approval verdict for one submission. Reason slices keep
// the individual violations in rule order; the joined strings are what is
// persisted and returned to callers.
type Decision struct {
	Approved          bool
	Status            submission.Status
	ReasonsAr         []string
	ReasonsEn         []string
	RejectionReasonAr string
	RejectionReasonEn string
}

type violation struct {
	ar string
	en string
}

// ruleContext is shared across the rule chain within one evaluation. The
// birth-date rule records its parse result so the age-consistency rule
// can reuse it without re-parsing.
type ruleContext struct {
	values      map[string]string
	birthDate   *time.Time
	computedAge int
	now         time.Time
}

type approvalRule struct {
	name  string
	check func(ctx *ruleContext) *violation
}

// ApprovalDecisionEngine evaluates the business eligibility rules over a
// submission's snapshot values. Every rule always runs; violations
// accumulate so the caller sees the complete list of problems at once.
type ApprovalDecisionEngine struct {
	policy ApprovalPolicy
	rules  []approvalRule
	now    func() time.Time
}

func NewApprovalDecisionEngine(policy ApprovalPolicy) *ApprovalDecisionEngine {
	e := &ApprovalDecisionEngine{policy: policy, now: time.Now}
	e.rules = []approvalRule{
		{name: "phone_format", check: e.checkPhone},
		{name: "birth_date_age_floor", check: e.checkBirthDate},
		{name: "age_consistency", check: e.checkAgeConsistency},
		{name: "citizenship", check: e.checkCitizenship},
		{name: "commitment_ratio", check: e.checkCommitmentRatio},
	}
	return e
}

// Decide never fails out to the caller: an internal fault during rule
// evaluation is converted into a generic processing-error rejection.
func (e *ApprovalDecisionEngine) Decide(values map[string]string) (d Decision) {
	defer func() {
		if r := recover(); r != nil {
			d = Decision{
				Approved:          false,
				Status:            submission.StatusRejected,
				ReasonsAr:         []string{msgProcessingErrorAr},
				ReasonsEn:         []string{msgProcessingErrorEn},
				RejectionReasonAr: msgProcessingErrorAr,
				RejectionReasonEn: msgProcessingErrorEn,
			}
		}
	}()

	ctx := &ruleContext{values: values, now: e.now()}

	var arReasons, enReasons []string
	for _, rule := range e.rules {
		if v := rule.check(ctx); v != nil {
			arReasons = append(arReasons, v.ar)
			enReasons = append(enReasons, v.en)
		}
	}

	if len(arReasons) == 0 {
		return Decision{Approved: true, Status: submission.StatusApproved}
	}
	return Decision{
		Approved:          false,
		Status:            submission.StatusRejected,
		ReasonsAr:         arReasons,
		ReasonsEn:         enReasons,
		RejectionReasonAr: strings.Join(arReasons, submission.ReasonDelimiter),
		RejectionReasonEn: strings.Join(enReasons, submission.ReasonDelimiter),
	}
}

func (e *ApprovalDecisionEngine) checkPhone(ctx *ruleContext) *violation {
	raw := strings.TrimSpace(ctx.values[schema.FieldPhoneNumber])
	if raw == "" {
		return &violation{ar: msgPhoneMissingAr, en: msgPhoneMissingEn}
	}
	if _, err := phone.Normalize(raw); err != nil {
		reason := "unrecognized format"
		var fmtErr *phone.FormatError
		if errors.As(err, &fmtErr) {
			reason = fmtErr.Reason
		}
		return &violation{
			ar: fmt.Sprintf(msgPhoneInvalidAr, reason),
			en: fmt.Sprintf(msgPhoneInvalidEn, reason),
		}
	}
	return nil
}

func (e *ApprovalDecisionEngine) checkBirthDate(ctx *ruleContext) *violation {
	raw := strings.TrimSpace(ctx.values[schema.FieldBirthDate])
	if raw == "" {
		return &violation{ar: msgBirthDateMissingAr, en: msgBirthDateMissingEn}
	}

	birth, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return &violation{ar: msgBirthDateInvalidAr, en: msgBirthDateInvalidEn}
	}

	ctx.birthDate = &birth
	ctx.computedAge = ageAt(birth, ctx.now)

	if ctx.computedAge < e.policy.MinAge {
		return &violation{
			ar: fmt.Sprintf(msgAgeBelowMinimumAr, ctx.computedAge, e.policy.MinAge),
			en: fmt.Sprintf(msgAgeBelowMinimumEn, ctx.computedAge, e.policy.MinAge),
		}
	}
	return nil
}

// checkAgeConsistency only applies when a declared age accompanies a
// successfully parsed birth date.
func (e *ApprovalDecisionEngine) checkAgeConsistency(ctx *ruleContext) *violation {
	raw := strings.TrimSpace(ctx.values[schema.FieldAge])
	if raw == "" || ctx.birthDate == nil {
		return nil
	}

	mismatch := func() *violation {
		return &violation{
			ar: fmt.Sprintf(msgAgeMismatchAr, raw, ctx.computedAge),
			en: fmt.Sprintf(msgAgeMismatchEn, raw, ctx.computedAge),
		}
	}

	declared, err := strconv.Atoi(raw)
	if err != nil {
		return mismatch()
	}

	diff := declared - ctx.computedAge
	if diff < 0 {
		diff = -diff
	}
	if diff > e.policy.AgeTolerance {
		return mismatch()
	}
	return nil
}

func (e *ApprovalDecisionEngine) checkCitizenship(ctx *ruleContext) *violation {
	raw := strings.TrimSpace(ctx.values[schema.FieldCitizenshipStatus])
	if raw == "" {
		return nil
	}
	if strings.EqualFold(raw, e.policy.ResidentToken) {
		return &violation{ar: msgCitizensOnlyAr, en: msgCitizensOnlyEn}
	}
	return nil
}

func (e *ApprovalDecisionEngine) checkCommitmentRatio(ctx *ruleContext) *violation {
	salary, errSalary := decimal.NewFromString(strings.TrimSpace(ctx.values[schema.FieldMonthlySalary]))
	commitments, errCommitments := decimal.NewFromString(strings.TrimSpace(ctx.values[schema.FieldMonthlyCommitments]))
	if errSalary != nil || errCommitments != nil {
		return &violation{ar: msgFinancialsNotNumericAr, en: msgFinancialsNotNumericEn}
	}

	if !salary.IsPositive() {
		return &violation{ar: msgSalaryNotPositiveAr, en: msgSalaryNotPositiveEn}
	}

	ceiling := decimal.NewFromFloat(e.policy.RatioCeiling)
	if hasMortgage(ctx.values[schema.FieldHasMortgage]) {
		ceiling = decimal.NewFromFloat(e.policy.RatioCeilingMortgage)
	}

	percent := commitments.Div(salary).Mul(decimal.NewFromInt(100))
	if percent.GreaterThan(ceiling) {
		return &violation{
			ar: fmt.Sprintf(msgRatioExceededAr, percent.StringFixed(1), ceiling.String()),
			en: fmt.Sprintf(msgRatioExceededEn, percent.StringFixed(1), ceiling.String()),
		}
	}
	return nil
}

func hasMortgage(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "true", "1", "نعم":
		return true
	}
	return false
}

// ageAt computes the age in whole years, counting a year only once the
// birthday has occurred in the current calendar year.
func ageAt(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}
