package application

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/msaleh/formgate/internal/domain/schema"
)

// ValidationResult collects every structural error found across a
// submission's values. Errors here never halt processing; they feed the
// final rejection reason alongside the approval engine's findings.
type ValidationResult struct {
	Errors   []string `json:"errors"`    // Arabic
	ErrorsEn []string `json:"errors_en"` // English
}

func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0 && len(r.ErrorsEn) == 0
}

// FieldValidationEngine evaluates a single value against its field's
// declared type and optional structured rule. Unknown operators pass
// through so schemas written against a newer rule vocabulary do not
// reject on older deployments.
type FieldValidationEngine struct{}

func NewFieldValidationEngine() *FieldValidationEngine {
	return &FieldValidationEngine{}
}

// ValidateAll runs every supplied value against the matching schema field.
// Values for unknown field names are ignored.
func (e *FieldValidationEngine) ValidateAll(values map[string]string, fields []schema.FieldDefinition) ValidationResult {
	var result ValidationResult
	for i := range fields {
		field := &fields[i]
		raw, ok := values[field.Name]
		if !ok {
			continue
		}
		arErrs, enErrs := e.ValidateField(field, raw)
		result.Errors = append(result.Errors, arErrs...)
		result.ErrorsEn = append(result.ErrorsEn, enErrs...)
	}
	return result
}

// ValidateField returns the bilingual errors for one value. A field
// without a rule always passes: structural validation only.
func (e *FieldValidationEngine) ValidateField(field *schema.FieldDefinition, raw string) (arErrs, enErrs []string) {
	rule := field.Rule
	if rule == nil {
		return nil, nil
	}

	switch field.Type {
	case schema.FieldTypeDropdown:
		return e.validateDropdown(field, rule, raw)
	case schema.FieldTypeNumber:
		return e.validateNumber(field, rule, raw)
	case schema.FieldTypeText, schema.FieldTypeDate:
		return e.validateText(field, rule, raw)
	default:
		// Legacy snapshot types (checkbox) share dropdown semantics.
		return e.validateDropdown(field, rule, raw)
	}
}

// validateDropdown applies the rule's polarity: IsValid true means the
// value must match the operand, false means a match is a violation.
func (e *FieldValidationEngine) validateDropdown(field *schema.FieldDefinition, rule *schema.ValidationRule, raw string) ([]string, []string) {
	if rule.Operand == "" {
		return nil, nil
	}
	matches := strings.EqualFold(strings.TrimSpace(raw), rule.Operand)
	if (rule.IsValid && !matches) || (!rule.IsValid && matches) {
		return e.ruleMessages(field, rule, raw)
	}
	return nil, nil
}

func (e *FieldValidationEngine) validateText(field *schema.FieldDefinition, rule *schema.ValidationRule, raw string) ([]string, []string) {
	switch rule.Operator {
	case "=":
		if raw != rule.Operand {
			return e.ruleMessages(field, rule, raw)
		}
	case "!=":
		if raw == rule.Operand {
			return e.ruleMessages(field, rule, raw)
		}
	}
	// Other operators are meaningless for text; pass through.
	return nil, nil
}

func (e *FieldValidationEngine) validateNumber(field *schema.FieldDefinition, rule *schema.ValidationRule, raw string) ([]string, []string) {
	if rule.Operator == "" {
		return nil, nil
	}

	value, errValue := decimal.NewFromString(strings.TrimSpace(raw))
	operand, errOperand := decimal.NewFromString(strings.TrimSpace(rule.Operand))
	if errValue != nil || errOperand != nil {
		label, labelAr := fieldLabels(field)
		return []string{fmt.Sprintf("الحقل '%s' يجب أن يكون رقماً", labelAr)},
			[]string{fmt.Sprintf("field '%s' must be numeric", label)}
	}

	cmp := value.Cmp(operand)
	var ok bool
	switch rule.Operator {
	case "=":
		ok = cmp == 0
	case "!=":
		ok = cmp != 0
	case ">":
		ok = cmp > 0
	case "<":
		ok = cmp < 0
	case ">=":
		ok = cmp >= 0
	case "<=":
		ok = cmp <= 0
	default:
		// Unknown operator: pass through.
		return nil, nil
	}

	if !ok {
		return e.ruleMessages(field, rule, raw)
	}
	return nil, nil
}

// ruleMessages prefers the rule's custom messages and falls back to a
// generated default naming the field label and the offending value.
func (e *FieldValidationEngine) ruleMessages(field *schema.FieldDefinition, rule *schema.ValidationRule, raw string) ([]string, []string) {
	label, labelAr := fieldLabels(field)

	ar := rule.ErrorMessageAr
	if ar == "" {
		ar = fmt.Sprintf("القيمة '%s' غير مقبولة للحقل '%s'", raw, labelAr)
	}
	en := rule.ErrorMessageEn
	if en == "" {
		en = fmt.Sprintf("value '%s' is not acceptable for field '%s'", raw, label)
	}
	return []string{ar}, []string{en}
}

func fieldLabels(field *schema.FieldDefinition) (en, ar string) {
	en = field.Label
	if en == "" {
		en = field.Name
	}
	ar = field.LabelAr
	if ar == "" {
		ar = en
	}
	return en, ar
}
