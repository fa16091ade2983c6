package application

import (
	"sort"

	"github.com/msaleh/formgate/internal/domain/schema"
	"github.com/msaleh/formgate/internal/repository"
)

// Reason categories, ordered as they appear in the catalog.
const (
	CategoryBusiness   = "business"
	CategoryCustomRule = "custom_rule"
	CategoryStructural = "structural"
)

// ReasonEntry is one rejection message a schema can produce. The search
// patterns are stable substrings usable against stored reason strings
// even though those interpolate computed values.
type ReasonEntry struct {
	MessageAr       string `json:"message_ar"`
	MessageEn       string `json:"message_en"`
	SearchPatternAr string `json:"search_pattern_ar"`
	SearchPatternEn string `json:"search_pattern_en"`
	Category        string `json:"category"`
}

type ReasonCatalog struct {
	SchemaID        uint          `json:"schema_id"`
	PossibleReasons []ReasonEntry `json:"possible_reasons"`
}

// CatalogService statically derives the universe of rejection messages a
// schema can produce. It reads only the schema, never submission history,
// so the result is deterministic for an unchanged schema.
type CatalogService struct {
	repos *repository.Repos
}

func NewCatalogService(repos *repository.Repos) *CatalogService {
	return &CatalogService{repos: repos}
}

func (s *CatalogService) CatalogFor(schemaID uint) (*ReasonCatalog, error) {
	sch, err := s.repos.Schema.FindByID(schemaID)
	if err != nil {
		return nil, err
	}

	entries := append(s.structuralEntries(sch), s.customRuleEntries(sch)...)
	entries = append(entries, s.businessEntries(sch)...)
	entries = dedupeEntries(entries)

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Category != entries[j].Category {
			return entries[i].Category < entries[j].Category
		}
		return entries[i].MessageAr < entries[j].MessageAr
	})

	return &ReasonCatalog{SchemaID: sch.ID, PossibleReasons: entries}, nil
}

// structuralEntries covers the fixed format messages gated on presence of
// the well-known fields.
func (s *CatalogService) structuralEntries(sch *schema.FormSchema) []ReasonEntry {
	var entries []ReasonEntry

	if _, ok := sch.FieldByName(schema.FieldPhoneNumber); ok {
		entries = append(entries,
			ReasonEntry{
				MessageAr:       msgPhoneMissingAr,
				MessageEn:       msgPhoneMissingEn,
				SearchPatternAr: msgPhoneMissingAr,
				SearchPatternEn: msgPhoneMissingEn,
				Category:        CategoryStructural,
			},
			ReasonEntry{
				MessageAr:       msgPhoneInvalidAr,
				MessageEn:       msgPhoneInvalidEn,
				SearchPatternAr: patternPhoneInvalidAr,
				SearchPatternEn: patternPhoneInvalidEn,
				Category:        CategoryStructural,
			})
	}

	if _, ok := sch.FieldByName(schema.FieldBirthDate); ok {
		entries = append(entries,
			ReasonEntry{
				MessageAr:       msgBirthDateMissingAr,
				MessageEn:       msgBirthDateMissingEn,
				SearchPatternAr: msgBirthDateMissingAr,
				SearchPatternEn: msgBirthDateMissingEn,
				Category:        CategoryStructural,
			},
			ReasonEntry{
				MessageAr:       msgBirthDateInvalidAr,
				MessageEn:       msgBirthDateInvalidEn,
				SearchPatternAr: msgBirthDateInvalidAr,
				SearchPatternEn: msgBirthDateInvalidEn,
				Category:        CategoryStructural,
			},
			ReasonEntry{
				MessageAr:       msgAgeBelowMinimumAr,
				MessageEn:       msgAgeBelowMinimumEn,
				SearchPatternAr: patternAgeBelowMinimumAr,
				SearchPatternEn: patternAgeBelowMinimumEn,
				Category:        CategoryStructural,
			})

		if _, ok := sch.FieldByName(schema.FieldAge); ok {
			entries = append(entries, ReasonEntry{
				MessageAr:       msgAgeMismatchAr,
				MessageEn:       msgAgeMismatchEn,
				SearchPatternAr: patternAgeMismatchAr,
				SearchPatternEn: patternAgeMismatchEn,
				Category:        CategoryStructural,
			})
		}
	}

	return entries
}

// customRuleEntries lists one message per field carrying custom rule
// error text.
func (s *CatalogService) customRuleEntries(sch *schema.FormSchema) []ReasonEntry {
	var entries []ReasonEntry
	for i := range sch.Fields {
		rule := sch.Fields[i].Rule
		if rule == nil {
			continue
		}
		if rule.ErrorMessageAr == "" && rule.ErrorMessageEn == "" {
			continue
		}
		entries = append(entries, ReasonEntry{
			MessageAr:       rule.ErrorMessageAr,
			MessageEn:       rule.ErrorMessageEn,
			SearchPatternAr: rule.ErrorMessageAr,
			SearchPatternEn: rule.ErrorMessageEn,
			Category:        CategoryCustomRule,
		})
	}
	return entries
}

// businessEntries covers the approval-rule messages gated on the fields
// those rules read.
func (s *CatalogService) businessEntries(sch *schema.FormSchema) []ReasonEntry {
	var entries []ReasonEntry

	if _, ok := sch.FieldByName(schema.FieldCitizenshipStatus); ok {
		entries = append(entries, ReasonEntry{
			MessageAr:       msgCitizensOnlyAr,
			MessageEn:       msgCitizensOnlyEn,
			SearchPatternAr: msgCitizensOnlyAr,
			SearchPatternEn: msgCitizensOnlyEn,
			Category:        CategoryBusiness,
		})
	}

	_, hasSalary := sch.FieldByName(schema.FieldMonthlySalary)
	_, hasCommitments := sch.FieldByName(schema.FieldMonthlyCommitments)
	if hasSalary && hasCommitments {
		entries = append(entries,
			ReasonEntry{
				MessageAr:       msgFinancialsNotNumericAr,
				MessageEn:       msgFinancialsNotNumericEn,
				SearchPatternAr: msgFinancialsNotNumericAr,
				SearchPatternEn: msgFinancialsNotNumericEn,
				Category:        CategoryBusiness,
			},
			ReasonEntry{
				MessageAr:       msgSalaryNotPositiveAr,
				MessageEn:       msgSalaryNotPositiveEn,
				SearchPatternAr: msgSalaryNotPositiveAr,
				SearchPatternEn: msgSalaryNotPositiveEn,
				Category:        CategoryBusiness,
			},
			ReasonEntry{
				MessageAr:       msgRatioExceededAr,
				MessageEn:       msgRatioExceededEn,
				SearchPatternAr: patternRatioExceededAr,
				SearchPatternEn: patternRatioExceededEn,
				Category:        CategoryBusiness,
			})
	}

	return entries
}

func dedupeEntries(entries []ReasonEntry) []ReasonEntry {
	seen := make(map[string]bool, len(entries))
	out := entries[:0]
	for _, e := range entries {
		key := e.MessageAr + "\x00" + e.MessageEn
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}
