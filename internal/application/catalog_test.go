package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msaleh/formgate/internal/domain/schema"
	"github.com/msaleh/formgate/internal/repository"
	"github.com/msaleh/formgate/internal/testutils"
)

func newCatalogFixture(t *testing.T) (*CatalogService, *repository.Repos) {
	t.Helper()
	repos := repository.NewRepositories(testutils.OpenTestDB(t))
	return NewCatalogService(repos), repos
}

func categories(entries []ReasonEntry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Category]++
	}
	return counts
}

func TestCatalogForFullSchema(t *testing.T) {
	svc, repos := newCatalogFixture(t)
	sch := seedLoanSchema(t, repos)

	catalog, err := svc.CatalogFor(sch.ID)
	require.NoError(t, err)
	assert.Equal(t, sch.ID, catalog.SchemaID)

	counts := categories(catalog.PossibleReasons)
	// phone missing/invalid, birth date missing/invalid, age floor, age mismatch
	assert.Equal(t, 6, counts[CategoryStructural])
	// citizens only, financials not numeric, salary not positive, ratio exceeded
	assert.Equal(t, 4, counts[CategoryBusiness])
	assert.Zero(t, counts[CategoryCustomRule])
}

func TestCatalogGatesOnSchemaFields(t *testing.T) {
	svc, repos := newCatalogFixture(t)

	sch := &schema.FormSchema{
		Name: "contact-form",
		Fields: []schema.FieldDefinition{
			{Name: schema.FieldPhoneNumber, Type: schema.FieldTypeText, Label: "Phone", Active: true},
			{Name: "comments", Type: schema.FieldTypeText, Label: "Comments", Active: true},
		},
	}
	require.NoError(t, repos.Schema.Create(sch))

	catalog, err := svc.CatalogFor(sch.ID)
	require.NoError(t, err)

	counts := categories(catalog.PossibleReasons)
	assert.Equal(t, 2, counts[CategoryStructural]) // phone missing and invalid only
	assert.Zero(t, counts[CategoryBusiness])
	for _, e := range catalog.PossibleReasons {
		assert.NotEqual(t, msgCitizensOnlyEn, e.MessageEn)
	}
}

func TestCatalogListsAndDedupesCustomRuleMessages(t *testing.T) {
	svc, repos := newCatalogFixture(t)

	sch := &schema.FormSchema{
		Name: "employment-form",
		Fields: []schema.FieldDefinition{
			{
				Name: "employment", Type: schema.FieldTypeDropdown, Active: true,
				Rule: &schema.ValidationRule{Operand: "employed", IsValid: true, ErrorMessageAr: "غير مؤهل", ErrorMessageEn: "not eligible"},
			},
			{
				Name: "sector", Type: schema.FieldTypeDropdown, Active: true,
				Rule: &schema.ValidationRule{Operand: "public", IsValid: true, ErrorMessageAr: "غير مؤهل", ErrorMessageEn: "not eligible"},
			},
			{
				Name: "silent", Type: schema.FieldTypeDropdown, Active: true,
				Rule: &schema.ValidationRule{Operand: "x", IsValid: true},
			},
		},
	}
	require.NoError(t, repos.Schema.Create(sch))

	catalog, err := svc.CatalogFor(sch.ID)
	require.NoError(t, err)

	var custom []ReasonEntry
	for _, e := range catalog.PossibleReasons {
		if e.Category == CategoryCustomRule {
			custom = append(custom, e)
		}
	}
	require.Len(t, custom, 1)
	assert.Equal(t, "not eligible", custom[0].MessageEn)
}

func TestCatalogIsDeterministic(t *testing.T) {
	svc, repos := newCatalogFixture(t)
	sch := seedLoanSchema(t, repos)

	first, err := svc.CatalogFor(sch.ID)
	require.NoError(t, err)
	second, err := svc.CatalogFor(sch.ID)
	require.NoError(t, err)

	assert.Equal(t, first.PossibleReasons, second.PossibleReasons)

	// Sorted by category, then Arabic message.
	for i := 1; i < len(first.PossibleReasons); i++ {
		prev, cur := first.PossibleReasons[i-1], first.PossibleReasons[i]
		if prev.Category == cur.Category {
			assert.LessOrEqual(t, prev.MessageAr, cur.MessageAr)
		} else {
			assert.Less(t, prev.Category, cur.Category)
		}
	}
}
