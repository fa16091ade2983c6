package application

import (
	"github.com/shopspring/decimal"

	"github.com/msaleh/formgate/internal/domain/submission"
	"github.com/msaleh/formgate/internal/repository"
)

// AnalyticsService is the read-side aggregation over stored rejected
// submissions: filtering, grouping and counting, nothing more.
type AnalyticsService struct {
	repos       *repository.Repos
	markerField string
	markerValue string
}

func NewAnalyticsService(repos *repository.Repos, markerField, markerValue string) *AnalyticsService {
	return &AnalyticsService{repos: repos, markerField: markerField, markerValue: markerValue}
}

// ListRejected pages through rejected submissions in the reporting cohort
// (snapshot marker field equal to the configured token), optionally
// narrowed by date range.
func (s *AnalyticsService) ListRejected(filter submission.QueryFilter) (*submission.Page, error) {
	filter.Status = submission.StatusRejected
	if filter.MarkerField == "" {
		filter.MarkerField = s.markerField
		filter.MarkerValue = s.markerValue
	}
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

// ReasonBreakdown groups the matching rejections by their stored reason
// string and attaches each group's share as a percentage (one decimal).
func (s *AnalyticsService) ReasonBreakdown(filter submission.QueryFilter) ([]submission.ReasonCount, error) {
	filter.Status = submission.StatusRejected
	if filter.MarkerField == "" {
		filter.MarkerField = s.markerField
		filter.MarkerValue = s.markerValue
	}

	rows, err := s.repos.Submission.CountByReason(filter)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, row := range rows {
		total += row.Count
	}
	if total == 0 {
		return rows, nil
	}

	hundred := decimal.NewFromInt(100)
	totalDec := decimal.NewFromInt(total)
	for i := range rows {
		pct := decimal.NewFromInt(rows[i].Count).Mul(hundred).Div(totalDec).Round(1)
		rows[i].Percentage, _ = pct.Float64()
	}
	return rows, nil
}
