package repository

import (
	"gorm.io/gorm"

	"github.com/msaleh/formgate/internal/domain/submission"
)

type SubmissionRepo interface {
	WithTx(tx *gorm.DB) SubmissionRepo
	Create(sub *submission.Submission) error
	FindByID(id uint) (*submission.Submission, error)
	UpdateStatus(id uint, status submission.Status, reasonAr, reasonEn *string) error
	Query(filter submission.QueryFilter) ([]submission.Submission, int64, error)
	CountByReason(filter submission.QueryFilter) ([]submission.ReasonCount, error)
}

type DBSubmissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepo(db *gorm.DB) SubmissionRepo {
	return &DBSubmissionRepo{db: db}
}

func (r *DBSubmissionRepo) WithTx(tx *gorm.DB) SubmissionRepo {
	return &DBSubmissionRepo{db: tx}
}

// Create persists the submission together with its value snapshots in a
// single insert chain.
func (r *DBSubmissionRepo) Create(sub *submission.Submission) error {
	return r.db.Create(sub).Error
}

func (r *DBSubmissionRepo) FindByID(id uint) (*submission.Submission, error) {
	var sub submission.Submission
	err := r.db.Preload("Values").First(&sub, id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpdateStatus is idempotent: re-applying the same status and reasons is a
// no-op at the row level. Nil reasons leave the stored reasons untouched.
func (r *DBSubmissionRepo) UpdateStatus(id uint, status submission.Status, reasonAr, reasonEn *string) error {
	updates := map[string]interface{}{"status": status}
	if reasonAr != nil {
		updates["rejection_reason_ar"] = *reasonAr
	}
	if reasonEn != nil {
		updates["rejection_reason_en"] = *reasonEn
	}
	res := r.db.Model(&submission.Submission{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBSubmissionRepo) filtered(filter submission.QueryFilter) *gorm.DB {
	q := r.db.Model(&submission.Submission{})
	if filter.SchemaID != 0 {
		q = q.Where("submissions.schema_id = ?", filter.SchemaID)
	}
	if filter.Status != "" {
		q = q.Where("submissions.status = ?", filter.Status)
	}
	if filter.From != nil {
		q = q.Where("submissions.submitted_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("submissions.submitted_at <= ?", *filter.To)
	}
	if filter.MarkerField != "" {
		q = q.Joins("JOIN submission_values ON submission_values.submission_id = submissions.id").
			Where("submission_values.field_name = ? AND submission_values.value = ?",
				filter.MarkerField, filter.MarkerValue)
	}
	return q
}

func (r *DBSubmissionRepo) Query(filter submission.QueryFilter) ([]submission.Submission, int64, error) {
	filter.Normalize()

	var total int64
	if err := r.filtered(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []submission.Submission
	err := r.filtered(filter).
		Preload("Values").
		Order("submissions.submitted_at desc").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&subs).Error
	return subs, total, err
}

// CountByReason groups matching submissions by their stored rejection
// reason strings. Percentages are filled in by the analytics service.
func (r *DBSubmissionRepo) CountByReason(filter submission.QueryFilter) ([]submission.ReasonCount, error) {
	var rows []submission.ReasonCount
	err := r.filtered(filter).
		Select("submissions.rejection_reason_en as reason_en, submissions.rejection_reason_ar as reason_ar, count(*) as count").
		Group("submissions.rejection_reason_en, submissions.rejection_reason_ar").
		Order("count desc").
		Scan(&rows).Error
	return rows, err
}
