package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/msaleh/formgate/internal/domain/schema"
	"github.com/msaleh/formgate/internal/domain/submission"
)

type SchemaRepo interface {
	WithTx(tx *gorm.DB) SchemaRepo
	Create(s *schema.FormSchema) error
	Update(s *schema.FormSchema) error
	FindByID(id uint) (*schema.FormSchema, error)
	FindActive() (*schema.FormSchema, error)
	List() ([]schema.FormSchema, error)
	Activate(id uint) error
	UpdateField(f *schema.FieldDefinition) error
	DeleteField(f *schema.FieldDefinition) error
	SaveRule(r *schema.ValidationRule) error
	DeleteRule(fieldID uint) error
	FieldHasSubmissions(schemaID uint, fieldName string) (bool, error)
}

type DBSchemaRepo struct {
	db *gorm.DB
}

func NewSchemaRepo(db *gorm.DB) SchemaRepo {
	return &DBSchemaRepo{db: db}
}

func (r *DBSchemaRepo) WithTx(tx *gorm.DB) SchemaRepo {
	return &DBSchemaRepo{db: tx}
}

func (r *DBSchemaRepo) Create(s *schema.FormSchema) error {
	return r.db.Create(s).Error
}

func (r *DBSchemaRepo) Update(s *schema.FormSchema) error {
	return r.db.Save(s).Error
}

func (r *DBSchemaRepo) FindByID(id uint) (*schema.FormSchema, error) {
	var s schema.FormSchema
	err := r.db.
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("display_order asc") }).
		Preload("Fields.Rule").
		First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *DBSchemaRepo) FindActive() (*schema.FormSchema, error) {
	var s schema.FormSchema
	err := r.db.
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("display_order asc") }).
		Preload("Fields.Rule").
		Where("is_active = ?", true).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *DBSchemaRepo) List() ([]schema.FormSchema, error) {
	var schemas []schema.FormSchema
	err := r.db.Order("created_at desc").Find(&schemas).Error
	return schemas, err
}

// Activate clears the active flag on every schema and sets it on the
// target. Callers run it inside ExecTx so both updates land together.
func (r *DBSchemaRepo) Activate(id uint) error {
	if err := r.db.Model(&schema.FormSchema{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error; err != nil {
		return err
	}
	res := r.db.Model(&schema.FormSchema{}).
		Where("id = ?", id).
		Update("is_active", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBSchemaRepo) UpdateField(f *schema.FieldDefinition) error {
	return r.db.Save(f).Error
}

func (r *DBSchemaRepo) DeleteField(f *schema.FieldDefinition) error {
	return r.db.Delete(f).Error
}

func (r *DBSchemaRepo) SaveRule(rule *schema.ValidationRule) error {
	return r.db.Save(rule).Error
}

func (r *DBSchemaRepo) DeleteRule(fieldID uint) error {
	err := r.db.Where("field_id = ?", fieldID).Delete(&schema.ValidationRule{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// FieldHasSubmissions reports whether any stored submission value
// snapshots reference the field, which blocks hard deletion.
func (r *DBSchemaRepo) FieldHasSubmissions(schemaID uint, fieldName string) (bool, error) {
	var count int64
	err := r.db.Model(&submission.Value{}).
		Joins("JOIN submissions ON submissions.id = submission_values.submission_id").
		Where("submissions.schema_id = ? AND submission_values.field_name = ?", schemaID, fieldName).
		Count(&count).Error
	return count > 0, err
}
