package application

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/msaleh/formgate/internal/domain/schema"
	"github.com/msaleh/formgate/internal/repository"
)

// SchemaService manages form schema versions. Fields that submissions
// already reference are deactivated on removal, never deleted, so stored
// snapshots keep rendering.
type SchemaService struct {
	repos *repository.Repos
}

func NewSchemaService(repos *repository.Repos) *SchemaService {
	return &SchemaService{repos: repos}
}

func (s *SchemaService) CreateSchema(input schema.CreateSchemaDTO) (*schema.FormSchema, error) {
	seen := make(map[string]bool, len(input.Fields))
	fields := make([]schema.FieldDefinition, 0, len(input.Fields))
	for _, f := range input.Fields {
		if seen[f.Name] {
			return nil, fmt.Errorf("duplicate field name %q", f.Name)
		}
		seen[f.Name] = true

		field := schema.FieldDefinition{
			Name:         f.Name,
			Type:         f.Type,
			Label:        f.Label,
			LabelAr:      f.LabelAr,
			Required:     f.Required,
			DisplayOrder: f.DisplayOrder,
			Active:       true,
		}
		if len(f.Options) > 0 {
			raw, err := json.Marshal(f.Options)
			if err != nil {
				return nil, err
			}
			field.Options = datatypes.JSON(raw)
		}
		if f.Rule != nil {
			field.Rule = &schema.ValidationRule{
				Operator:       f.Rule.Operator,
				Operand:        f.Rule.Operand,
				IsValid:        f.Rule.IsValid,
				ErrorMessageAr: f.Rule.ErrorMessageAr,
				ErrorMessageEn: f.Rule.ErrorMessageEn,
			}
		}
		fields = append(fields, field)
	}

	sch := &schema.FormSchema{Name: input.Name, Fields: fields}
	if err := s.repos.Schema.Create(sch); err != nil {
		return nil, err
	}
	return s.repos.Schema.FindByID(sch.ID)
}

func (s *SchemaService) GetSchema(id uint) (*schema.FormSchema, error) {
	sch, err := s.repos.Schema.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchemaNotFound
		}
		return nil, err
	}
	return sch, nil
}

func (s *SchemaService) GetActiveSchema() (*schema.FormSchema, error) {
	sch, err := s.repos.Schema.FindActive()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchemaNotFound
		}
		return nil, err
	}
	return sch, nil
}

func (s *SchemaService) ListSchemas() ([]schema.FormSchema, error) {
	return s.repos.Schema.List()
}

// Activate flips the single active-schema selection to the target inside
// one transaction: the previous active flag clears and the new one sets
// together, or neither does.
func (s *SchemaService) Activate(id uint) error {
	err := s.repos.ExecTx(func(tx *repository.Repos) error {
		return tx.Schema.Activate(id)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSchemaNotFound
	}
	return err
}

// UpdateField applies a partial update to one field definition.
func (s *SchemaService) UpdateField(schemaID, fieldID uint, input schema.UpdateFieldDTO) (*schema.FieldDefinition, error) {
	sch, err := s.GetSchema(schemaID)
	if err != nil {
		return nil, err
	}

	var field *schema.FieldDefinition
	for i := range sch.Fields {
		if sch.Fields[i].ID == fieldID {
			field = &sch.Fields[i]
			break
		}
	}
	if field == nil {
		return nil, gorm.ErrRecordNotFound
	}

	if input.Label != nil {
		field.Label = *input.Label
	}
	if input.LabelAr != nil {
		field.LabelAr = *input.LabelAr
	}
	if input.Required != nil {
		field.Required = *input.Required
	}
	if input.Options != nil {
		raw, err := json.Marshal(input.Options)
		if err != nil {
			return nil, err
		}
		field.Options = datatypes.JSON(raw)
	}
	if input.DisplayOrder != nil {
		field.DisplayOrder = *input.DisplayOrder
	}
	if input.Active != nil {
		field.Active = *input.Active
	}

	if err := s.repos.Schema.UpdateField(field); err != nil {
		return nil, err
	}

	if input.Rule != nil {
		rule := field.Rule
		if rule == nil {
			rule = &schema.ValidationRule{FieldID: field.ID}
		}
		rule.Operator = input.Rule.Operator
		rule.Operand = input.Rule.Operand
		rule.IsValid = input.Rule.IsValid
		rule.ErrorMessageAr = input.Rule.ErrorMessageAr
		rule.ErrorMessageEn = input.Rule.ErrorMessageEn
		if err := s.repos.Schema.SaveRule(rule); err != nil {
			return nil, err
		}
		field.Rule = rule
	}

	return field, nil
}

// RemoveField drops a field from the schema. Once any stored submission
// references the field it is only deactivated, keeping historical
// snapshots renderable; a field never submitted against is deleted.
func (s *SchemaService) RemoveField(schemaID, fieldID uint) error {
	sch, err := s.GetSchema(schemaID)
	if err != nil {
		return err
	}

	var field *schema.FieldDefinition
	for i := range sch.Fields {
		if sch.Fields[i].ID == fieldID {
			field = &sch.Fields[i]
			break
		}
	}
	if field == nil {
		return gorm.ErrRecordNotFound
	}

	referenced, err := s.repos.Schema.FieldHasSubmissions(sch.ID, field.Name)
	if err != nil {
		return err
	}
	if referenced {
		field.Active = false
		return s.repos.Schema.UpdateField(field)
	}

	return s.repos.ExecTx(func(tx *repository.Repos) error {
		if err := tx.Schema.DeleteRule(field.ID); err != nil {
			return err
		}
		return tx.Schema.DeleteField(field)
	})
}
