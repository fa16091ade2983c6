package schema

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeDate     FieldType = "date"
)

// FormSchema is one version of a form definition. At most one schema is
// active at a time; activation is handled transactionally by the repository.
type FormSchema struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	Name      string            `json:"name"`
	IsActive  bool              `json:"is_active" gorm:"index"`
	Fields    []FieldDefinition `json:"fields" gorm:"foreignKey:SchemaID"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// FieldDefinition describes one field of a form. The Name is the stable
// identifier submissions key their values by. Fields referenced by
// submissions are deactivated, never deleted.
type FieldDefinition struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	SchemaID     uint            `json:"schema_id" gorm:"uniqueIndex:idx_schema_field_name"`
	Name         string          `json:"name" gorm:"uniqueIndex:idx_schema_field_name"`
	Type         FieldType       `json:"type"`
	Label        string          `json:"label"`
	LabelAr      string          `json:"label_ar"`
	Required     bool            `json:"required"`
	Options      datatypes.JSON  `json:"options"` // dropdown choices, JSON array of strings
	DisplayOrder int             `json:"display_order"`
	Active       bool            `json:"active" gorm:"default:true"`
	Rule         *ValidationRule `json:"rule" gorm:"foreignKey:FieldID"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ValidationRule is an optional structured rule attached to a field.
// IsValid controls polarity: true means a value matching the operand is
// accepted, false means a match is rejected (dropdown deny semantics).
type ValidationRule struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	FieldID        uint   `json:"field_id" gorm:"index"`
	Operator       string `json:"operator"` // one of "", =, !=, >, <, >=, <=
	Operand        string `json:"operand"`
	IsValid        bool   `json:"is_valid"`
	ErrorMessageAr string `json:"error_message_ar"`
	ErrorMessageEn string `json:"error_message_en"`
}

// OptionList decodes the JSON options column. A missing or malformed
// column yields an empty list.
func (f *FieldDefinition) OptionList() []string {
	if len(f.Options) == 0 {
		return nil
	}
	var opts []string
	if err := json.Unmarshal(f.Options, &opts); err != nil {
		return nil
	}
	return opts
}

// ActiveFields returns the schema's active fields in display order.
func (s *FormSchema) ActiveFields() []FieldDefinition {
	fields := make([]FieldDefinition, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Active {
			fields = append(fields, f)
		}
	}
	return fields
}

// FieldByName looks a field up by its stable name, active or not.
func (s *FormSchema) FieldByName(name string) (*FieldDefinition, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}
