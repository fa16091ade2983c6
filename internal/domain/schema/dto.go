package schema

type RuleInputDTO struct {
	Operator       string `json:"operator" binding:"omitempty,oneof== != > < >= <="`
	Operand        string `json:"operand"`
	IsValid        bool   `json:"is_valid"`
	ErrorMessageAr string `json:"error_message_ar"`
	ErrorMessageEn string `json:"error_message_en"`
}

type FieldInputDTO struct {
	Name         string        `json:"name" binding:"required"`
	Type         FieldType     `json:"type" binding:"required,oneof=text number dropdown date"`
	Label        string        `json:"label" binding:"required"`
	LabelAr      string        `json:"label_ar"`
	Required     bool          `json:"required"`
	Options      []string      `json:"options"`
	DisplayOrder int           `json:"display_order"`
	Rule         *RuleInputDTO `json:"rule"`
}

type CreateSchemaDTO struct {
	Name   string          `json:"name" binding:"required"`
	Fields []FieldInputDTO `json:"fields" binding:"required,dive"`
}

type UpdateFieldDTO struct {
	Label        *string       `json:"label"`
	LabelAr      *string       `json:"label_ar"`
	Required     *bool         `json:"required"`
	Options      []string      `json:"options"`
	DisplayOrder *int          `json:"display_order"`
	Active       *bool         `json:"active"`
	Rule         *RuleInputDTO `json:"rule"`
}
