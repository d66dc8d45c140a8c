package model

import (
	"time"

	"github.com/google/uuid"
)

type VariableKind string

const (
	VariableKindText     VariableKind = "text"
	VariableKindNumber   VariableKind = "number"
	VariableKindDate     VariableKind = "date"
	VariableKindCurrency VariableKind = "currency"
)

func (k VariableKind) Valid() bool {
	switch k {
	case VariableKindText, VariableKindNumber, VariableKindDate, VariableKindCurrency:
		return true
	}
	return false
}

// TemplateVariable declares one {{name}} placeholder of a template.
// Name is the placeholder key, unique within its template; Label is what the
// operator sees on the form and what failed placeholders render as.
type TemplateVariable struct {
	ID         uuid.UUID    `json:"id"`
	TemplateID uuid.UUID    `json:"templateId"`
	Position   int          `json:"position"`
	Name       string       `json:"name"`
	Label      string       `json:"label"`
	Kind       VariableKind `json:"kind"`
	Required   bool         `json:"required"`
}

type ContractTemplate struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Category  string             `json:"category"`
	Body      string             `json:"body"`
	Variables []TemplateVariable `json:"variables" gorm:"-"`
	Active    bool               `json:"active"`
	CreatedAt time.Time          `json:"createdAt"`
}
