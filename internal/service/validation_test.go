package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/obratech/contracts-service/internal/config"
	"github.com/obratech/contracts-service/internal/model"
)

func manager() model.Principal {
	return model.Principal{UserID: uuid.New(), OrgID: uuid.New(), Role: model.RoleManager}
}

func validContractInput() ContractInput {
	return ContractInput{
		Number:      "CT-2024-001",
		ClientName:  "Construtora Alfa",
		ProjectName: "Residencial Beta",
		BaseValue:   1000,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:      model.ContractStatusActive,
		Principal:   manager(),
	}
}

func TestValidateContractInput(t *testing.T) {
	svc := NewContractService(nil, nil, nil, nil, &config.Config{})

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, svc.validateContractInput(validContractInput()))
	})

	mutations := map[string]func(*ContractInput){
		"blank number":     func(in *ContractInput) { in.Number = "  " },
		"blank client":     func(in *ContractInput) { in.ClientName = "" },
		"blank project":    func(in *ContractInput) { in.ProjectName = "" },
		"negative value":   func(in *ContractInput) { in.BaseValue = -1 },
		"zero start date":  func(in *ContractInput) { in.StartDate = time.Time{} },
		"end before start": func(in *ContractInput) { in.EndDate = in.StartDate.AddDate(0, 0, -1) },
		"invalid status":   func(in *ContractInput) { in.Status = "rascunho" },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			in := validContractInput()
			mutate(&in)
			assert.ErrorIs(t, svc.validateContractInput(in), ErrInvalidInput)
		})
	}
}

func TestValidateContractInputAllowedTypes(t *testing.T) {
	svc := NewContractService(nil, nil, nil, nil, &config.Config{
		Contracts: config.ContractsConfig{AllowedTypes: []string{"Empreitada Global"}},
	})

	in := validContractInput()
	in.Type = "Empreitada Global"
	assert.NoError(t, svc.validateContractInput(in))

	in.Type = "Administração"
	assert.ErrorIs(t, svc.validateContractInput(in), ErrInvalidInput)
}

func TestValidateAmendmentInput(t *testing.T) {
	value := 100.0
	newEnd := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	contractID := uuid.New()

	base := AmendmentInput{
		ContractID:  contractID,
		Description: "ajuste",
		Principal:   manager(),
	}

	tests := []struct {
		name    string
		mutate  func(*AmendmentInput)
		wantErr bool
	}{
		{
			name: "value amendment with amount",
			mutate: func(in *AmendmentInput) {
				in.Kind = model.AmendmentKindValue
				in.AdditionalValue = &value
			},
		},
		{
			name: "deadline amendment with new date",
			mutate: func(in *AmendmentInput) {
				in.Kind = model.AmendmentKindDeadline
				in.NewEndDate = &newEnd
			},
		},
		{
			name:   "scope amendment bare",
			mutate: func(in *AmendmentInput) { in.Kind = model.AmendmentKindScope },
		},
		{
			name:    "value amendment without amount",
			mutate:  func(in *AmendmentInput) { in.Kind = model.AmendmentKindValue },
			wantErr: true,
		},
		{
			name:    "deadline amendment without date",
			mutate:  func(in *AmendmentInput) { in.Kind = model.AmendmentKindDeadline },
			wantErr: true,
		},
		{
			name: "scope amendment with amount",
			mutate: func(in *AmendmentInput) {
				in.Kind = model.AmendmentKindScope
				in.AdditionalValue = &value
			},
			wantErr: true,
		},
		{
			name: "value amendment with new date",
			mutate: func(in *AmendmentInput) {
				in.Kind = model.AmendmentKindValue
				in.AdditionalValue = &value
				in.NewEndDate = &newEnd
			},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			mutate:  func(in *AmendmentInput) { in.Kind = "reajuste" },
			wantErr: true,
		},
		{
			name: "blank description",
			mutate: func(in *AmendmentInput) {
				in.Kind = model.AmendmentKindScope
				in.Description = " "
			},
			wantErr: true,
		},
		{
			name: "missing contract id",
			mutate: func(in *AmendmentInput) {
				in.Kind = model.AmendmentKindScope
				in.ContractID = uuid.Nil
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			err := validateAmendmentInput(in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTemplateInput(t *testing.T) {
	valid := TemplateInput{
		Name: "Contrato Padrão",
		Body: "Contratante: {{cliente}}",
		Variables: []model.TemplateVariable{
			{Name: "cliente", Label: "Nome do Cliente", Kind: model.VariableKindText, Required: true},
		},
		Active:    true,
		Principal: manager(),
	}
	assert.NoError(t, validateTemplateInput(valid))

	tests := map[string]func(*TemplateInput){
		"blank name": func(in *TemplateInput) { in.Name = "" },
		"blank variable name": func(in *TemplateInput) {
			in.Variables[0].Name = ""
		},
		"variable name with braces": func(in *TemplateInput) {
			in.Variables[0].Name = "{{cliente}}"
		},
		"variable name with space": func(in *TemplateInput) {
			in.Variables[0].Name = "nome cliente"
		},
		"blank label": func(in *TemplateInput) {
			in.Variables[0].Label = " "
		},
		"invalid kind": func(in *TemplateInput) {
			in.Variables[0].Kind = "boolean"
		},
		"duplicate variable": func(in *TemplateInput) {
			in.Variables = append(in.Variables, in.Variables[0])
		},
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			in := valid
			in.Variables = append([]model.TemplateVariable(nil), valid.Variables...)
			mutate(&in)
			assert.ErrorIs(t, validateTemplateInput(in), ErrInvalidInput)
		})
	}
}
