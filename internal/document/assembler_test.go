package document

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obratech/contracts-service/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleContract() model.Contract {
	extra := 25000.0
	newEnd := date(2024, 9, 30)
	return model.Contract{
		ID:          uuid.New(),
		Number:      "CT-2024-001",
		ClientName:  "Construtora Alfa Ltda",
		ProjectName: "Residencial Jardim das Acácias",
		BaseValue:   1250000.50,
		StartDate:   date(2024, 1, 15),
		EndDate:     date(2024, 6, 30),
		Status:      model.ContractStatusActive,
		Type:        "Empreitada Global",
		Notes:       "Medições quinzenais.",
		Amendments: []model.Amendment{
			{Number: 1, Kind: model.AmendmentKindValue, Description: "Fundações extras", AdditionalValue: &extra, Date: date(2024, 3, 1), Justification: "Solo instável"},
			{Number: 2, Kind: model.AmendmentKindDeadline, Description: "Chuvas", NewEndDate: &newEnd, Date: date(2024, 4, 10)},
		},
	}
}

func TestAssemble(t *testing.T) {
	out := Assemble(model.ContractDocument{
		Contract:    sampleContract(),
		GeneratedAt: time.Date(2024, 5, 2, 14, 30, 0, 0, time.UTC),
	})

	assert.Contains(t, out, "Contrato de Empreitada Global")
	assert.Contains(t, out, "CT-2024-001")
	assert.Contains(t, out, "Construtora Alfa Ltda")
	assert.Contains(t, out, "Residencial Jardim das Acácias")
	assert.Contains(t, out, "R$ 1.250.000,50")
	// effective value = base + 25000
	assert.Contains(t, out, "R$ 1.275.000,50")
	// effective end date from the deadline amendment
	assert.Contains(t, out, "30/09/2024")
	assert.Contains(t, out, "Termos Aditivos")
	assert.Contains(t, out, "Fundações extras")
	assert.Contains(t, out, "Cláusula 1ª")
	assert.Contains(t, out, "Documento gerado em 02/05/2024 14:30")
}

func TestAssembleMissingFieldsUseFallbacks(t *testing.T) {
	out := Assemble(model.ContractDocument{Contract: model.Contract{Number: "CT-9"}})

	assert.Contains(t, out, "Cliente não informado")
	assert.Contains(t, out, "Obra não informada")
	assert.Contains(t, out, "Data inválida")
	assert.NotContains(t, out, "undefined")
}

func TestAssembleOmitsEmptySections(t *testing.T) {
	c := sampleContract()
	c.Notes = ""
	c.Amendments = nil
	out := Assemble(model.ContractDocument{Contract: c})

	assert.NotContains(t, out, "Observações")
	assert.NotContains(t, out, "Termos Aditivos")
}

func TestAssembleFromTemplate(t *testing.T) {
	tpl := model.ContractTemplate{Name: "Contrato Padrão", Category: "Residencial"}
	out := AssembleFromTemplate(tpl, "<p>corpo <b>renderizado</b></p>", time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC))

	assert.Contains(t, out, "Contrato Padrão")
	assert.Contains(t, out, "Residencial")
	// rendered body is trusted markup, inserted verbatim
	assert.Contains(t, out, "<p>corpo <b>renderizado</b></p>")
	assert.Contains(t, out, "Documento gerado em")
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "R$ 0,00"},
		{1234.56, "R$ 1.234,56"},
		{1250000.5, "R$ 1.250.000,50"},
		{999.999, "R$ 1.000,00"},
		{-42.1, "-R$ 42,10"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBRL(tt.value))
	}
}

func TestFormatBRLNonFinite(t *testing.T) {
	assert.Equal(t, "Valor inválido", FormatBRL(math.NaN()))
	assert.Equal(t, "Valor inválido", FormatBRL(math.Inf(1)))
	assert.Equal(t, "Valor inválido", FormatBRL(math.Inf(-1)))
}

func TestAssembleOverflowedValueDegrades(t *testing.T) {
	huge := math.MaxFloat64
	c := model.Contract{
		Number:    "CT-7",
		BaseValue: math.MaxFloat64,
		Amendments: []model.Amendment{
			{Number: 1, Kind: model.AmendmentKindValue, Description: "reajuste", AdditionalValue: &huge},
		},
	}

	// effective value overflows to +Inf; assembly must still succeed
	out := Assemble(model.ContractDocument{Contract: c})
	assert.Contains(t, out, "Valor inválido")
}

func TestFormatDateString(t *testing.T) {
	assert.Equal(t, "15/01/2024", FormatDateString("2024-01-15"))
	assert.Equal(t, "15/01/2024", FormatDateString("15/01/2024"))
	assert.Equal(t, "Data inválida", FormatDateString("not-a-date"))
	assert.Equal(t, "Data inválida", FormatDateString(""))
}

func TestFileName(t *testing.T) {
	name := FileName("CT-2024-001", "Construtora Alfa Ltda", "html")
	assert.Equal(t, "contrato-CT-2024-001-Construtora-Alfa-Ltda.html", name)

	require.True(t, strings.HasSuffix(FileName("", "", "pdf"), ".pdf"))
	assert.Equal(t, "contrato-contrato.pdf", FileName("", "", "pdf"))
}
