package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/obratech/contracts-service/internal/model"
)

func TestGenerate(t *testing.T) {
	extra := 200.0
	contracts := []model.Contract{
		{
			Number:      "CT-1",
			ClientName:  "Alfa",
			ProjectName: "Obra Alfa",
			BaseValue:   1000,
			Status:      model.ContractStatusActive,
			StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			Amendments: []model.Amendment{
				{Number: 1, Kind: model.AmendmentKindValue, AdditionalValue: &extra},
			},
		},
		{
			Number:     "CT-2",
			ClientName: "Beta",
			BaseValue:  500,
			Status:     model.ContractStatusCompleted,
		},
	}

	content, err := NewGenerator().Generate(contracts, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	assert.Contains(t, sheets, "Resumo")
	assert.Contains(t, sheets, "Ativas")
	assert.Contains(t, sheets, "Concluídas")
	// no canceled or suspended contracts, so no sheets for them
	assert.NotContains(t, sheets, "Canceladas")
	assert.NotContains(t, sheets, "Suspensas")

	total, err := file.GetCellValue("Resumo", "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", total)

	effective, err := file.GetCellValue("Resumo", "B5")
	require.NoError(t, err)
	assert.Equal(t, "R$ 1.700,00", effective)

	number, err := file.GetCellValue("Ativas", "A2")
	require.NoError(t, err)
	assert.Equal(t, "CT-1", number)

	effectiveValue, err := file.GetCellValue("Ativas", "E2")
	require.NoError(t, err)
	assert.Equal(t, "R$ 1.200,00", effectiveValue)
}

func TestBuildSheetNameDeduplicates(t *testing.T) {
	used := map[string]struct{}{"Ativas": {}}
	assert.Equal(t, "Ativas-2", buildSheetName("Ativas", used))
}

func TestSanitizeSheetName(t *testing.T) {
	assert.Equal(t, "A-B", sanitizeSheetName("A/B"))
	assert.Equal(t, "Planilha", sanitizeSheetName("   "))
}
