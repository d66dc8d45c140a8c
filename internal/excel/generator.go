package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/obratech/contracts-service/internal/document"
	"github.com/obratech/contracts-service/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

var statusOrder = []model.ContractStatus{
	model.ContractStatusActive,
	model.ContractStatusSuspended,
	model.ContractStatusCompleted,
	model.ContractStatusCanceled,
}

// Generate builds the portfolio workbook: a summary sheet followed by one
// sheet per contract status that has contracts.
func (g *Generator) Generate(contracts []model.Contract, generatedAt time.Time) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Resumo"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, contracts, generatedAt); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, status := range statusOrder {
		group := filterByStatus(contracts, status)
		if len(group) == 0 {
			continue
		}
		sheetName := buildSheetName(statusLabel(status), usedNames)
		usedNames[sheetName] = struct{}{}

		file.NewSheet(sheetName)
		if err := g.writeDetail(file, sheetName, group); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, contracts []model.Contract, generatedAt time.Time) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	totalBase := 0.0
	totalEffective := 0.0
	for _, c := range contracts {
		totalBase += c.BaseValue
		totalEffective += c.EffectiveValue()
	}

	set("A1", "Relatório de contratos")
	set("A2", "Gerado em")
	set("B2", formatDateTime(generatedAt))
	set("A3", "Total de contratos")
	set("B3", len(contracts))
	set("A4", "Valor original total")
	set("B4", document.FormatBRL(totalBase))
	set("A5", "Valor efetivo total")
	set("B5", document.FormatBRL(totalEffective))

	tableRow := 7
	set(fmt.Sprintf("A%d", tableRow), "Status")
	set(fmt.Sprintf("B%d", tableRow), "Contratos")
	set(fmt.Sprintf("C%d", tableRow), "Valor efetivo")

	row := tableRow
	for _, status := range statusOrder {
		group := filterByStatus(contracts, status)
		if len(group) == 0 {
			continue
		}
		row++
		groupTotal := 0.0
		for _, c := range group {
			groupTotal += c.EffectiveValue()
		}
		set(fmt.Sprintf("A%d", row), statusLabel(status))
		set(fmt.Sprintf("B%d", row), len(group))
		set(fmt.Sprintf("C%d", row), document.FormatBRL(groupTotal))
	}

	_ = file.SetColWidth(sheet, "A", "A", 28)
	_ = file.SetColWidth(sheet, "B", "B", 16)
	_ = file.SetColWidth(sheet, "C", "C", 20)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, contracts []model.Contract) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Número",
		"Cliente",
		"Obra",
		"Valor original",
		"Valor efetivo",
		"Início",
		"Término efetivo",
		"Tipo",
		"Aditivos",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, c := range contracts {
		row := i + 2
		set(fmt.Sprintf("A%d", row), c.Number)
		set(fmt.Sprintf("B%d", row), c.ClientName)
		set(fmt.Sprintf("C%d", row), c.ProjectName)
		set(fmt.Sprintf("D%d", row), document.FormatBRL(c.BaseValue))
		set(fmt.Sprintf("E%d", row), document.FormatBRL(c.EffectiveValue()))
		set(fmt.Sprintf("F%d", row), formatDate(c.StartDate))
		set(fmt.Sprintf("G%d", row), formatDate(c.EffectiveEndDate()))
		set(fmt.Sprintf("H%d", row), c.Type)
		set(fmt.Sprintf("I%d", row), len(c.Amendments))
	}

	_ = file.SetColWidth(sheet, "A", "A", 18)
	_ = file.SetColWidth(sheet, "B", "C", 36)
	_ = file.SetColWidth(sheet, "D", "E", 18)
	_ = file.SetColWidth(sheet, "F", "G", 14)
	_ = file.SetColWidth(sheet, "H", "H", 22)
	_ = file.SetColWidth(sheet, "I", "I", 10)
	return nil
}

func filterByStatus(contracts []model.Contract, status model.ContractStatus) []model.Contract {
	var group []model.Contract
	for _, c := range contracts {
		if c.Status == status {
			group = append(group, c)
		}
	}
	return group
}

func statusLabel(status model.ContractStatus) string {
	switch status {
	case model.ContractStatusActive:
		return "Ativas"
	case model.ContractStatusCompleted:
		return "Concluídas"
	case model.ContractStatusCanceled:
		return "Canceladas"
	case model.ContractStatusSuspended:
		return "Suspensas"
	default:
		return string(status)
	}
}

func buildSheetName(base string, used map[string]struct{}) string {
	base = sanitizeSheetName(base)
	if len(base) > 31 {
		base = base[:31]
	}

	candidate := base
	counter := 2
	for {
		if _, exists := used[candidate]; !exists {
			return candidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		candidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Planilha"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return "Planilha"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}
