package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/obratech/contracts-service/internal/document"
	"github.com/obratech/contracts-service/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() (*Generator, error) {
	return &Generator{fontName: "Helvetica"}, nil
}

// Generate renders the same content model as the HTML assembler into a PDF.
func (g *Generator) Generate(doc model.ContractDocument) ([]byte, error) {
	c := doc.Contract

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Core fonts are cp1252; Portuguese accents go through the translator.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := "Contrato de Prestação de Serviços"
	if c.Type != "" {
		title = "Contrato de " + c.Type
	}
	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Contrato nº %s", safeValue(c.Number))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Informações Gerais"), "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)

	rows := [][2]string{
		{"Cliente", orDefault(c.ClientName, "Cliente não informado")},
		{"Obra", orDefault(c.ProjectName, "Obra não informada")},
		{"Valor original", document.FormatBRL(c.BaseValue)},
		{"Valor total (com aditivos)", document.FormatBRL(c.EffectiveValue())},
		{"Data de início", document.FormatDate(c.StartDate)},
		{"Data de término", document.FormatDate(c.EffectiveEndDate())},
		{"Status", safeValue(string(c.Status))},
		{"Tipo", safeValue(c.Type)},
	}
	for _, row := range rows {
		pdf.SetFont(g.fontName, "B", 10)
		pdf.CellFormat(60, 7, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 7, tr(row[1]), "1", 1, "L", false, 0, "")
	}

	if c.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont(g.fontName, "B", 12)
		pdf.CellFormat(0, 8, tr("Observações"), "", 1, "L", false, 0, "")
		pdf.SetFont(g.fontName, "", 10)
		pdf.MultiCell(0, 5, tr(c.Notes), "", "L", false)
	}

	if len(c.Amendments) > 0 {
		pdf.Ln(4)
		pdf.SetFont(g.fontName, "B", 12)
		pdf.CellFormat(0, 8, tr("Termos Aditivos"), "", 1, "L", false, 0, "")

		headers := []string{"Nº", "Tipo", "Descrição", "Valor adicional", "Nova data", "Data"}
		widths := []float64{10, 22, 58, 32, 24, 24}
		drawTableRow(pdf, g.fontName, tr, headers, widths, true)
		for _, a := range c.Amendments {
			extra := "—"
			if a.AdditionalValue != nil {
				extra = document.FormatBRL(*a.AdditionalValue)
			}
			newDate := "—"
			if a.NewEndDate != nil {
				newDate = document.FormatDate(*a.NewEndDate)
			}
			drawTableRow(pdf, g.fontName, tr, []string{
				fmt.Sprintf("%d", a.Number),
				kindLabel(a.Kind),
				safeValue(a.Description),
				extra,
				newDate,
				document.FormatDate(a.Date),
			}, widths, false)
		}
	}

	pdf.Ln(10)
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Assinaturas"), "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	signatureBlock(pdf, g.fontName, tr, "Contratante", orDefault(c.ClientName, "Cliente não informado"))
	signatureBlock(pdf, g.fontName, tr, "Contratada", "Responsável Técnico")

	generatedAt := doc.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}
	pdf.Ln(8)
	pdf.SetFont(g.fontName, "", 8)
	pdf.CellFormat(0, 5, tr("Documento gerado em "+generatedAt.Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, col := range cols {
		align := "L"
		if i == 0 || i == 3 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func signatureBlock(pdf *gofpdf.Fpdf, fontName string, tr func(string) string, label, name string) {
	pdf.Ln(12)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s: ______________________ /%s/", label, name)), "", 1, "L", false, 0, "")
}

func kindLabel(k model.AmendmentKind) string {
	switch k {
	case model.AmendmentKindValue:
		return "Valor"
	case model.AmendmentKindDeadline:
		return "Prazo"
	case model.AmendmentKindScope:
		return "Escopo"
	default:
		return string(k)
	}
}

func safeValue(value string) string {
	if value == "" {
		return "—"
	}
	return value
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
