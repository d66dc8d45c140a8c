// Package document assembles self-contained printable HTML for contracts and
// generated template documents. The assembler is a pure string producer: it
// performs no I/O and never fails, degrading missing or malformed fields to
// fixed placeholder text.
package document

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/obratech/contracts-service/internal/model"
)

const pageStyle = `<style>
body { font-family: Arial, Helvetica, sans-serif; color: #1a1a1a; margin: 40px; }
h1 { font-size: 20px; text-align: center; margin-bottom: 4px; }
h2 { font-size: 14px; border-bottom: 1px solid #999; padding-bottom: 4px; margin-top: 28px; }
.subtitle { text-align: center; color: #555; margin-top: 0; }
table.info { width: 100%; border-collapse: collapse; margin-top: 12px; }
table.info td { border: 1px solid #ccc; padding: 6px 10px; font-size: 13px; }
table.info td.label { width: 30%; font-weight: bold; background: #f5f5f5; }
table.amendments { width: 100%; border-collapse: collapse; margin-top: 8px; }
table.amendments th, table.amendments td { border: 1px solid #ccc; padding: 6px 8px; font-size: 12px; text-align: left; }
table.amendments th { background: #f5f5f5; }
.clauses p { font-size: 13px; text-align: justify; }
.signatures { display: flex; justify-content: space-between; margin-top: 80px; }
.signature { width: 45%; text-align: center; border-top: 1px solid #333; padding-top: 6px; font-size: 13px; }
.footer { margin-top: 60px; font-size: 11px; color: #777; text-align: center; }
.body { font-size: 13px; white-space: pre-wrap; text-align: justify; }
</style>`

var boilerplateClauses = []string{
	"Cláusula 1ª — O presente contrato tem por objeto a execução dos serviços descritos acima, conforme especificações técnicas acordadas entre as partes.",
	"Cláusula 2ª — O contratante se obriga a efetuar os pagamentos nas condições e prazos pactuados.",
	"Cláusula 3ª — A contratada se obriga a executar os serviços com observância das normas técnicas aplicáveis e da legislação vigente.",
	"Cláusula 4ª — Alterações de valor ou prazo somente terão validade quando formalizadas por termo aditivo assinado por ambas as partes.",
	"Cláusula 5ª — Fica eleito o foro da comarca da obra para dirimir quaisquer controvérsias oriundas deste contrato.",
}

// Assemble produces the printable HTML document for a contract, including its
// amendments and the derived effective value and end date.
func Assemble(doc model.ContractDocument) string {
	c := doc.Contract

	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html lang=\"pt-BR\"><head><meta charset=\"utf-8\">")
	b.WriteString("<title>" + html.EscapeString(title(c)) + "</title>")
	b.WriteString(pageStyle)
	b.WriteString("</head><body>")

	b.WriteString("<h1>" + html.EscapeString(title(c)) + "</h1>")
	b.WriteString("<p class=\"subtitle\">Contrato nº " + html.EscapeString(orFallback(c.Number, fallbackText)) + "</p>")

	b.WriteString("<h2>Informações Gerais</h2>")
	b.WriteString("<table class=\"info\">")
	writeInfoRow(&b, "Cliente", orFallback(c.ClientName, fallbackClient))
	writeInfoRow(&b, "Obra", orFallback(c.ProjectName, fallbackProject))
	writeInfoRow(&b, "Valor original", FormatBRL(c.BaseValue))
	writeInfoRow(&b, "Valor total (com aditivos)", FormatBRL(c.EffectiveValue()))
	writeInfoRow(&b, "Data de início", FormatDate(c.StartDate))
	writeInfoRow(&b, "Data de término", FormatDate(c.EffectiveEndDate()))
	writeInfoRow(&b, "Status", orFallback(statusLabel(c.Status), fallbackText))
	writeInfoRow(&b, "Tipo", orFallback(c.Type, fallbackText))
	b.WriteString("</table>")

	if strings.TrimSpace(c.Notes) != "" {
		b.WriteString("<h2>Observações</h2>")
		b.WriteString("<p class=\"body\">" + html.EscapeString(c.Notes) + "</p>")
	}

	if len(c.Amendments) > 0 {
		b.WriteString("<h2>Termos Aditivos</h2>")
		b.WriteString("<table class=\"amendments\">")
		b.WriteString("<tr><th>Nº</th><th>Tipo</th><th>Descrição</th><th>Valor adicional</th><th>Nova data de término</th><th>Data</th><th>Justificativa</th></tr>")
		for _, a := range c.Amendments {
			writeAmendmentRow(&b, a)
		}
		b.WriteString("</table>")
	}

	b.WriteString("<h2>Cláusulas</h2><div class=\"clauses\">")
	for _, clause := range boilerplateClauses {
		b.WriteString("<p>" + html.EscapeString(clause) + "</p>")
	}
	b.WriteString("</div>")

	writeSignatures(&b, orFallback(c.ClientName, fallbackClient))
	writeFooter(&b, doc.GeneratedAt)

	b.WriteString("</body></html>")
	return b.String()
}

// AssembleFromTemplate wraps an already-rendered template body in the same
// printable shell. The body is inserted verbatim: rendered template content
// is operator-authored markup, not untrusted input.
func AssembleFromTemplate(tpl model.ContractTemplate, renderedBody string, generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html lang=\"pt-BR\"><head><meta charset=\"utf-8\">")
	b.WriteString("<title>" + html.EscapeString(orFallback(tpl.Name, "Documento")) + "</title>")
	b.WriteString(pageStyle)
	b.WriteString("</head><body>")

	b.WriteString("<h1>" + html.EscapeString(orFallback(tpl.Name, "Documento")) + "</h1>")
	if strings.TrimSpace(tpl.Category) != "" {
		b.WriteString("<p class=\"subtitle\">" + html.EscapeString(tpl.Category) + "</p>")
	}

	b.WriteString("<div class=\"body\">" + renderedBody + "</div>")

	writeSignatures(&b, "Contratante")
	writeFooter(&b, generatedAt)

	b.WriteString("</body></html>")
	return b.String()
}

// FileName derives a download filename from the contract number and client
// name, collapsing anything outside [A-Za-z0-9-_] to dashes.
func FileName(number, client, ext string) string {
	base := sanitizeFileName(number + "-" + client)
	if base == "" {
		base = "contrato"
	}
	return fmt.Sprintf("contrato-%s.%s", base, ext)
}

func title(c model.Contract) string {
	if strings.TrimSpace(c.Type) != "" {
		return "Contrato de " + c.Type
	}
	return "Contrato de Prestação de Serviços"
}

func statusLabel(s model.ContractStatus) string {
	switch s {
	case model.ContractStatusActive:
		return "Ativa"
	case model.ContractStatusCompleted:
		return "Concluída"
	case model.ContractStatusCanceled:
		return "Cancelada"
	case model.ContractStatusSuspended:
		return "Suspensa"
	default:
		return string(s)
	}
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

func writeInfoRow(b *strings.Builder, label, value string) {
	b.WriteString("<tr><td class=\"label\">" + html.EscapeString(label) + "</td><td>" + html.EscapeString(value) + "</td></tr>")
}

func writeAmendmentRow(b *strings.Builder, a model.Amendment) {
	extra := fallbackText
	if a.AdditionalValue != nil {
		extra = FormatBRL(*a.AdditionalValue)
	}
	newDate := fallbackText
	if a.NewEndDate != nil {
		newDate = FormatDate(*a.NewEndDate)
	}
	cells := []string{
		fmt.Sprintf("%d", a.Number),
		kindLabel(a.Kind),
		orFallback(a.Description, fallbackText),
		extra,
		newDate,
		FormatDate(a.Date),
		orFallback(a.Justification, fallbackText),
	}
	b.WriteString("<tr>")
	for _, cell := range cells {
		b.WriteString("<td>" + html.EscapeString(cell) + "</td>")
	}
	b.WriteString("</tr>")
}

func writeSignatures(b *strings.Builder, client string) {
	b.WriteString("<div class=\"signatures\">")
	b.WriteString("<div class=\"signature\">" + html.EscapeString(client) + "<br>Contratante</div>")
	b.WriteString("<div class=\"signature\">Contratada<br>Responsável Técnico</div>")
	b.WriteString("</div>")
}

func writeFooter(b *strings.Builder, generatedAt time.Time) {
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}
	b.WriteString("<div class=\"footer\">Documento gerado em " + generatedAt.Format("02/01/2006 15:04") + "</div>")
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	collapsed := strings.Trim(string(result), "-")
	for strings.Contains(collapsed, "--") {
		collapsed = strings.ReplaceAll(collapsed, "--", "-")
	}
	return collapsed
}
