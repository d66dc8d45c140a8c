// Package render substitutes {{name}} placeholders in contract template
// bodies. Matching is exact-token and case-sensitive; no whitespace is
// tolerated inside the braces and no escaping is applied to values, since
// template authorship is restricted to authenticated operators.
package render

import (
	"strings"

	"github.com/obratech/contracts-service/internal/model"
)

// Render replaces every occurrence of each declared variable's placeholder
// with its value. A declared variable with no value (or a blank one) renders
// as the bracketed label, e.g. [Nome do Cliente]. Entries in values that do
// not match a declared variable are ignored.
func Render(body string, vars []model.TemplateVariable, values map[string]string) string {
	out := body
	for _, v := range vars {
		token := "{{" + v.Name + "}}"
		value, ok := values[v.Name]
		if !ok || strings.TrimSpace(value) == "" {
			value = "[" + v.Label + "]"
		}
		out = strings.ReplaceAll(out, token, value)
	}
	return out
}

// MissingRequired returns the labels of required variables whose value is
// absent or blank after trimming. An empty result means the value set is
// complete enough to generate a document.
func MissingRequired(vars []model.TemplateVariable, values map[string]string) []string {
	var missing []string
	for _, v := range vars {
		if !v.Required {
			continue
		}
		if strings.TrimSpace(values[v.Name]) == "" {
			missing = append(missing, v.Label)
		}
	}
	return missing
}
