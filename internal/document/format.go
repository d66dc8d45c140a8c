package document

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	fallbackClient  = "Cliente não informado"
	fallbackProject = "Obra não informada"
	fallbackText    = "—"
	invalidDate     = "Data inválida"
	invalidValue    = "Valor inválido"
)

// FormatBRL renders a value as Brazilian currency: R$ 1.234,56.
// Non-finite values degrade to the invalid-value marker so assembly never
// fails on overflowed arithmetic.
func FormatBRL(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return invalidValue
	}

	negative := value < 0
	if negative {
		value = -value
	}

	whole := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(whole, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var grouped []string
	for len(intPart) > 3 {
		grouped = append([]string{intPart[len(intPart)-3:]}, grouped...)
		intPart = intPart[:len(intPart)-3]
	}
	grouped = append([]string{intPart}, grouped...)

	result := "R$ " + strings.Join(grouped, ".") + "," + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// FormatDate renders dd/mm/yyyy, or the invalid-date marker for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return invalidDate
	}
	return t.Format("02/01/2006")
}

// FormatDateString parses a user-supplied date and renders it as dd/mm/yyyy.
// Unparsable input degrades to the invalid-date marker instead of failing.
func FormatDateString(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return invalidDate
	}
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"02/01/2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return invalidDate
}

func orFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
