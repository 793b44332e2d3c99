// Package format concentra a formatação de valores para exibição no dashboard
// e as métricas derivadas (taxas e razões) com proteção contra divisão por zero.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Kind seleciona o formato de exibição de um valor numérico
type Kind string

const (
	KindNumber     Kind = "number"
	KindCurrency   Kind = "currency"
	KindPercentage Kind = "percentage"
)

// NotAvailable é exibido quando o valor não é um número finito
const NotAvailable = "N/A"

const currencySymbol = "$"

var printer = message.NewPrinter(language.English)

// ParseKind aceita os três formatos conhecidos, qualquer outro valor vira number
func ParseKind(s string) Kind {
	switch Kind(s) {
	case KindCurrency:
		return KindCurrency
	case KindPercentage:
		return KindPercentage
	default:
		return KindNumber
	}
}

// Format converte o valor para o texto exibido nos cards e tabelas
func Format(value float64, kind Kind) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NotAvailable
	}

	switch kind {
	case KindCurrency:
		return formatCurrency(value)
	case KindPercentage:
		return fmt.Sprintf("%.1f%%", roundTo(value, 1))
	default:
		return printer.Sprint(number.Decimal(roundTo(value, 0), number.MaxFractionDigits(0)))
	}
}

// FormatRatio formata razões como ROAS (ex: 4.2x)
func FormatRatio(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NotAvailable
	}
	return fmt.Sprintf("%.1fx", value)
}

// formatCurrency agrupa milhares sem forçar casas decimais
func formatCurrency(value float64) string {
	value = roundTo(value, 2)

	sign := ""
	if value < 0 {
		sign = "-"
		value = math.Abs(value)
	}
	return sign + currencySymbol + printer.Sprint(number.Decimal(value, number.MaxFractionDigits(2)))
}

// roundTo arredonda para as casas exibidas. Valores que arredondam para zero
// perdem o sinal, evitando "-0.0%" e "-$0".
func roundTo(value float64, digits int) float64 {
	pow := math.Pow(10, float64(digits))
	rounded := math.Round(value*pow) / pow
	if rounded == 0 {
		return 0
	}
	return rounded
}
