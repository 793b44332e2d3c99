package format

import "math"

// SafeDivide retorna 0 quando o divisor é zero ou o resultado não é finito
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}

	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}
	return result
}

// Rate é a razão expressa em porcentagem
func Rate(numerator, denominator float64) float64 {
	return SafeDivide(numerator, denominator) * 100
}

// CVR = conversões / cliques * 100
func CVR(conversions, clicks int) float64 {
	return Round2(Rate(float64(conversions), float64(clicks)))
}

// ROAS = receita / investimento
func ROAS(revenue, spend float64) float64 {
	return Round2(SafeDivide(revenue, spend))
}

// AOV = receita / pedidos
func AOV(revenue float64, orders int) float64 {
	return Round2(SafeDivide(revenue, float64(orders)))
}

// Share é a participação de um valor no total. Não é limitada a 100.
func Share(value, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return Rate(value, total)
}

// ChangePercent é a variação do período atual sobre o anterior
func ChangePercent(current, previous float64) float64 {
	return Round2(Rate(current-previous, math.Abs(previous)))
}

func Round2(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}
