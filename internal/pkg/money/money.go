// Package money formata e interpreta valores em reais (pt-BR).
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL formata como "R$ 1.234,56"; negativos ficam "-R$ 10,00".
func FormatBRL(v decimal.Decimal) string {
	v = v.Round(2)
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Abs()
	}
	f, _ := v.Float64()
	return sign + "R$ " + printer.Sprint(number.Decimal(f, number.Scale(2)))
}

// FormatNumber formata uma quantidade com até 3 casas ("1.234,5").
func FormatNumber(v decimal.Decimal) string {
	f, _ := v.Round(3).Float64()
	return printer.Sprint(number.Decimal(f, number.MaxFractionDigits(3)))
}

// FormatPercent formata um percentual com 1 casa ("12,5%").
func FormatPercent(v decimal.Decimal) string {
	f, _ := v.Round(1).Float64()
	return printer.Sprint(number.Decimal(f, number.Scale(1))) + "%"
}

// Parse aceita "1.234,56", "1234,56", "1234.56" e "R$ 10,00". Vazio vira zero.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		// Formato brasileiro: ponto é separador de milhar.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("valor monetário inválido %q: %w", s, err)
	}
	return d, nil
}

// IsBlank informa se o campo do formulário veio vazio (diferente de "0").
func IsBlank(s string) bool {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$")) == ""
}
