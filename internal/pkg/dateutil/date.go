// Package dateutil concentra as conversões de datas do painel.
// Datas "puras" (yyyy-MM-dd) são sempre montadas a partir de ano/mês/dia no fuso local,
// para que uma data enviada pelo backend não mude de dia ao ser exibida.
package dateutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	InputLayout      = "2006-01-02"
	BrazilianLayout  = "02/01/2006"
	localDateTimeISO = "2006-01-02T15:04:05"
)

// ParseLocalDate interpreta "yyyy-MM-dd" como meia-noite local daquele dia.
func ParseLocalDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(InputLayout) {
		// Aceita "2025-12-07T00:00:00" descartando a hora.
		s = s[:len(InputLayout)]
	}
	var y, m, d int
	if _, err := fmt.Sscanf(s, "%4d-%2d-%2d", &y, &m, &d); err != nil {
		return time.Time{}, fmt.Errorf("data inválida %q: %w", s, err)
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, fmt.Errorf("data inválida %q", s)
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local), nil
}

// ParseLocalDateTime interpreta um LocalDateTime do backend (sem fuso) no fuso local.
// Valores com fuso explícito (RFC3339) também são aceitos.
func ParseLocalDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.Local(), nil
	}
	layouts := []string{localDateTimeISO + ".999999999", localDateTimeISO, "2006-01-02T15:04", "2006-01-02 15:04:05"}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := ParseLocalDate(s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("data/hora inválida %q", s)
}

// ParseInputDate converte o valor de um <input type="date">. Vazio devolve o instante atual.
func ParseInputDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Now(), nil
	}
	return ParseLocalDate(s)
}

// FormatToInputDate formata para o <input type="date"> (yyyy-MM-dd).
func FormatToInputDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(InputLayout)
}

// FormatToBrazilianDate formata como dd/MM/yyyy.
func FormatToBrazilianDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(BrazilianLayout)
}

// FormatToBrazilianDateTime formata como "dd/MM/yyyy às HH:mm".
func FormatToBrazilianDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 às 15:04")
}

// ToISODateString devolve yyyy-MM-dd usando os componentes locais da data.
func ToISODateString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// StartOfDay devolve a meia-noite local do dia de t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay compara apenas o dia do calendário local.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

var weekdays = [...]string{"domingo", "segunda-feira", "terça-feira", "quarta-feira", "quinta-feira", "sexta-feira", "sábado"}

var months = [...]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"}

// FormatFullBrazilianDate formata como "sábado, 18 de outubro de 2026" (cabeçalho do dashboard).
func FormatFullBrazilianDate(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d", weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Year())
}
