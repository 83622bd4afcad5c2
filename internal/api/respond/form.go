package respond

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperror "marmitaria/internal/errors"
	"marmitaria/internal/pkg/dateutil"
	"marmitaria/internal/pkg/money"
)

// DecodeJSON lê o corpo JSON em v.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return nil
}

// Form lê os campos de um formulário HTML, acumulando os erros de conversão por campo.
type Form struct {
	r    *http.Request
	errs map[string]string
}

// ParseForm prepara o formulário (urlencoded).
func ParseForm(r *http.Request) (*Form, error) {
	if err := r.ParseForm(); err != nil {
		return nil, apperror.NewValidationError("Formulário inválido.")
	}
	return &Form{r: r, errs: map[string]string{}}, nil
}

func (f *Form) String(campo string) string {
	return strings.TrimSpace(f.r.PostForm.Get(campo))
}

// Strings devolve os valores repetidos de um campo (e.g., linhas de itens).
func (f *Form) Strings(campo string) []string {
	return f.r.PostForm[campo]
}

func (f *Form) Bool(campo string) bool {
	v := strings.ToLower(f.String(campo))
	return v == "true" || v == "on" || v == "1"
}

// Int devolve 0 para campo vazio.
func (f *Form) Int(campo string) int {
	v := f.String(campo)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f.errs[campo] = "número inválido"
		return 0
	}
	return n
}

// IntPtr devolve nil para campo vazio ou zero (seleção "nenhum").
func (f *Form) IntPtr(campo string) *int {
	n := f.Int(campo)
	if n == 0 {
		return nil
	}
	return &n
}

// Decimal aceita formato brasileiro; vazio vira zero.
func (f *Form) Decimal(campo string) decimal.Decimal {
	d, err := money.Parse(f.String(campo))
	if err != nil {
		f.errs[campo] = "valor inválido"
		return decimal.Zero
	}
	return d
}

// DecimalPtr distingue campo vazio (nil) de zero.
func (f *Form) DecimalPtr(campo string) *decimal.Decimal {
	if money.IsBlank(f.String(campo)) {
		return nil
	}
	d := f.Decimal(campo)
	return &d
}

// Date devolve nil para campo vazio.
func (f *Form) Date(campo string) *time.Time {
	v := f.String(campo)
	if v == "" {
		return nil
	}
	t, err := dateutil.ParseLocalDate(v)
	if err != nil {
		f.errs[campo] = "data inválida"
		return nil
	}
	return &t
}

// DateOrToday usa o dia de hoje quando o campo vem vazio.
func (f *Form) DateOrToday(campo string) time.Time {
	t, err := dateutil.ParseInputDate(f.String(campo))
	if err != nil {
		f.errs[campo] = "data inválida"
		return time.Time{}
	}
	return t
}

// Err devolve um ValidationError com os campos que não puderam ser convertidos.
func (f *Form) Err(msg string) error {
	if len(f.errs) == 0 {
		return nil
	}
	return apperror.NewFieldValidationError(msg, f.errs)
}
