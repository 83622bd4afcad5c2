// Package view renderiza as páginas do painel com html/template.
// Cada página é parseada junto com o layout e os partials e fica em cache.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"marmitaria/internal/domain"
	apperror "marmitaria/internal/errors"
	"marmitaria/internal/pkg/dateutil"
	"marmitaria/internal/pkg/money"
	"marmitaria/internal/service/clienteservice"
)

//go:embed templates
var arquivos embed.FS

// ItemNav é um link do menu lateral.
type ItemNav struct {
	Nome         string
	URL          string
	Chave        string
	Desabilitado bool
}

// Navegacao segue a ordem do menu. Configurações ainda não existe.
var Navegacao = []ItemNav{
	{Nome: "Dashboard", URL: "/dashboard", Chave: "dashboard"},
	{Nome: "Vendas", URL: "/dashboard/vendas", Chave: "vendas"},
	{Nome: "Produtos", URL: "/dashboard/produtos", Chave: "produtos"},
	{Nome: "Insumos", URL: "/dashboard/insumos", Chave: "insumos"},
	{Nome: "Clientes", URL: "/dashboard/clientes", Chave: "clientes"},
	{Nome: "Caixa", URL: "/dashboard/caixa", Chave: "caixa"},
	{Nome: "Relatórios", URL: "/dashboard/relatorios", Chave: "relatorios"},
	{Nome: "Configurações", URL: "#", Chave: "configuracoes", Desabilitado: true},
}

// Dados é o que o layout recebe. Pagina é o view-model da tela; Base aponta para o estado comum dela.
type Dados struct {
	Titulo string
	Ativo  string
	Pagina interface{}
	Base   *domain.Pagina
	Agora  time.Time
	Nav    []ItemNav
}

// Confirmacao alimenta o partial "confirmar".
type Confirmacao struct {
	Titulo   string
	Mensagem string
	Acao     string
	Voltar   string
	Forcar   bool
}

func NovaConfirmacao(titulo, mensagem, acao, voltar string, forcar bool) Confirmacao {
	return Confirmacao{Titulo: titulo, Mensagem: mensagem, Acao: acao, Voltar: voltar, Forcar: forcar}
}

// Engine guarda os templates já parseados, um por página.
type Engine struct {
	paginas map[string]*template.Template
	now     func() time.Time
}

// New parseia todas as páginas embutidas. Falha aqui é erro de build dos templates.
func New() (*Engine, error) {
	paginas, err := fs.Glob(arquivos, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	e := &Engine{paginas: make(map[string]*template.Template, len(paginas)), now: time.Now}
	for _, p := range paginas {
		t, err := template.New("layout.html").Funcs(Funcs()).
			ParseFS(arquivos, "templates/layout.html", "templates/partials/*.html", p)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", p, err)
		}
		e.paginas[strings.TrimSuffix(path.Base(p), ".html")] = t
	}
	return e, nil
}

// Render executa num buffer para não mandar HTML pela metade em caso de erro.
func (e *Engine) Render(w io.Writer, pagina string, d Dados) error {
	t, ok := e.paginas[pagina]
	if !ok {
		return apperror.NewInternalError(fmt.Sprintf("página '%s' não existe", pagina), nil)
	}
	if d.Agora.IsZero() {
		d.Agora = e.now()
	}
	if d.Nav == nil {
		d.Nav = Navegacao
	}
	if d.Base == nil {
		d.Base = &domain.Pagina{}
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", d); err != nil {
		return apperror.NewInternalError("falha ao renderizar página", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Funcs são os helpers de formatação disponíveis nos templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"brl":          money.FormatBRL,
		"num":          money.FormatNumber,
		"pct":          formatPct,
		"data":         formatData,
		"dataHora":     dateutil.FormatToBrazilianDateTime,
		"dataInput":    formatDataInput,
		"dataCompleta": dateutil.FormatFullBrazilianDate,
		"telefone":     clienteservice.FormatarTelefone,
		"valorInput":   func(d decimal.Decimal) string { return d.StringFixed(2) },
		"negativo":     func(d decimal.Decimal) bool { return d.IsNegative() },
		"dias":         formatDias,
		"nivel":        func(n domain.NivelNotificacao) string { return string(n) },
		"confirmacao":  NovaConfirmacao,
		"formVenda":    formVenda,
		"dict":         dict,
		"deref":        func(t *time.Time) time.Time { return *t },
	}
}

// dict monta um mapa a partir de pares chave/valor, para passar vários valores a um partial.
func dict(kv ...interface{}) (map[string]interface{}, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: número ímpar de argumentos")
	}
	m := make(map[string]interface{}, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: chave %v não é string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

func formatPct(p *decimal.Decimal) string {
	if p == nil {
		return "N/A"
	}
	return money.FormatPercent(*p)
}

func formatData(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		return dateutil.FormatToBrazilianDate(t)
	case *time.Time:
		if t == nil {
			return ""
		}
		return dateutil.FormatToBrazilianDate(*t)
	}
	return ""
}

func formatDataInput(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		return dateutil.FormatToInputDate(t)
	case *time.Time:
		if t == nil {
			return ""
		}
		return dateutil.FormatToInputDate(*t)
	}
	return ""
}

func formatDias(n int) string {
	switch {
	case n <= 0:
		return "Vence hoje"
	case n == 1:
		return "Vence em 1 dia"
	}
	return fmt.Sprintf("Vence em %d dias", n)
}
