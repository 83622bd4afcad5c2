package relatorio

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"marmitaria/internal/api/respond"
	apperror "marmitaria/internal/errors"
	"marmitaria/internal/pkg/export"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/service/relatorioservice"
)

const pagina = "/dashboard/relatorios"

// RelatorioService define o contrato que o Handler espera da camada de Serviço.
type RelatorioService interface {
	CarregarPagina() relatorioservice.Pagina
	Gerar(ctx context.Context, recurso relatorioservice.Recurso) (export.Tabela, error)
}

// Handler agrupa a tela de relatórios e os downloads.
type Handler struct {
	Service RelatorioService
	Logger  logger.Logger
	resp    *respond.Responder
	now     func() time.Time
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc RelatorioService, resp *respond.Responder, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log, resp: resp, now: time.Now}
}

// MountRoutes registra as rotas da página.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.PaginaHandler)
	r.Get("/{arquivo}", h.ExportarHandler)
}

// PaginaHandler lida com GET /dashboard/relatorios.
// @Summary Relatórios disponíveis
// @Tags relatorios
// @Produce html,json
// @Success 200 {object} relatorioservice.Pagina
// @Router /dashboard/relatorios [get]
func (h *Handler) PaginaHandler(w http.ResponseWriter, r *http.Request) {
	p := h.Service.CarregarPagina()
	respond.Mesclar(&p.Pagina, respond.Base(r))
	h.resp.Pagina(w, r, "relatorios", "Relatórios", &p.Pagina, &p, nil, "")
}

// ExportarHandler lida com GET /dashboard/relatorios/{arquivo}, e.g. vendas.csv ou caixa.xlsx.
// @Summary Exportar relatório
// @Tags relatorios
// @Produce text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param arquivo path string true "recurso.formato (vendas, caixa, insumos, produtos, clientes; csv ou xlsx)"
// @Success 200 {file} file
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /dashboard/relatorios/{arquivo} [get]
func (h *Handler) ExportarHandler(w http.ResponseWriter, r *http.Request) {
	recurso, formato, err := parseArquivo(chi.URLParam(r, "arquivo"))
	if err != nil {
		h.falha(w, r, err)
		return
	}

	tabela, err := h.Service.Gerar(r.Context(), recurso)
	if err != nil {
		h.falha(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, formato, tabela); err != nil {
		h.falha(w, r, err)
		return
	}

	nome := fmt.Sprintf("%s-%s.%s", recurso, h.now().Format("2006-01-02"), formato)
	w.Header().Set("Content-Type", formato.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, nome))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Error("Falha ao enviar relatório.", err)
	}
}

// falha: downloads são links diretos, então o erro volta para a tela de relatórios.
func (h *Handler) falha(w http.ResponseWriter, r *http.Request, err error) {
	h.resp.Falha(w, r, err, "Erro ao gerar relatório", "", pagina)
}

func parseArquivo(arquivo string) (relatorioservice.Recurso, export.Formato, error) {
	i := strings.LastIndex(arquivo, ".")
	if i <= 0 {
		return "", "", apperror.NewNotFoundError(fmt.Sprintf("relatório '%s'", arquivo))
	}
	recurso, err := relatorioservice.ParseRecurso(arquivo[:i])
	if err != nil {
		return "", "", err
	}
	formato, err := export.ParseFormato(arquivo[i+1:])
	if err != nil {
		return "", "", err
	}
	return recurso, formato, nil
}
