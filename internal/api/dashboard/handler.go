package dashboard

import (
	"context"
	"net/http"

	"marmitaria/internal/api/respond"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/service/dashboardservice"
)

// DashboardService define o contrato que o Handler espera da camada de Serviço.
type DashboardService interface {
	CarregarPagina(ctx context.Context) (dashboardservice.Pagina, error)
}

// Handler serve a visão geral e a tela de login.
type Handler struct {
	Service DashboardService
	Logger  logger.Logger
	resp    *respond.Responder
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc DashboardService, resp *respond.Responder, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log, resp: resp}
}

// PaginaHandler lida com GET /dashboard.
// @Summary Visão geral
// @Description Vendas do dia e crescimento sobre ontem, caixa, clientes com crédito, estoques baixos e insumos vencendo.
// @Tags dashboard
// @Produce html,json
// @Success 200 {object} dashboardservice.Pagina
// @Failure 502 {object} domain.ErrorResponse
// @Router /dashboard [get]
func (h *Handler) PaginaHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.CarregarPagina(r.Context())
	respond.Mesclar(&p.Pagina, respond.Base(r))
	h.resp.Pagina(w, r, "dashboard", "Dashboard", &p.Pagina, &p, err, "Erro ao carregar dados")
}

// LoginHandler lida com GET /login. A tela não autentica: o formulário leva direto ao painel.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	h.resp.Pagina(w, r, "login", "Entrar", nil, nil, nil, "")
}
