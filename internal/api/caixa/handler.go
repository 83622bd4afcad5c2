package caixa

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"marmitaria/internal/api/respond"
	"marmitaria/internal/domain"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/service/caixaservice"
)

const pagina = "/dashboard/caixa"

// CaixaService define o contrato que o Handler espera da camada de Serviço.
type CaixaService interface {
	CarregarPagina(ctx context.Context, busca string) (caixaservice.Pagina, error)
	BuscarCaixa(ctx context.Context, id int) (domain.Caixa, error)
	AbrirCaixa(ctx context.Context, in domain.AbrirCaixaInput) (domain.Caixa, error)
	AdicionarMovimentacao(ctx context.Context, in domain.MovimentacaoInput) (domain.Movimentacao, error)
	FecharCaixa(ctx context.Context, id int) (domain.Caixa, error)
	ExcluirCaixa(ctx context.Context, id int) error
}

// Handler agrupa todos os métodos de Handler do caixa.
type Handler struct {
	Service CaixaService
	Logger  logger.Logger
	resp    *respond.Responder
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc CaixaService, resp *respond.Responder, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log, resp: resp}
}

// MountRoutes registra as rotas da página.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.PaginaHandler)
	r.Post("/abrir", h.AbrirHandler)
	r.Post("/movimentacao", h.MovimentacaoHandler)
	r.Post("/{id}/fechar", h.FecharHandler)
	r.Post("/{id}/excluir", h.ExcluirHandler)
}

// PaginaHandler lida com GET /dashboard/caixa.
// @Summary Página de caixa
// @Description Caixa aberto com saldo e movimentações, e o histórico de caixas. Responde JSON com Accept: application/json.
// @Tags caixa
// @Produce html,json
// @Param busca query string false "Filtro por id, status ou data"
// @Param modal query string false "Modal aberto"
// @Param id query int false "Caixa selecionado"
// @Success 200 {object} caixaservice.Pagina
// @Failure 502 {object} domain.ErrorResponse
// @Router /dashboard/caixa [get]
func (h *Handler) PaginaHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	base := respond.Base(r)

	p, err := h.Service.CarregarPagina(ctx, base.Busca)
	respond.Mesclar(&p.Pagina, base)
	if err == nil && respond.Selecionar(base) {
		c, serr := h.Service.BuscarCaixa(ctx, base.SelecionadoID)
		if serr != nil {
			h.Logger.Warn("Caixa selecionado não encontrado.", map[string]interface{}{"id": base.SelecionadoID, "error": serr.Error()})
			respond.NotificarErro(&p.Pagina, "Erro ao carregar detalhes", serr)
		} else {
			p.Selecionado = &c
		}
	}
	h.resp.Pagina(w, r, "caixa", "Caixa", &p.Pagina, &p, err, "Erro ao carregar dados")
}

// AbrirHandler lida com POST /dashboard/caixa/abrir.
// @Summary Abrir caixa
// @Tags caixa
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param caixa body domain.AbrirCaixaInput true "Saldo inicial"
// @Success 201 {object} domain.Caixa
// @Failure 400 {object} domain.ErrorResponse
// @Router /dashboard/caixa/abrir [post]
func (h *Handler) AbrirHandler(w http.ResponseWriter, r *http.Request) {
	var in domain.AbrirCaixaInput
	if err := h.decodeAbrir(r, &in); err != nil {
		h.resp.Falha(w, r, err, "Erro ao abrir caixa", "Valor inválido", respond.ComModal(pagina, string(domain.ModalCriar), 0))
		return
	}

	c, err := h.Service.AbrirCaixa(r.Context(), in)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao abrir caixa", "Valor inválido", respond.ComModal(pagina, string(domain.ModalCriar), 0))
		return
	}
	h.resp.Sucesso(w, r, http.StatusCreated, c, pagina, "Caixa aberto", "O caixa foi aberto com sucesso.")
}

func (h *Handler) decodeAbrir(r *http.Request, in *domain.AbrirCaixaInput) error {
	if respond.JSONBody(r) {
		return respond.DecodeJSON(r, in)
	}
	f, err := respond.ParseForm(r)
	if err != nil {
		return err
	}
	in.SaldoInicial = f.DecimalPtr("saldoInicial")
	return f.Err("Informe um saldo inicial válido.")
}

// MovimentacaoHandler lida com POST /dashboard/caixa/movimentacao.
// @Summary Registrar entrada ou saída
// @Tags caixa
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param movimentacao body domain.MovimentacaoInput true "Movimentação"
// @Success 201 {object} domain.Movimentacao
// @Failure 400 {object} domain.ErrorResponse
// @Router /dashboard/caixa/movimentacao [post]
func (h *Handler) MovimentacaoHandler(w http.ResponseWriter, r *http.Request) {
	voltar := respond.ComModal(pagina, string(domain.ModalMovimentacao), 0)

	var in domain.MovimentacaoInput
	if err := h.decodeMovimentacao(r, &in); err != nil {
		h.resp.Falha(w, r, err, "Erro ao registrar", "Dados inválidos", voltar)
		return
	}

	m, err := h.Service.AdicionarMovimentacao(r.Context(), in)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao registrar", "Dados inválidos", voltar)
		return
	}
	h.resp.Sucesso(w, r, http.StatusCreated, m, pagina, "Movimentação registrada", "A movimentação foi adicionada.")
}

func (h *Handler) decodeMovimentacao(r *http.Request, in *domain.MovimentacaoInput) error {
	if respond.JSONBody(r) {
		return respond.DecodeJSON(r, in)
	}
	f, err := respond.ParseForm(r)
	if err != nil {
		return err
	}
	in.CaixaID = f.Int("caixaId")
	in.Tipo = domain.TipoMovimentacao(f.String("tipo"))
	in.Descricao = f.String("descricao")
	in.Valor = f.Decimal("valor")
	return f.Err("Preencha todos os campos corretamente.")
}

// FecharHandler lida com POST /dashboard/caixa/{id}/fechar.
// @Summary Fechar caixa
// @Tags caixa
// @Produce json
// @Param id path int true "ID do caixa"
// @Success 200 {object} domain.Caixa
// @Failure 404 {object} domain.ErrorResponse
// @Router /dashboard/caixa/{id}/fechar [post]
func (h *Handler) FecharHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao fechar caixa", "", pagina)
		return
	}

	c, err := h.Service.FecharCaixa(r.Context(), id)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao fechar caixa", "", pagina)
		return
	}
	h.resp.Sucesso(w, r, http.StatusOK, c, pagina, "Caixa fechado", "O caixa foi fechado com sucesso.")
}

// ExcluirHandler lida com POST /dashboard/caixa/{id}/excluir.
// @Summary Excluir caixa
// @Tags caixa
// @Param id path int true "ID do caixa"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Router /dashboard/caixa/{id}/excluir [post]
func (h *Handler) ExcluirHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao excluir", "", pagina)
		return
	}

	if err := h.Service.ExcluirCaixa(r.Context(), id); err != nil {
		h.resp.Falha(w, r, err, "Erro ao excluir", "", respond.ComModal(pagina, string(domain.ModalExcluir), id))
		return
	}
	h.Logger.Info("Caixa excluído.", map[string]interface{}{"id": id})
	h.resp.Sucesso(w, r, http.StatusNoContent, nil, pagina, "Caixa excluído", "O registro foi removido.")
}
