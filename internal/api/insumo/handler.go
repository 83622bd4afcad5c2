package insumo

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"marmitaria/internal/api/respond"
	"marmitaria/internal/domain"
	apperror "marmitaria/internal/errors"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/service/insumoservice"
)

const pagina = "/dashboard/insumos"

// InsumoService define o contrato que o Handler espera da camada de Serviço.
type InsumoService interface {
	CarregarPagina(ctx context.Context, busca string) (insumoservice.Pagina, error)
	BuscarInsumo(ctx context.Context, id int) (domain.Insumo, error)
	CriarInsumo(ctx context.Context, in domain.InsumoInput) (domain.Insumo, error)
	AtualizarInsumo(ctx context.Context, id int, in domain.InsumoInput) (domain.Insumo, error)
	ExcluirInsumo(ctx context.Context, id int) (requerForca bool, err error)
	ForcarExclusao(ctx context.Context, id int) error
}

// Handler agrupa todos os métodos de Handler de insumos.
type Handler struct {
	Service InsumoService
	Logger  logger.Logger
	resp    *respond.Responder
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc InsumoService, resp *respond.Responder, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log, resp: resp}
}

// MountRoutes registra as rotas da página.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.PaginaHandler)
	r.Post("/", h.CriarHandler)
	r.Post("/{id}", h.AtualizarHandler)
	r.Post("/{id}/excluir", h.ExcluirHandler)
}

// PaginaHandler lida com GET /dashboard/insumos.
// @Summary Página de insumos
// @Tags insumos
// @Produce html,json
// @Param busca query string false "Filtro por nome ou tipo"
// @Param modal query string false "Modal aberto"
// @Param id query int false "Insumo selecionado"
// @Success 200 {object} insumoservice.Pagina
// @Failure 502 {object} domain.ErrorResponse
// @Router /dashboard/insumos [get]
func (h *Handler) PaginaHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	base := respond.Base(r)

	p, err := h.Service.CarregarPagina(ctx, base.Busca)
	respond.Mesclar(&p.Pagina, base)
	if err == nil && respond.Selecionar(base) {
		i, serr := h.Service.BuscarInsumo(ctx, base.SelecionadoID)
		if serr != nil {
			respond.NotificarErro(&p.Pagina, "Erro ao carregar detalhes", serr)
		} else {
			p.Selecionado = &i
		}
	}
	h.resp.Pagina(w, r, "insumos", "Insumos", &p.Pagina, &p, err, "Erro ao carregar insumos")
}

// CriarHandler lida com POST /dashboard/insumos.
// @Summary Cadastrar insumo
// @Tags insumos
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param insumo body domain.InsumoInput true "Insumo"
// @Success 201 {object} domain.Insumo
// @Failure 400 {object} domain.ErrorResponse
// @Router /dashboard/insumos [post]
func (h *Handler) CriarHandler(w http.ResponseWriter, r *http.Request) {
	voltar := respond.ComModal(pagina, string(domain.ModalCriar), 0)

	in, err := decodeInsumo(r)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar", "Campos obrigatórios", voltar)
		return
	}
	i, err := h.Service.CriarInsumo(r.Context(), in)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar", "Campos obrigatórios", voltar)
		return
	}
	h.resp.Sucesso(w, r, http.StatusCreated, i, pagina, "Insumo criado", fmt.Sprintf("%s criado com sucesso.", in.Nome))
}

// AtualizarHandler lida com POST /dashboard/insumos/{id}.
// @Summary Editar insumo
// @Tags insumos
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "ID do insumo"
// @Param insumo body domain.InsumoInput true "Insumo"
// @Success 200 {object} domain.Insumo
// @Failure 400 {object} domain.ErrorResponse
// @Router /dashboard/insumos/{id} [post]
func (h *Handler) AtualizarHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar", "", pagina)
		return
	}
	voltar := respond.ComModal(pagina, string(domain.ModalEditar), id)

	in, err := decodeInsumo(r)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar", "Campos obrigatórios", voltar)
		return
	}
	i, err := h.Service.AtualizarInsumo(r.Context(), id, in)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar", "Campos obrigatórios", voltar)
		return
	}
	h.resp.Sucesso(w, r, http.StatusOK, i, pagina, "Insumo atualizado", fmt.Sprintf("%s atualizado com sucesso.", in.Nome))
}

// ExcluirHandler lida com POST /dashboard/insumos/{id}/excluir.
// A exclusão tem duas etapas: se o insumo está em alguma ficha técnica, a página reabre
// pedindo confirmação, e a segunda requisição chega com force=true.
// @Summary Excluir insumo
// @Description Sem force, responde 409 quando o insumo é usado em ficha técnica.
// @Tags insumos
// @Param id path int true "ID do insumo"
// @Param force query bool false "Remove também dos produtos que o utilizam"
// @Success 204
// @Failure 409 {object} domain.ErrorResponse
// @Router /dashboard/insumos/{id}/excluir [post]
func (h *Handler) ExcluirHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao excluir", "", pagina)
		return
	}
	ctx := r.Context()

	if forcar(r) {
		if err := h.Service.ForcarExclusao(ctx, id); err != nil {
			h.resp.Falha(w, r, err, "Erro ao excluir", "", pagina)
			return
		}
		h.resp.Sucesso(w, r, http.StatusNoContent, nil, pagina, "Insumo excluído", "O item foi removido do estoque.")
		return
	}

	requerForca, err := h.Service.ExcluirInsumo(ctx, id)
	switch {
	case requerForca && respond.WantsJSON(r):
		h.resp.Error(w, r, apperror.NewConflictError(apperror.UserMessage(err)))
	case requerForca:
		http.Redirect(w, r, respond.ComModal(pagina, string(domain.ModalForcarExclusao), id), http.StatusSeeOther)
	case err != nil:
		h.resp.Falha(w, r, err, "Erro ao excluir", "", pagina)
	default:
		h.resp.Sucesso(w, r, http.StatusNoContent, nil, pagina, "Insumo excluído", "O item foi removido do estoque.")
	}
}

func forcar(r *http.Request) bool {
	return r.URL.Query().Get("force") == "true" || r.PostFormValue("force") == "true"
}

func decodeInsumo(r *http.Request) (domain.InsumoInput, error) {
	var in domain.InsumoInput
	if respond.JSONBody(r) {
		err := respond.DecodeJSON(r, &in)
		return in, err
	}
	f, err := respond.ParseForm(r)
	if err != nil {
		return in, err
	}
	in.Nome = f.String("nome")
	in.TipoInsumoID = f.Int("tipoInsumoId")
	in.UnidadeMedidaID = f.Int("unidadeMedidaId")
	in.QuantidadeEstoque = f.Decimal("quantidadeEstoque")
	in.CustoUnitario = f.Decimal("custoUnitario")
	in.DataValidade = f.Date("dataValidade")
	return in, f.Err("Preencha todos os campos obrigatórios.")
}
