package cliente

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"marmitaria/internal/api/respond"
	"marmitaria/internal/domain"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/service/clienteservice"
)

const pagina = "/dashboard/clientes"

// ClienteService define o contrato que o Handler espera da camada de Serviço.
type ClienteService interface {
	CarregarPagina(ctx context.Context, busca string) (clienteservice.Pagina, error)
	BuscarCliente(ctx context.Context, id int) (domain.Cliente, error)
	CriarCliente(ctx context.Context, in domain.ClienteInput) (domain.Cliente, error)
	AtualizarCliente(ctx context.Context, id int, in domain.ClienteInput) (domain.Cliente, error)
	ExcluirCliente(ctx context.Context, id int) error
}

// Handler agrupa todos os métodos de Handler de clientes.
type Handler struct {
	Service ClienteService
	Logger  logger.Logger
	resp    *respond.Responder
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ClienteService, resp *respond.Responder, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log, resp: resp}
}

// MountRoutes registra as rotas da página.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.PaginaHandler)
	r.Post("/", h.CriarHandler)
	r.Post("/{id}", h.AtualizarHandler)
	r.Post("/{id}/excluir", h.ExcluirHandler)
}

// PaginaHandler lida com GET /dashboard/clientes.
// @Summary Página de clientes
// @Tags clientes
// @Produce html,json
// @Param busca query string false "Filtro por nome, telefone ou endereço"
// @Param modal query string false "Modal aberto"
// @Param id query int false "Cliente selecionado"
// @Success 200 {object} clienteservice.Pagina
// @Failure 502 {object} domain.ErrorResponse
// @Router /dashboard/clientes [get]
func (h *Handler) PaginaHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	base := respond.Base(r)

	p, err := h.Service.CarregarPagina(ctx, base.Busca)
	respond.Mesclar(&p.Pagina, base)
	if err == nil && respond.Selecionar(base) {
		c, serr := h.Service.BuscarCliente(ctx, base.SelecionadoID)
		if serr != nil {
			respond.NotificarErro(&p.Pagina, "Erro ao carregar detalhes", serr)
		} else {
			p.Selecionado = &c
		}
	}
	h.resp.Pagina(w, r, "clientes", "Clientes", &p.Pagina, &p, err, "Erro ao carregar clientes")
}

// CriarHandler lida com POST /dashboard/clientes.
// @Summary Cadastrar cliente
// @Tags clientes
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param cliente body domain.ClienteInput true "Cliente"
// @Success 201 {object} domain.Cliente
// @Failure 400 {object} domain.ErrorResponse
// @Router /dashboard/clientes [post]
func (h *Handler) CriarHandler(w http.ResponseWriter, r *http.Request) {
	voltar := respond.ComModal(pagina, string(domain.ModalCriar), 0)

	in, _, err := decodeCliente(r)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar", "Campos obrigatórios", voltar)
		return
	}
	c, err := h.Service.CriarCliente(r.Context(), in)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar", "Campos obrigatórios", voltar)
		return
	}
	h.resp.Aviso(w, r, "Atenção", clienteservice.AvisoCredito(false, in.LimiteCredito, in.Saldo))
	h.resp.Sucesso(w, r, http.StatusCreated, c, pagina, "Cliente cadastrado", fmt.Sprintf("%s cadastrado com sucesso.", in.Nome))
}

// AtualizarHandler lida com POST /dashboard/clientes/{id}.
// Mudanças no crédito geram um aviso, sem bloquear a gravação.
// @Summary Editar cliente
// @Tags clientes
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "ID do cliente"
// @Param cliente body domain.ClienteInput true "Cliente"
// @Success 200 {object} domain.Cliente
// @Failure 400 {object} domain.ErrorResponse
// @Router /dashboard/clientes/{id} [post]
func (h *Handler) AtualizarHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar", "", pagina)
		return
	}
	voltar := respond.ComModal(pagina, string(domain.ModalEditar), id)

	in, anterior, err := decodeCliente(r)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar", "Campos obrigatórios", voltar)
		return
	}
	c, err := h.Service.AtualizarCliente(r.Context(), id, in)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar", "Campos obrigatórios", voltar)
		return
	}
	h.resp.Aviso(w, r, "Atenção", clienteservice.AvisoCredito(anterior, in.LimiteCredito, in.Saldo))
	h.resp.Sucesso(w, r, http.StatusOK, c, pagina, "Cliente atualizado", fmt.Sprintf("%s atualizado com sucesso.", in.Nome))
}

// ExcluirHandler lida com POST /dashboard/clientes/{id}/excluir.
// @Summary Excluir cliente
// @Tags clientes
// @Param id path int true "ID do cliente"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Router /dashboard/clientes/{id}/excluir [post]
func (h *Handler) ExcluirHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao excluir", "", pagina)
		return
	}
	if err := h.Service.ExcluirCliente(r.Context(), id); err != nil {
		h.resp.Falha(w, r, err, "Erro ao excluir", "", pagina)
		return
	}
	h.resp.Sucesso(w, r, http.StatusNoContent, nil, pagina, "Cliente excluído", "O cliente foi removido do sistema.")
}

// decodeCliente devolve também o estado de crédito anterior à edição (campo oculto do formulário).
func decodeCliente(r *http.Request) (domain.ClienteInput, bool, error) {
	var in domain.ClienteInput
	if respond.JSONBody(r) {
		err := respond.DecodeJSON(r, &in)
		return in, in.LimiteCredito, err
	}
	f, err := respond.ParseForm(r)
	if err != nil {
		return in, false, err
	}
	in.Nome = f.String("nome")
	in.Telefone = f.String("telefone")
	in.Endereco = f.String("endereco")
	in.Saldo = f.Decimal("saldo")
	in.LimiteCredito = f.Bool("limiteCredito")
	return in, f.Bool("limiteCreditoAnterior"), f.Err("Nome e telefone são obrigatórios.")
}
