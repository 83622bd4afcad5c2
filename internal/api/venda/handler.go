package venda

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"marmitaria/internal/api/respond"
	"marmitaria/internal/domain"
	apperror "marmitaria/internal/errors"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/service/vendaservice"
)

const pagina = "/dashboard/vendas"

// VendaService define o contrato que o Handler espera da camada de Serviço.
type VendaService interface {
	CarregarPagina(ctx context.Context, busca string) (vendaservice.Pagina, error)
	BuscarVenda(ctx context.Context, id int) (vendaservice.LinhaVenda, error)
	RegistrarVenda(ctx context.Context, in domain.VendaInput) (domain.Venda, error)
	AtualizarVenda(ctx context.Context, id int, in domain.VendaInput) (domain.Venda, error)
	ExcluirVenda(ctx context.Context, id int) error
}

// Handler agrupa todos os métodos de Handler de vendas.
type Handler struct {
	Service VendaService
	Logger  logger.Logger
	resp    *respond.Responder
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc VendaService, resp *respond.Responder, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log, resp: resp}
}

// MountRoutes registra as rotas da página.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.PaginaHandler)
	r.Post("/", h.CriarHandler)
	r.Post("/{id}", h.AtualizarHandler)
	r.Post("/{id}/excluir", h.ExcluirHandler)
}

// PaginaHandler lida com GET /dashboard/vendas.
// @Summary Página de vendas
// @Description Vendas com valor final e status de pagamento, clientes e produtos para o formulário.
// @Tags vendas
// @Produce html,json
// @Param busca query string false "Filtro por cliente ou id"
// @Param modal query string false "Modal aberto"
// @Param id query int false "Venda selecionada"
// @Success 200 {object} vendaservice.Pagina
// @Failure 502 {object} domain.ErrorResponse
// @Router /dashboard/vendas [get]
func (h *Handler) PaginaHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	base := respond.Base(r)

	p, err := h.Service.CarregarPagina(ctx, base.Busca)
	respond.Mesclar(&p.Pagina, base)
	if err == nil {
		// O formulário de nova venda só abre com caixa aberto.
		if p.Modais.Criar && !p.CaixaAberto {
			p.Modais.Criar = false
			p.Notificacoes = append(p.Notificacoes, domain.Notificacao{
				Nivel:     domain.NotificacaoErro,
				Titulo:    "Caixa não está aberto",
				Descricao: vendaservice.MsgCaixaFechado,
			})
		}
		if respond.Selecionar(base) {
			v, serr := h.Service.BuscarVenda(ctx, base.SelecionadoID)
			if serr != nil {
				respond.NotificarErro(&p.Pagina, "Erro ao carregar detalhes", serr)
			} else {
				p.Selecionada = &v
			}
		}
	}
	h.resp.Pagina(w, r, "vendas", "Vendas", &p.Pagina, &p, err, "Erro ao carregar dados")
}

// CriarHandler lida com POST /dashboard/vendas.
// @Summary Registrar venda
// @Description Exige caixa aberto. O total é recalculado a partir do catálogo de produtos.
// @Tags vendas
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param venda body domain.VendaInput true "Venda"
// @Success 201 {object} domain.Venda
// @Failure 400 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Router /dashboard/vendas [post]
func (h *Handler) CriarHandler(w http.ResponseWriter, r *http.Request) {
	voltar := respond.ComModal(pagina, string(domain.ModalCriar), 0)

	in, err := h.decode(r)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar venda", "Itens inválidos", voltar)
		return
	}

	v, err := h.Service.RegistrarVenda(r.Context(), in)
	if err != nil {
		var conflito *apperror.ConflictError
		if errors.As(err, &conflito) {
			h.resp.Falha(w, r, err, "Caixa não está aberto", "", pagina)
			return
		}
		h.resp.Falha(w, r, err, "Erro ao salvar venda", "Itens inválidos", voltar)
		return
	}
	h.resp.Sucesso(w, r, http.StatusCreated, v, pagina, "Venda registrada", "A venda foi salva com sucesso.")
}

// AtualizarHandler lida com POST /dashboard/vendas/{id}.
// @Summary Editar venda
// @Tags vendas
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "ID da venda"
// @Param venda body domain.VendaInput true "Venda"
// @Success 200 {object} domain.Venda
// @Failure 400 {object} domain.ErrorResponse
// @Router /dashboard/vendas/{id} [post]
func (h *Handler) AtualizarHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar venda", "", pagina)
		return
	}
	voltar := respond.ComModal(pagina, string(domain.ModalEditar), id)

	in, err := h.decode(r)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar venda", "Itens inválidos", voltar)
		return
	}

	v, err := h.Service.AtualizarVenda(r.Context(), id, in)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar venda", "Itens inválidos", voltar)
		return
	}
	h.resp.Sucesso(w, r, http.StatusOK, v, pagina, "Venda atualizada", "A venda foi salva com sucesso.")
}

// ExcluirHandler lida com POST /dashboard/vendas/{id}/excluir.
// @Summary Excluir venda
// @Tags vendas
// @Param id path int true "ID da venda"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Router /dashboard/vendas/{id}/excluir [post]
func (h *Handler) ExcluirHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao excluir", "", pagina)
		return
	}
	if err := h.Service.ExcluirVenda(r.Context(), id); err != nil {
		h.resp.Falha(w, r, err, "Erro ao excluir", "", pagina)
		return
	}
	h.Logger.Info("Venda excluída.", map[string]interface{}{"id": id})
	h.resp.Sucesso(w, r, http.StatusNoContent, nil, pagina, "Venda excluída", "O registro foi removido.")
}

// decode lê a venda do JSON ou do formulário. No formulário cada linha de item
// é um par produtoId/quantidade; linhas totalmente vazias são ignoradas.
func (h *Handler) decode(r *http.Request) (domain.VendaInput, error) {
	var in domain.VendaInput
	if respond.JSONBody(r) {
		err := respond.DecodeJSON(r, &in)
		return in, err
	}

	f, err := respond.ParseForm(r)
	if err != nil {
		return in, err
	}
	in.ClienteID = f.IntPtr("clienteId")
	in.DataVenda = f.DateOrToday("dataVenda")
	in.Desconto = f.Decimal("desconto")
	in.ValorPago = f.Decimal("valorPago")

	produtos := f.Strings("produtoId")
	quantidades := f.Strings("quantidade")
	for i, p := range produtos {
		q := ""
		if i < len(quantidades) {
			q = strings.TrimSpace(quantidades[i])
		}
		p = strings.TrimSpace(p)
		if p == "" && q == "" {
			continue
		}
		produtoID, _ := strconv.Atoi(p)
		quantidade, _ := strconv.Atoi(q)
		in.Itens = append(in.Itens, domain.ItemVendaInput{ProdutoID: produtoID, Quantidade: quantidade})
	}
	return in, f.Err("Verifique os valores informados.")
}
