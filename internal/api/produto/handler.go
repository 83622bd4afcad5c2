package produto

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"marmitaria/internal/api/respond"
	"marmitaria/internal/domain"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/service/produtoservice"
)

const pagina = "/dashboard/produtos"

// ProdutoService define o contrato que o Handler espera da camada de Serviço.
type ProdutoService interface {
	CarregarPagina(ctx context.Context, busca string) (produtoservice.Pagina, error)
	BuscarProduto(ctx context.Context, id int) (produtoservice.LinhaProduto, error)
	CriarProduto(ctx context.Context, in domain.ProdutoInput) (domain.Produto, error)
	AtualizarProduto(ctx context.Context, id int, in domain.ProdutoInput) (domain.Produto, error)
	ExcluirProduto(ctx context.Context, id int) error
	AdicionarItemFicha(ctx context.Context, produtoID int, in domain.ItemFichaInput) (domain.ItemFichaTecnica, error)
	RemoverItemFicha(ctx context.Context, itemID int) error
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProdutoService
	Logger  logger.Logger
	resp    *respond.Responder
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProdutoService, resp *respond.Responder, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log, resp: resp}
}

// MountRoutes registra as rotas da página.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.PaginaHandler)
	r.Post("/", h.CriarHandler)
	r.Post("/{id}", h.AtualizarHandler)
	r.Post("/{id}/excluir", h.ExcluirHandler)
	r.Post("/{id}/ficha", h.AdicionarItemFichaHandler)
	r.Post("/{id}/ficha/{itemId}/excluir", h.RemoverItemFichaHandler)
}

// PaginaHandler lida com GET /dashboard/produtos.
// @Summary Página de produtos
// @Description Produtos com custo pela ficha técnica, margem e status de estoque.
// @Tags produtos
// @Produce html,json
// @Param busca query string false "Filtro por nome"
// @Param modal query string false "Modal aberto"
// @Param id query int false "Produto selecionado"
// @Success 200 {object} produtoservice.Pagina
// @Failure 502 {object} domain.ErrorResponse
// @Router /dashboard/produtos [get]
func (h *Handler) PaginaHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	base := respond.Base(r)

	p, err := h.Service.CarregarPagina(ctx, base.Busca)
	respond.Mesclar(&p.Pagina, base)
	if err == nil && respond.Selecionar(base) {
		linha, serr := h.Service.BuscarProduto(ctx, base.SelecionadoID)
		if serr != nil {
			respond.NotificarErro(&p.Pagina, "Erro ao carregar detalhes", serr)
		} else {
			p.Selecionado = &linha
		}
	}
	h.resp.Pagina(w, r, "produtos", "Produtos", &p.Pagina, &p, err, "Erro ao carregar produtos")
}

// CriarHandler lida com POST /dashboard/produtos.
// @Summary Cadastrar produto
// @Tags produtos
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param produto body domain.ProdutoInput true "Produto"
// @Success 201 {object} domain.Produto
// @Failure 400 {object} domain.ErrorResponse
// @Router /dashboard/produtos [post]
func (h *Handler) CriarHandler(w http.ResponseWriter, r *http.Request) {
	voltar := respond.ComModal(pagina, string(domain.ModalCriar), 0)

	in, err := decodeProduto(r)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar", "Campos obrigatórios", voltar)
		return
	}
	p, err := h.Service.CriarProduto(r.Context(), in)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar", "Campos obrigatórios", voltar)
		return
	}
	h.resp.Sucesso(w, r, http.StatusCreated, p, pagina, "Produto criado", fmt.Sprintf("%s criado com sucesso.", in.Nome))
}

// AtualizarHandler lida com POST /dashboard/produtos/{id}.
// @Summary Editar produto
// @Tags produtos
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "ID do produto"
// @Param produto body domain.ProdutoInput true "Produto"
// @Success 200 {object} domain.Produto
// @Failure 400 {object} domain.ErrorResponse
// @Router /dashboard/produtos/{id} [post]
func (h *Handler) AtualizarHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar", "", pagina)
		return
	}
	voltar := respond.ComModal(pagina, string(domain.ModalEditar), id)

	in, err := decodeProduto(r)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar", "Campos obrigatórios", voltar)
		return
	}
	p, err := h.Service.AtualizarProduto(r.Context(), id, in)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar", "Campos obrigatórios", voltar)
		return
	}
	h.resp.Sucesso(w, r, http.StatusOK, p, pagina, "Produto atualizado", fmt.Sprintf("%s atualizado com sucesso.", in.Nome))
}

// ExcluirHandler lida com POST /dashboard/produtos/{id}/excluir.
// @Summary Excluir produto
// @Tags produtos
// @Param id path int true "ID do produto"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Router /dashboard/produtos/{id}/excluir [post]
func (h *Handler) ExcluirHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao excluir", "", pagina)
		return
	}
	if err := h.Service.ExcluirProduto(r.Context(), id); err != nil {
		h.resp.Falha(w, r, err, "Erro ao excluir", "", pagina)
		return
	}
	h.Logger.Info("Produto excluído.", map[string]interface{}{"id": id})
	h.resp.Sucesso(w, r, http.StatusNoContent, nil, pagina, "Produto excluído", "O produto foi removido do catálogo.")
}

// AdicionarItemFichaHandler lida com POST /dashboard/produtos/{id}/ficha.
// @Summary Adicionar insumo à ficha técnica
// @Tags produtos
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "ID do produto"
// @Param item body domain.ItemFichaInput true "Item da ficha"
// @Success 201 {object} domain.ItemFichaTecnica
// @Failure 400 {object} domain.ErrorResponse
// @Router /dashboard/produtos/{id}/ficha [post]
func (h *Handler) AdicionarItemFichaHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar", "", pagina)
		return
	}
	voltar := respond.ComModal(pagina, string(domain.ModalVisualizar), id)

	var in domain.ItemFichaInput
	if respond.JSONBody(r) {
		err = respond.DecodeJSON(r, &in)
	} else {
		var f *respond.Form
		if f, err = respond.ParseForm(r); err == nil {
			in.InsumoID = f.Int("insumoId")
			in.Quantidade = f.Decimal("quantidade")
			err = f.Err("Selecione o insumo e informe a quantidade.")
		}
	}
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar", "Dados inválidos", voltar)
		return
	}

	item, err := h.Service.AdicionarItemFicha(r.Context(), id, in)
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao salvar", "Dados inválidos", voltar)
		return
	}
	h.resp.Sucesso(w, r, http.StatusCreated, item, voltar, "Ficha técnica atualizada", "Insumo adicionado à ficha técnica.")
}

// RemoverItemFichaHandler lida com POST /dashboard/produtos/{id}/ficha/{itemId}/excluir.
// @Summary Remover insumo da ficha técnica
// @Tags produtos
// @Param id path int true "ID do produto"
// @Param itemId path int true "ID do item da ficha"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Router /dashboard/produtos/{id}/ficha/{itemId}/excluir [post]
func (h *Handler) RemoverItemFichaHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao excluir", "", pagina)
		return
	}
	voltar := respond.ComModal(pagina, string(domain.ModalVisualizar), id)

	itemID, err := respond.PathID(r, "itemId")
	if err != nil {
		h.resp.Falha(w, r, err, "Erro ao excluir", "", voltar)
		return
	}
	if err := h.Service.RemoverItemFicha(r.Context(), itemID); err != nil {
		h.resp.Falha(w, r, err, "Erro ao excluir", "", voltar)
		return
	}
	h.resp.Sucesso(w, r, http.StatusNoContent, nil, voltar, "Ficha técnica atualizada", "Insumo removido da ficha técnica.")
}

func decodeProduto(r *http.Request) (domain.ProdutoInput, error) {
	var in domain.ProdutoInput
	if respond.JSONBody(r) {
		err := respond.DecodeJSON(r, &in)
		return in, err
	}
	f, err := respond.ParseForm(r)
	if err != nil {
		return in, err
	}
	in.Nome = f.String("nome")
	in.TipoProdutoID = f.Int("idTipoProduto")
	in.QuantidadeEstoque = f.Int("quantidadeEstoque")
	in.EstoqueMinimo = f.Int("estoqueMinimo")
	in.PrecoVenda = f.Decimal("precoVenda")
	return in, f.Err("Preencha nome, tipo e preço de venda.")
}
