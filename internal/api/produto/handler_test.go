package produto_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marmitaria/internal/api/produto"
	"marmitaria/internal/api/respond"
	"marmitaria/internal/domain"
	apperror "marmitaria/internal/errors"
	"marmitaria/internal/pkg/cache"
	"marmitaria/internal/pkg/flash"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/service/produtoservice"
	"marmitaria/internal/view"
)

type MockProdutoService struct {
	mock.Mock
}

func (m *MockProdutoService) CarregarPagina(ctx context.Context, busca string) (produtoservice.Pagina, error) {
	args := m.Called(ctx, busca)
	return args.Get(0).(produtoservice.Pagina), args.Error(1)
}

func (m *MockProdutoService) BuscarProduto(ctx context.Context, id int) (produtoservice.LinhaProduto, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(produtoservice.LinhaProduto), args.Error(1)
}

func (m *MockProdutoService) CriarProduto(ctx context.Context, in domain.ProdutoInput) (domain.Produto, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Produto), args.Error(1)
}

func (m *MockProdutoService) AtualizarProduto(ctx context.Context, id int, in domain.ProdutoInput) (domain.Produto, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(domain.Produto), args.Error(1)
}

func (m *MockProdutoService) ExcluirProduto(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProdutoService) AdicionarItemFicha(ctx context.Context, produtoID int, in domain.ItemFichaInput) (domain.ItemFichaTecnica, error) {
	args := m.Called(ctx, produtoID, in)
	return args.Get(0).(domain.ItemFichaTecnica), args.Error(1)
}

func (m *MockProdutoService) RemoverItemFicha(ctx context.Context, itemID int) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func setupRouter(t *testing.T, svc *MockProdutoService) http.Handler {
	t.Helper()
	views, err := view.New()
	require.NoError(t, err)
	log := logger.NewNopLogger()
	resp := respond.New(views, flash.NewStore(cache.NewMemoryClient(), time.Minute, log), log)

	r := chi.NewRouter()
	r.Route("/dashboard/produtos", produto.NewHandler(svc, resp, log).MountRoutes)
	return r
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestCriar_Formulario(t *testing.T) {
	svc := new(MockProdutoService)
	svc.On("CriarProduto", mock.Anything, mock.MatchedBy(func(in domain.ProdutoInput) bool {
		return in.Nome == "Marmita P" && in.TipoProdutoID == 1 && in.QuantidadeEstoque == 20 &&
			in.EstoqueMinimo == 5 && in.PrecoVenda.Equal(decimal.RequireFromString("18.9"))
	})).Return(domain.Produto{ID: 3, Nome: "Marmita P"}, nil)

	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, postForm("/dashboard/produtos", url.Values{
		"nome":              {"Marmita P"},
		"idTipoProduto":     {"1"},
		"quantidadeEstoque": {"20"},
		"estoqueMinimo":     {"5"},
		"precoVenda":        {"18,90"},
	}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/produtos", rec.Header().Get("Location"))
	svc.AssertExpectations(t)
}

func TestCriar_NumeroInvalidoNaoChamaServico(t *testing.T) {
	svc := new(MockProdutoService)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/produtos", strings.NewReader(url.Values{
		"nome":          {"Marmita P"},
		"idTipoProduto": {"um"},
		"precoVenda":    {"18,90"},
	}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Preencha nome, tipo e preço de venda.", body.Message)
	svc.AssertNotCalled(t, "CriarProduto", mock.Anything, mock.Anything)
}

func TestAdicionarItemFicha_VoltaParaFichaDoProduto(t *testing.T) {
	svc := new(MockProdutoService)
	svc.On("AdicionarItemFicha", mock.Anything, 5, mock.MatchedBy(func(in domain.ItemFichaInput) bool {
		return in.InsumoID == 2 && in.Quantidade.Equal(decimal.RequireFromString("0.25"))
	})).Return(domain.ItemFichaTecnica{ID: 11, InsumoID: 2}, nil)

	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, postForm("/dashboard/produtos/5/ficha", url.Values{
		"insumoId":   {"2"},
		"quantidade": {"0,25"},
	}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/produtos?id=5&modal=visualizar", rec.Header().Get("Location"))
	svc.AssertExpectations(t)
}

func TestRemoverItemFicha_JSON(t *testing.T) {
	svc := new(MockProdutoService)
	svc.On("RemoverItemFicha", mock.Anything, 11).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/produtos/5/ficha/11/excluir", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}

func TestRemoverItemFicha_Erro(t *testing.T) {
	svc := new(MockProdutoService)
	svc.On("RemoverItemFicha", mock.Anything, 11).
		Return(apperror.NewApiError(http.StatusNotFound, "Not Found", "Item não encontrado"))

	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, postForm("/dashboard/produtos/5/ficha/11/excluir", url.Values{}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/produtos?id=5&modal=visualizar", rec.Header().Get("Location"))
}

func TestPagina_HTMLComFichaTecnica(t *testing.T) {
	p := domain.Produto{
		ID:         5,
		Nome:       "Marmita G",
		PrecoVenda: decimal.NewFromInt(25),
		FichaTecnica: []domain.ItemFichaTecnica{{
			ID:         11,
			InsumoID:   2,
			Quantidade: decimal.RequireFromString("0.3"),
			Insumo:     domain.InsumoResumo{ID: 2, Nome: "Arroz", CustoUnitario: decimal.NewFromInt(6), Unidade: "kg"},
		}},
	}
	svc := new(MockProdutoService)
	svc.On("CarregarPagina", mock.Anything, "").Return(produtoservice.Pagina{
		Pagina:   domain.Pagina{Estado: domain.EstadoCarregado},
		Produtos: []produtoservice.LinhaProduto{produtoservice.Linha(p)},
	}, nil)
	svc.On("BuscarProduto", mock.Anything, 5).Return(produtoservice.Linha(p), nil)

	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/produtos?modal=visualizar&id=5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Marmita G: ficha técnica")
	assert.Contains(t, body, "Arroz")
	assert.Contains(t, body, "/dashboard/produtos/5/ficha/11/excluir")
	svc.AssertExpectations(t)
}

func TestPagina_ProdutoSelecionadoInexistente(t *testing.T) {
	svc := new(MockProdutoService)
	svc.On("CarregarPagina", mock.Anything, "").Return(produtoservice.Pagina{
		Pagina: domain.Pagina{Estado: domain.EstadoCarregado},
	}, nil)
	svc.On("BuscarProduto", mock.Anything, 9).
		Return(produtoservice.LinhaProduto{}, apperror.NewApiError(http.StatusNotFound, "Not Found", "Produto não encontrado"))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/produtos?modal=editar&id=9", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body produtoservice.Pagina
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body.Selecionado)
	require.Len(t, body.Notificacoes, 1)
	assert.Equal(t, "Produto não encontrado", body.Notificacoes[0].Descricao)
}
