package caixa_test

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

	"marmitaria/internal/api/caixa"
	"marmitaria/internal/api/respond"
	"marmitaria/internal/domain"
	apperror "marmitaria/internal/errors"
	"marmitaria/internal/pkg/cache"
	"marmitaria/internal/pkg/flash"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/service/caixaservice"
	"marmitaria/internal/view"
)

type MockCaixaService struct {
	mock.Mock
}

func (m *MockCaixaService) CarregarPagina(ctx context.Context, busca string) (caixaservice.Pagina, error) {
	args := m.Called(ctx, busca)
	return args.Get(0).(caixaservice.Pagina), args.Error(1)
}

func (m *MockCaixaService) BuscarCaixa(ctx context.Context, id int) (domain.Caixa, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Caixa), args.Error(1)
}

func (m *MockCaixaService) AbrirCaixa(ctx context.Context, in domain.AbrirCaixaInput) (domain.Caixa, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Caixa), args.Error(1)
}

func (m *MockCaixaService) AdicionarMovimentacao(ctx context.Context, in domain.MovimentacaoInput) (domain.Movimentacao, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Movimentacao), args.Error(1)
}

func (m *MockCaixaService) FecharCaixa(ctx context.Context, id int) (domain.Caixa, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Caixa), args.Error(1)
}

func (m *MockCaixaService) ExcluirCaixa(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupRouter(t *testing.T, svc *MockCaixaService) http.Handler {
	t.Helper()
	views, err := view.New()
	require.NoError(t, err)
	log := logger.NewNopLogger()
	resp := respond.New(views, flash.NewStore(cache.NewMemoryClient(), time.Minute, log), log)

	r := chi.NewRouter()
	r.Route("/dashboard/caixa", caixa.NewHandler(svc, resp, log).MountRoutes)
	return r
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestPagina_JSON(t *testing.T) {
	svc := new(MockCaixaService)
	svc.On("CarregarPagina", mock.Anything, "").Return(caixaservice.Pagina{
		Pagina: domain.Pagina{Estado: domain.EstadoCarregado},
		Caixas: []domain.Caixa{{ID: 1, Status: domain.CaixaFechado}},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/caixa", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body["caixas"], 1)
	svc.AssertExpectations(t)
}

func TestPagina_HTMLComCaixaSelecionado(t *testing.T) {
	svc := new(MockCaixaService)
	svc.On("CarregarPagina", mock.Anything, "").Return(caixaservice.Pagina{
		Pagina: domain.Pagina{Estado: domain.EstadoCarregado},
	}, nil)
	svc.On("BuscarCaixa", mock.Anything, 3).Return(domain.Caixa{
		ID:           3,
		Status:       domain.CaixaFechado,
		SaldoInicial: decimal.NewFromInt(100),
		DataAbertura: time.Date(2026, 10, 1, 8, 0, 0, 0, time.Local),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/caixa?modal=visualizar&id=3", nil)
	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Caixa #3")
	svc.AssertExpectations(t)
}

func TestPagina_ErroDoBackend(t *testing.T) {
	svc := new(MockCaixaService)
	svc.On("CarregarPagina", mock.Anything, "").Return(caixaservice.Pagina{
		Pagina: domain.Pagina{Estado: domain.EstadoErro},
	}, apperror.NewApiError(http.StatusInternalServerError, "Internal Server Error", "Falha no banco"))

	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/caixa", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Erro ao carregar dados")
	assert.Contains(t, rec.Body.String(), "Falha no banco")
	svc.AssertNotCalled(t, "BuscarCaixa", mock.Anything, mock.Anything)
}

func TestAbrir_FormularioRedirecionaComNotificacao(t *testing.T) {
	svc := new(MockCaixaService)
	svc.On("AbrirCaixa", mock.Anything, mock.MatchedBy(func(in domain.AbrirCaixaInput) bool {
		return in.SaldoInicial != nil && in.SaldoInicial.Equal(decimal.RequireFromString("150.5"))
	})).Return(domain.Caixa{ID: 1, Status: domain.CaixaAberto}, nil)
	svc.On("CarregarPagina", mock.Anything, "").Return(caixaservice.Pagina{
		Pagina: domain.Pagina{Estado: domain.EstadoCarregado},
	}, nil)
	router := setupRouter(t, svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/dashboard/caixa/abrir", url.Values{"saldoInicial": {"150,50"}}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/caixa", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, flash.CookieName, cookies[0].Name)

	// A notificação aparece uma única vez, na página seguinte.
	req := httptest.NewRequest(http.MethodGet, "/dashboard/caixa", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), "O caixa foi aberto com sucesso.")

	req = httptest.NewRequest(http.MethodGet, "/dashboard/caixa", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.NotContains(t, rec.Body.String(), "O caixa foi aberto com sucesso.")
	svc.AssertExpectations(t)
}

func TestAbrir_JSONComErroDeValidacao(t *testing.T) {
	svc := new(MockCaixaService)
	svc.On("AbrirCaixa", mock.Anything, domain.AbrirCaixaInput{}).
		Return(domain.Caixa{}, apperror.NewValidationError("Informe um saldo inicial válido."))

	req := httptest.NewRequest(http.MethodPost, "/dashboard/caixa/abrir", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Category)
	assert.Equal(t, "Informe um saldo inicial válido.", body.Message)
}

func TestAbrir_JSONMalFormado(t *testing.T) {
	svc := new(MockCaixaService)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/caixa/abrir", strings.NewReader(`{"saldoInicial":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "AbrirCaixa", mock.Anything, mock.Anything)
}

func TestMovimentacao_ValorInvalidoReabreModal(t *testing.T) {
	svc := new(MockCaixaService)

	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, postForm("/dashboard/caixa/movimentacao", url.Values{
		"caixaId":   {"1"},
		"tipo":      {"ENTRADA"},
		"descricao": {"Troco"},
		"valor":     {"abc"},
	}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/caixa?modal=movimentacao", rec.Header().Get("Location"))
	svc.AssertNotCalled(t, "AdicionarMovimentacao", mock.Anything, mock.Anything)
}

func TestMovimentacao_Formulario(t *testing.T) {
	svc := new(MockCaixaService)
	svc.On("AdicionarMovimentacao", mock.Anything, mock.MatchedBy(func(in domain.MovimentacaoInput) bool {
		return in.CaixaID == 2 && in.Tipo == domain.Saida && in.Descricao == "Gás" &&
			in.Valor.Equal(decimal.RequireFromString("89.9"))
	})).Return(domain.Movimentacao{ID: 9}, nil)

	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, postForm("/dashboard/caixa/movimentacao", url.Values{
		"caixaId":   {"2"},
		"tipo":      {"SAIDA"},
		"descricao": {"Gás"},
		"valor":     {"89,90"},
	}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/caixa", rec.Header().Get("Location"))
	svc.AssertExpectations(t)
}

func TestFechar_JSON(t *testing.T) {
	svc := new(MockCaixaService)
	svc.On("FecharCaixa", mock.Anything, 7).Return(domain.Caixa{ID: 7, Status: domain.CaixaFechado}, nil)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/caixa/7/fechar", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body domain.Caixa
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.CaixaFechado, body.Status)
	svc.AssertExpectations(t)
}

func TestExcluir_IDInvalido(t *testing.T) {
	svc := new(MockCaixaService)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/caixa/abc/excluir", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "ExcluirCaixa", mock.Anything, mock.Anything)
}

func TestExcluir_Sucesso(t *testing.T) {
	svc := new(MockCaixaService)
	svc.On("ExcluirCaixa", mock.Anything, 4).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/caixa/4/excluir", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}
