package insumo_test

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

	"marmitaria/internal/api/insumo"
	"marmitaria/internal/api/respond"
	"marmitaria/internal/domain"
	apperror "marmitaria/internal/errors"
	"marmitaria/internal/pkg/cache"
	"marmitaria/internal/pkg/flash"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/service/insumoservice"
	"marmitaria/internal/view"
)

type MockInsumoService struct {
	mock.Mock
}

func (m *MockInsumoService) CarregarPagina(ctx context.Context, busca string) (insumoservice.Pagina, error) {
	args := m.Called(ctx, busca)
	return args.Get(0).(insumoservice.Pagina), args.Error(1)
}

func (m *MockInsumoService) BuscarInsumo(ctx context.Context, id int) (domain.Insumo, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Insumo), args.Error(1)
}

func (m *MockInsumoService) CriarInsumo(ctx context.Context, in domain.InsumoInput) (domain.Insumo, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Insumo), args.Error(1)
}

func (m *MockInsumoService) AtualizarInsumo(ctx context.Context, id int, in domain.InsumoInput) (domain.Insumo, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(domain.Insumo), args.Error(1)
}

func (m *MockInsumoService) ExcluirInsumo(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockInsumoService) ForcarExclusao(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupRouter(t *testing.T, svc *MockInsumoService) http.Handler {
	t.Helper()
	views, err := view.New()
	require.NoError(t, err)
	log := logger.NewNopLogger()
	resp := respond.New(views, flash.NewStore(cache.NewMemoryClient(), time.Minute, log), log)

	r := chi.NewRouter()
	r.Route("/dashboard/insumos", insumo.NewHandler(svc, resp, log).MountRoutes)
	return r
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

var erroFicha = apperror.NewApiError(http.StatusBadRequest, "Bad Request", "Insumo está vinculado a uma ficha técnica")

func TestExcluir_EmFichaTecnicaPedeConfirmacao(t *testing.T) {
	svc := new(MockInsumoService)
	svc.On("ExcluirInsumo", mock.Anything, 4).Return(true, erroFicha)

	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, postForm("/dashboard/insumos/4/excluir", url.Values{}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/insumos?id=4&modal=forcar-exclusao", rec.Header().Get("Location"))
	svc.AssertNotCalled(t, "ForcarExclusao", mock.Anything, mock.Anything)
}

func TestExcluir_EmFichaTecnicaJSON(t *testing.T) {
	svc := new(MockInsumoService)
	svc.On("ExcluirInsumo", mock.Anything, 4).Return(true, erroFicha)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/insumos/4/excluir", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var body domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "CONFLICT", body.Category)
	assert.Equal(t, "Insumo está vinculado a uma ficha técnica", body.Message)
}

func TestExcluir_ForcadoPeloFormulario(t *testing.T) {
	svc := new(MockInsumoService)
	svc.On("ForcarExclusao", mock.Anything, 4).Return(nil)

	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, postForm("/dashboard/insumos/4/excluir", url.Values{"force": {"true"}}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/insumos", rec.Header().Get("Location"))
	svc.AssertExpectations(t)
	svc.AssertNotCalled(t, "ExcluirInsumo", mock.Anything, mock.Anything)
}

func TestExcluir_ForcadoPelaQueryJSON(t *testing.T) {
	svc := new(MockInsumoService)
	svc.On("ForcarExclusao", mock.Anything, 4).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/insumos/4/excluir?force=true", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}

func TestExcluir_OutroErroVoltaParaPagina(t *testing.T) {
	svc := new(MockInsumoService)
	svc.On("ExcluirInsumo", mock.Anything, 4).
		Return(false, apperror.NewApiError(http.StatusNotFound, "Not Found", "Insumo não encontrado"))

	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, postForm("/dashboard/insumos/4/excluir", url.Values{}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/insumos", rec.Header().Get("Location"))
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestCriar_Formulario(t *testing.T) {
	svc := new(MockInsumoService)
	svc.On("CriarInsumo", mock.Anything, mock.MatchedBy(func(in domain.InsumoInput) bool {
		return in.Nome == "Arroz" && in.TipoInsumoID == 1 && in.UnidadeMedidaID == 2 &&
			in.QuantidadeEstoque.Equal(decimal.NewFromInt(25)) &&
			in.CustoUnitario.Equal(decimal.RequireFromString("5.49")) &&
			in.DataValidade != nil && in.DataValidade.Day() == 30
	})).Return(domain.Insumo{ID: 10, Nome: "Arroz"}, nil)

	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, postForm("/dashboard/insumos", url.Values{
		"nome":              {"Arroz"},
		"tipoInsumoId":      {"1"},
		"unidadeMedidaId":   {"2"},
		"quantidadeEstoque": {"25"},
		"custoUnitario":     {"5,49"},
		"dataValidade":      {"2026-11-30"},
	}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/insumos", rec.Header().Get("Location"))
	svc.AssertExpectations(t)
}

func TestCriar_JSONComDataSimples(t *testing.T) {
	svc := new(MockInsumoService)
	svc.On("CriarInsumo", mock.Anything, mock.MatchedBy(func(in domain.InsumoInput) bool {
		if in.DataValidade == nil {
			return false
		}
		y, m, d := in.DataValidade.Date()
		return in.Nome == "Feijão" && y == 2025 && m == time.December && d == 7 &&
			in.CustoUnitario.Equal(decimal.RequireFromString("8.9"))
	})).Return(domain.Insumo{ID: 11, Nome: "Feijão"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/insumos", strings.NewReader(
		`{"nome":"Feijão","tipoInsumoId":1,"unidadeMedidaId":1,"quantidadeEstoque":10,"custoUnitario":8.9,"dataValidade":"2025-12-07"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestCriar_JSONSemValidade(t *testing.T) {
	svc := new(MockInsumoService)
	svc.On("CriarInsumo", mock.Anything, mock.MatchedBy(func(in domain.InsumoInput) bool {
		return in.DataValidade == nil
	})).Return(domain.Insumo{ID: 12}, nil)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/insumos", strings.NewReader(
		`{"nome":"Sal","tipoInsumoId":1,"unidadeMedidaId":1,"quantidadeEstoque":1,"custoUnitario":2,"dataValidade":""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestCriar_ValidacaoReabreModal(t *testing.T) {
	svc := new(MockInsumoService)
	svc.On("CriarInsumo", mock.Anything, mock.Anything).
		Return(domain.Insumo{}, apperror.NewValidationError("Preencha todos os campos obrigatórios."))

	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, postForm("/dashboard/insumos", url.Values{"nome": {""}}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/insumos?modal=criar", rec.Header().Get("Location"))
}

func TestPagina_ModalForcarExclusao(t *testing.T) {
	svc := new(MockInsumoService)
	svc.On("CarregarPagina", mock.Anything, "").Return(insumoservice.Pagina{
		Pagina: domain.Pagina{Estado: domain.EstadoCarregado},
	}, nil)
	svc.On("BuscarInsumo", mock.Anything, 4).Return(domain.Insumo{ID: 4, Nome: "Feijão"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/insumos?modal=forcar-exclusao&id=4", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body insumoservice.Pagina
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Selecionado)
	assert.Equal(t, "Feijão", body.Selecionado.Nome)
	assert.True(t, body.Modais.ForcarExclusao)
	svc.AssertExpectations(t)
}

func TestPagina_HTML(t *testing.T) {
	svc := new(MockInsumoService)
	svc.On("CarregarPagina", mock.Anything, "arroz").Return(insumoservice.Pagina{
		Pagina: domain.Pagina{Estado: domain.EstadoCarregado, Busca: "arroz"},
		Insumos: []domain.Insumo{{
			ID:                1,
			Nome:              "Arroz",
			QuantidadeEstoque: decimal.NewFromInt(3),
			CustoUnitario:     decimal.NewFromInt(5),
		}},
	}, nil)

	rec := httptest.NewRecorder()
	setupRouter(t, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/insumos?busca=arroz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Arroz")
	svc.AssertExpectations(t)
}
