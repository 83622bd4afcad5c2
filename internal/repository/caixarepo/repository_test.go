package caixarepo_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marmitaria/internal/domain"
	apperror "marmitaria/internal/errors"
	"marmitaria/internal/pkg/apiclient"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/repository/caixarepo"
)

func newRepo(t *testing.T, h http.HandlerFunc) *caixarepo.CaixaRepository {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return caixarepo.NewCaixaRepository(apiclient.New(srv.URL, 5*time.Second, logger.NewNopLogger()), logger.NewNopLogger())
}

func TestGetAberto_404RetornaNil(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/caixa/aberto", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})

	caixa, err := repo.GetAberto(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, caixa)
}

func TestGetAberto_CorpoVazioRetornaNil(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	caixa, err := repo.GetAberto(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, caixa)
}

func TestGetAberto_OutrosErrosPropagam(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := repo.GetAberto(context.Background())

	var apiErr *apperror.ApiError
	assert.True(t, errors.As(err, &apiErr))
}

func TestGetAberto_Encontrado(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":3,"valorInicial":100,"valorFinal":null,"dataAbertura":"2026-10-18T08:00:00","status":"ABERTO","movimentacoes":[]}`))
	})

	caixa, err := repo.GetAberto(context.Background())

	require.NoError(t, err)
	require.NotNil(t, caixa)
	assert.Equal(t, 3, caixa.ID)
	assert.True(t, caixa.Aberto())
}

func TestAbrir_EnviaValorInicial(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/caixa/abrir", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"valorInicial":0}`, string(body))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":4,"valorInicial":0,"status":"ABERTO","dataAbertura":"2026-10-18T08:00:00","movimentacoes":[]}`))
	})

	zero := decimal.Zero
	caixa, err := repo.Abrir(context.Background(), domain.AbrirCaixaInput{SaldoInicial: &zero})

	require.NoError(t, err)
	assert.Equal(t, 4, caixa.ID)
}

func TestFechar_UsaPUT(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/caixa/4/fechar", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":4,"valorInicial":100,"valorFinal":140,"status":"FECHADO","dataAbertura":"2026-10-18T08:00:00",
			"dataFechamento":"2026-10-18T18:00:00","movimentacoes":[]}`))
	})

	caixa, err := repo.Fechar(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, domain.CaixaFechado, caixa.Status)
	assert.True(t, caixa.SaldoFinal.Valid)
	assert.True(t, decimal.NewFromInt(140).Equal(caixa.SaldoFinal.Decimal))
	require.NotNil(t, caixa.DataFechamento)
}

func TestAddMovimentacao(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/caixa/movimentacao", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"caixaId":4,"tipo":"SAIDA","descricao":"Gás","valor":20}`, string(body))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"tipo":"SAIDA","descricao":"Gás","valor":20,"dataHora":"2026-10-18T10:00:00"}`))
	})

	mov, err := repo.AddMovimentacao(context.Background(), domain.MovimentacaoInput{
		CaixaID: 4, Tipo: domain.Saida, Descricao: "Gás", Valor: decimal.NewFromInt(20),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.Saida, mov.Tipo)
}

func TestGetByID_404ViraNotFound(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := repo.GetByID(context.Background(), 99)

	assert.IsType(t, &apperror.NotFoundError{}, err)
}
