package vendarepo_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marmitaria/internal/domain"
	"marmitaria/internal/pkg/apiclient"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/repository/vendarepo"
)

func newRepo(t *testing.T, h http.HandlerFunc) *vendarepo.VendaRepository {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return vendarepo.NewVendaRepository(apiclient.New(srv.URL, 5*time.Second, logger.NewNopLogger()), logger.NewNopLogger())
}

func TestCreate_SemClienteEnviaNull(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vendas", r.URL.Path)
		body, _ := io.ReadAll(r.Body)

		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Contains(t, payload, "clienteId")
		assert.Nil(t, payload["clienteId"])
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, payload["dataVenda"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"cliente":null,"valorTotal":59,"desconto":5,"valorPago":54,"dataVenda":"2026-10-18","itens":[]}`))
	})

	venda, err := repo.Create(context.Background(),
		domain.Venda{ValorTotal: decimal.NewFromInt(59), Desconto: decimal.NewFromInt(5), ValorPago: decimal.NewFromInt(54)},
		[]domain.ItemVendaInput{{ProdutoID: 1, Quantidade: 2}})

	require.NoError(t, err)
	assert.Equal(t, 7, venda.ID)
	assert.Nil(t, venda.Cliente)
}

func TestGetAll_FiltraItensSemProduto(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"valorTotal":18.5,"desconto":0,"valorPago":18.5,"dataVenda":"2026-10-18",
			"cliente":{"id":2,"nome":"Ana","saldo":0,"limiteCredito":false},
			"itens":[{"id":1,"produto":{"id":1,"nome":"Frango","tipoProdutoId":2},"quantidade":1},{"id":2,"produto":null,"quantidade":3}]}]`))
	})

	vendas, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, vendas, 1)
	assert.Len(t, vendas[0].Itens, 1)
	assert.Equal(t, "Ana", vendas[0].Cliente.Nome)
	assert.Equal(t, 2, vendas[0].Itens[0].Produto.TipoProdutoID)
}
