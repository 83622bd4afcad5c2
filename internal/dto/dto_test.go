package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marmitaria/internal/domain"
	"marmitaria/internal/dto"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// --- Produto (union de revisões) ---

func TestProdutoDTO_RevisaoAninhada(t *testing.T) {
	var p dto.ProdutoDTO
	err := json.Unmarshal([]byte(`{"id":1,"name":"Frango grelhado","tipoProdutoDTO":{"id":2,"tipo":"Marmita Fitness"},
		"quantidadeEstoque":8,"estoqueMinimo":10,"precoVenda":18.5}`), &p)

	require.NoError(t, err)
	assert.Equal(t, dto.ProdutoAninhado, p.Revisao)
	assert.Equal(t, "Frango grelhado", p.Nome)
	assert.Equal(t, 2, p.TipoID)
	assert.Equal(t, "Marmita Fitness", p.TipoNome)
	assert.True(t, dec("18.5").Equal(p.PrecoVenda))
}

func TestProdutoDTO_RevisaoPlana(t *testing.T) {
	var p dto.ProdutoDTO
	err := json.Unmarshal([]byte(`{"id":3,"nome":"Lasanha","tipoProdutoId":1,"tipoProdutoNome":"Marmita Executiva","precoVenda":22}`), &p)

	require.NoError(t, err)
	assert.Equal(t, dto.ProdutoPlano, p.Revisao)
	assert.Equal(t, "Lasanha", p.Nome)
	assert.Equal(t, 1, p.TipoID)
	assert.Equal(t, "Marmita Executiva", p.TipoNome)
}

func TestProdutoDTO_NomeTemPreferenciaSobreName(t *testing.T) {
	var p dto.ProdutoDTO
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"nome":"Novo","name":"Antigo"}`), &p))
	assert.Equal(t, "Novo", p.Nome)
}

func TestProdutoDTO_SemTipo(t *testing.T) {
	var p dto.ProdutoDTO
	require.NoError(t, json.Unmarshal([]byte(`{"id":4,"name":"Sopa"}`), &p))

	assert.Equal(t, dto.ProdutoSemTipo, p.Revisao)
	assert.Equal(t, 0, p.TipoID)
	assert.Equal(t, "Sem tipo", p.TipoNome)
}

func TestProdutoDTO_MarshalEscreveRevisaoAninhada(t *testing.T) {
	p := dto.ProdutoDTO{ID: 1, Nome: "Feijoada", TipoID: 1, TipoNome: "Marmita Executiva", PrecoVenda: dec("25")}
	b, err := json.Marshal(p)

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Feijoada","tipoProdutoDTO":{"id":1,"tipo":"Marmita Executiva"},
		"quantidadeEstoque":0,"estoqueMinimo":0,"precoVenda":25}`, string(b))
}

// --- Unidade de medida e item de ficha ---

func TestUnidadeMedidaDTO_AceitaAmbosFormatos(t *testing.T) {
	var a, b dto.UnidadeMedidaDTO
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"nome":"Quilograma","sigla":"kg"}`), &a))
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"descricao":"Quilograma","abreviacao":"kg"}`), &b))

	assert.Equal(t, a, b)
	assert.Equal(t, "kg", a.Abreviacao)
}

func TestItemFicha_InsumoAninhado(t *testing.T) {
	var it dto.ItemFichaDTO
	err := json.Unmarshal([]byte(`{"id":9,"quantidade":0.25,"insumo":{"id":5,"nome":"Arroz","custoUnitario":6,
		"unidadeMedida":{"id":1,"nome":"Quilograma","sigla":"kg"}}}`), &it)
	require.NoError(t, err)

	item := dto.ItemFichaToDomain(it)
	assert.Equal(t, 5, item.InsumoID)
	assert.Equal(t, "Arroz", item.Insumo.Nome)
	assert.Equal(t, "kg", item.Insumo.Unidade)
	assert.True(t, dec("0.25").Equal(item.Quantidade))
}

func TestItemFicha_SomenteInsumoID(t *testing.T) {
	var it dto.ItemFichaDTO
	require.NoError(t, json.Unmarshal([]byte(`{"id":9,"insumoId":5,"quantidade":1}`), &it))

	item := dto.ItemFichaToDomain(it)
	assert.Nil(t, it.Insumo)
	assert.Equal(t, 5, item.InsumoID)
	assert.Equal(t, 5, item.Insumo.ID)
	assert.Empty(t, item.Insumo.Nome)
}

// --- Datas ---

func TestInsumoToDomain_DataValidadeSemDeslocamento(t *testing.T) {
	var d dto.InsumoDTO
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"nome":"Leite","dataValidade":"2026-10-20",
		"tipoInsumo":{"id":2,"tipo":"Laticínios"}}`), &d))

	i := dto.InsumoToDomain(d)
	require.NotNil(t, i.DataValidade)
	assert.Equal(t, 20, i.DataValidade.Day())
	assert.Equal(t, time.October, i.DataValidade.Month())
	assert.Equal(t, time.Local, i.DataValidade.Location())
	assert.Equal(t, "Laticínios", i.TipoInsumo.Tipo)
}

func TestInsumoToDomain_DataValidadeNula(t *testing.T) {
	var d dto.InsumoDTO
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"nome":"Sal","dataValidade":null}`), &d))
	assert.Nil(t, dto.InsumoToDomain(d).DataValidade)
}

// --- Caixa ---

func TestCaixaToDomain(t *testing.T) {
	var d dto.CaixaResponseDTO
	err := json.Unmarshal([]byte(`{"id":1,"valorInicial":100,"valorFinal":null,"dataAbertura":"2026-10-18T08:00:00",
		"status":"ABERTO","movimentacoes":[{"id":1,"tipo":"ENTRADA","descricao":"Venda","valor":50,"dataHora":"2026-10-18T09:30:00"}]}`), &d)
	require.NoError(t, err)

	c := dto.CaixaToDomain(d)
	assert.True(t, c.Aberto())
	assert.False(t, c.SaldoFinal.Valid)
	assert.Nil(t, c.DataFechamento)
	require.Len(t, c.Movimentacoes, 1)
	assert.Equal(t, domain.Entrada, c.Movimentacoes[0].Tipo)
	assert.Equal(t, 9, c.Movimentacoes[0].DataHora.Hour())
}

func TestCaixaToDomain_SaldoFinalSoQuandoFechado(t *testing.T) {
	d := dto.CaixaResponseDTO{ID: 2, Status: "ABERTO", ValorFinal: decimal.NewNullDecimal(dec("10"))}
	assert.False(t, dto.CaixaToDomain(d).SaldoFinal.Valid)

	d.Status = "FECHADO"
	assert.True(t, dto.CaixaToDomain(d).SaldoFinal.Valid)
}

// --- Vendas ---

func TestVendaToDomain_DescartaItensSemProduto(t *testing.T) {
	var d dto.VendaDTO
	err := json.Unmarshal([]byte(`{"id":1,"cliente":null,"valorTotal":59,"desconto":5,"valorPago":54,"dataVenda":"2026-10-18",
		"itens":[{"id":1,"produto":{"id":1,"nome":"Frango"},"quantidade":2},{"id":2,"produto":null,"quantidade":1}]}`), &d)
	require.NoError(t, err)

	v := dto.VendaToDomain(d)
	assert.Nil(t, v.Cliente)
	require.Len(t, v.Itens, 1)
	assert.Equal(t, "Frango", v.Itens[0].Produto.Nome)
	assert.Equal(t, 18, v.DataVenda.Day())
}

func TestVendaToCreateDTO_ClienteNuloEDataDeHoje(t *testing.T) {
	hoje := time.Date(2026, 10, 18, 23, 30, 0, 0, time.Local)
	out := dto.VendaToCreateDTO(domain.Venda{ValorTotal: dec("59")}, []domain.ItemVendaInput{{ProdutoID: 1, Quantidade: 2}}, hoje)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"clienteId":null,"valorTotal":59,"desconto":0,"valorPago":0,"dataVenda":"2026-10-18",
		"itens":[{"produtoId":1,"quantidade":2}]}`, string(b))
}

func TestVenda_RoundTripPreservaCamposEData(t *testing.T) {
	original := domain.Venda{
		Cliente:    &domain.Cliente{ID: 7},
		ValorTotal: dec("59"),
		Desconto:   dec("5"),
		ValorPago:  dec("54"),
		DataVenda:  time.Date(2026, 10, 18, 0, 0, 0, 0, time.Local),
	}
	itens := []domain.ItemVendaInput{{ProdutoID: 1, Quantidade: 2}, {ProdutoID: 2, Quantidade: 1}}

	b, err := json.Marshal(dto.VendaToCreateDTO(original, itens, time.Now()))
	require.NoError(t, err)

	var decoded dto.VendaCreateDTO
	require.NoError(t, json.Unmarshal(b, &decoded))
	volta, voltaItens := dto.CreateDTOToVenda(decoded)

	require.NotNil(t, volta.Cliente)
	assert.Equal(t, 7, volta.Cliente.ID)
	assert.True(t, original.ValorTotal.Equal(volta.ValorTotal))
	assert.True(t, original.Desconto.Equal(volta.Desconto))
	assert.True(t, original.ValorPago.Equal(volta.ValorPago))
	assert.True(t, original.DataVenda.Equal(volta.DataVenda))
	assert.Equal(t, itens, voltaItens)
}

func TestInsumoToCreateDTO_DataLocal(t *testing.T) {
	validade := time.Date(2026, 11, 1, 0, 0, 0, 0, time.Local)
	out := dto.InsumoToCreateDTO(domain.InsumoInput{Nome: "Arroz", TipoInsumoID: 1, UnidadeMedidaID: 1,
		QuantidadeEstoque: dec("12.5"), CustoUnitario: dec("6"), DataValidade: &validade})

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nome":"Arroz","quantidadeEstoque":12.5,"unidadeMedidaId":1,"custoUnitario":6,
		"dataValidade":"2026-11-01","tipoInsumoId":1}`, string(b))
}
