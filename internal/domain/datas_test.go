package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marmitaria/internal/domain"
)

func TestVendaInput_DataSimplesNoFusoLocal(t *testing.T) {
	var in domain.VendaInput
	err := json.Unmarshal([]byte(`{"clienteId":2,"dataVenda":"2025-12-07","desconto":1.5,
		"itens":[{"produtoId":1,"quantidade":2}]}`), &in)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 7, 0, 0, 0, 0, time.Local), in.DataVenda)
	require.NotNil(t, in.ClienteID)
	assert.Equal(t, 2, *in.ClienteID)
	assert.True(t, decimal.RequireFromString("1.5").Equal(in.Desconto))
	assert.Equal(t, []domain.ItemVendaInput{{ProdutoID: 1, Quantidade: 2}}, in.Itens)
}

func TestVendaInput_SemDataFicaZerada(t *testing.T) {
	var in domain.VendaInput
	require.NoError(t, json.Unmarshal([]byte(`{"itens":[]}`), &in))
	assert.True(t, in.DataVenda.IsZero())
}

func TestVendaInput_DataInvalida(t *testing.T) {
	var in domain.VendaInput
	assert.Error(t, json.Unmarshal([]byte(`{"dataVenda":"07/12/2025"}`), &in))
}

func TestInsumoInput_DataValidade(t *testing.T) {
	var in domain.InsumoInput
	require.NoError(t, json.Unmarshal([]byte(`{"nome":"Arroz","dataValidade":"2025-12-07"}`), &in))
	require.NotNil(t, in.DataValidade)
	assert.Equal(t, time.Date(2025, 12, 7, 0, 0, 0, 0, time.Local), *in.DataValidade)
	assert.Equal(t, "Arroz", in.Nome)

	var semValidade domain.InsumoInput
	require.NoError(t, json.Unmarshal([]byte(`{"nome":"Sal","dataValidade":null}`), &semValidade))
	assert.Nil(t, semValidade.DataValidade)
}
