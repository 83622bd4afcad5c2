package validation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marmitaria/internal/domain"
	apperror "marmitaria/internal/errors"
	"marmitaria/internal/validation"
)

func TestStruct_Valido(t *testing.T) {
	in := domain.ClienteInput{Nome: "Maria", Telefone: "11987654321"}
	assert.NoError(t, validation.Struct(in, "Dados inválidos"))
}

func TestStruct_CamposObrigatorios(t *testing.T) {
	err := validation.Struct(domain.ClienteInput{}, "Dados inválidos")

	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Dados inválidos", vErr.Msg)
	assert.Equal(t, "campo obrigatório", vErr.Fields["nome"])
	assert.Equal(t, "campo obrigatório", vErr.Fields["telefone"])
}

func TestStruct_SaldoInicialZeroEhPermitido(t *testing.T) {
	zero := decimal.Zero
	assert.NoError(t, validation.Struct(domain.AbrirCaixaInput{SaldoInicial: &zero}, "Valor inválido"))
}

func TestStruct_SaldoInicialAusenteOuNegativo(t *testing.T) {
	err := validation.Struct(domain.AbrirCaixaInput{}, "Valor inválido")
	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "campo obrigatório", vErr.Fields["saldoInicial"])

	neg := decimal.NewFromInt(-1)
	err = validation.Struct(domain.AbrirCaixaInput{SaldoInicial: &neg}, "Valor inválido")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "não pode ser negativo", vErr.Fields["saldoInicial"])
}

func TestStruct_DecimalMaiorQueZero(t *testing.T) {
	in := domain.MovimentacaoInput{CaixaID: 1, Tipo: domain.Entrada, Descricao: "Troco", Valor: decimal.Zero}
	err := validation.Struct(in, "Dados inválidos")

	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "deve ser maior que zero", vErr.Fields["valor"])
}

func TestStruct_TipoMovimentacaoInvalido(t *testing.T) {
	in := domain.MovimentacaoInput{CaixaID: 1, Tipo: "ESTORNO", Descricao: "x", Valor: decimal.NewFromInt(1)}
	err := validation.Struct(in, "Dados inválidos")

	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields["tipo"], "ENTRADA, SAIDA")
}

func TestStruct_ItensDeVenda(t *testing.T) {
	err := validation.Struct(domain.VendaInput{}, "Itens inválidos")
	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "informe pelo menos 1 item(ns)", vErr.Fields["itens"])

	in := domain.VendaInput{Itens: []domain.ItemVendaInput{{ProdutoID: 1, Quantidade: 0}}}
	err = validation.Struct(in, "Itens inválidos")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "deve ser maior que zero", vErr.Fields["itens[0].quantidade"])
}
