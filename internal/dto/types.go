// Package dto contém os formatos trocados com o backend REST e o mapeamento para os view-models.
// Formatos que variaram entre versões do backend são resolvidos aqui, no momento do decode.
package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"marmitaria/internal/pkg/dateutil"
)

func init() {
	// O backend espera números, não strings, nos campos monetários.
	decimal.MarshalJSONWithoutQuotes = true
}

var jsonNull = []byte("null")

// LocalDate é uma data pura (yyyy-MM-dd) interpretada no fuso local.
type LocalDate struct {
	time.Time
}

// NewLocalDate cria um LocalDate a partir de qualquer instante, mantendo o dia local.
func NewLocalDate(t time.Time) LocalDate {
	return LocalDate{Time: dateutil.StartOfDay(t)}
}

func (d *LocalDate) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, jsonNull) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	t, err := dateutil.ParseLocalDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d LocalDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return jsonNull, nil
	}
	return json.Marshal(dateutil.ToISODateString(d.Time))
}

// LocalDateTime é o LocalDateTime do backend (sem fuso), interpretado no fuso local.
type LocalDateTime struct {
	time.Time
}

func (d *LocalDateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, jsonNull) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	t, err := dateutil.ParseLocalDateTime(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d LocalDateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return jsonNull, nil
	}
	return json.Marshal(d.Format("2006-01-02T15:04:05"))
}

// --- Caixa ---

type MovimentacaoCaixaDTO struct {
	ID        int             `json:"id"`
	Tipo      string          `json:"tipo"`
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `json:"valor"`
	DataHora  LocalDateTime   `json:"dataHora"`
}

type CaixaResponseDTO struct {
	ID             int                    `json:"id"`
	ValorInicial   decimal.Decimal        `json:"valorInicial"`
	ValorFinal     decimal.NullDecimal    `json:"valorFinal"`
	DataAbertura   LocalDateTime          `json:"dataAbertura"`
	DataFechamento *LocalDateTime         `json:"dataFechamento"`
	Status         string                 `json:"status"`
	Movimentacoes  []MovimentacaoCaixaDTO `json:"movimentacoes"`
}

type CaixaRequestDTO struct {
	ValorInicial decimal.Decimal `json:"valorInicial"`
}

type MovimentacaoCaixaCreateDTO struct {
	CaixaID   int             `json:"caixaId"`
	Tipo      string          `json:"tipo"`
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `json:"valor"`
}

// --- Clientes ---

type ClienteDTO struct {
	ID            int             `json:"id"`
	Nome          string          `json:"nome"`
	Endereco      string          `json:"endereco"`
	Telefone      string          `json:"telefone"`
	Saldo         decimal.Decimal `json:"saldo"`
	LimiteCredito bool            `json:"limiteCredito"`
}

type ClienteCreateDTO struct {
	Nome          string          `json:"nome"`
	Endereco      string          `json:"endereco"`
	Telefone      string          `json:"telefone"`
	Saldo         decimal.Decimal `json:"saldo"`
	LimiteCredito bool            `json:"limiteCredito"`
}

// --- Insumos ---

type TipoInsumoDTO struct {
	ID   int    `json:"id"`
	Tipo string `json:"tipo"`
}

type InsumoDTO struct {
	ID                int              `json:"id"`
	Nome              string           `json:"nome"`
	QuantidadeEstoque decimal.Decimal  `json:"quantidadeEstoque"`
	UnidadeMedida     UnidadeMedidaDTO `json:"unidadeMedida"`
	CustoUnitario     decimal.Decimal  `json:"custoUnitario"`
	DataValidade      *LocalDate       `json:"dataValidade"`
	TipoInsumo        TipoInsumoDTO    `json:"tipoInsumo"`
}

type InsumoCreateDTO struct {
	Nome              string          `json:"nome"`
	QuantidadeEstoque decimal.Decimal `json:"quantidadeEstoque"`
	UnidadeMedidaID   int             `json:"unidadeMedidaId"`
	CustoUnitario     decimal.Decimal `json:"custoUnitario"`
	DataValidade      *LocalDate      `json:"dataValidade"`
	TipoInsumoID      int             `json:"tipoInsumoId"`
}

// --- Produtos ---

type TipoProdutoDTO struct {
	ID   int    `json:"id"`
	Tipo string `json:"tipo"`
}

type ProdutoCreateDTO struct {
	Nome              string          `json:"nome"`
	TipoProdutoID     int             `json:"tipoProdutoId"`
	QuantidadeEstoque int             `json:"quantidadeEstoque"`
	EstoqueMinimo     int             `json:"estoqueMinimo"`
	PrecoVenda        decimal.Decimal `json:"precoVenda"`
}

type ItemFichaCreateDTO struct {
	InsumoID   int             `json:"insumoId"`
	Quantidade decimal.Decimal `json:"quantidade"`
}

// --- Vendas ---

type ItemVendaDTO struct {
	ID         int         `json:"id"`
	Produto    *ProdutoDTO `json:"produto"`
	Quantidade int         `json:"quantidade"`
}

type VendaDTO struct {
	ID         int             `json:"id"`
	Cliente    *ClienteDTO     `json:"cliente"`
	ValorTotal decimal.Decimal `json:"valorTotal"`
	Desconto   decimal.Decimal `json:"desconto"`
	ValorPago  decimal.Decimal `json:"valorPago"`
	DataVenda  LocalDate       `json:"dataVenda"`
	Itens      []ItemVendaDTO  `json:"itens"`
}

type ItemVendaCreateDTO struct {
	ProdutoID  int `json:"produtoId"`
	Quantidade int `json:"quantidade"`
}

type VendaCreateDTO struct {
	ClienteID  *int                 `json:"clienteId"`
	ValorTotal decimal.Decimal      `json:"valorTotal"`
	Desconto   decimal.Decimal      `json:"desconto"`
	ValorPago  decimal.Decimal      `json:"valorPago"`
	DataVenda  LocalDate            `json:"dataVenda"`
	Itens      []ItemVendaCreateDTO `json:"itens"`
}
