package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusCaixa representa o ciclo de vida do caixa: ABERTO até o fechamento, FECHADO depois.
type StatusCaixa string

const (
	CaixaAberto  StatusCaixa = "ABERTO"
	CaixaFechado StatusCaixa = "FECHADO"
)

// TipoMovimentacao indica entrada ou saída de dinheiro do caixa.
type TipoMovimentacao string

const (
	Entrada TipoMovimentacao = "ENTRADA"
	Saida   TipoMovimentacao = "SAIDA"
)

// Caixa é a sessão de caixa (abertura, movimentações, fechamento).
// SaldoFinal só é válido quando Status = FECHADO.
type Caixa struct {
	ID             int                 `json:"id"`
	SaldoInicial   decimal.Decimal     `json:"saldoInicial"`
	SaldoFinal     decimal.NullDecimal `json:"saldoFinal"`
	DataAbertura   time.Time           `json:"dataAbertura"`
	DataFechamento *time.Time          `json:"dataFechamento"`
	Status         StatusCaixa         `json:"status"`
	Movimentacoes  []Movimentacao      `json:"movimentacoes"`
}

// Aberto informa se o caixa ainda aceita movimentações.
func (c Caixa) Aberto() bool { return c.Status == CaixaAberto }

// Movimentacao é uma entrada ou saída registrada num caixa.
type Movimentacao struct {
	ID        int              `json:"id"`
	Tipo      TipoMovimentacao `json:"tipo"`
	Descricao string           `json:"descricao"`
	Valor     decimal.Decimal  `json:"valor"`
	DataHora  time.Time        `json:"dataHora"`
}

// AbrirCaixaInput é o formulário de abertura.
type AbrirCaixaInput struct {
	SaldoInicial *decimal.Decimal `json:"saldoInicial" validate:"required,gte=0"`
}

// MovimentacaoInput é o formulário de nova movimentação.
type MovimentacaoInput struct {
	CaixaID   int              `json:"caixaId" validate:"gt=0"`
	Tipo      TipoMovimentacao `json:"tipo" validate:"required,oneof=ENTRADA SAIDA"`
	Descricao string           `json:"descricao" validate:"required"`
	Valor     decimal.Decimal  `json:"valor" validate:"gt=0"`
}
