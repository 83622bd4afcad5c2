package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusPagamento é binário: não existe estado de pagamento parcial.
type StatusPagamento string

const (
	Pago     StatusPagamento = "Pago"
	Pendente StatusPagamento = "Pendente"
)

// Venda guarda o subtotal dos itens em ValorTotal; o desconto fica separado.
type Venda struct {
	ID         int             `json:"id"`
	Cliente    *Cliente        `json:"cliente"`
	ValorTotal decimal.Decimal `json:"valorTotal"`
	Desconto   decimal.Decimal `json:"desconto"`
	ValorPago  decimal.Decimal `json:"valorPago"`
	DataVenda  time.Time       `json:"dataVenda"`
	Itens      []ItemVenda     `json:"itens"`
}

// ItemVenda é uma linha da venda.
type ItemVenda struct {
	ID         int     `json:"id"`
	Produto    Produto `json:"produto"`
	Quantidade int     `json:"quantidade"`
}

// ItemVendaInput referencia o produto pelo id.
type ItemVendaInput struct {
	ProdutoID  int `json:"produtoId" validate:"gt=0"`
	Quantidade int `json:"quantidade" validate:"gt=0"`
}

// VendaInput é o formulário de venda. ValorPago zero significa "não informado".
type VendaInput struct {
	ClienteID *int             `json:"clienteId"`
	Desconto  decimal.Decimal  `json:"desconto" validate:"gte=0"`
	ValorPago decimal.Decimal  `json:"valorPago" validate:"gte=0"`
	DataVenda time.Time        `json:"dataVenda"`
	Itens     []ItemVendaInput `json:"itens" validate:"min=1,dive"`
}
