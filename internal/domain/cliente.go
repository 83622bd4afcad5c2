package domain

import "github.com/shopspring/decimal"

// Cliente tem um saldo com sinal (crédito/débito) e um flag de crédito apenas informativo.
type Cliente struct {
	ID            int             `json:"id"`
	Nome          string          `json:"nome"`
	Endereco      string          `json:"endereco"`
	Telefone      string          `json:"telefone"`
	Saldo         decimal.Decimal `json:"saldo"`
	LimiteCredito bool            `json:"limiteCredito"`
}

// Devedor indica saldo negativo.
func (c Cliente) Devedor() bool { return c.Saldo.IsNegative() }

// ClienteInput é o formulário de cadastro/edição.
type ClienteInput struct {
	Nome          string          `json:"nome" validate:"required"`
	Endereco      string          `json:"endereco"`
	Telefone      string          `json:"telefone" validate:"required"`
	Saldo         decimal.Decimal `json:"saldo"`
	LimiteCredito bool            `json:"limiteCredito"`
}
