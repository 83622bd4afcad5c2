package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoInsumo é a categoria do insumo (Grãos, Carnes, ...).
type TipoInsumo struct {
	ID   int    `json:"id"`
	Tipo string `json:"tipo"`
}

// UnidadeMedida é a unidade do estoque (Quilograma/kg, Litro/L, ...).
type UnidadeMedida struct {
	ID         int    `json:"id"`
	Descricao  string `json:"descricao"`
	Abreviacao string `json:"abreviacao"`
}

// Insumo é o ingrediente em estoque. DataValidade é uma data de calendário local.
type Insumo struct {
	ID                int             `json:"id"`
	Nome              string          `json:"nome"`
	QuantidadeEstoque decimal.Decimal `json:"quantidadeEstoque"`
	UnidadeMedida     UnidadeMedida   `json:"unidadeMedida"`
	CustoUnitario     decimal.Decimal `json:"custoUnitario"`
	DataValidade      *time.Time      `json:"dataValidade"`
	TipoInsumo        TipoInsumo      `json:"tipoInsumo"`
}

// InsumoInput é o formulário de cadastro/edição.
type InsumoInput struct {
	Nome              string          `json:"nome" validate:"required"`
	TipoInsumoID      int             `json:"tipoInsumoId" validate:"required,gt=0"`
	UnidadeMedidaID   int             `json:"unidadeMedidaId" validate:"required,gt=0"`
	QuantidadeEstoque decimal.Decimal `json:"quantidadeEstoque" validate:"gte=0"`
	CustoUnitario     decimal.Decimal `json:"custoUnitario" validate:"gte=0"`
	DataValidade      *time.Time      `json:"dataValidade"`
}
