package domain

import "github.com/shopspring/decimal"

// TipoProduto é a linha de marmita do produto.
type TipoProduto struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}

// TiposProduto é o catálogo fixo usado pelo formulário de produto (o backend não expõe endpoint).
var TiposProduto = []TipoProduto{
	{ID: 1, Nome: "Marmita Executiva"},
	{ID: 2, Nome: "Marmita Fitness"},
	{ID: 3, Nome: "Marmita Vegetariana"},
	{ID: 4, Nome: "Marmita Kids"},
}

// NomeTipoProduto devolve o nome do catálogo ou "N/A".
func NomeTipoProduto(id int) string {
	for _, t := range TiposProduto {
		if t.ID == id {
			return t.Nome
		}
	}
	return "N/A"
}

// Produto é o item vendido, com ficha técnica opcional.
type Produto struct {
	ID                int                `json:"id"`
	Nome              string             `json:"nome"`
	TipoProdutoID     int                `json:"idTipoProduto"`
	TipoProdutoNome   string             `json:"tipoProdutoNome"`
	QuantidadeEstoque int                `json:"quantidadeEstoque"`
	EstoqueMinimo     int                `json:"estoqueMinimo"`
	PrecoVenda        decimal.Decimal    `json:"precoVenda"`
	FichaTecnica      []ItemFichaTecnica `json:"fichaTecnica"`
}

// EstoqueBaixo usa comparação estrita: quantidade igual ao mínimo não é baixa.
func (p Produto) EstoqueBaixo() bool { return p.QuantidadeEstoque < p.EstoqueMinimo }

// InsumoResumo é o recorte do insumo exibido na ficha técnica.
type InsumoResumo struct {
	ID            int             `json:"id"`
	Nome          string          `json:"nome"`
	CustoUnitario decimal.Decimal `json:"custoUnitario"`
	Unidade       string          `json:"unidade"`
}

// ItemFichaTecnica é uma linha da receita: quanto de um insumo vai em uma unidade do produto.
type ItemFichaTecnica struct {
	ID         int             `json:"id"`
	InsumoID   int             `json:"idInsumo"`
	Quantidade decimal.Decimal `json:"quantidade"`
	Insumo     InsumoResumo    `json:"insumo"`
}

// ProdutoInput é o formulário de cadastro/edição.
type ProdutoInput struct {
	Nome              string          `json:"nome" validate:"required"`
	TipoProdutoID     int             `json:"idTipoProduto" validate:"required,gt=0"`
	QuantidadeEstoque int             `json:"quantidadeEstoque" validate:"gte=0"`
	EstoqueMinimo     int             `json:"estoqueMinimo" validate:"gte=0"`
	PrecoVenda        decimal.Decimal `json:"precoVenda" validate:"gt=0"`
}

// ItemFichaInput adiciona um insumo à ficha técnica.
type ItemFichaInput struct {
	InsumoID   int             `json:"insumoId" validate:"gt=0"`
	Quantidade decimal.Decimal `json:"quantidade" validate:"gt=0"`
}
