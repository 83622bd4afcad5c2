package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// RevisaoProduto identifica qual formato de produto o backend enviou.
type RevisaoProduto string

const (
	// ProdutoAninhado: {name, tipoProdutoDTO{id,tipo}} (endpoint /products).
	ProdutoAninhado RevisaoProduto = "aninhado"
	// ProdutoPlano: {nome, tipoProdutoId, tipoProdutoNome} (itens de venda em versões antigas).
	ProdutoPlano RevisaoProduto = "plano"
	// ProdutoSemTipo: nenhum dado de tipo veio no payload.
	ProdutoSemTipo RevisaoProduto = "sem-tipo"
)

const semTipo = "Sem tipo"

// ProdutoDTO é a forma canônica de um produto do backend, independente da revisão recebida.
// Os campos Nome/TipoID/TipoNome já estão resolvidos após o decode.
type ProdutoDTO struct {
	ID                int
	Nome              string
	TipoID            int
	TipoNome          string
	QuantidadeEstoque int
	EstoqueMinimo     int
	PrecoVenda        decimal.Decimal
	Revisao           RevisaoProduto
}

// produtoWire aceita todas as revisões conhecidas ao mesmo tempo.
type produtoWire struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	Nome              string          `json:"nome,omitempty"`
	TipoProdutoDTO    *TipoProdutoDTO `json:"tipoProdutoDTO,omitempty"`
	TipoProdutoID     int             `json:"tipoProdutoId,omitempty"`
	TipoProdutoNome   string          `json:"tipoProdutoNome,omitempty"`
	QuantidadeEstoque int             `json:"quantidadeEstoque"`
	EstoqueMinimo     int             `json:"estoqueMinimo"`
	PrecoVenda        decimal.Decimal `json:"precoVenda"`
}

func (p *ProdutoDTO) UnmarshalJSON(b []byte) error {
	var w produtoWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*p = ProdutoDTO{
		ID:                w.ID,
		Nome:              firstNonEmpty(w.Nome, w.Name),
		QuantidadeEstoque: w.QuantidadeEstoque,
		EstoqueMinimo:     w.EstoqueMinimo,
		PrecoVenda:        w.PrecoVenda,
		TipoNome:          semTipo,
	}

	switch {
	case w.TipoProdutoDTO != nil:
		p.Revisao = ProdutoAninhado
	case w.TipoProdutoID != 0 || w.TipoProdutoNome != "":
		p.Revisao = ProdutoPlano
	default:
		p.Revisao = ProdutoSemTipo
	}

	// Ordem de preferência: objeto aninhado, depois campos planos.
	if w.TipoProdutoDTO != nil && w.TipoProdutoDTO.ID != 0 {
		p.TipoID = w.TipoProdutoDTO.ID
	} else {
		p.TipoID = w.TipoProdutoID
	}
	if w.TipoProdutoDTO != nil && w.TipoProdutoDTO.Tipo != "" {
		p.TipoNome = w.TipoProdutoDTO.Tipo
	} else if w.TipoProdutoNome != "" {
		p.TipoNome = w.TipoProdutoNome
	}
	return nil
}

// MarshalJSON escreve sempre a revisão aninhada (a atual do backend).
func (p ProdutoDTO) MarshalJSON() ([]byte, error) {
	return json.Marshal(produtoWire{
		ID:                p.ID,
		Name:              p.Nome,
		TipoProdutoDTO:    &TipoProdutoDTO{ID: p.TipoID, Tipo: p.TipoNome},
		QuantidadeEstoque: p.QuantidadeEstoque,
		EstoqueMinimo:     p.EstoqueMinimo,
		PrecoVenda:        p.PrecoVenda,
	})
}

// UnidadeMedidaDTO aceita {nome, sigla} e {descricao, abreviacao}.
type UnidadeMedidaDTO struct {
	ID         int
	Descricao  string
	Abreviacao string
}

type unidadeMedidaWire struct {
	ID         int    `json:"id"`
	Nome       string `json:"nome,omitempty"`
	Sigla      string `json:"sigla,omitempty"`
	Descricao  string `json:"descricao,omitempty"`
	Abreviacao string `json:"abreviacao,omitempty"`
}

func (u *UnidadeMedidaDTO) UnmarshalJSON(b []byte) error {
	var w unidadeMedidaWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*u = UnidadeMedidaDTO{
		ID:         w.ID,
		Descricao:  firstNonEmpty(w.Nome, w.Descricao),
		Abreviacao: firstNonEmpty(w.Sigla, w.Abreviacao),
	}
	return nil
}

func (u UnidadeMedidaDTO) MarshalJSON() ([]byte, error) {
	return json.Marshal(unidadeMedidaWire{ID: u.ID, Nome: u.Descricao, Sigla: u.Abreviacao})
}

// ItemFichaDTO aceita o insumo aninhado ou apenas o insumoId.
// Quando só o id vem, Insumo fica nil e o serviço completa com a lista de insumos.
type ItemFichaDTO struct {
	ID         int
	InsumoID   int
	Quantidade decimal.Decimal
	Insumo     *InsumoDTO
}

type itemFichaWire struct {
	ID         int             `json:"id"`
	InsumoID   int             `json:"insumoId,omitempty"`
	Quantidade decimal.Decimal `json:"quantidade"`
	Insumo     *InsumoDTO      `json:"insumo,omitempty"`
}

func (i *ItemFichaDTO) UnmarshalJSON(b []byte) error {
	var w itemFichaWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*i = ItemFichaDTO{ID: w.ID, InsumoID: w.InsumoID, Quantidade: w.Quantidade, Insumo: w.Insumo}
	if w.Insumo != nil && w.Insumo.ID != 0 {
		i.InsumoID = w.Insumo.ID
	}
	return nil
}

func (i ItemFichaDTO) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemFichaWire{ID: i.ID, InsumoID: i.InsumoID, Quantidade: i.Quantidade, Insumo: i.Insumo})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
