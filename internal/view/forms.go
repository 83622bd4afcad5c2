package view

import (
	"marmitaria/internal/domain"
	"marmitaria/internal/pkg/dateutil"
	"marmitaria/internal/service/vendaservice"
)

// linhasItensVenda é quantas linhas de produto o formulário de venda oferece.
const linhasItensVenda = 5

type LinhaItem struct {
	ProdutoID  int
	Quantidade int
}

// FormVenda pré-preenche o formulário de venda (vazio na criação, com a venda na edição).
type FormVenda struct {
	Clientes  []domain.Cliente
	Produtos  []domain.Produto
	ClienteID int
	DataVenda string
	Desconto  string
	ValorPago string
	Linhas    []LinhaItem
}

func formVenda(p *vendaservice.Pagina, v *vendaservice.LinhaVenda) FormVenda {
	f := FormVenda{Clientes: p.Clientes, Produtos: p.Produtos}
	if v != nil {
		if v.Cliente != nil {
			f.ClienteID = v.Cliente.ID
		}
		f.DataVenda = dateutil.FormatToInputDate(v.DataVenda)
		f.Desconto = v.Desconto.StringFixed(2)
		f.ValorPago = v.ValorPago.StringFixed(2)
		for _, it := range v.Itens {
			f.Linhas = append(f.Linhas, LinhaItem{ProdutoID: it.Produto.ID, Quantidade: it.Quantidade})
		}
	}
	for len(f.Linhas) < linhasItensVenda {
		f.Linhas = append(f.Linhas, LinhaItem{})
	}
	return f
}
