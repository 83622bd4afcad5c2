package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"marmitaria/internal/domain"
)

// --- Backend -> view-model ---

func MovimentacaoToDomain(d MovimentacaoCaixaDTO) domain.Movimentacao {
	return domain.Movimentacao{
		ID:        d.ID,
		Tipo:      domain.TipoMovimentacao(d.Tipo),
		Descricao: d.Descricao,
		Valor:     d.Valor,
		DataHora:  d.DataHora.Time,
	}
}

func CaixaToDomain(d CaixaResponseDTO) domain.Caixa {
	c := domain.Caixa{
		ID:            d.ID,
		SaldoInicial:  d.ValorInicial,
		SaldoFinal:    d.ValorFinal,
		DataAbertura:  d.DataAbertura.Time,
		Status:        domain.StatusCaixa(d.Status),
		Movimentacoes: make([]domain.Movimentacao, 0, len(d.Movimentacoes)),
	}
	if d.DataFechamento != nil && !d.DataFechamento.IsZero() {
		t := d.DataFechamento.Time
		c.DataFechamento = &t
	}
	// Saldo final só faz sentido em caixa fechado.
	if c.Status != domain.CaixaFechado {
		c.SaldoFinal = decimal.NullDecimal{}
	}
	for _, m := range d.Movimentacoes {
		c.Movimentacoes = append(c.Movimentacoes, MovimentacaoToDomain(m))
	}
	return c
}

func ClienteToDomain(d ClienteDTO) domain.Cliente {
	return domain.Cliente{
		ID:            d.ID,
		Nome:          d.Nome,
		Endereco:      d.Endereco,
		Telefone:      d.Telefone,
		Saldo:         d.Saldo,
		LimiteCredito: d.LimiteCredito,
	}
}

func TipoInsumoToDomain(d TipoInsumoDTO) domain.TipoInsumo {
	return domain.TipoInsumo{ID: d.ID, Tipo: d.Tipo}
}

func UnidadeMedidaToDomain(d UnidadeMedidaDTO) domain.UnidadeMedida {
	return domain.UnidadeMedida{ID: d.ID, Descricao: d.Descricao, Abreviacao: d.Abreviacao}
}

func InsumoToDomain(d InsumoDTO) domain.Insumo {
	i := domain.Insumo{
		ID:                d.ID,
		Nome:              d.Nome,
		QuantidadeEstoque: d.QuantidadeEstoque,
		UnidadeMedida:     UnidadeMedidaToDomain(d.UnidadeMedida),
		CustoUnitario:     d.CustoUnitario,
		TipoInsumo:        TipoInsumoToDomain(d.TipoInsumo),
	}
	if d.DataValidade != nil && !d.DataValidade.IsZero() {
		t := d.DataValidade.Time
		i.DataValidade = &t
	}
	return i
}

func ProdutoToDomain(d ProdutoDTO) domain.Produto {
	return domain.Produto{
		ID:                d.ID,
		Nome:              d.Nome,
		TipoProdutoID:     d.TipoID,
		TipoProdutoNome:   d.TipoNome,
		QuantidadeEstoque: d.QuantidadeEstoque,
		EstoqueMinimo:     d.EstoqueMinimo,
		PrecoVenda:        d.PrecoVenda,
		FichaTecnica:      []domain.ItemFichaTecnica{},
	}
}

// ItemFichaToDomain monta a linha da receita. Sem insumo aninhado, só o id é preenchido.
func ItemFichaToDomain(d ItemFichaDTO) domain.ItemFichaTecnica {
	item := domain.ItemFichaTecnica{
		ID:         d.ID,
		InsumoID:   d.InsumoID,
		Quantidade: d.Quantidade,
		Insumo:     domain.InsumoResumo{ID: d.InsumoID},
	}
	if d.Insumo != nil {
		item.Insumo = InsumoResumo(InsumoToDomain(*d.Insumo))
	}
	return item
}

// InsumoResumo recorta o insumo para a ficha técnica.
func InsumoResumo(i domain.Insumo) domain.InsumoResumo {
	return domain.InsumoResumo{
		ID:            i.ID,
		Nome:          i.Nome,
		CustoUnitario: i.CustoUnitario,
		Unidade:       i.UnidadeMedida.Abreviacao,
	}
}

// VendaToDomain descarta itens sem produto.
func VendaToDomain(d VendaDTO) domain.Venda {
	v := domain.Venda{
		ID:         d.ID,
		ValorTotal: d.ValorTotal,
		Desconto:   d.Desconto,
		ValorPago:  d.ValorPago,
		DataVenda:  d.DataVenda.Time,
		Itens:      make([]domain.ItemVenda, 0, len(d.Itens)),
	}
	if d.Cliente != nil {
		c := ClienteToDomain(*d.Cliente)
		v.Cliente = &c
	}
	for _, it := range d.Itens {
		if it.Produto == nil {
			continue
		}
		v.Itens = append(v.Itens, domain.ItemVenda{
			ID:         it.ID,
			Produto:    ProdutoToDomain(*it.Produto),
			Quantidade: it.Quantidade,
		})
	}
	return v
}

// --- View-model / formulário -> backend ---

func ClienteToCreateDTO(in domain.ClienteInput) ClienteCreateDTO {
	return ClienteCreateDTO{
		Nome:          in.Nome,
		Endereco:      in.Endereco,
		Telefone:      in.Telefone,
		Saldo:         in.Saldo,
		LimiteCredito: in.LimiteCredito,
	}
}

func InsumoToCreateDTO(in domain.InsumoInput) InsumoCreateDTO {
	out := InsumoCreateDTO{
		Nome:              in.Nome,
		QuantidadeEstoque: in.QuantidadeEstoque,
		UnidadeMedidaID:   in.UnidadeMedidaID,
		CustoUnitario:     in.CustoUnitario,
		TipoInsumoID:      in.TipoInsumoID,
	}
	if in.DataValidade != nil && !in.DataValidade.IsZero() {
		d := NewLocalDate(*in.DataValidade)
		out.DataValidade = &d
	}
	return out
}

func ProdutoToCreateDTO(in domain.ProdutoInput) ProdutoCreateDTO {
	return ProdutoCreateDTO{
		Nome:              in.Nome,
		TipoProdutoID:     in.TipoProdutoID,
		QuantidadeEstoque: in.QuantidadeEstoque,
		EstoqueMinimo:     in.EstoqueMinimo,
		PrecoVenda:        in.PrecoVenda,
	}
}

func ItemFichaToCreateDTO(in domain.ItemFichaInput) ItemFichaCreateDTO {
	return ItemFichaCreateDTO{InsumoID: in.InsumoID, Quantidade: in.Quantidade}
}

// VendaToCreateDTO monta o payload da venda. Cliente ausente vira clienteId null;
// data ausente vira o dia de hoje (data local, sem deslocamento de fuso).
func VendaToCreateDTO(v domain.Venda, itens []domain.ItemVendaInput, hoje time.Time) VendaCreateDTO {
	out := VendaCreateDTO{
		ValorTotal: v.ValorTotal,
		Desconto:   v.Desconto,
		ValorPago:  v.ValorPago,
		Itens:      make([]ItemVendaCreateDTO, 0, len(itens)),
	}
	if v.Cliente != nil && v.Cliente.ID != 0 {
		id := v.Cliente.ID
		out.ClienteID = &id
	}
	if v.DataVenda.IsZero() {
		out.DataVenda = NewLocalDate(hoje)
	} else {
		out.DataVenda = NewLocalDate(v.DataVenda)
	}
	for _, it := range itens {
		out.Itens = append(out.Itens, ItemVendaCreateDTO{ProdutoID: it.ProdutoID, Quantidade: it.Quantidade})
	}
	return out
}

// CreateDTOToVenda é o caminho inverso, usado para reapresentar a venda enviada.
func CreateDTOToVenda(d VendaCreateDTO) (domain.Venda, []domain.ItemVendaInput) {
	v := domain.Venda{
		ValorTotal: d.ValorTotal,
		Desconto:   d.Desconto,
		ValorPago:  d.ValorPago,
		DataVenda:  d.DataVenda.Time,
	}
	if d.ClienteID != nil {
		v.Cliente = &domain.Cliente{ID: *d.ClienteID}
	}
	itens := make([]domain.ItemVendaInput, 0, len(d.Itens))
	for _, it := range d.Itens {
		itens = append(itens, domain.ItemVendaInput{ProdutoID: it.ProdutoID, Quantidade: it.Quantidade})
	}
	return v, itens
}

func AbrirCaixaToRequestDTO(in domain.AbrirCaixaInput) CaixaRequestDTO {
	out := CaixaRequestDTO{ValorInicial: decimal.Zero}
	if in.SaldoInicial != nil {
		out.ValorInicial = *in.SaldoInicial
	}
	return out
}

func MovimentacaoToCreateDTO(in domain.MovimentacaoInput) MovimentacaoCaixaCreateDTO {
	return MovimentacaoCaixaCreateDTO{
		CaixaID:   in.CaixaID,
		Tipo:      string(in.Tipo),
		Descricao: in.Descricao,
		Valor:     in.Valor,
	}
}
