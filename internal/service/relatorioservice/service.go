// Package relatorioservice transforma os dados das telas em tabelas exportáveis.
package relatorioservice

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"marmitaria/internal/domain"
	apperror "marmitaria/internal/errors"
	"marmitaria/internal/pkg/dateutil"
	"marmitaria/internal/pkg/export"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/pkg/money"
	"marmitaria/internal/service/caixaservice"
	"marmitaria/internal/service/produtoservice"
	"marmitaria/internal/service/vendaservice"
)

// Recurso identifica o relatório pedido na URL.
type Recurso string

const (
	RecursoVendas   Recurso = "vendas"
	RecursoCaixa    Recurso = "caixa"
	RecursoInsumos  Recurso = "insumos"
	RecursoProdutos Recurso = "produtos"
	RecursoClientes Recurso = "clientes"
)

// Relatorio descreve um item da tela de relatórios.
type Relatorio struct {
	Recurso   Recurso `json:"recurso"`
	Titulo    string  `json:"titulo"`
	Descricao string  `json:"descricao"`
}

// Catalogo é a lista exibida na página, na ordem da navegação.
var Catalogo = []Relatorio{
	{RecursoVendas, "Vendas", "Todas as vendas com status de pagamento."},
	{RecursoCaixa, "Caixa", "Histórico de caixas com entradas, saídas e saldo."},
	{RecursoProdutos, "Produtos", "Produtos com estoque e preço de venda."},
	{RecursoInsumos, "Insumos", "Insumos com custo, estoque e validade."},
	{RecursoClientes, "Clientes", "Clientes com saldo e situação de crédito."},
}

type VendaRepository interface {
	GetAll(ctx context.Context) ([]domain.Venda, error)
}

type CaixaRepository interface {
	GetAll(ctx context.Context) ([]domain.Caixa, error)
}

type InsumoRepository interface {
	GetAll(ctx context.Context) ([]domain.Insumo, error)
}

type ProdutoRepository interface {
	GetAll(ctx context.Context) ([]domain.Produto, error)
}

type ClienteRepository interface {
	GetAll(ctx context.Context) ([]domain.Cliente, error)
}

type Service struct {
	vendas   VendaRepository
	caixas   CaixaRepository
	insumos  InsumoRepository
	produtos ProdutoRepository
	clientes ClienteRepository
	logger   logger.Logger
}

func NewService(vendas VendaRepository, caixas CaixaRepository, insumos InsumoRepository,
	produtos ProdutoRepository, clientes ClienteRepository, logger logger.Logger) *Service {
	return &Service{vendas: vendas, caixas: caixas, insumos: insumos, produtos: produtos, clientes: clientes, logger: logger}
}

type Pagina struct {
	domain.Pagina
	Relatorios []Relatorio `json:"relatorios"`
}

func (s *Service) CarregarPagina() Pagina {
	return Pagina{Pagina: domain.Pagina{Estado: domain.EstadoCarregado}, Relatorios: Catalogo}
}

// ParseRecurso valida o nome vindo da URL.
func ParseRecurso(s string) (Recurso, error) {
	for _, r := range Catalogo {
		if string(r.Recurso) == s {
			return r.Recurso, nil
		}
	}
	return "", apperror.NewNotFoundError(fmt.Sprintf("relatório '%s'", s))
}

// Gerar busca os dados do recurso e monta a tabela.
func (s *Service) Gerar(ctx context.Context, recurso Recurso) (export.Tabela, error) {
	var (
		t   export.Tabela
		err error
	)
	switch recurso {
	case RecursoVendas:
		var vendas []domain.Venda
		if vendas, err = s.vendas.GetAll(ctx); err == nil {
			t = TabelaVendas(vendas)
		}
	case RecursoCaixa:
		var caixas []domain.Caixa
		if caixas, err = s.caixas.GetAll(ctx); err == nil {
			t = TabelaCaixas(caixas)
		}
	case RecursoInsumos:
		var insumos []domain.Insumo
		if insumos, err = s.insumos.GetAll(ctx); err == nil {
			t = TabelaInsumos(insumos)
		}
	case RecursoProdutos:
		var produtos []domain.Produto
		if produtos, err = s.produtos.GetAll(ctx); err == nil {
			t = TabelaProdutos(produtos)
		}
	case RecursoClientes:
		var clientes []domain.Cliente
		if clientes, err = s.clientes.GetAll(ctx); err == nil {
			t = TabelaClientes(clientes)
		}
	default:
		return export.Tabela{}, apperror.NewNotFoundError(fmt.Sprintf("relatório '%s'", recurso))
	}
	if err != nil {
		s.logger.Error("Falha ao gerar relatório.", err)
		return export.Tabela{}, err
	}
	s.logger.Info("Relatório gerado.", map[string]interface{}{"recurso": recurso, "linhas": len(t.Linhas)})
	return t, nil
}

// --- Tabelas ---

func TabelaVendas(vendas []domain.Venda) export.Tabela {
	t := export.Tabela{
		Nome:       "Vendas",
		Cabecalhos: []string{"ID", "Data", "Cliente", "Itens", "Subtotal", "Desconto", "Total", "Valor Pago", "Status"},
	}
	for _, v := range vendas {
		l := vendaservice.Linha(v)
		cliente := "Cliente avulso"
		if v.Cliente != nil && v.Cliente.Nome != "" {
			cliente = v.Cliente.Nome
		}
		itens := make([]string, 0, len(v.Itens))
		for _, it := range v.Itens {
			itens = append(itens, fmt.Sprintf("%dx %s", it.Quantidade, it.Produto.Nome))
		}
		t.Linhas = append(t.Linhas, []string{
			strconv.Itoa(v.ID),
			dateutil.FormatToBrazilianDate(v.DataVenda),
			cliente,
			strings.Join(itens, ", "),
			money.FormatBRL(v.ValorTotal),
			money.FormatBRL(v.Desconto),
			money.FormatBRL(l.ValorFinal),
			money.FormatBRL(v.ValorPago),
			string(l.Status),
		})
	}
	return t
}

func TabelaCaixas(caixas []domain.Caixa) export.Tabela {
	t := export.Tabela{
		Nome:       "Caixa",
		Cabecalhos: []string{"ID", "Abertura", "Fechamento", "Status", "Saldo Inicial", "Entradas", "Saídas", "Saldo"},
	}
	for _, c := range caixas {
		fechamento := ""
		if c.DataFechamento != nil {
			fechamento = dateutil.FormatToBrazilianDateTime(*c.DataFechamento)
		}
		saldo := caixaservice.SaldoAtual(c)
		if c.SaldoFinal.Valid {
			saldo = c.SaldoFinal.Decimal
		}
		t.Linhas = append(t.Linhas, []string{
			strconv.Itoa(c.ID),
			dateutil.FormatToBrazilianDateTime(c.DataAbertura),
			fechamento,
			string(c.Status),
			money.FormatBRL(c.SaldoInicial),
			money.FormatBRL(caixaservice.TotalEntradas(c.Movimentacoes)),
			money.FormatBRL(caixaservice.TotalSaidas(c.Movimentacoes)),
			money.FormatBRL(saldo),
		})
	}
	return t
}

func TabelaInsumos(insumos []domain.Insumo) export.Tabela {
	t := export.Tabela{
		Nome:       "Insumos",
		Cabecalhos: []string{"ID", "Nome", "Tipo", "Quantidade", "Unidade", "Custo Unitário", "Valor em Estoque", "Validade"},
	}
	for _, i := range insumos {
		validade := ""
		if i.DataValidade != nil {
			validade = dateutil.FormatToBrazilianDate(*i.DataValidade)
		}
		t.Linhas = append(t.Linhas, []string{
			strconv.Itoa(i.ID),
			i.Nome,
			i.TipoInsumo.Tipo,
			money.FormatNumber(i.QuantidadeEstoque),
			i.UnidadeMedida.Abreviacao,
			money.FormatBRL(i.CustoUnitario),
			money.FormatBRL(i.CustoUnitario.Mul(i.QuantidadeEstoque)),
			validade,
		})
	}
	return t
}

func TabelaProdutos(produtos []domain.Produto) export.Tabela {
	t := export.Tabela{
		Nome:       "Produtos",
		Cabecalhos: []string{"ID", "Nome", "Tipo", "Estoque", "Estoque Mínimo", "Preço de Venda", "Status"},
	}
	for _, p := range produtos {
		l := produtoservice.Linha(p)
		t.Linhas = append(t.Linhas, []string{
			strconv.Itoa(p.ID),
			p.Nome,
			l.TipoNome,
			strconv.Itoa(p.QuantidadeEstoque),
			strconv.Itoa(p.EstoqueMinimo),
			money.FormatBRL(p.PrecoVenda),
			l.Status,
		})
	}
	return t
}

func TabelaClientes(clientes []domain.Cliente) export.Tabela {
	t := export.Tabela{
		Nome:       "Clientes",
		Cabecalhos: []string{"ID", "Nome", "Telefone", "Endereço", "Saldo", "Crédito"},
	}
	for _, c := range clientes {
		credito := "Bloqueado"
		if c.LimiteCredito {
			credito = "Liberado"
		}
		t.Linhas = append(t.Linhas, []string{
			strconv.Itoa(c.ID),
			c.Nome,
			c.Telefone,
			c.Endereco,
			money.FormatBRL(c.Saldo),
			credito,
		})
	}
	return t
}
