// Package dashboardservice monta a visão geral do dia: vendas, caixa, clientes e alertas de estoque.
package dashboardservice

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"marmitaria/internal/domain"
	"marmitaria/internal/pkg/dateutil"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/service/caixaservice"
	"marmitaria/internal/service/insumoservice"
	"marmitaria/internal/service/vendaservice"
)

const (
	// JanelaVencimento é o horizonte do alerta de validade.
	JanelaVencimento = 7 * 24 * time.Hour
	// DiasUrgente marca o alerta de validade em vermelho.
	DiasUrgente = 2
)

var cem = decimal.NewFromInt(100)

type VendaRepository interface {
	GetAll(ctx context.Context) ([]domain.Venda, error)
}

type ProdutoRepository interface {
	GetAll(ctx context.Context) ([]domain.Produto, error)
}

type InsumoRepository interface {
	GetAll(ctx context.Context) ([]domain.Insumo, error)
}

type ClienteRepository interface {
	GetAll(ctx context.Context) ([]domain.Cliente, error)
}

type CaixaRepository interface {
	GetAberto(ctx context.Context) (*domain.Caixa, error)
}

// Service agrega os dados de todas as telas para o dashboard.
type Service struct {
	vendas   VendaRepository
	produtos ProdutoRepository
	insumos  InsumoRepository
	clientes ClienteRepository
	caixa    CaixaRepository
	logger   logger.Logger
	now      func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Dashboard.
func NewService(vendas VendaRepository, produtos ProdutoRepository, insumos InsumoRepository,
	clientes ClienteRepository, caixa CaixaRepository, logger logger.Logger) *Service {
	return &Service{
		vendas:   vendas,
		produtos: produtos,
		insumos:  insumos,
		clientes: clientes,
		caixa:    caixa,
		logger:   logger,
		now:      time.Now,
	}
}

// ComRelogio troca a fonte de "agora" (testes).
func (s *Service) ComRelogio(now func() time.Time) *Service {
	s.now = now
	return s
}

// InsumoVencendo é uma linha do alerta de validade.
type InsumoVencendo struct {
	domain.Insumo
	Dias    int  `json:"dias"`
	Urgente bool `json:"urgente"`
}

// Resumo são os cards e listas do dashboard.
type Resumo struct {
	Data                 time.Time        `json:"data"`
	TotalVendasDia       decimal.Decimal  `json:"totalVendasDia"`
	TotalVendasOntem     decimal.Decimal  `json:"totalVendasOntem"`
	Crescimento          *decimal.Decimal `json:"crescimento"`
	NumeroVendas         int              `json:"numeroVendas"`
	CaixaAberto          bool             `json:"caixaAberto"`
	SaldoCaixa           decimal.Decimal  `json:"saldoCaixa"`
	ClientesCredito      int              `json:"clientesCredito"`
	ProdutosEstoqueBaixo []domain.Produto `json:"produtosEstoqueBaixo"`
	InsumosEstoqueBaixo  []domain.Insumo  `json:"insumosEstoqueBaixo"`
	InsumosVencimento    []InsumoVencendo `json:"insumosVencimento"`
}

type Pagina struct {
	domain.Pagina
	Resumo Resumo `json:"resumo"`
}

// --- Cálculos ---

// CrescimentoPercentual compara hoje com ontem. Sem vendas ontem: 100% se houve venda hoje,
// nil (sem comparação) se também não houve.
func CrescimentoPercentual(hoje, ontem decimal.Decimal) *decimal.Decimal {
	if ontem.IsZero() {
		if hoje.IsZero() {
			return nil
		}
		v := cem
		return &v
	}
	v := hoje.Sub(ontem).Div(ontem).Mul(cem).Round(1)
	return &v
}

// TotalVendasDoDia soma o valor final (total - desconto) das vendas do dia de ref.
func TotalVendasDoDia(vendas []domain.Venda, ref time.Time) (decimal.Decimal, int) {
	total, n := decimal.Zero, 0
	for _, v := range vendas {
		if !dateutil.SameDay(v.DataVenda, ref) {
			continue
		}
		total = total.Add(vendaservice.CalcularTotal(v.ValorTotal, v.Desconto))
		n++
	}
	return total, n
}

// ProdutosEstoqueBaixo usa a regra estrita do produto.
func ProdutosEstoqueBaixo(produtos []domain.Produto) []domain.Produto {
	out := make([]domain.Produto, 0)
	for _, p := range produtos {
		if p.EstoqueBaixo() {
			out = append(out, p)
		}
	}
	return out
}

func InsumosEstoqueBaixo(insumos []domain.Insumo) []domain.Insumo {
	return insumoservice.FiltrarEstoqueBaixo(insumos)
}

// DiasParaVencer arredonda para cima: vencer amanhã de manhã conta como 1 dia.
func DiasParaVencer(validade, agora time.Time) int {
	return int(math.Ceil(validade.Sub(agora).Hours() / 24))
}

func Urgente(dias int) bool { return dias <= DiasUrgente }

// InsumosProximosVencimento devolve os insumos com validade entre agora e agora+7 dias,
// do mais próximo ao mais distante. A validade é meia-noite local, então um insumo
// que vence hoje já fica de fora depois da meia-noite.
func InsumosProximosVencimento(insumos []domain.Insumo, agora time.Time) []InsumoVencendo {
	limite := agora.Add(JanelaVencimento)

	out := make([]InsumoVencendo, 0)
	for _, i := range insumos {
		if i.DataValidade == nil {
			continue
		}
		v := *i.DataValidade
		if v.Before(agora) || v.After(limite) {
			continue
		}
		dias := DiasParaVencer(v, agora)
		out = append(out, InsumoVencendo{Insumo: i, Dias: dias, Urgente: Urgente(dias)})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].DataValidade.Before(*out[b].DataValidade)
	})
	return out
}

// Montar calcula o resumo a partir dos dados já carregados.
func Montar(agora time.Time, vendas []domain.Venda, produtos []domain.Produto, insumos []domain.Insumo,
	clientes []domain.Cliente, caixa *domain.Caixa) Resumo {
	hoje, n := TotalVendasDoDia(vendas, agora)
	ontem, _ := TotalVendasDoDia(vendas, agora.AddDate(0, 0, -1))

	r := Resumo{
		Data:                 agora,
		TotalVendasDia:       hoje,
		TotalVendasOntem:     ontem,
		Crescimento:          CrescimentoPercentual(hoje, ontem),
		NumeroVendas:         n,
		SaldoCaixa:           decimal.Zero,
		ProdutosEstoqueBaixo: ProdutosEstoqueBaixo(produtos),
		InsumosEstoqueBaixo:  InsumosEstoqueBaixo(insumos),
		InsumosVencimento:    InsumosProximosVencimento(insumos, agora),
	}
	if caixa != nil {
		r.CaixaAberto = true
		r.SaldoCaixa = caixaservice.SaldoAtual(*caixa)
	}
	for _, c := range clientes {
		if c.LimiteCredito {
			r.ClientesCredito++
		}
	}
	return r
}

// --- Operações ---

// CarregarPagina busca tudo em paralelo. Só o caixa aberto é opcional.
func (s *Service) CarregarPagina(ctx context.Context) (Pagina, error) {
	var (
		vendas   []domain.Venda
		produtos []domain.Produto
		insumos  []domain.Insumo
		clientes []domain.Cliente
		caixa    *domain.Caixa
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { vendas, err = s.vendas.GetAll(gctx); return })
	g.Go(func() (err error) { produtos, err = s.produtos.GetAll(gctx); return })
	g.Go(func() (err error) { insumos, err = s.insumos.GetAll(gctx); return })
	g.Go(func() (err error) { clientes, err = s.clientes.GetAll(gctx); return })
	g.Go(func() error {
		c, err := s.caixa.GetAberto(gctx)
		if err != nil {
			s.logger.Warn("Caixa aberto indisponível; seguindo sem caixa.", map[string]interface{}{"error": err.Error()})
			return nil
		}
		caixa = c
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Falha ao carregar o dashboard.", err)
		return Pagina{Pagina: domain.Pagina{Estado: domain.EstadoErro}}, err
	}

	return Pagina{
		Pagina: domain.Pagina{Estado: domain.EstadoCarregado},
		Resumo: Montar(s.now(), vendas, produtos, insumos, clientes, caixa),
	}, nil
}
