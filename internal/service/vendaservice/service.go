package vendaservice

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"marmitaria/internal/domain"
	apperror "marmitaria/internal/errors"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/validation"
)

// MsgCaixaFechado é exibida quando se tenta vender sem caixa aberto.
const MsgCaixaFechado = "É necessário abrir o caixa antes de realizar vendas. Acesse a página de Caixa para abrir um novo caixa."

// VendaRepository define o contrato que o Serviço de Vendas espera do backend.
type VendaRepository interface {
	GetAll(ctx context.Context) ([]domain.Venda, error)
	GetByID(ctx context.Context, id int) (domain.Venda, error)
	Create(ctx context.Context, venda domain.Venda, itens []domain.ItemVendaInput) (domain.Venda, error)
	Update(ctx context.Context, id int, venda domain.Venda, itens []domain.ItemVendaInput) (domain.Venda, error)
	Delete(ctx context.Context, id int) error
}

// ProdutoRepository fornece o catálogo para o cálculo do subtotal.
type ProdutoRepository interface {
	GetAll(ctx context.Context) ([]domain.Produto, error)
}

// ClienteRepository fornece a lista do seletor de cliente.
type ClienteRepository interface {
	GetAll(ctx context.Context) ([]domain.Cliente, error)
}

// CaixaRepository informa se há caixa aberto.
type CaixaRepository interface {
	GetAberto(ctx context.Context) (*domain.Caixa, error)
}

// Service registra vendas e calcula totais e status de pagamento.
type Service struct {
	repo     VendaRepository
	produtos ProdutoRepository
	clientes ClienteRepository
	caixa    CaixaRepository
	logger   logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Vendas.
func NewService(repo VendaRepository, produtos ProdutoRepository, clientes ClienteRepository, caixa CaixaRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, produtos: produtos, clientes: clientes, caixa: caixa, logger: logger}
}

// LinhaVenda é a venda como aparece na tabela.
type LinhaVenda struct {
	domain.Venda
	ValorFinal decimal.Decimal        `json:"valorFinal"`
	Status     domain.StatusPagamento `json:"status"`
}

// ResumoVendas são os cards do topo da página.
type ResumoVendas struct {
	Quantidade     int             `json:"quantidade"`
	SomaValorTotal decimal.Decimal `json:"somaValorTotal"`
	SomaValorPago  decimal.Decimal `json:"somaValorPago"`
	SomaDesconto   decimal.Decimal `json:"somaDesconto"`
}

// Pagina é tudo que a tela de vendas exibe.
type Pagina struct {
	domain.Pagina
	Vendas      []LinhaVenda     `json:"vendas"`
	Clientes    []domain.Cliente `json:"clientes"`
	Produtos    []domain.Produto `json:"produtos"`
	CaixaAberto bool             `json:"caixaAberto"`
	Resumo      ResumoVendas     `json:"resumo"`
	Selecionada *LinhaVenda      `json:"selecionada,omitempty"`
}

// --- Cálculos ---

// CalcularSubtotal soma preço x quantidade. Produto inexistente conta como zero.
func CalcularSubtotal(itens []domain.ItemVendaInput, produtos []domain.Produto) decimal.Decimal {
	precos := make(map[int]decimal.Decimal, len(produtos))
	for _, p := range produtos {
		precos[p.ID] = p.PrecoVenda
	}
	subtotal := decimal.Zero
	for _, it := range itens {
		if preco, ok := precos[it.ProdutoID]; ok {
			subtotal = subtotal.Add(preco.Mul(decimal.NewFromInt(int64(it.Quantidade))))
		}
	}
	return subtotal
}

// CalcularTotal aplica o desconto ao subtotal.
func CalcularTotal(subtotal, desconto decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(desconto)
}

// ResolverValorPago: valor não informado (zero) significa pagamento integral.
func ResolverValorPago(informado, total decimal.Decimal) decimal.Decimal {
	if informado.IsZero() {
		return total
	}
	return informado
}

// StatusPagamento é binário: Pago quando o valor pago cobre o total com desconto.
func StatusPagamento(v domain.Venda) domain.StatusPagamento {
	if v.ValorPago.GreaterThanOrEqual(v.ValorTotal.Sub(v.Desconto)) {
		return domain.Pago
	}
	return domain.Pendente
}

// Linha monta a linha da tabela com valor final e status.
func Linha(v domain.Venda) LinhaVenda {
	return LinhaVenda{Venda: v, ValorFinal: v.ValorTotal.Sub(v.Desconto), Status: StatusPagamento(v)}
}

// Resumo soma total, pago e desconto de todas as vendas.
func Resumo(vendas []domain.Venda) ResumoVendas {
	r := ResumoVendas{Quantidade: len(vendas), SomaValorTotal: decimal.Zero, SomaValorPago: decimal.Zero, SomaDesconto: decimal.Zero}
	for _, v := range vendas {
		r.SomaValorTotal = r.SomaValorTotal.Add(v.ValorTotal)
		r.SomaValorPago = r.SomaValorPago.Add(v.ValorPago)
		r.SomaDesconto = r.SomaDesconto.Add(v.Desconto)
	}
	return r
}

// Filtrar busca pelo nome do cliente ou pelo id da venda.
func Filtrar(vendas []domain.Venda, termo string) []domain.Venda {
	termo = strings.TrimSpace(termo)
	if termo == "" {
		return vendas
	}
	lower := strings.ToLower(termo)
	out := make([]domain.Venda, 0, len(vendas))
	for _, v := range vendas {
		if (v.Cliente != nil && strings.Contains(strings.ToLower(v.Cliente.Nome), lower)) ||
			strings.Contains(strconv.Itoa(v.ID), termo) {
			out = append(out, v)
		}
	}
	return out
}

// --- Operações ---

// CarregarPagina busca vendas, clientes, produtos e o caixa aberto em paralelo.
func (s *Service) CarregarPagina(ctx context.Context, busca string) (Pagina, error) {
	var (
		vendas   []domain.Venda
		clientes []domain.Cliente
		produtos []domain.Produto
		aberto   *domain.Caixa
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { vendas, err = s.repo.GetAll(gctx); return })
	g.Go(func() (err error) { clientes, err = s.clientes.GetAll(gctx); return })
	g.Go(func() (err error) { produtos, err = s.produtos.GetAll(gctx); return })
	g.Go(func() error {
		c, err := s.caixa.GetAberto(gctx)
		if err != nil {
			s.logger.Warn("Falha ao buscar caixa aberto; vendas bloqueadas.", map[string]interface{}{"error": err.Error()})
			return nil
		}
		aberto = c
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Falha ao carregar página de vendas.", err)
		return Pagina{Pagina: domain.Pagina{Estado: domain.EstadoErro, Busca: busca}}, err
	}

	filtradas := Filtrar(vendas, busca)
	linhas := make([]LinhaVenda, 0, len(filtradas))
	for _, v := range filtradas {
		linhas = append(linhas, Linha(v))
	}
	return Pagina{
		Pagina:      domain.Pagina{Estado: domain.EstadoCarregado, Busca: busca},
		Vendas:      linhas,
		Clientes:    clientes,
		Produtos:    produtos,
		CaixaAberto: aberto != nil,
		Resumo:      Resumo(vendas),
	}, nil
}

// BuscarVenda devolve a venda com status calculado (modal de visualização).
func (s *Service) BuscarVenda(ctx context.Context, id int) (LinhaVenda, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return LinhaVenda{}, err
	}
	return Linha(v), nil
}

// RegistrarVenda valida os itens, exige caixa aberto e envia a venda com os totais calculados.
func (s *Service) RegistrarVenda(ctx context.Context, in domain.VendaInput) (domain.Venda, error) {
	venda, err := s.montarVenda(ctx, in)
	if err != nil {
		return domain.Venda{}, err
	}

	aberto, err := s.caixa.GetAberto(ctx)
	if err != nil {
		s.logger.Error("Falha ao verificar caixa aberto.", err)
		return domain.Venda{}, err
	}
	if aberto == nil {
		s.logger.Warn("Tentativa de venda sem caixa aberto.", nil)
		return domain.Venda{}, apperror.NewConflictError(MsgCaixaFechado)
	}

	criada, err := s.repo.Create(ctx, venda, in.Itens)
	if err != nil {
		return domain.Venda{}, err
	}
	s.logger.Info("Venda registrada com sucesso.", map[string]interface{}{"id": criada.ID, "valorTotal": venda.ValorTotal.String()})
	return criada, nil
}

// AtualizarVenda recalcula os totais e envia a venda editada.
func (s *Service) AtualizarVenda(ctx context.Context, id int, in domain.VendaInput) (domain.Venda, error) {
	venda, err := s.montarVenda(ctx, in)
	if err != nil {
		return domain.Venda{}, err
	}
	return s.repo.Update(ctx, id, venda, in.Itens)
}

// ExcluirVenda remove a venda.
func (s *Service) ExcluirVenda(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// Todas devolve todas as vendas (dashboard e relatórios).
func (s *Service) Todas(ctx context.Context) ([]domain.Venda, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) montarVenda(ctx context.Context, in domain.VendaInput) (domain.Venda, error) {
	if err := validation.Struct(in, "Adicione pelo menos um produto com quantidade válida."); err != nil {
		s.logger.Warn("Venda inválida.", map[string]interface{}{"error": err.Error()})
		return domain.Venda{}, err
	}

	produtos, err := s.produtos.GetAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar produtos para a venda.", err)
		return domain.Venda{}, err
	}

	subtotal := CalcularSubtotal(in.Itens, produtos)
	total := CalcularTotal(subtotal, in.Desconto)
	venda := domain.Venda{
		ValorTotal: subtotal,
		Desconto:   in.Desconto,
		ValorPago:  ResolverValorPago(in.ValorPago, total),
		DataVenda:  in.DataVenda,
	}
	if in.ClienteID != nil && *in.ClienteID != 0 {
		venda.Cliente = &domain.Cliente{ID: *in.ClienteID}
	}
	return venda, nil
}
