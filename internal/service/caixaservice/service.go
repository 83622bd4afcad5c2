package caixaservice

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"marmitaria/internal/domain"
	"marmitaria/internal/pkg/dateutil"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/validation"
)

// CaixaRepository define o contrato que o Serviço de Caixa espera da camada de acesso ao backend.
type CaixaRepository interface {
	GetAll(ctx context.Context) ([]domain.Caixa, error)
	GetByID(ctx context.Context, id int) (domain.Caixa, error)
	GetAberto(ctx context.Context) (*domain.Caixa, error)
	Abrir(ctx context.Context, in domain.AbrirCaixaInput) (domain.Caixa, error)
	Fechar(ctx context.Context, id int) (domain.Caixa, error)
	AddMovimentacao(ctx context.Context, in domain.MovimentacaoInput) (domain.Movimentacao, error)
	Delete(ctx context.Context, id int) error
}

// Service concentra o livro-caixa: validações, saldos e a carga da página.
type Service struct {
	repo   CaixaRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Caixa.
func NewService(repo CaixaRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ResumoCaixas são os cards do histórico.
type ResumoCaixas struct {
	Total          int             `json:"total"`
	Abertos        int             `json:"abertos"`
	Fechados       int             `json:"fechados"`
	SomaSaldoFinal decimal.Decimal `json:"somaSaldoFinal"`
}

// Pagina é tudo que a tela de caixa exibe.
type Pagina struct {
	domain.Pagina
	Aberto        *domain.Caixa   `json:"aberto"`
	SaldoAtual    decimal.Decimal `json:"saldoAtual"`
	TotalEntradas decimal.Decimal `json:"totalEntradas"`
	TotalSaidas   decimal.Decimal `json:"totalSaidas"`
	Caixas        []domain.Caixa  `json:"caixas"`
	Resumo        ResumoCaixas    `json:"resumo"`
	Selecionado   *domain.Caixa   `json:"selecionado,omitempty"`
}

// --- Cálculos ---

// TotalEntradas soma as movimentações de entrada.
func TotalEntradas(movs []domain.Movimentacao) decimal.Decimal {
	return somaPorTipo(movs, domain.Entrada)
}

// TotalSaidas soma as movimentações de saída.
func TotalSaidas(movs []domain.Movimentacao) decimal.Decimal {
	return somaPorTipo(movs, domain.Saida)
}

func somaPorTipo(movs []domain.Movimentacao, tipo domain.TipoMovimentacao) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movs {
		if m.Tipo == tipo {
			total = total.Add(m.Valor)
		}
	}
	return total
}

// SaldoAtual = saldo inicial + entradas - saídas. Recalculado sempre a partir das movimentações.
func SaldoAtual(c domain.Caixa) decimal.Decimal {
	return c.SaldoInicial.Add(TotalEntradas(c.Movimentacoes)).Sub(TotalSaidas(c.Movimentacoes))
}

// Resumo conta abertos e fechados e soma os saldos finais (nulo conta como zero).
func Resumo(caixas []domain.Caixa) ResumoCaixas {
	r := ResumoCaixas{Total: len(caixas), SomaSaldoFinal: decimal.Zero}
	for _, c := range caixas {
		switch c.Status {
		case domain.CaixaAberto:
			r.Abertos++
		case domain.CaixaFechado:
			r.Fechados++
		}
		if c.SaldoFinal.Valid {
			r.SomaSaldoFinal = r.SomaSaldoFinal.Add(c.SaldoFinal.Decimal)
		}
	}
	return r
}

// Filtrar busca pelo id, pelo status ou pela data de abertura (dd/mm/aaaa).
func Filtrar(caixas []domain.Caixa, termo string) []domain.Caixa {
	termo = strings.TrimSpace(termo)
	if termo == "" {
		return caixas
	}
	lower := strings.ToLower(termo)

	out := make([]domain.Caixa, 0, len(caixas))
	for _, c := range caixas {
		if strings.Contains(strconv.Itoa(c.ID), termo) ||
			strings.Contains(strings.ToLower(string(c.Status)), lower) ||
			strings.Contains(dateutil.FormatToBrazilianDate(c.DataAbertura), termo) {
			out = append(out, c)
		}
	}
	return out
}

// --- Operações ---

// CarregarPagina busca o histórico e o caixa aberto em paralelo.
// Falha ao buscar o caixa aberto não derruba a página: vale como "nenhum aberto".
func (s *Service) CarregarPagina(ctx context.Context, busca string) (Pagina, error) {
	s.logger.Debug("Carregando página de caixa.", map[string]interface{}{"busca": busca})

	var (
		caixas []domain.Caixa
		aberto *domain.Caixa
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		caixas, err = s.repo.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		c, err := s.repo.GetAberto(gctx)
		if err != nil {
			s.logger.Warn("Falha ao buscar caixa aberto; seguindo sem caixa.", map[string]interface{}{"error": err.Error()})
			return nil
		}
		aberto = c
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Falha ao carregar página de caixa.", err)
		return Pagina{Pagina: domain.Pagina{Estado: domain.EstadoErro, Busca: busca}}, err
	}

	p := Pagina{
		Pagina:        domain.Pagina{Estado: domain.EstadoCarregado, Busca: busca},
		Aberto:        aberto,
		SaldoAtual:    decimal.Zero,
		TotalEntradas: decimal.Zero,
		TotalSaidas:   decimal.Zero,
		Caixas:        Filtrar(caixas, busca),
		Resumo:        Resumo(caixas),
	}
	if aberto != nil {
		p.SaldoAtual = SaldoAtual(*aberto)
		p.TotalEntradas = TotalEntradas(aberto.Movimentacoes)
		p.TotalSaidas = TotalSaidas(aberto.Movimentacoes)
	}
	return p, nil
}

// BuscarCaixa devolve o caixa com as movimentações (modal de visualização).
func (s *Service) BuscarCaixa(ctx context.Context, id int) (domain.Caixa, error) {
	return s.repo.GetByID(ctx, id)
}

// AbrirCaixa valida o saldo inicial (obrigatório, zero permitido) e abre o caixa.
func (s *Service) AbrirCaixa(ctx context.Context, in domain.AbrirCaixaInput) (domain.Caixa, error) {
	if err := validation.Struct(in, "Informe um saldo inicial válido."); err != nil {
		s.logger.Warn("Saldo inicial inválido.", map[string]interface{}{"error": err.Error()})
		return domain.Caixa{}, err
	}

	caixa, err := s.repo.Abrir(ctx, in)
	if err != nil {
		return domain.Caixa{}, err
	}
	s.logger.Info("Caixa aberto com sucesso.", map[string]interface{}{"id": caixa.ID, "saldoInicial": in.SaldoInicial.String()})
	return caixa, nil
}

// AdicionarMovimentacao valida e registra uma entrada/saída.
func (s *Service) AdicionarMovimentacao(ctx context.Context, in domain.MovimentacaoInput) (domain.Movimentacao, error) {
	if err := validation.Struct(in, "Preencha todos os campos corretamente."); err != nil {
		s.logger.Warn("Movimentação inválida.", map[string]interface{}{"error": err.Error()})
		return domain.Movimentacao{}, err
	}
	return s.repo.AddMovimentacao(ctx, in)
}

// FecharCaixa encerra o caixa. Não há reabertura.
func (s *Service) FecharCaixa(ctx context.Context, id int) (domain.Caixa, error) {
	caixa, err := s.repo.Fechar(ctx, id)
	if err != nil {
		return domain.Caixa{}, err
	}
	s.logger.Info("Caixa fechado com sucesso.", map[string]interface{}{"id": id})
	return caixa, nil
}

// ExcluirCaixa remove o caixa e suas movimentações.
func (s *Service) ExcluirCaixa(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// CaixaAberto é usado por outras telas (vendas, dashboard). Erros viram "nenhum aberto".
func (s *Service) CaixaAberto(ctx context.Context) *domain.Caixa {
	c, err := s.repo.GetAberto(ctx)
	if err != nil {
		s.logger.Warn("Falha ao buscar caixa aberto.", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return c
}

// Historico devolve todos os caixas (relatórios).
func (s *Service) Historico(ctx context.Context) ([]domain.Caixa, error) {
	return s.repo.GetAll(ctx)
}
