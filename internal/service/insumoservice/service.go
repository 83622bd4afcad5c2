package insumoservice

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"marmitaria/internal/domain"
	apperror "marmitaria/internal/errors"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/validation"
)

// LimiteEstoqueBaixo é o limite fixo de estoque crítico para insumos.
var LimiteEstoqueBaixo = decimal.NewFromInt(10)

// InsumoRepository define o contrato que o Serviço de Insumos espera do backend.
type InsumoRepository interface {
	GetAll(ctx context.Context) ([]domain.Insumo, error)
	GetByID(ctx context.Context, id int) (domain.Insumo, error)
	Create(ctx context.Context, in domain.InsumoInput) (domain.Insumo, error)
	Update(ctx context.Context, id int, in domain.InsumoInput) (domain.Insumo, error)
	Delete(ctx context.Context, id int) error
	DeleteWithFichaTecnica(ctx context.Context, id int) error
}

// ReferenciaRepository fornece as opções dos selects do formulário.
type ReferenciaRepository interface {
	GetTiposInsumo(ctx context.Context) ([]domain.TipoInsumo, error)
	GetUnidadesMedida(ctx context.Context) ([]domain.UnidadeMedida, error)
}

// Service gerencia o estoque de insumos e a exclusão em duas etapas.
type Service struct {
	repo        InsumoRepository
	referencias ReferenciaRepository
	logger      logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Insumos.
func NewService(repo InsumoRepository, referencias ReferenciaRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, referencias: referencias, logger: logger}
}

// ResumoInsumos são os cards do topo.
type ResumoInsumos struct {
	Total          int             `json:"total"`
	ValorEmEstoque decimal.Decimal `json:"valorEmEstoque"`
	Criticos       int             `json:"criticos"`
}

// Pagina é tudo que a tela de insumos exibe.
type Pagina struct {
	domain.Pagina
	Insumos        []domain.Insumo        `json:"insumos"`
	TiposInsumo    []domain.TipoInsumo    `json:"tiposInsumo"`
	UnidadesMedida []domain.UnidadeMedida `json:"unidadesMedida"`
	Resumo         ResumoInsumos          `json:"resumo"`
	Selecionado    *domain.Insumo         `json:"selecionado,omitempty"`
}

// --- Cálculos ---

// ValorEmEstoque = soma de custo unitário x quantidade.
func ValorEmEstoque(insumos []domain.Insumo) decimal.Decimal {
	total := decimal.Zero
	for _, i := range insumos {
		total = total.Add(i.CustoUnitario.Mul(i.QuantidadeEstoque))
	}
	return total
}

// EstoqueBaixo: quantidade abaixo de 10, seja qual for a unidade.
func EstoqueBaixo(i domain.Insumo) bool {
	return i.QuantidadeEstoque.LessThan(LimiteEstoqueBaixo)
}

// FiltrarEstoqueBaixo devolve os insumos críticos.
func FiltrarEstoqueBaixo(insumos []domain.Insumo) []domain.Insumo {
	out := make([]domain.Insumo, 0)
	for _, i := range insumos {
		if EstoqueBaixo(i) {
			out = append(out, i)
		}
	}
	return out
}

func Resumo(insumos []domain.Insumo) ResumoInsumos {
	return ResumoInsumos{
		Total:          len(insumos),
		ValorEmEstoque: ValorEmEstoque(insumos),
		Criticos:       len(FiltrarEstoqueBaixo(insumos)),
	}
}

// Filtrar busca pelo nome ou pelo tipo do insumo.
func Filtrar(insumos []domain.Insumo, termo string) []domain.Insumo {
	lower := strings.ToLower(strings.TrimSpace(termo))
	if lower == "" {
		return insumos
	}
	out := make([]domain.Insumo, 0, len(insumos))
	for _, i := range insumos {
		if strings.Contains(strings.ToLower(i.Nome), lower) ||
			strings.Contains(strings.ToLower(i.TipoInsumo.Tipo), lower) {
			out = append(out, i)
		}
	}
	return out
}

// ErroDeFichaTecnica reconhece a recusa do backend por o insumo estar numa ficha técnica.
// O backend não tem código de erro próprio para isso; a detecção é pelo texto.
func ErroDeFichaTecnica(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(apperror.UserMessage(err))
	return strings.Contains(msg, "ficha") || strings.Contains(msg, "técnica")
}

// --- Operações ---

// CarregarPagina busca insumos, tipos e unidades em paralelo.
// Tipos e unidades só alimentam os selects: falha neles não derruba a página.
func (s *Service) CarregarPagina(ctx context.Context, busca string) (Pagina, error) {
	var (
		insumos  []domain.Insumo
		tipos    []domain.TipoInsumo
		unidades []domain.UnidadeMedida
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { insumos, err = s.repo.GetAll(gctx); return })
	g.Go(func() error {
		t, err := s.referencias.GetTiposInsumo(gctx)
		if err != nil {
			s.logger.Warn("Tipos de insumo indisponíveis.", map[string]interface{}{"error": err.Error()})
			return nil
		}
		tipos = t
		return nil
	})
	g.Go(func() error {
		u, err := s.referencias.GetUnidadesMedida(gctx)
		if err != nil {
			s.logger.Warn("Unidades de medida indisponíveis.", map[string]interface{}{"error": err.Error()})
			return nil
		}
		unidades = u
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Falha ao carregar página de insumos.", err)
		return Pagina{Pagina: domain.Pagina{Estado: domain.EstadoErro, Busca: busca}}, err
	}

	return Pagina{
		Pagina:         domain.Pagina{Estado: domain.EstadoCarregado, Busca: busca},
		Insumos:        Filtrar(insumos, busca),
		TiposInsumo:    tipos,
		UnidadesMedida: unidades,
		Resumo:         Resumo(insumos),
	}, nil
}

func (s *Service) BuscarInsumo(ctx context.Context, id int) (domain.Insumo, error) {
	return s.repo.GetByID(ctx, id)
}

// CriarInsumo valida os campos obrigatórios e cria o insumo.
func (s *Service) CriarInsumo(ctx context.Context, in domain.InsumoInput) (domain.Insumo, error) {
	if err := validation.Struct(in, "Preencha todos os campos obrigatórios."); err != nil {
		s.logger.Warn("Insumo inválido.", map[string]interface{}{"error": err.Error()})
		return domain.Insumo{}, err
	}
	i, err := s.repo.Create(ctx, in)
	if err != nil {
		return domain.Insumo{}, err
	}
	s.logger.Info("Insumo criado com sucesso.", map[string]interface{}{"id": i.ID, "nome": in.Nome})
	return i, nil
}

func (s *Service) AtualizarInsumo(ctx context.Context, id int, in domain.InsumoInput) (domain.Insumo, error) {
	if err := validation.Struct(in, "Preencha todos os campos obrigatórios."); err != nil {
		return domain.Insumo{}, err
	}
	return s.repo.Update(ctx, id, in)
}

// ExcluirInsumo é a primeira etapa da exclusão. Quando o backend recusa por causa de
// ficha técnica, devolve requerForca=true junto com o erro, para o usuário confirmar.
func (s *Service) ExcluirInsumo(ctx context.Context, id int) (requerForca bool, err error) {
	err = s.repo.Delete(ctx, id)
	if err == nil {
		s.logger.Info("Insumo excluído.", map[string]interface{}{"id": id})
		return false, nil
	}
	if ErroDeFichaTecnica(err) {
		s.logger.Warn("Insumo usado em ficha técnica; exclusão exige confirmação.", map[string]interface{}{"id": id})
		return true, err
	}
	return false, err
}

// ForcarExclusao é a segunda etapa: remove o insumo e os itens de ficha que o usam.
func (s *Service) ForcarExclusao(ctx context.Context, id int) error {
	if err := s.repo.DeleteWithFichaTecnica(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Insumo excluído com as fichas técnicas.", map[string]interface{}{"id": id})
	return nil
}

// Todos devolve todos os insumos (dashboard e relatórios).
func (s *Service) Todos(ctx context.Context) ([]domain.Insumo, error) {
	return s.repo.GetAll(ctx)
}
