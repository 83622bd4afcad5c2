package produtoservice

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"marmitaria/internal/domain"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/validation"
)

const (
	StatusEstoqueBaixo = "Estoque Baixo"
	StatusEstoqueOK    = "Estoque OK"

	// fichasEmParalelo limita as buscas simultâneas de ficha técnica.
	fichasEmParalelo = 4
)

// ProdutoRepository define o contrato que o Serviço de Produtos espera do backend.
type ProdutoRepository interface {
	GetAll(ctx context.Context) ([]domain.Produto, error)
	GetByID(ctx context.Context, id int) (domain.Produto, error)
	Create(ctx context.Context, in domain.ProdutoInput) (domain.Produto, error)
	Update(ctx context.Context, id int, in domain.ProdutoInput) (domain.Produto, error)
	Delete(ctx context.Context, id int) error
	GetItensFicha(ctx context.Context, produtoID int) ([]domain.ItemFichaTecnica, error)
	AddItemFicha(ctx context.Context, produtoID int, in domain.ItemFichaInput) (domain.ItemFichaTecnica, error)
	DeleteItemFicha(ctx context.Context, itemID int) error
}

// InsumoRepository completa os itens de ficha que chegam só com o id do insumo.
type InsumoRepository interface {
	GetAll(ctx context.Context) ([]domain.Insumo, error)
}

// Service gerencia produtos e a ficha técnica (custo e margem).
type Service struct {
	repo    ProdutoRepository
	insumos InsumoRepository
	logger  logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Produtos.
func NewService(repo ProdutoRepository, insumos InsumoRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, insumos: insumos, logger: logger}
}

// LinhaProduto é o produto com os valores derivados exibidos na tabela.
type LinhaProduto struct {
	domain.Produto
	TipoNome     string           `json:"tipoNome"`
	CustoTotal   decimal.Decimal  `json:"custoTotal"`
	Margem       *decimal.Decimal `json:"margem"`
	Status       string           `json:"status"`
	EstoqueBaixo bool             `json:"estoqueBaixo"`
}

// ResumoProdutos são os cards do topo.
type ResumoProdutos struct {
	Total        int             `json:"total"`
	EstoqueBaixo int             `json:"estoqueBaixo"`
	PrecoMedio   decimal.Decimal `json:"precoMedio"`
}

// Pagina é tudo que a tela de produtos exibe.
type Pagina struct {
	domain.Pagina
	Produtos     []LinhaProduto       `json:"produtos"`
	Insumos      []domain.Insumo      `json:"insumos"`
	TiposProduto []domain.TipoProduto `json:"tiposProduto"`
	Resumo       ResumoProdutos       `json:"resumo"`
	Selecionado  *LinhaProduto        `json:"selecionado,omitempty"`
}

// --- Cálculos ---

// CustoTotal = soma de quantidade x custo unitário do insumo.
func CustoTotal(ficha []domain.ItemFichaTecnica) decimal.Decimal {
	total := decimal.Zero
	for _, item := range ficha {
		total = total.Add(item.Quantidade.Mul(item.Insumo.CustoUnitario))
	}
	return total
}

// Margem = (preço - custo) / preço x 100. Nil quando o preço é zero.
func Margem(preco, custo decimal.Decimal) *decimal.Decimal {
	if preco.IsZero() {
		return nil
	}
	m := preco.Sub(custo).Div(preco).Mul(decimal.NewFromInt(100))
	return &m
}

// StatusEstoque usa comparação estrita com o estoque mínimo.
func StatusEstoque(p domain.Produto) string {
	if p.EstoqueBaixo() {
		return StatusEstoqueBaixo
	}
	return StatusEstoqueOK
}

// Resumo conta produtos, estoques baixos e calcula o preço médio (zero sem produtos).
func Resumo(produtos []domain.Produto) ResumoProdutos {
	r := ResumoProdutos{Total: len(produtos), PrecoMedio: decimal.Zero}
	if len(produtos) == 0 {
		return r
	}
	soma := decimal.Zero
	for _, p := range produtos {
		if p.EstoqueBaixo() {
			r.EstoqueBaixo++
		}
		soma = soma.Add(p.PrecoVenda)
	}
	r.PrecoMedio = soma.Div(decimal.NewFromInt(int64(len(produtos))))
	return r
}

// Filtrar busca pelo nome do produto.
func Filtrar(produtos []domain.Produto, termo string) []domain.Produto {
	lower := strings.ToLower(strings.TrimSpace(termo))
	if lower == "" {
		return produtos
	}
	out := make([]domain.Produto, 0, len(produtos))
	for _, p := range produtos {
		if strings.Contains(strings.ToLower(p.Nome), lower) {
			out = append(out, p)
		}
	}
	return out
}

// EnriquecerFicha completa nome, custo e unidade dos itens que vieram só com o id do insumo.
func EnriquecerFicha(ficha []domain.ItemFichaTecnica, insumos []domain.Insumo) []domain.ItemFichaTecnica {
	porID := make(map[int]domain.Insumo, len(insumos))
	for _, i := range insumos {
		porID[i.ID] = i
	}
	out := make([]domain.ItemFichaTecnica, len(ficha))
	for idx, item := range ficha {
		if item.Insumo.Nome == "" {
			if ins, ok := porID[item.InsumoID]; ok {
				item.Insumo = domain.InsumoResumo{
					ID:            ins.ID,
					Nome:          ins.Nome,
					CustoUnitario: ins.CustoUnitario,
					Unidade:       ins.UnidadeMedida.Abreviacao,
				}
			}
		}
		out[idx] = item
	}
	return out
}

// Linha monta a linha da tabela de produtos.
func Linha(p domain.Produto) LinhaProduto {
	tipo := p.TipoProdutoNome
	if tipo == "" || tipo == "Sem tipo" {
		if nome := domain.NomeTipoProduto(p.TipoProdutoID); nome != "N/A" {
			tipo = nome
		}
	}
	custo := CustoTotal(p.FichaTecnica)
	return LinhaProduto{
		Produto:      p,
		TipoNome:     tipo,
		CustoTotal:   custo,
		Margem:       Margem(p.PrecoVenda, custo),
		Status:       StatusEstoque(p),
		EstoqueBaixo: p.EstoqueBaixo(),
	}
}

// --- Operações ---

// CarregarPagina busca produtos e insumos em paralelo e depois as fichas técnicas.
// A ficha é opcional: se o backend não responder, o produto aparece sem ficha.
func (s *Service) CarregarPagina(ctx context.Context, busca string) (Pagina, error) {
	var (
		produtos []domain.Produto
		insumos  []domain.Insumo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { produtos, err = s.repo.GetAll(gctx); return })
	g.Go(func() (err error) { insumos, err = s.insumos.GetAll(gctx); return })
	if err := g.Wait(); err != nil {
		s.logger.Error("Falha ao carregar página de produtos.", err)
		return Pagina{Pagina: domain.Pagina{Estado: domain.EstadoErro, Busca: busca}}, err
	}

	s.carregarFichas(ctx, produtos, insumos)

	filtrados := Filtrar(produtos, busca)
	linhas := make([]LinhaProduto, 0, len(filtrados))
	for _, p := range filtrados {
		linhas = append(linhas, Linha(p))
	}
	return Pagina{
		Pagina:       domain.Pagina{Estado: domain.EstadoCarregado, Busca: busca},
		Produtos:     linhas,
		Insumos:      insumos,
		TiposProduto: domain.TiposProduto,
		Resumo:       Resumo(produtos),
	}, nil
}

func (s *Service) carregarFichas(ctx context.Context, produtos []domain.Produto, insumos []domain.Insumo) {
	var g errgroup.Group
	g.SetLimit(fichasEmParalelo)
	for i := range produtos {
		i := i
		g.Go(func() error {
			ficha, err := s.repo.GetItensFicha(ctx, produtos[i].ID)
			if err != nil {
				s.logger.Warn("Ficha técnica indisponível.", map[string]interface{}{"produtoId": produtos[i].ID, "error": err.Error()})
				return nil
			}
			produtos[i].FichaTecnica = EnriquecerFicha(ficha, insumos)
			return nil
		})
	}
	_ = g.Wait()
}

// BuscarProduto devolve o produto com a ficha técnica completa.
func (s *Service) BuscarProduto(ctx context.Context, id int) (LinhaProduto, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return LinhaProduto{}, err
	}
	ficha, err := s.repo.GetItensFicha(ctx, id)
	if err != nil {
		s.logger.Warn("Ficha técnica indisponível.", map[string]interface{}{"produtoId": id, "error": err.Error()})
		return Linha(p), nil
	}
	insumos, err := s.insumos.GetAll(ctx)
	if err != nil {
		return LinhaProduto{}, err
	}
	p.FichaTecnica = EnriquecerFicha(ficha, insumos)
	return Linha(p), nil
}

// CriarProduto valida nome, tipo e preço e cria o produto.
func (s *Service) CriarProduto(ctx context.Context, in domain.ProdutoInput) (domain.Produto, error) {
	if err := validation.Struct(in, "Preencha nome, tipo e preço de venda."); err != nil {
		s.logger.Warn("Produto inválido.", map[string]interface{}{"error": err.Error()})
		return domain.Produto{}, err
	}
	p, err := s.repo.Create(ctx, in)
	if err != nil {
		return domain.Produto{}, err
	}
	s.logger.Info("Produto criado com sucesso.", map[string]interface{}{"id": p.ID, "nome": in.Nome})
	return p, nil
}

// AtualizarProduto valida e atualiza o produto.
func (s *Service) AtualizarProduto(ctx context.Context, id int, in domain.ProdutoInput) (domain.Produto, error) {
	if err := validation.Struct(in, "Preencha nome, tipo e preço de venda."); err != nil {
		return domain.Produto{}, err
	}
	return s.repo.Update(ctx, id, in)
}

// ExcluirProduto remove o produto.
func (s *Service) ExcluirProduto(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// AdicionarItemFicha inclui um insumo na receita do produto.
func (s *Service) AdicionarItemFicha(ctx context.Context, produtoID int, in domain.ItemFichaInput) (domain.ItemFichaTecnica, error) {
	if err := validation.Struct(in, "Selecione o insumo e informe a quantidade."); err != nil {
		return domain.ItemFichaTecnica{}, err
	}
	return s.repo.AddItemFicha(ctx, produtoID, in)
}

// RemoverItemFicha tira um insumo da receita.
func (s *Service) RemoverItemFicha(ctx context.Context, itemID int) error {
	return s.repo.DeleteItemFicha(ctx, itemID)
}

// Todos devolve todos os produtos (dashboard e relatórios).
func (s *Service) Todos(ctx context.Context) ([]domain.Produto, error) {
	return s.repo.GetAll(ctx)
}
