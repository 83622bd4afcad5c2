package clienteservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"marmitaria/internal/domain"
	"marmitaria/internal/pkg/logger"
	"marmitaria/internal/validation"
)

const (
	AvisoLiberandoCredito  = "Você está liberando crédito para um cliente com saldo zero ou negativo."
	AvisoBloqueandoCredito = "Você está bloqueando crédito de um cliente com saldo positivo."
)

// ClienteRepository define o contrato que o Serviço de Clientes espera do backend.
type ClienteRepository interface {
	GetAll(ctx context.Context) ([]domain.Cliente, error)
	GetByID(ctx context.Context, id int) (domain.Cliente, error)
	Create(ctx context.Context, in domain.ClienteInput) (domain.Cliente, error)
	Update(ctx context.Context, id int, in domain.ClienteInput) (domain.Cliente, error)
	Delete(ctx context.Context, id int) error
}

// Service contém a lógica da tela de clientes.
type Service struct {
	repo   ClienteRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Clientes.
func NewService(repo ClienteRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ResumoClientes alimenta os quatro cards da página.
type ResumoClientes struct {
	Total      int             `json:"total"`
	ComCredito int             `json:"comCredito"`
	SaldoTotal decimal.Decimal `json:"saldoTotal"`
	Devedores  int             `json:"devedores"`
}

type Pagina struct {
	domain.Pagina
	Clientes    []domain.Cliente `json:"clientes"`
	Resumo      ResumoClientes   `json:"resumo"`
	Selecionado *domain.Cliente  `json:"selecionado,omitempty"`
}

func Resumo(clientes []domain.Cliente) ResumoClientes {
	r := ResumoClientes{Total: len(clientes), SaldoTotal: decimal.Zero}
	for _, c := range clientes {
		if c.LimiteCredito {
			r.ComCredito++
		}
		if c.Devedor() {
			r.Devedores++
		}
		r.SaldoTotal = r.SaldoTotal.Add(c.Saldo)
	}
	return r
}

// Filtrar compara nome e endereço sem caixa; telefone é comparado literalmente.
func Filtrar(clientes []domain.Cliente, termo string) []domain.Cliente {
	if strings.TrimSpace(termo) == "" {
		return clientes
	}
	lower := strings.ToLower(termo)
	out := make([]domain.Cliente, 0, len(clientes))
	for _, c := range clientes {
		if strings.Contains(strings.ToLower(c.Nome), lower) ||
			strings.Contains(c.Telefone, termo) ||
			strings.Contains(strings.ToLower(c.Endereco), lower) {
			out = append(out, c)
		}
	}
	return out
}

// AvisoCredito devolve o alerta exibido ao mudar o flag de crédito, ou "" quando não há o que avisar.
func AvisoCredito(anterior, novo bool, saldo decimal.Decimal) string {
	switch {
	case novo && !anterior && !saldo.IsPositive():
		return AvisoLiberandoCredito
	case !novo && anterior && saldo.IsPositive():
		return AvisoBloqueandoCredito
	}
	return ""
}

// FormatarTelefone exibe celulares e fixos com DDD; outros formatos voltam como vieram.
func FormatarTelefone(telefone string) string {
	var b strings.Builder
	for _, r := range telefone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	d := b.String()
	switch len(d) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:7], d[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:6], d[6:])
	}
	return telefone
}

func (s *Service) CarregarPagina(ctx context.Context, busca string) (Pagina, error) {
	clientes, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao carregar clientes.", err)
		return Pagina{Pagina: domain.Pagina{Estado: domain.EstadoErro, Busca: busca}}, err
	}
	return Pagina{
		Pagina:   domain.Pagina{Estado: domain.EstadoCarregado, Busca: busca},
		Clientes: Filtrar(clientes, busca),
		Resumo:   Resumo(clientes),
	}, nil
}

func (s *Service) BuscarCliente(ctx context.Context, id int) (domain.Cliente, error) {
	return s.repo.GetByID(ctx, id)
}

// CriarCliente exige nome e telefone.
func (s *Service) CriarCliente(ctx context.Context, in domain.ClienteInput) (domain.Cliente, error) {
	if err := validation.Struct(in, "Nome e telefone são obrigatórios."); err != nil {
		s.logger.Warn("Cliente inválido.", map[string]interface{}{"error": err.Error()})
		return domain.Cliente{}, err
	}
	c, err := s.repo.Create(ctx, in)
	if err != nil {
		return domain.Cliente{}, err
	}
	s.logger.Info("Cliente cadastrado.", map[string]interface{}{"id": c.ID})
	return c, nil
}

func (s *Service) AtualizarCliente(ctx context.Context, id int, in domain.ClienteInput) (domain.Cliente, error) {
	if err := validation.Struct(in, "Nome e telefone são obrigatórios."); err != nil {
		return domain.Cliente{}, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) ExcluirCliente(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Cliente excluído.", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) Todos(ctx context.Context) ([]domain.Cliente, error) {
	return s.repo.GetAll(ctx)
}
