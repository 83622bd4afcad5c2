package vendarepo

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"marmitaria/internal/domain"
	"marmitaria/internal/dto"
	apperror "marmitaria/internal/errors"
	"marmitaria/internal/pkg/apiclient"
	"marmitaria/internal/pkg/logger"
)

// VendaRepository implementa o CRUD de vendas sobre o backend REST.
type VendaRepository struct {
	client *apiclient.Client
	logger logger.Logger
	now    func() time.Time
}

// NewVendaRepository cria e retorna uma nova instância do Repositório de Vendas.
func NewVendaRepository(client *apiclient.Client, logger logger.Logger) *VendaRepository {
	return &VendaRepository{client: client, logger: logger, now: time.Now}
}

func (r *VendaRepository) GetAll(ctx context.Context) ([]domain.Venda, error) {
	var dtos []dto.VendaDTO
	if err := r.client.Get(ctx, "/vendas", &dtos); err != nil {
		r.logger.Error("Falha ao buscar vendas no backend.", err)
		return nil, err
	}
	vendas := make([]domain.Venda, 0, len(dtos))
	for _, d := range dtos {
		vendas = append(vendas, dto.VendaToDomain(d))
	}
	return vendas, nil
}

func (r *VendaRepository) GetByID(ctx context.Context, id int) (domain.Venda, error) {
	var d dto.VendaDTO
	if err := r.client.Get(ctx, fmt.Sprintf("/vendas/%d", id), &d); err != nil {
		if apperror.IsApiStatus(err, http.StatusNotFound) {
			return domain.Venda{}, apperror.NewNotFoundError(fmt.Sprintf("Venda com ID %d", id))
		}
		return domain.Venda{}, err
	}
	return dto.VendaToDomain(d), nil
}

// Create registra a venda. Sem data, o backend recebe o dia de hoje.
func (r *VendaRepository) Create(ctx context.Context, venda domain.Venda, itens []domain.ItemVendaInput) (domain.Venda, error) {
	var d dto.VendaDTO
	if err := r.client.Post(ctx, "/vendas", dto.VendaToCreateDTO(venda, itens, r.now()), &d); err != nil {
		r.logger.Error("Falha ao registrar venda no backend.", err)
		return domain.Venda{}, err
	}
	r.logger.Info("Venda registrada.", map[string]interface{}{"id": d.ID, "valorTotal": d.ValorTotal.String()})
	return dto.VendaToDomain(d), nil
}

func (r *VendaRepository) Update(ctx context.Context, id int, venda domain.Venda, itens []domain.ItemVendaInput) (domain.Venda, error) {
	var d dto.VendaDTO
	if err := r.client.Put(ctx, fmt.Sprintf("/vendas/%d", id), dto.VendaToCreateDTO(venda, itens, r.now()), &d); err != nil {
		r.logger.Error("Falha ao atualizar venda no backend.", err)
		return domain.Venda{}, err
	}
	return dto.VendaToDomain(d), nil
}

func (r *VendaRepository) Delete(ctx context.Context, id int) error {
	if err := r.client.Delete(ctx, fmt.Sprintf("/vendas/%d", id)); err != nil {
		r.logger.Error("Falha ao excluir venda no backend.", err)
		return err
	}
	return nil
}
