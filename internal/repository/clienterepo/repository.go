package clienterepo

import (
	"context"
	"fmt"
	"net/http"

	"marmitaria/internal/domain"
	"marmitaria/internal/dto"
	apperror "marmitaria/internal/errors"
	"marmitaria/internal/pkg/apiclient"
	"marmitaria/internal/pkg/logger"
)

// ClienteRepository implementa o CRUD de clientes sobre o backend REST.
type ClienteRepository struct {
	client *apiclient.Client
	logger logger.Logger
}

// NewClienteRepository cria e retorna uma nova instância do Repositório de Clientes.
func NewClienteRepository(client *apiclient.Client, logger logger.Logger) *ClienteRepository {
	return &ClienteRepository{client: client, logger: logger}
}

func (r *ClienteRepository) GetAll(ctx context.Context) ([]domain.Cliente, error) {
	var dtos []dto.ClienteDTO
	if err := r.client.Get(ctx, "/clientes", &dtos); err != nil {
		r.logger.Error("Falha ao buscar clientes no backend.", err)
		return nil, err
	}
	clientes := make([]domain.Cliente, 0, len(dtos))
	for _, d := range dtos {
		clientes = append(clientes, dto.ClienteToDomain(d))
	}
	return clientes, nil
}

func (r *ClienteRepository) GetByID(ctx context.Context, id int) (domain.Cliente, error) {
	var d dto.ClienteDTO
	if err := r.client.Get(ctx, fmt.Sprintf("/clientes/%d", id), &d); err != nil {
		if apperror.IsApiStatus(err, http.StatusNotFound) {
			return domain.Cliente{}, apperror.NewNotFoundError(fmt.Sprintf("Cliente com ID %d", id))
		}
		return domain.Cliente{}, err
	}
	return dto.ClienteToDomain(d), nil
}

func (r *ClienteRepository) Create(ctx context.Context, in domain.ClienteInput) (domain.Cliente, error) {
	var d dto.ClienteDTO
	if err := r.client.Post(ctx, "/clientes", dto.ClienteToCreateDTO(in), &d); err != nil {
		r.logger.Error("Falha ao criar cliente no backend.", err)
		return domain.Cliente{}, err
	}
	r.logger.Info("Cliente criado.", map[string]interface{}{"id": d.ID, "nome": d.Nome})
	return dto.ClienteToDomain(d), nil
}

func (r *ClienteRepository) Update(ctx context.Context, id int, in domain.ClienteInput) (domain.Cliente, error) {
	var d dto.ClienteDTO
	if err := r.client.Put(ctx, fmt.Sprintf("/clientes/%d", id), dto.ClienteToCreateDTO(in), &d); err != nil {
		r.logger.Error("Falha ao atualizar cliente no backend.", err)
		return domain.Cliente{}, err
	}
	return dto.ClienteToDomain(d), nil
}

func (r *ClienteRepository) Delete(ctx context.Context, id int) error {
	if err := r.client.Delete(ctx, fmt.Sprintf("/clientes/%d", id)); err != nil {
		r.logger.Error("Falha ao excluir cliente no backend.", err)
		return err
	}
	return nil
}
