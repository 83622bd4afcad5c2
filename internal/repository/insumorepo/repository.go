package insumorepo

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

// InsumoRepository implementa o CRUD de insumos sobre o backend REST.
type InsumoRepository struct {
	client *apiclient.Client
	logger logger.Logger
}

// NewInsumoRepository cria e retorna uma nova instância do Repositório de Insumos.
func NewInsumoRepository(client *apiclient.Client, logger logger.Logger) *InsumoRepository {
	return &InsumoRepository{client: client, logger: logger}
}

func (r *InsumoRepository) GetAll(ctx context.Context) ([]domain.Insumo, error) {
	var dtos []dto.InsumoDTO
	if err := r.client.Get(ctx, "/insumos", &dtos); err != nil {
		r.logger.Error("Falha ao buscar insumos no backend.", err)
		return nil, err
	}
	insumos := make([]domain.Insumo, 0, len(dtos))
	for _, d := range dtos {
		insumos = append(insumos, dto.InsumoToDomain(d))
	}
	return insumos, nil
}

func (r *InsumoRepository) GetByID(ctx context.Context, id int) (domain.Insumo, error) {
	var d dto.InsumoDTO
	if err := r.client.Get(ctx, fmt.Sprintf("/insumos/%d", id), &d); err != nil {
		if apperror.IsApiStatus(err, http.StatusNotFound) {
			return domain.Insumo{}, apperror.NewNotFoundError(fmt.Sprintf("Insumo com ID %d", id))
		}
		return domain.Insumo{}, err
	}
	return dto.InsumoToDomain(d), nil
}

func (r *InsumoRepository) Create(ctx context.Context, in domain.InsumoInput) (domain.Insumo, error) {
	var d dto.InsumoDTO
	if err := r.client.Post(ctx, "/insumos", dto.InsumoToCreateDTO(in), &d); err != nil {
		r.logger.Error("Falha ao criar insumo no backend.", err)
		return domain.Insumo{}, err
	}
	r.logger.Info("Insumo criado.", map[string]interface{}{"id": d.ID, "nome": d.Nome})
	return dto.InsumoToDomain(d), nil
}

func (r *InsumoRepository) Update(ctx context.Context, id int, in domain.InsumoInput) (domain.Insumo, error) {
	var d dto.InsumoDTO
	if err := r.client.Put(ctx, fmt.Sprintf("/insumos/%d", id), dto.InsumoToCreateDTO(in), &d); err != nil {
		r.logger.Error("Falha ao atualizar insumo no backend.", err)
		return domain.Insumo{}, err
	}
	return dto.InsumoToDomain(d), nil
}

// Delete tenta a exclusão simples; o backend recusa insumos usados em fichas técnicas.
func (r *InsumoRepository) Delete(ctx context.Context, id int) error {
	if err := r.client.Delete(ctx, fmt.Sprintf("/insumos/%d", id)); err != nil {
		r.logger.Warn("Backend recusou a exclusão do insumo.", map[string]interface{}{"id": id, "error": err.Error()})
		return err
	}
	return nil
}

// DeleteWithFichaTecnica força a exclusão, removendo o insumo das fichas técnicas.
func (r *InsumoRepository) DeleteWithFichaTecnica(ctx context.Context, id int) error {
	if err := r.client.Delete(ctx, fmt.Sprintf("/insumos/%d", id), apiclient.WithQuery("force", "true")); err != nil {
		r.logger.Error("Falha ao forçar exclusão do insumo.", err)
		return err
	}
	r.logger.Info("Insumo excluído com ficha técnica.", map[string]interface{}{"id": id})
	return nil
}
