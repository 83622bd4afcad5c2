// Package referenciarepo busca as tabelas de apoio do cadastro de insumos.
package referenciarepo

import (
	"context"

	"marmitaria/internal/domain"
	"marmitaria/internal/dto"
	"marmitaria/internal/pkg/apiclient"
	"marmitaria/internal/pkg/logger"
)

type ReferenciaRepository struct {
	client *apiclient.Client
	logger logger.Logger
}

func NewReferenciaRepository(client *apiclient.Client, logger logger.Logger) *ReferenciaRepository {
	return &ReferenciaRepository{client: client, logger: logger}
}

// GetTiposInsumo lista as categorias de insumo (GET /tipos-insumo).
func (r *ReferenciaRepository) GetTiposInsumo(ctx context.Context) ([]domain.TipoInsumo, error) {
	var dtos []dto.TipoInsumoDTO
	if err := r.client.Get(ctx, "/tipos-insumo", &dtos); err != nil {
		r.logger.Error("Falha ao buscar tipos de insumo.", err)
		return nil, err
	}
	tipos := make([]domain.TipoInsumo, 0, len(dtos))
	for _, d := range dtos {
		tipos = append(tipos, dto.TipoInsumoToDomain(d))
	}
	return tipos, nil
}

// GetUnidadesMedida lista as unidades de medida (GET /unidades-medida).
func (r *ReferenciaRepository) GetUnidadesMedida(ctx context.Context) ([]domain.UnidadeMedida, error) {
	var dtos []dto.UnidadeMedidaDTO
	if err := r.client.Get(ctx, "/unidades-medida", &dtos); err != nil {
		r.logger.Error("Falha ao buscar unidades de medida.", err)
		return nil, err
	}
	unidades := make([]domain.UnidadeMedida, 0, len(dtos))
	for _, d := range dtos {
		unidades = append(unidades, dto.UnidadeMedidaToDomain(d))
	}
	return unidades, nil
}
