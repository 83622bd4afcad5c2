package produtorepo

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

// ProdutoRepository implementa o CRUD de produtos e a ficha técnica sobre o backend REST.
// Produtos ficam em /products; os itens de ficha em /produtos/{id}/itens-ficha.
type ProdutoRepository struct {
	client *apiclient.Client
	logger logger.Logger
}

// NewProdutoRepository cria e retorna uma nova instância do Repositório de Produtos.
func NewProdutoRepository(client *apiclient.Client, logger logger.Logger) *ProdutoRepository {
	return &ProdutoRepository{client: client, logger: logger}
}

func (r *ProdutoRepository) GetAll(ctx context.Context) ([]domain.Produto, error) {
	var dtos []dto.ProdutoDTO
	if err := r.client.Get(ctx, "/products", &dtos); err != nil {
		r.logger.Error("Falha ao buscar produtos no backend.", err)
		return nil, err
	}
	produtos := make([]domain.Produto, 0, len(dtos))
	for _, d := range dtos {
		produtos = append(produtos, dto.ProdutoToDomain(d))
	}
	return produtos, nil
}

func (r *ProdutoRepository) GetByID(ctx context.Context, id int) (domain.Produto, error) {
	var d dto.ProdutoDTO
	if err := r.client.Get(ctx, fmt.Sprintf("/products/%d", id), &d); err != nil {
		if apperror.IsApiStatus(err, http.StatusNotFound) {
			return domain.Produto{}, apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %d", id))
		}
		return domain.Produto{}, err
	}
	return dto.ProdutoToDomain(d), nil
}

func (r *ProdutoRepository) Create(ctx context.Context, in domain.ProdutoInput) (domain.Produto, error) {
	var d dto.ProdutoDTO
	if err := r.client.Post(ctx, "/products", dto.ProdutoToCreateDTO(in), &d); err != nil {
		r.logger.Error("Falha ao criar produto no backend.", err)
		return domain.Produto{}, err
	}
	r.logger.Info("Produto criado.", map[string]interface{}{"id": d.ID, "nome": d.Nome, "revisao": d.Revisao})
	return dto.ProdutoToDomain(d), nil
}

func (r *ProdutoRepository) Update(ctx context.Context, id int, in domain.ProdutoInput) (domain.Produto, error) {
	var d dto.ProdutoDTO
	if err := r.client.Put(ctx, fmt.Sprintf("/products/%d", id), dto.ProdutoToCreateDTO(in), &d); err != nil {
		r.logger.Error("Falha ao atualizar produto no backend.", err)
		return domain.Produto{}, err
	}
	return dto.ProdutoToDomain(d), nil
}

func (r *ProdutoRepository) Delete(ctx context.Context, id int) error {
	if err := r.client.Delete(ctx, fmt.Sprintf("/products/%d", id)); err != nil {
		r.logger.Error("Falha ao excluir produto no backend.", err)
		return err
	}
	return nil
}

// GetItensFicha lista a ficha técnica do produto.
func (r *ProdutoRepository) GetItensFicha(ctx context.Context, produtoID int) ([]domain.ItemFichaTecnica, error) {
	var dtos []dto.ItemFichaDTO
	if err := r.client.Get(ctx, fmt.Sprintf("/produtos/%d/itens-ficha", produtoID), &dtos); err != nil {
		r.logger.Error("Falha ao buscar ficha técnica no backend.", err)
		return nil, err
	}
	itens := make([]domain.ItemFichaTecnica, 0, len(dtos))
	for _, d := range dtos {
		itens = append(itens, dto.ItemFichaToDomain(d))
	}
	return itens, nil
}

// AddItemFicha adiciona um insumo à ficha técnica.
func (r *ProdutoRepository) AddItemFicha(ctx context.Context, produtoID int, in domain.ItemFichaInput) (domain.ItemFichaTecnica, error) {
	var d dto.ItemFichaDTO
	if err := r.client.Post(ctx, fmt.Sprintf("/produtos/%d/itens-ficha", produtoID), dto.ItemFichaToCreateDTO(in), &d); err != nil {
		r.logger.Error("Falha ao adicionar item na ficha técnica.", err)
		return domain.ItemFichaTecnica{}, err
	}
	return dto.ItemFichaToDomain(d), nil
}

// DeleteItemFicha remove uma linha da ficha técnica.
func (r *ProdutoRepository) DeleteItemFicha(ctx context.Context, itemID int) error {
	if err := r.client.Delete(ctx, fmt.Sprintf("/itens-ficha/%d", itemID)); err != nil {
		r.logger.Error("Falha ao remover item da ficha técnica.", err)
		return err
	}
	return nil
}
