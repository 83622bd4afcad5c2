package caixarepo

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

// CaixaRepository implementa as operações de caixa sobre o backend REST.
type CaixaRepository struct {
	client *apiclient.Client
	logger logger.Logger
}

// NewCaixaRepository cria e retorna uma nova instância do Repositório de Caixa.
func NewCaixaRepository(client *apiclient.Client, logger logger.Logger) *CaixaRepository {
	return &CaixaRepository{client: client, logger: logger}
}

// GetAll busca o histórico de caixas.
func (r *CaixaRepository) GetAll(ctx context.Context) ([]domain.Caixa, error) {
	r.logger.Debug("Iniciando GetAll de caixas no repositório.", nil)

	var dtos []dto.CaixaResponseDTO
	if err := r.client.Get(ctx, "/caixa", &dtos); err != nil {
		r.logger.Error("Falha ao buscar caixas no backend.", err)
		return nil, err
	}

	caixas := make([]domain.Caixa, 0, len(dtos))
	for _, d := range dtos {
		caixas = append(caixas, dto.CaixaToDomain(d))
	}
	return caixas, nil
}

// GetByID busca um caixa com suas movimentações.
func (r *CaixaRepository) GetByID(ctx context.Context, id int) (domain.Caixa, error) {
	r.logger.Debug("Iniciando GetByID de caixa no repositório.", map[string]interface{}{"id": id})

	var d dto.CaixaResponseDTO
	if err := r.client.Get(ctx, fmt.Sprintf("/caixa/%d", id), &d); err != nil {
		if apperror.IsApiStatus(err, http.StatusNotFound) {
			return domain.Caixa{}, apperror.NewNotFoundError(fmt.Sprintf("Caixa com ID %d", id))
		}
		return domain.Caixa{}, err
	}
	return dto.CaixaToDomain(d), nil
}

// GetAberto devolve o caixa aberto ou nil quando não há nenhum (404 ou corpo vazio).
func (r *CaixaRepository) GetAberto(ctx context.Context) (*domain.Caixa, error) {
	var d dto.CaixaResponseDTO
	if err := r.client.Get(ctx, "/caixa/aberto", &d); err != nil {
		if apperror.IsApiStatus(err, http.StatusNotFound) {
			r.logger.Debug("Nenhum caixa aberto.", nil)
			return nil, nil
		}
		return nil, err
	}
	if d.ID == 0 {
		return nil, nil
	}
	c := dto.CaixaToDomain(d)
	return &c, nil
}

// Abrir abre um novo caixa com o saldo inicial informado.
func (r *CaixaRepository) Abrir(ctx context.Context, in domain.AbrirCaixaInput) (domain.Caixa, error) {
	var d dto.CaixaResponseDTO
	if err := r.client.Post(ctx, "/caixa/abrir", dto.AbrirCaixaToRequestDTO(in), &d); err != nil {
		r.logger.Error("Falha ao abrir caixa no backend.", err)
		return domain.Caixa{}, err
	}
	r.logger.Info("Caixa aberto.", map[string]interface{}{"id": d.ID})
	return dto.CaixaToDomain(d), nil
}

// Fechar encerra o caixa. O fechamento é terminal.
func (r *CaixaRepository) Fechar(ctx context.Context, id int) (domain.Caixa, error) {
	var d dto.CaixaResponseDTO
	if err := r.client.Put(ctx, fmt.Sprintf("/caixa/%d/fechar", id), nil, &d); err != nil {
		r.logger.Error("Falha ao fechar caixa no backend.", err)
		return domain.Caixa{}, err
	}
	r.logger.Info("Caixa fechado.", map[string]interface{}{"id": id})
	return dto.CaixaToDomain(d), nil
}

// AddMovimentacao registra uma entrada ou saída no caixa.
func (r *CaixaRepository) AddMovimentacao(ctx context.Context, in domain.MovimentacaoInput) (domain.Movimentacao, error) {
	var d dto.MovimentacaoCaixaDTO
	if err := r.client.Post(ctx, "/caixa/movimentacao", dto.MovimentacaoToCreateDTO(in), &d); err != nil {
		r.logger.Error("Falha ao registrar movimentação no backend.", err)
		return domain.Movimentacao{}, err
	}
	return dto.MovimentacaoToDomain(d), nil
}

// Delete remove um caixa.
func (r *CaixaRepository) Delete(ctx context.Context, id int) error {
	if err := r.client.Delete(ctx, fmt.Sprintf("/caixa/%d", id)); err != nil {
		r.logger.Error("Falha ao excluir caixa no backend.", err)
		return err
	}
	r.logger.Info("Caixa excluído.", map[string]interface{}{"id": id})
	return nil
}
