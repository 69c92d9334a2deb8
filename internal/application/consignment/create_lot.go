package consignment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/dto"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/repository"
)

// CreateLotUseCase registra a entrada de um lote consignado: gera o id
// sequencial, cria um item por linha com quantidade corrente igual à
// original e anexa o evento de entrada, tudo na mesma transação.
type CreateLotUseCase struct {
	txRunner TxRunner
}

// NewCreateLotUseCase constrói o caso de uso.
func NewCreateLotUseCase(txRunner TxRunner) *CreateLotUseCase {
	return &CreateLotUseCase{txRunner: txRunner}
}

// CreateLot valida e persiste o lote. Falha com ErrInvalidInput se não
// houver itens ou se alguma linha tiver quantidade ou custo não positivos.
func (uc *CreateLotUseCase) CreateLot(ctx context.Context, registeredBy string, in dto.CreateLotRequest) (*entity.Lot, error) {
	if in.SupplierID == "" || registeredBy == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Items {
		if line.Description == "" || line.DestinationStoreID == "" {
			return nil, domain.ErrInvalidInput
		}
		if line.Quantity <= 0 || !line.UnitCost.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	var lot *entity.Lot
	err := uc.txRunner.Run(ctx, "", func(lots repository.LotRepository) error {
		id, err := lots.NextID(ctx)
		if err != nil {
			return err
		}
		lot = &entity.Lot{
			ID:           id,
			SupplierID:   in.SupplierID,
			RegisteredBy: registeredBy,
			Status:       entity.LotStatusOpen,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		var totalUnits int64
		for _, line := range in.Items {
			lot.Items = append(lot.Items, &entity.Item{
				ID:               uuid.New().String(),
				LotID:            id,
				Description:      line.Description,
				Model:            line.Model,
				OriginalQuantity: line.Quantity,
				CurrentQuantity:  line.Quantity,
				UnitCost:         line.UnitCost,
				StoreID:          line.DestinationStoreID,
				Status:           entity.ItemStatusAvailable,
			})
			totalUnits += line.Quantity
		}
		lot.AppendEvent(&entity.TimelineEntry{
			ID:   uuid.New().String(),
			Kind: entity.EventEntrada,
			Description: fmt.Sprintf("Entrada em consignação: %d item(ns), %d unidade(s) do fornecedor %s",
				len(lot.Items), totalUnits, in.SupplierID),
			Responsible: registeredBy,
			CreatedAt:   now,
		})
		return lots.Create(ctx, lot)
	})
	if err != nil {
		return nil, err
	}
	return lot, nil
}
