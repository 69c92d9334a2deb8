package consignment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/dto"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/consignment"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/repository"
)

// TransferItemUseCase move a custódia de um item entre lojas sem alterar
// propriedade, quantidade nem status de consumo.
//
// O modelo não suporta custódia dividida de quantidade parcial entre duas
// lojas: a transferência move sempre o saldo inteiro restante. Pedidos de
// quantidade parcial são aceitos desde que não excedam o saldo, e movem o
// saldo todo (simplificação documentada, não bug).
type TransferItemUseCase struct {
	txRunner TxRunner
}

// NewTransferItemUseCase constrói o caso de uso.
func NewTransferItemUseCase(txRunner TxRunner) *TransferItemUseCase {
	return &TransferItemUseCase{txRunner: txRunner}
}

// TransferItem valida e aplica a transferência, anexando o evento na timeline.
func (uc *TransferItemUseCase) TransferItem(ctx context.Context, lotID, itemID, responsibleUser string, in dto.TransferItemRequest) (*entity.Item, error) {
	if in.FromStoreID == "" || in.ToStoreID == "" || responsibleUser == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()

	var result *entity.Item
	err := uc.txRunner.Run(ctx, lotID, func(lots repository.LotRepository) error {
		lot, err := lots.GetForUpdate(ctx, lotID)
		if err != nil {
			return err
		}
		if lot.Status != entity.LotStatusOpen {
			return domain.ErrLotState
		}
		item := lot.FindItem(itemID)
		if item == nil {
			return domain.ErrNotFound
		}
		if in.Quantity <= 0 || in.Quantity > item.CurrentQuantity {
			return domain.ErrInsufficientQuantity
		}
		if err := consignment.Transfer(item, in.FromStoreID, in.ToStoreID); err != nil {
			return err
		}
		lot.AppendEvent(&entity.TimelineEntry{
			ID:   uuid.New().String(),
			Kind: entity.EventTransferencia,
			Description: fmt.Sprintf("Transferência de %s (%d un.) da loja %s para a loja %s",
				item.Description, item.CurrentQuantity, in.FromStoreID, in.ToStoreID),
			Responsible: responsibleUser,
			CreatedAt:   now,
		})
		lot.UpdatedAt = now
		if err := lots.Save(ctx, lot); err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
