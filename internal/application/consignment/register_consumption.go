package consignment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/dto"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/consignment"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/repository"
)

// RegisterConsumptionUseCase é a superfície de integração chamada pelo
// subsistema de ordens de serviço quando o técnico marca uma peça como
// usada. Baixa a quantidade do item dentro da transação serializada do lote
// e, após o commit, notifica os assinantes do vínculo peça→lote.
type RegisterConsumptionUseCase struct {
	txRunner  TxRunner
	listeners []ConsumptionListener
}

// NewRegisterConsumptionUseCase constrói o caso de uso.
func NewRegisterConsumptionUseCase(txRunner TxRunner, listeners ...ConsumptionListener) *RegisterConsumptionUseCase {
	return &RegisterConsumptionUseCase{txRunner: txRunner, listeners: listeners}
}

// Subscribe registra um assinante adicional de consumos.
func (uc *RegisterConsumptionUseCase) Subscribe(l ConsumptionListener) {
	uc.listeners = append(uc.listeners, l)
}

// RegisterConsumption registra o consumo de quantityConsumed unidades do
// item contra uma ordem de serviço.
//
// Regras: quantidade > 0; item AVAILABLE; custódia igual à loja informada
// (senão ErrWrongLocation); lote OPEN (acerto aberto bloqueia consumo).
// Idempotente por (workOrderID, itemID): repetir a chamada com o item já
// zerado pela mesma ordem devolve o estado consumado em vez de erro, para
// tolerar retries do subsistema chamador.
func (uc *RegisterConsumptionUseCase) RegisterConsumption(ctx context.Context, lotID, itemID string, in dto.RegisterConsumptionRequest) (*entity.Item, error) {
	if in.Quantity <= 0 || in.WorkOrderID == "" || in.TechnicianID == "" || in.StoreID == "" {
		return nil, domain.ErrInvalidInput
	}
	at := time.Now()
	if in.At != nil && !in.At.IsZero() {
		at = *in.At
	}

	var (
		result *entity.Item
		evt    *ItemConsumedEvent
	)
	err := uc.txRunner.Run(ctx, lotID, func(lots repository.LotRepository) error {
		lot, err := lots.GetForUpdate(ctx, lotID)
		if err != nil {
			return err
		}
		item := lot.FindItem(itemID)
		if item == nil {
			return domain.ErrNotFound
		}

		// Retry da mesma ordem de serviço com o item já zerado: devolve o
		// estado existente sem novo decremento nem novo evento.
		if item.Status == entity.ItemStatusConsumed && item.WorkOrderID == in.WorkOrderID {
			result = item
			return nil
		}

		if lot.Status != entity.LotStatusOpen {
			return domain.ErrLotState
		}
		if item.Status == entity.ItemStatusAvailable && item.StoreID != in.StoreID {
			return domain.ErrWrongLocation
		}
		if err := consignment.Consume(item, in.Quantity, in.WorkOrderID, in.TechnicianID, at); err != nil {
			return err
		}
		lot.AppendEvent(&entity.TimelineEntry{
			ID:   uuid.New().String(),
			Kind: entity.EventConsumo,
			Description: fmt.Sprintf("Consumo de %d un. de %s (OS %s, técnico %s, loja %s); saldo %d",
				in.Quantity, item.Description, in.WorkOrderID, in.TechnicianID, in.StoreID, item.CurrentQuantity),
			Responsible: in.TechnicianID,
			CreatedAt:   at,
		})
		lot.UpdatedAt = at
		if err := lots.Save(ctx, lot); err != nil {
			return err
		}
		result = item
		evt = &ItemConsumedEvent{
			LotID:         lot.ID,
			ItemID:        item.ID,
			Description:   item.Description,
			Quantity:      in.Quantity,
			ConsumedValue: item.UnitCost.Mul(decimal.NewFromInt(in.Quantity)),
			WorkOrderID:   in.WorkOrderID,
			TechnicianID:  in.TechnicianID,
			StoreID:       in.StoreID,
			At:            at,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notificação fora da transação: assinantes nunca revertem um consumo.
	if evt != nil {
		for _, l := range uc.listeners {
			l.OnItemConsumed(*evt)
		}
	}
	return result, nil
}
