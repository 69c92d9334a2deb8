// Package consignment concentra as regras de transição de estado e a
// valoração dos lotes consignados. É o único caminho de código autorizado a
// mudar status de item ou de lote; os casos de uso apenas orquestram.
package consignment

import (
	"time"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
)

// Consume baixa qty unidades do item por conta de uma ordem de serviço.
// Se a quantidade chegar a zero o item passa a CONSUMED e recebe o vínculo
// (ordem de serviço, técnico, momento). Consumos parciais mantêm AVAILABLE;
// a atribuição fica na timeline e no evento emitido pelo caso de uso.
func Consume(item *entity.Item, qty int64, workOrderID, technicianID string, at time.Time) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	if item.Status == entity.ItemStatusReturned {
		return domain.ErrItemNotAvailable
	}
	// Item zerado (CONSUMED) cai aqui: o chamador enxerga falta de saldo,
	// não indisponibilidade, e pode decidir entre reposição ou retry.
	if qty > item.CurrentQuantity {
		return domain.ErrInsufficientQuantity
	}
	item.CurrentQuantity -= qty
	if item.CurrentQuantity == 0 {
		item.Status = entity.ItemStatusConsumed
		item.WorkOrderID = workOrderID
		item.TechnicianID = technicianID
		t := at
		item.ConsumedAt = &t
	}
	return nil
}

// Return devolve ao fornecedor todas as unidades restantes do item.
// Exige saldo positivo; o saldo devolvido é preservado em ReturnedQuantity
// para que ConsumedUnits continue derivável do estado persistido.
func Return(item *entity.Item, returnedBy string, at time.Time) error {
	if item.Status != entity.ItemStatusAvailable {
		return domain.ErrItemNotAvailable
	}
	if item.CurrentQuantity <= 0 {
		return domain.ErrItemNotAvailable
	}
	item.ReturnedQuantity = item.CurrentQuantity
	item.CurrentQuantity = 0
	item.Status = entity.ItemStatusReturned
	item.ReturnedBy = returnedBy
	t := at
	item.ReturnedAt = &t
	return nil
}

// Transfer muda a custódia do item para outra loja. Não altera quantidade
// nem status; transferência parcial não é suportada: move sempre o saldo
// inteiro (simplificação documentada do modelo).
func Transfer(item *entity.Item, fromStoreID, toStoreID string) error {
	if item.Status != entity.ItemStatusAvailable {
		return domain.ErrItemNotAvailable
	}
	if item.StoreID != fromStoreID {
		return domain.ErrWrongLocation
	}
	if toStoreID == "" || toStoreID == fromStoreID {
		return domain.ErrInvalidInput
	}
	item.StoreID = toStoreID
	return nil
}

// BeginSettlement abre o acerto de contas do lote. Os itens mantêm seus
// status; o bloqueio de novos consumos/transferências é feito pelos casos de
// uso ao checar o status do lote.
func BeginSettlement(lot *entity.Lot) error {
	if lot.Status != entity.LotStatusOpen {
		return domain.ErrLotState
	}
	lot.Status = entity.LotStatusInSettlement
	return nil
}

// MarkPaid confirma o pagamento do acerto (callback do financeiro).
// Idempotente: lote já pago não é erro nem gera efeito.
func MarkPaid(lot *entity.Lot) error {
	if lot.Status == entity.LotStatusPaid {
		return nil
	}
	if lot.Status != entity.LotStatusInSettlement {
		return domain.ErrLotState
	}
	lot.Status = entity.LotStatusPaid
	return nil
}

// RefreshLotStatus deriva o terminal RETURNED: lote em acerto cujos itens
// foram todos devolvidos sem nenhuma unidade consumida.
func RefreshLotStatus(lot *entity.Lot) {
	if lot.Status != entity.LotStatusInSettlement {
		return
	}
	for _, it := range lot.Items {
		if it.Status != entity.ItemStatusReturned || it.ConsumedUnits() > 0 {
			return
		}
	}
	lot.Status = entity.LotStatusReturned
}
