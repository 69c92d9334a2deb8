// Package events mantém o vínculo peça→lote consumido fora do núcleo: um
// assinante em memória indexa os consumos por ordem de serviço para que os
// módulos externos (assistência, relatórios) atribuam a peça usada à sua
// origem consignada sem dependência de compilação com o motor.
package events

import (
	"sync"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/consignment"
)

// Verificação de conformidade com a porta de assinatura.
var _ consignment.ConsumptionListener = (*ConsumptionLedger)(nil)

// ConsumptionLedger registra todos os eventos de consumo recebidos, na ordem
// de chegada, indexados por ordem de serviço.
type ConsumptionLedger struct {
	mu          sync.RWMutex
	all         []consignment.ItemConsumedEvent
	byWorkOrder map[string][]consignment.ItemConsumedEvent
}

// NewConsumptionLedger cria o ledger vazio.
func NewConsumptionLedger() *ConsumptionLedger {
	return &ConsumptionLedger{byWorkOrder: make(map[string][]consignment.ItemConsumedEvent)}
}

// OnItemConsumed anexa o evento. Nunca falha nem bloqueia o produtor: é
// notificação unidirecional pós-commit.
func (l *ConsumptionLedger) OnItemConsumed(evt consignment.ItemConsumedEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.all = append(l.all, evt)
	l.byWorkOrder[evt.WorkOrderID] = append(l.byWorkOrder[evt.WorkOrderID], evt)
}

// ByWorkOrder consumos consignados atribuídos à ordem de serviço.
func (l *ConsumptionLedger) ByWorkOrder(workOrderID string) []consignment.ItemConsumedEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]consignment.ItemConsumedEvent, len(l.byWorkOrder[workOrderID]))
	copy(out, l.byWorkOrder[workOrderID])
	return out
}

// All snapshot de todos os consumos registrados.
func (l *ConsumptionLedger) All() []consignment.ItemConsumedEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]consignment.ItemConsumedEvent, len(l.all))
	copy(out, l.all)
	return out
}
