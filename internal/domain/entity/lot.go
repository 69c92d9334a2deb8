package entity

import (
	"time"
)

// Status do lote de consignação.
const (
	LotStatusOpen         = "OPEN"          // recebendo consumos e transferências
	LotStatusInSettlement = "IN_SETTLEMENT" // acerto de contas aberto; mutações bloqueadas
	LotStatusPaid         = "PAID"          // nota financeira confirmada pelo financeiro
	LotStatusReturned     = "RETURNED"      // todos os itens devolvidos sem consumo
)

// Lot representa um lote de peças recebidas em consignação de um fornecedor.
// É o agregado raiz: itens e timeline não existem fora do lote e toda mutação
// passa por uma transação serializada por lote.
type Lot struct {
	ID           string // sequencial legível, ex. CSG-000042
	SupplierID   string // referência ao cadastro de fornecedores (externo)
	RegisteredBy string // usuário que registrou a entrada
	Status       string
	Items        []*Item
	Timeline     []*TimelineEntry
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FindItem localiza um item do lote pelo id.
func (l *Lot) FindItem(itemID string) *Item {
	for _, it := range l.Items {
		if it.ID == itemID {
			return it
		}
	}
	return nil
}

// AppendEvent anexa um registro imutável à timeline do lote.
func (l *Lot) AppendEvent(e *TimelineEntry) {
	e.LotID = l.ID
	l.Timeline = append(l.Timeline, e)
}
