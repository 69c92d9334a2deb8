package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do item consignado.
const (
	ItemStatusAvailable = "AVAILABLE" // em estoque, consumível
	ItemStatusConsumed  = "CONSUMED"  // quantidade zerada via consumo (terminal)
	ItemStatusReturned  = "RETURNED"  // devolvido ao fornecedor (terminal)
)

// Item é uma linha de peça/SKU dentro de um lote consignado.
//
// Invariantes: 0 <= CurrentQuantity <= OriginalQuantity;
// CONSUMED só é atingível com CurrentQuantity == 0 via consumo;
// RETURNED zera CurrentQuantity e grava ReturnedQuantity para que as
// unidades consumidas permaneçam deriváveis do estado persistido.
type Item struct {
	ID               string
	LotID            string
	Description      string
	Model            string // referência de modelo/aparelho (externo)
	OriginalQuantity int64  // imutável após a entrada
	CurrentQuantity  int64
	ReturnedQuantity int64 // unidades devolvidas no acerto (0 se nunca devolvido)
	UnitCost         decimal.Decimal
	StoreID          string // custódia atual (loja/filial)
	Status           string

	// Vínculo de consumo, preenchido quando a quantidade chega a zero.
	WorkOrderID  string
	TechnicianID string
	ConsumedAt   *time.Time

	// Metadados de devolução.
	ReturnedBy string
	ReturnedAt *time.Time
}

// ConsumedUnits deriva as unidades efetivamente consumidas do item.
// Unidades devolvidas não contam como consumo.
func (i *Item) ConsumedUnits() int64 {
	return i.OriginalQuantity - i.CurrentQuantity - i.ReturnedQuantity
}

// ConsumedValue valor consumido do item (custo unitário x unidades consumidas).
func (i *Item) ConsumedValue() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(i.ConsumedUnits()))
}

// TotalValue valor total original do item.
func (i *Item) TotalValue() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(i.OriginalQuantity))
}
