package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/consignment"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
)

// CreateLotItemRequest linha de item no registro de entrada de lote.
type CreateLotItemRequest struct {
	Description        string          `json:"description"`
	Model              string          `json:"model,omitempty"`
	Quantity           int64           `json:"quantity"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	DestinationStoreID string          `json:"destination_store_id"`
}

// CreateLotRequest body para POST /api/consignments.
type CreateLotRequest struct {
	SupplierID string                 `json:"supplier_id"`
	Items      []CreateLotItemRequest `json:"items"`
}

// RegisterConsumptionRequest body para o endpoint de consumo, chamado pelo
// subsistema de ordens de serviço quando o técnico marca a peça como usada.
type RegisterConsumptionRequest struct {
	Quantity     int64      `json:"quantity"`
	WorkOrderID  string     `json:"work_order_id"`
	TechnicianID string     `json:"technician_id"`
	StoreID      string     `json:"store_id"`
	At           *time.Time `json:"at,omitempty"`
}

// TransferItemRequest body para transferência de custódia entre lojas.
type TransferItemRequest struct {
	FromStoreID string `json:"from_store_id"`
	ToStoreID   string `json:"to_store_id"`
	Quantity    int64  `json:"quantity"`
}

// GenerateNoteRequest detalhes de pagamento da nota financeira do acerto.
type GenerateNoteRequest struct {
	Method      string `json:"method"`
	BankAccount string `json:"bank_account,omitempty"`
	PayeeName   string `json:"payee_name,omitempty"`
	PixKey      string `json:"pix_key,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// ItemResponse projeção de item em respostas.
type ItemResponse struct {
	ID               string          `json:"id"`
	Description      string          `json:"description"`
	Model            string          `json:"model,omitempty"`
	OriginalQuantity int64           `json:"original_quantity"`
	CurrentQuantity  int64           `json:"current_quantity"`
	ReturnedQuantity int64           `json:"returned_quantity,omitempty"`
	ConsumedUnits    int64           `json:"consumed_units"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	StoreID          string          `json:"store_id"`
	Status           string          `json:"status"`
	WorkOrderID      string          `json:"work_order_id,omitempty"`
	TechnicianID     string          `json:"technician_id,omitempty"`
	ConsumedAt       *time.Time      `json:"consumed_at,omitempty"`
	ReturnedBy       string          `json:"returned_by,omitempty"`
	ReturnedAt       *time.Time      `json:"returned_at,omitempty"`
}

// TimelineEntryResponse projeção de evento da timeline.
type TimelineEntryResponse struct {
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	Responsible string    `json:"responsible"`
	CreatedAt   time.Time `json:"created_at"`
}

// LotResponse projeção completa do lote, com valores derivados na hora
// (nunca armazenados como totais acumulados).
type LotResponse struct {
	ID              string                  `json:"id"`
	SupplierID      string                  `json:"supplier_id"`
	RegisteredBy    string                  `json:"registered_by"`
	Status          string                  `json:"status"`
	TotalValue      decimal.Decimal         `json:"total_value"`
	SettlementValue decimal.Decimal         `json:"settlement_value"`
	AvailableUnits  int64                   `json:"available_units"`
	ConsumedUnits   int64                   `json:"consumed_units"`
	Items           []ItemResponse          `json:"items"`
	Timeline        []TimelineEntryResponse `json:"timeline"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// FinancialNoteResponse solicitação de nota a pagar entregue ao financeiro.
type FinancialNoteResponse struct {
	ID          string          `json:"id"`
	LotID       string          `json:"lot_id"`
	SupplierID  string          `json:"supplier_id"`
	Value       decimal.Decimal `json:"value"`
	Method      string          `json:"method"`
	BankAccount string          `json:"bank_account,omitempty"`
	PayeeName   string          `json:"payee_name,omitempty"`
	PixKey      string          `json:"pix_key,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	RequestedBy string          `json:"requested_by"`
	RequestedAt time.Time       `json:"requested_at"`
}

// NewItemResponse converte a entidade para a projeção HTTP.
func NewItemResponse(it *entity.Item) ItemResponse {
	return ItemResponse{
		ID:               it.ID,
		Description:      it.Description,
		Model:            it.Model,
		OriginalQuantity: it.OriginalQuantity,
		CurrentQuantity:  it.CurrentQuantity,
		ReturnedQuantity: it.ReturnedQuantity,
		ConsumedUnits:    it.ConsumedUnits(),
		UnitCost:         it.UnitCost,
		StoreID:          it.StoreID,
		Status:           it.Status,
		WorkOrderID:      it.WorkOrderID,
		TechnicianID:     it.TechnicianID,
		ConsumedAt:       it.ConsumedAt,
		ReturnedBy:       it.ReturnedBy,
		ReturnedAt:       it.ReturnedAt,
	}
}

// NewLotResponse converte o agregado para a projeção HTTP, recalculando os
// valores derivados a partir do estado item a item.
func NewLotResponse(lot *entity.Lot) LotResponse {
	resp := LotResponse{
		ID:              lot.ID,
		SupplierID:      lot.SupplierID,
		RegisteredBy:    lot.RegisteredBy,
		Status:          lot.Status,
		TotalValue:      consignment.TotalValue(lot),
		SettlementValue: consignment.SettlementValue(lot),
		AvailableUnits:  consignment.AvailableUnits(lot),
		ConsumedUnits:   consignment.ConsumedUnits(lot),
		CreatedAt:       lot.CreatedAt,
		UpdatedAt:       lot.UpdatedAt,
	}
	for _, it := range lot.Items {
		resp.Items = append(resp.Items, NewItemResponse(it))
	}
	for _, e := range lot.Timeline {
		resp.Timeline = append(resp.Timeline, TimelineEntryResponse{
			Kind:        e.Kind,
			Description: e.Description,
			Responsible: e.Responsible,
			CreatedAt:   e.CreatedAt,
		})
	}
	return resp
}

// NewFinancialNoteResponse converte a solicitação de nota.
func NewFinancialNoteResponse(n *entity.FinancialNoteRequest) FinancialNoteResponse {
	return FinancialNoteResponse{
		ID:          n.ID,
		LotID:       n.LotID,
		SupplierID:  n.SupplierID,
		Value:       n.Value,
		Method:      n.Method,
		BankAccount: n.BankAccount,
		PayeeName:   n.PayeeName,
		PixKey:      n.PixKey,
		Notes:       n.Notes,
		RequestedBy: n.RequestedBy,
		RequestedAt: n.RequestedAt,
	}
}
