package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pagamento aceitos na nota financeira do acerto.
const (
	PaymentMethodPix      = "pix"
	PaymentMethodTED      = "ted"
	PaymentMethodBoleto   = "boleto"
	PaymentMethodDinheiro = "dinheiro"
)

// FinancialNoteRequest é a solicitação imutável de nota a pagar gerada no
// acerto de um lote. É entregue ao subsistema financeiro (externo), que
// confirma o pagamento e chama MarkPaid de volta no motor de acerto.
type FinancialNoteRequest struct {
	ID          string
	LotID       string
	SupplierID  string
	Value       decimal.Decimal // valor do acerto congelado na geração
	Method      string
	BankAccount string
	PayeeName   string
	PixKey      string
	Notes       string
	RequestedBy string
	RequestedAt time.Time
}
