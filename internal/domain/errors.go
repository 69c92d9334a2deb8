package domain

import "errors"

// Erros de domínio (sem dependências externas).
// ErrConcurrencyConflict é o único seguro para retry automático pelo caller;
// os demais exigem correção do lado de quem chama.
var (
	ErrNotFound             = errors.New("recurso não encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInsufficientQuantity = errors.New("quantidade insuficiente no item")
	ErrItemNotAvailable     = errors.New("item não disponível para a operação")
	ErrWrongLocation        = errors.New("item está sob custódia de outra loja")
	ErrLotState             = errors.New("status do lote não permite a operação")
	ErrConcurrencyConflict  = errors.New("conflito de concorrência no lote; repita a operação")
)
