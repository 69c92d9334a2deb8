package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appconsignment "github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/consignment"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/dto"
)

// SettlementHandler trata o ciclo de acerto de contas do lote consignado:
// abertura, devoluções, solicitação de nota e baixa de pagamento.
type SettlementHandler struct {
	settlement *appconsignment.SettlementUseCase
	statement  *appconsignment.StatementPDFUseCase
}

// NewSettlementHandler constrói o handler.
func NewSettlementHandler(settlement *appconsignment.SettlementUseCase, statement *appconsignment.StatementPDFUseCase) *SettlementHandler {
	return &SettlementHandler{settlement: settlement, statement: statement}
}

// Begin godoc
// @Summary      Iniciar acerto de contas do lote
// @Tags         settlement
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do lote"
// @Success      200  {object}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/consignments/{id}/acerto [post]
func (h *SettlementHandler) Begin(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	lot, err := h.settlement.BeginSettlement(c.Context(), id, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewLotResponse(lot))
}

// Return godoc
// @Summary      Confirmar devolução de item ao fornecedor
// @Tags         settlement
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID do lote"
// @Param        itemId  path  string  true  "ID do item"
// @Success      200     {object}  dto.ItemResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/consignments/{id}/items/{itemId}/devolucao [post]
func (h *SettlementHandler) Return(c *fiber.Ctx) error {
	lotID := c.Params("id")
	itemID := c.Params("itemId")
	if lotID == "" || itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id e itemId são obrigatórios"})
	}
	item, err := h.settlement.ConfirmReturn(c.Context(), lotID, itemID, GetUserID(c), nil)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewItemResponse(item))
}

// GenerateNote godoc
// @Summary      Gerar solicitação de nota financeira do acerto
// @Tags         settlement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do lote"
// @Param        body  body  dto.GenerateNoteRequest  true  "Forma de pagamento"
// @Success      201   {object}  dto.FinancialNoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/consignments/{id}/acerto/nota [post]
func (h *SettlementHandler) GenerateNote(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	var in dto.GenerateNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	note, err := h.settlement.GenerateFinancialNote(c.Context(), id, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewFinancialNoteResponse(note))
}

// MarkPaid godoc
// @Summary      Confirmar pagamento do acerto
// @Tags         settlement
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do lote"
// @Success      200  {object}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/consignments/{id}/pagamento [post]
func (h *SettlementHandler) MarkPaid(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	lot, err := h.settlement.MarkPaid(c.Context(), id, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewLotResponse(lot))
}

// StatementPDF godoc
// @Summary      Extrato do acerto em PDF
// @Tags         settlement
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID do lote"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/consignments/{id}/acerto/extrato.pdf [get]
func (h *SettlementHandler) StatementPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	pdfBytes, err := h.statement.GenerateStatement(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=extrato-%s.pdf", id))
	return c.Send(pdfBytes)
}
