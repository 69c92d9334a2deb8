package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appconsignment "github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/consignment"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/dto"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/repository"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/infrastructure/events"
)

// ConsignmentHandler trata as requisições de lotes consignados (protegido).
type ConsignmentHandler struct {
	create   *appconsignment.CreateLotUseCase
	consume  *appconsignment.RegisterConsumptionUseCase
	transfer *appconsignment.TransferItemUseCase
	query    *appconsignment.ConsignmentQueryUseCase
	ledger   *events.ConsumptionLedger
}

// NewConsignmentHandler constrói o handler.
func NewConsignmentHandler(
	create *appconsignment.CreateLotUseCase,
	consume *appconsignment.RegisterConsumptionUseCase,
	transfer *appconsignment.TransferItemUseCase,
	query *appconsignment.ConsignmentQueryUseCase,
	ledger *events.ConsumptionLedger,
) *ConsignmentHandler {
	return &ConsignmentHandler{create: create, consume: consume, transfer: transfer, query: query, ledger: ledger}
}

// Create godoc
// @Summary      Registrar entrada de lote consignado
// @Tags         consignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLotRequest  true  "Fornecedor e itens do lote"
// @Success      201   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/consignments [post]
func (h *ConsignmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	lot, err := h.create.CreateLot(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewLotResponse(lot))
}

// GetByID godoc
// @Summary      Consultar lote consignado
// @Tags         consignments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do lote (CSG-NNNNNN)"
// @Success      200  {object}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/consignments/{id} [get]
func (h *ConsignmentHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	lot, err := h.query.GetLot(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewLotResponse(lot))
}

// List godoc
// @Summary      Listar lotes consignados
// @Tags         consignments
// @Security     Bearer
// @Produce      json
// @Param        supplier_id  query  string  false  "Filtrar por fornecedor"
// @Param        status       query  string  false  "Filtrar por status do lote"
// @Param        from         query  string  false  "Criados a partir de (RFC3339)"
// @Param        to           query  string  false  "Criados até (RFC3339)"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.LotResponse
// @Router       /api/consignments [get]
func (h *ConsignmentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros inválidos"})
	}
	page.DefaultPage()

	filter := repository.LotFilter{
		SupplierID: c.Query("supplier_id"),
		Status:     c.Query("status"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from deve ser RFC3339"})
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to deve ser RFC3339"})
		}
		filter.To = &t
	}

	lots, err := h.query.ListLots(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, lot := range lots {
		out = append(out, dto.NewLotResponse(lot))
	}
	return c.JSON(out)
}

// RegisterConsumption godoc
// @Summary      Registrar consumo de item por ordem de serviço
// @Tags         consignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID do lote"
// @Param        itemId  path  string  true  "ID do item"
// @Param        body    body  dto.RegisterConsumptionRequest  true  "OS, técnico, loja e quantidade"
// @Success      200     {object}  dto.ItemResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/consignments/{id}/items/{itemId}/consumption [post]
func (h *ConsignmentHandler) RegisterConsumption(c *fiber.Ctx) error {
	lotID := c.Params("id")
	itemID := c.Params("itemId")
	if lotID == "" || itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id e itemId são obrigatórios"})
	}
	var in dto.RegisterConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.TechnicianID == "" {
		in.TechnicianID = GetUserID(c)
	}
	if in.StoreID == "" {
		in.StoreID = GetStoreID(c)
	}
	item, err := h.consume.RegisterConsumption(c.Context(), lotID, itemID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewItemResponse(item))
}

// Transfer godoc
// @Summary      Transferir custódia de item entre lojas
// @Tags         consignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID do lote"
// @Param        itemId  path  string  true  "ID do item"
// @Param        body    body  dto.TransferItemRequest  true  "Loja origem, destino e quantidade"
// @Success      200     {object}  dto.ItemResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/consignments/{id}/items/{itemId}/transfer [post]
func (h *ConsignmentHandler) Transfer(c *fiber.Ctx) error {
	lotID := c.Params("id")
	itemID := c.Params("itemId")
	if lotID == "" || itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id e itemId são obrigatórios"})
	}
	var in dto.TransferItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	item, err := h.transfer.TransferItem(c.Context(), lotID, itemID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewItemResponse(item))
}

// WorkOrderLinks godoc
// @Summary      Consumos consignados vinculados a uma ordem de serviço
// @Tags         work-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da ordem de serviço"
// @Success      200  {array}  appconsignment.ItemConsumedEvent
// @Router       /api/work-orders/{id}/consignment-links [get]
func (h *ConsignmentHandler) WorkOrderLinks(c *fiber.Ctx) error {
	workOrderID := c.Params("id")
	if workOrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	return c.JSON(h.ledger.ByWorkOrder(workOrderID))
}
