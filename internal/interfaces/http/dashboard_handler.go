package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/analytics"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/repository"
)

// DashboardHandler expõe os totais de carteira consignada.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// ConsignmentSummary godoc
// @Summary      Totais da carteira de consignação
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        supplier_id  query  string  false  "Filtrar por fornecedor"
// @Success      200  {object}  dto.ConsignmentDashboardDTO
// @Router       /api/dashboard/consignments [get]
func (h *DashboardHandler) ConsignmentSummary(c *fiber.Ctx) error {
	filter := repository.LotFilter{SupplierID: c.Query("supplier_id")}
	out, err := h.uc.GetConsignmentSummary(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
