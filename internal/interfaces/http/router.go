package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/analytics"
	appconsignment "github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/consignment"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/infrastructure/events"
)

// Perfis reconhecidos pelo controle de acesso.
const (
	RoleAdmin      = "admin"
	RoleTecnico    = "tecnico"
	RoleFinanceiro = "financeiro"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	CreateLot    *appconsignment.CreateLotUseCase
	Consumption  *appconsignment.RegisterConsumptionUseCase
	Transfer     *appconsignment.TransferItemUseCase
	Query        *appconsignment.ConsignmentQueryUseCase
	Settlement   *appconsignment.SettlementUseCase
	StatementPDF *appconsignment.StatementPDFUseCase
	Dashboard    *analytics.DashboardUseCase
	Ledger       *events.ConsumptionLedger
	JWTSecret    string
}

// Router registra as rotas da API. Todas as rotas de consignação exigem
// Bearer Token; consumo é liberado para técnicos, acerto para o financeiro.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	consignmentHandler := NewConsignmentHandler(deps.CreateLot, deps.Consumption, deps.Transfer, deps.Query, deps.Ledger)
	settlementHandler := NewSettlementHandler(deps.Settlement, deps.StatementPDF)
	dashboardHandler := NewDashboardHandler(deps.Dashboard)

	// Lotes consignados (protegido)
	consignments := protected.Group("/consignments")
	consignments.Post("/", RequireRole(RoleAdmin), consignmentHandler.Create)
	consignments.Get("/", consignmentHandler.List)
	consignments.Get("/:id", consignmentHandler.GetByID)
	consignments.Post("/:id/items/:itemId/consumption", RequireRole(RoleTecnico, RoleAdmin), consignmentHandler.RegisterConsumption)
	consignments.Post("/:id/items/:itemId/transfer", RequireRole(RoleAdmin), consignmentHandler.Transfer)

	// Acerto de contas (protegido, financeiro)
	consignments.Post("/:id/acerto", RequireRole(RoleFinanceiro, RoleAdmin), settlementHandler.Begin)
	consignments.Post("/:id/items/:itemId/devolucao", RequireRole(RoleFinanceiro, RoleAdmin), settlementHandler.Return)
	consignments.Post("/:id/acerto/nota", RequireRole(RoleFinanceiro, RoleAdmin), settlementHandler.GenerateNote)
	consignments.Post("/:id/pagamento", RequireRole(RoleFinanceiro, RoleAdmin), settlementHandler.MarkPaid)
	consignments.Get("/:id/acerto/extrato.pdf", settlementHandler.StatementPDF)

	// Vínculo OS -> consumos consignados (protegido)
	workOrders := protected.Group("/work-orders")
	workOrders.Get("/:id/consignment-links", consignmentHandler.WorkOrderLinks)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/consignments", dashboardHandler.ConsignmentSummary)
}
