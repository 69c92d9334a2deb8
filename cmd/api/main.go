package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/analytics"
	appconsignment "github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/consignment"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/infrastructure/events"
	infrapdf "github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/infrastructure/pdf"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/infrastructure/postgres"
	httpRouter "github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/interfaces/http"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/pkg/config"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	migrator := postgres.NewMigrator(cfg.DB.ConnectionString(), cfg.Consignment.MigrationsDir)
	if err := migrator.Up(); err != nil {
		log.Fatal().Err(err).Msg("migrações do banco")
	}

	// Repositório de leitura (sem transação) e runner transacional para as
	// mutações, com lock_timeout limitado por lote.
	lotRepo := postgres.NewLotRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.Consignment.LockTimeoutMS)

	ledger := events.NewConsumptionLedger()

	createLotUC := appconsignment.NewCreateLotUseCase(txRunner)
	consumptionUC := appconsignment.NewRegisterConsumptionUseCase(txRunner, ledger)
	transferUC := appconsignment.NewTransferItemUseCase(txRunner)
	settlementUC := appconsignment.NewSettlementUseCase(txRunner)
	queryUC := appconsignment.NewConsignmentQueryUseCase(lotRepo)
	dashboardUC := analytics.NewDashboardUseCase(lotRepo)

	// PDF: extrato do acerto de contas
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	statementUC := appconsignment.NewStatementPDFUseCase(lotRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateLot:    createLotUC,
		Consumption:  consumptionUC,
		Transfer:     transferUC,
		Query:        queryUC,
		Settlement:   settlementUC,
		StatementPDF: statementUC,
		Dashboard:    dashboardUC,
		Ledger:       ledger,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}
}
