// seed popula o banco com lotes consignados de demonstração, passando pelos
// casos de uso reais (nunca por INSERT direto), para ambiente de desenvolvimento.
//
// Uso: go run ./cmd/seed [quantidade de lotes]
// Por padrão cria 5 lotes, com consumos parciais em alguns itens.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	appconsignment "github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/consignment"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/dto"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/infrastructure/postgres"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/pkg/config"
)

var partDescriptions = []string{
	"Tela LCD 6.1\"",
	"Bateria 4000mAh",
	"Conector de carga USB-C",
	"Alto-falante auricular",
	"Câmera traseira 48MP",
	"Flex do botão de volume",
	"Tampa traseira",
	"Placa de carga",
}

var storeIDs = []string{"loja-centro", "loja-norte", "loja-sul"}

func main() {
	total := 5
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "quantidade inválida: %s\n", os.Args[1])
			os.Exit(1)
		}
		total = n
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "carregar configuração: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexão ao PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	migrator := postgres.NewMigrator(cfg.DB.ConnectionString(), cfg.Consignment.MigrationsDir)
	if err := migrator.Up(); err != nil {
		fmt.Fprintf(os.Stderr, "migrações: %v\n", err)
		os.Exit(1)
	}

	txRunner := postgres.NewTxRunner(pool, cfg.Consignment.LockTimeoutMS)
	createLot := appconsignment.NewCreateLotUseCase(txRunner)
	consume := appconsignment.NewRegisterConsumptionUseCase(txRunner)

	faker := gofakeit.New(0)

	for i := 0; i < total; i++ {
		req := dto.CreateLotRequest{SupplierID: "forn-" + faker.LetterN(6)}
		nItems := faker.Number(2, 5)
		for j := 0; j < nItems; j++ {
			req.Items = append(req.Items, dto.CreateLotItemRequest{
				Description:        faker.RandomString(partDescriptions),
				Model:              faker.CarModel(),
				Quantity:           int64(faker.Number(1, 10)),
				UnitCost:           decimal.NewFromFloat(faker.Price(15, 900)).Round(2),
				DestinationStoreID: faker.RandomString(storeIDs),
			})
		}

		lot, err := createLot.CreateLot(ctx, "seed", req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "criar lote: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("lote %s criado com %d itens\n", lot.ID, len(lot.Items))

		// Consome parte dos itens para a carteira não nascer intocada.
		for _, it := range lot.Items {
			if !faker.Bool() {
				continue
			}
			qty := int64(faker.Number(1, int(it.OriginalQuantity)))
			_, err := consume.RegisterConsumption(ctx, lot.ID, it.ID, dto.RegisterConsumptionRequest{
				Quantity:     qty,
				WorkOrderID:  fmt.Sprintf("OS-%d", faker.Number(10000, 99999)),
				TechnicianID: "tec-" + faker.LetterN(4),
				StoreID:      it.StoreID,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "consumo em %s/%s: %v\n", lot.ID, it.ID, err)
				os.Exit(1)
			}
		}
	}

	fmt.Printf("seed concluído: %d lotes\n", total)
}
