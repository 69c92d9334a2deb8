package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver database/sql para o goose
	"github.com/pressly/goose/v3"
)

// Migrator aplica as migrações SQL do diretório migrations/ via goose.
type Migrator struct {
	dsn           string
	migrationsDir string
}

// NewMigrator constrói o migrador.
func NewMigrator(dsn, migrationsDir string) *Migrator {
	return &Migrator{dsn: dsn, migrationsDir: migrationsDir}
}

// Up abre uma conexão database/sql própria (o goose não fala pgx nativo) e
// sobe todas as migrações pendentes.
func (m *Migrator) Up() error {
	db, err := sql.Open("pgx", m.dsn)
	if err != nil {
		return fmt.Errorf("abrir conexão para migração: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(db, m.migrationsDir); err != nil {
		return fmt.Errorf("aplicar migrações: %w", err)
	}
	return nil
}
