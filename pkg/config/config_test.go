package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/pkg/config"
)

func TestLoad_SemArquivos_UsaPadroes(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "consignacao-core", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 3000, cfg.Consignment.LockTimeoutMS)
}

// As duas fontes de arquivo coexistem: o config/config soma chaves ao .env
// em vez de descartar o que já foi lido.
func TestLoad_DoisArquivos_MesclamChaves(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("DB_HOST=banco-do-env\nJWT_ISSUER=emissor-do-env\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.env"),
		[]byte("HTTP_PORT=9090\n"), 0o644))

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "banco-do-env", cfg.DB.Host, "chave do .env sobrevive à leitura do segundo arquivo")
	assert.Equal(t, "emissor-do-env", cfg.JWT.Issuer)
	assert.Equal(t, 9090, cfg.HTTP.Port, "chave do config/config também entra")
}
