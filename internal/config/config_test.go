package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"xuanwei-server/internal/util"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("XW_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("XW_JWT_PRIVATE_KEY", "private2.key")
	defer clear2()

	a := assert.New(t)
	a.NoError(Load())
	cfg := Instance()
	a.Equal("postgres://test@localhost:5432/xuanwei_test?sslmode=disable", cfg.PGDSN)
	a.Equal("public.pem", cfg.JWT.PublicKey)
	a.Equal("private2.key", cfg.JWT.PrivateKey)
	a.Equal(3, cfg.StartGameDelay)

	// ensure that it's only loaded once
	_ = os.Setenv("XW_JWT_PRIVATE_KEY", "private3.key")
	// ensure we aren't using a pointer
	cfg.JWT.PrivateKey = "bad"
	cfg = Instance()
	a.Equal("private2.key", cfg.JWT.PrivateKey)
}

// the database layer reads its DSN and migrations path from here, so the env
// overrides must flow through
func TestEnvOverrides(t *testing.T) {
	clear1 := util.SetEnv("XW_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear1()
	clear2 := util.SetEnv("XW_PG_DSN", "postgres://override@localhost:5432/override")
	defer clear2()
	clear3 := util.SetEnv("XW_MIGRATIONS_PATH", "/tmp/xw-migrations")
	defer clear3()

	a := assert.New(t)
	a.NoError(Load())
	cfg := Instance()
	a.Equal("postgres://override@localhost:5432/override", cfg.PGDSN)
	a.Equal("/tmp/xw-migrations", cfg.MigrationsPath)
}

func TestDefaults(t *testing.T) {
	clear1 := util.SetEnv("XW_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear1()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, "./migrations", cfg.MigrationsPath)
	assert.Equal(t, 10, cfg.StartGameDelay)
}
