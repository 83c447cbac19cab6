package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yakumwamba/lpg-delivery-access/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/admin", cfg.Guard.Prefix)
	assert.Equal(t, "/admin/signin", cfg.Guard.SignInPath)
	assert.Equal(t, []string{"/admin/signin", "/admin/login"}, cfg.Guard.PublicPaths)
	assert.Equal(t, "authToken", cfg.Cookie.Name)
	assert.Equal(t, 604800, cfg.Cookie.MaxAge)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	assert.Equal(t, "./docs/swagger.json", cfg.App.DocsFile)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BACKEND_URL", "https://api.zamgas.test/")
	t.Setenv("GUARD_PUBLIC_PATHS", "/admin/signin, /admin/login ,/admin/reset")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("HTTP_PORT", "8081")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.zamgas.test", cfg.Backend.BaseURL)
	assert.Equal(t, []string{"/admin/signin", "/admin/login", "/admin/reset"}, cfg.Guard.PublicPaths)
	assert.True(t, cfg.Cookie.Secure)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, 8081, cfg.HTTP.Port)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", "localstorage")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadFrom_ValoresDeFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	v := viper.New()
	v.Set("STORAGE_DRIVER", "memory")

	cfg, err := config.LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "zamgas", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/zamgas?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestLoad_SignInPathRelativo(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GUARD_SIGNIN_PATH", "admin/enter")

	_, err := config.Load()
	assert.Error(t, err)
}
