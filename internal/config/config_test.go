package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("UPLOAD_MAX_SIZE", "")
	t.Setenv("UPLOAD_URL_PREFIX", "")
	t.Setenv("RATE_LIMIT_RPS", "")
	t.Setenv("UPLOAD_RATE_PER_MIN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxSize)
	assert.Equal(t, "mock://uploads/", cfg.Upload.URLPrefix)
	assert.Equal(t, "test-secret", cfg.JWT.SecretKey)
	// Rate limiting is opt-in.
	assert.Zero(t, cfg.RateLimit.RequestsPerSecond)
	assert.Zero(t, cfg.RateLimit.UploadsPerMinute)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("UPLOAD_MAX_SIZE", "1024")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("UPLOAD_RATE_PER_MIN", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, int64(1024), cfg.Upload.MaxSize)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 30.0, cfg.RateLimit.UploadsPerMinute)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Store:  StoreConfig{Driver: StoreDriverMemory},
			JWT:    JWTConfig{SecretKey: "s"},
			Upload: UploadConfig{MaxSize: 10},
		}
	}

	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Store.Driver = "mongo"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Upload.MaxSize = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Environment = "production"
	cfg.Store.Driver = StoreDriverPostgres
	assert.Error(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Database: "x", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=x sslmode=disable", d.DSN())
}
