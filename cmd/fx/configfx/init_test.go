package configfx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvideConfig_ReturnsEnvSource(t *testing.T) {
	// t.Chdir requires Go 1.24; equivalent chdir-and-restore for older toolchains.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("RAILWAY_ENVIRONMENT", "")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SEPA_ENCRYPTION_KEY", "")
	t.Setenv("SEPA_EPHEMERAL_KEY", "true")
	t.Setenv("APP_ENV", "development")

	cfg, src, err := provideConfig()
	require.NoError(t, err)
	assert.Equal(t, envSource(".env not found, using system env"), src)
	assert.Equal(t, "secret", cfg.JWTSecret)
}
