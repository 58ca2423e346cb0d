package configfx

import (
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"sepaku_backend/internals/configs"
	helper "sepaku_backend/internals/helpers"
	"sepaku_backend/internals/helpers/secure"
)

var Module = fx.Provide(
	provideConfig,
	provideLogger,
	provideValidator,
	provideCipher,
)

// envSource says where the environment came from; logged once the logger exists.
type envSource string

func provideConfig() (configs.Config, envSource, error) {
	src := envSource(configs.LoadEnv())
	cfg, err := configs.Load()
	return cfg, src, err
}

func provideLogger(cfg configs.Config, src envSource) zerolog.Logger {
	log := configs.NewLogger(cfg)
	zerolog.DefaultContextLogger = &log
	log.Info().Str("env_source", string(src)).Str("app_env", cfg.AppEnv).Msg("configuration loaded")
	return log
}

func provideValidator() *validator.Validate {
	return helper.NewValidator()
}

// provideCipher refuses to start without a key unless an ephemeral key was
// explicitly allowed, in which case data encrypted now is lost on restart.
func provideCipher(cfg configs.Config, log zerolog.Logger) (*secure.Cipher, error) {
	if cfg.EncryptionKey != "" {
		return secure.NewCipherFromString(cfg.EncryptionKey)
	}
	log.Warn().Msg("SEPA_ENCRYPTION_KEY not set, using an ephemeral key; stored bank data will be unreadable after restart")
	return secure.NewEphemeralCipher()
}
