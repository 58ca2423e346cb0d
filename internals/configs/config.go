package configs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// =======================
// ENV LOADER
// =======================

// LoadEnv reads .env unless the platform already injects the environment.
// It reports what happened instead of logging, since the logger is built
// from the values it loads.
func LoadEnv() string {
	if os.Getenv("RAILWAY_ENVIRONMENT") != "" {
		return "running on Railway, using system env"
	}
	if err := godotenv.Load(); err != nil {
		return ".env not found, using system env"
	}
	return ".env loaded"
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// TYPED CONFIG
// =======================

type DBConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
	AppName  string
	// statement_timeout in milliseconds
	StatementTimeout int
	MaxOpenConns     int
	MaxIdleConns     int
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=%s&options=-c%%20statement_timeout=%d",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode, d.AppName, d.StatementTimeout,
	)
}

type Config struct {
	AppEnv         string
	Port           string
	JWTSecret      string
	EncryptionKey  string
	EphemeralKey   bool
	LogLevel       string
	SlowQuery      time.Duration
	CorsOrigins    string
	RequestTimeout time.Duration // keep above the DB statement timeout
	AutoMigrate    bool
	DB             DBConfig
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

var ErrMissingSetting = errors.New("missing required setting")

// Load builds Config from the environment. JWT_SECRET is required everywhere;
// SEPA_ENCRYPTION_KEY is required unless SEPA_EPHEMERAL_KEY=true outside production.
func Load() (Config, error) {
	cfg := Config{
		AppEnv:         GetEnv("APP_ENV", "development"),
		Port:           GetEnv("PORT", "8080"),
		JWTSecret:      GetEnv("JWT_SECRET"),
		EncryptionKey:  strings.TrimSpace(GetEnv("SEPA_ENCRYPTION_KEY")),
		EphemeralKey:   envBool("SEPA_EPHEMERAL_KEY", false),
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
		SlowQuery:      envDuration("DB_SLOW_QUERY", 200*time.Millisecond),
		CorsOrigins:    GetEnv("CORS_ALLOW_ORIGINS"),
		RequestTimeout: envDuration("HTTP_REQUEST_TIMEOUT", 10*time.Second),
		AutoMigrate:    envBool("DB_AUTO_MIGRATE", true),
		DB: DBConfig{
			User:             GetEnv("DB_USER"),
			Password:         GetEnv("DB_PASSWORD"),
			Host:             GetEnv("DB_HOST", "localhost"),
			Port:             GetEnv("DB_PORT", "5432"),
			Name:             GetEnv("DB_NAME"),
			SSLMode:          GetEnv("DB_SSLMODE", "require"),
			AppName:          GetEnv("DB_APP_NAME", "sepaku"),
			StatementTimeout: envInt("DB_STATEMENT_TIMEOUT_MS", 3000),
			MaxOpenConns:     envInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:     envInt("DB_MAX_IDLE_CONNS", 10),
		},
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("%w: JWT_SECRET", ErrMissingSetting)
	}
	if cfg.EncryptionKey == "" && !cfg.EphemeralKey {
		return cfg, fmt.Errorf("%w: SEPA_ENCRYPTION_KEY", ErrMissingSetting)
	}
	if cfg.EphemeralKey && cfg.IsProduction() {
		return cfg, errors.New("SEPA_EPHEMERAL_KEY is not allowed in production")
	}

	return cfg, nil
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(GetEnv(key)))
	if err != nil {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(GetEnv(key)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(GetEnv(key)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// =======================
// LOGGER
// =======================

// NewLogger builds the process logger: JSON in production, console otherwise.
func NewLogger(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if !cfg.IsProduction() {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Str("env", cfg.AppEnv).Logger()
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	Log           zerolog.Logger
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger(log zerolog.Logger, slow time.Duration) gormLogger.Interface {
	return &GormLogger{
		Log:           log.With().Str("component", "gorm").Logger(),
		SlowThreshold: slow,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		l.Log.Info().Msgf(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		l.Log.Warn().Msgf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		l.Log.Error().Msgf(msg, data...)
	}
}

// Trace never logs bound values beyond what gorm renders into sql; sensitive
// columns are stored encrypted so the rendered statement carries ciphertext only.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && !errors.Is(err, gormLogger.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		l.Log.Error().Err(err).Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Msg(sql)
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		l.Log.Warn().Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Msg("slow sql: " + sql)
	case l.LogLevel >= gormLogger.Info:
		l.Log.Debug().Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Msg(sql)
	}
}
