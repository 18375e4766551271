package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
	Provider ProviderConfig `mapstructure:"provider"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Operator OperatorConfig `mapstructure:"operator"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	Migrate         bool          `mapstructure:"migrate"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// WebhookConfig controls inbound webhook authentication and routing.
type WebhookConfig struct {
	// Secret is compared verbatim against the Authorization header.
	Secret string `mapstructure:"secret"`
	// ConfirmEvents is the event-type vocabulary that triggers the
	// reconciliation sub-chain. Matched case-insensitively.
	ConfirmEvents []string `mapstructure:"confirm_events"`
}

// ProviderConfig points at the PIX provider's OAuth and query endpoints.
type ProviderConfig struct {
	TokenURL string        `mapstructure:"token_url"`
	QueryURL string        `mapstructure:"query_url"`
	Scope    string        `mapstructure:"scope"`
	Timeout  time.Duration `mapstructure:"timeout"`
	// ConfirmedStatuses are provider status values treated as settled.
	// The provider's status vocabulary differs across API generations,
	// so the set is configuration rather than code.
	ConfirmedStatuses []string `mapstructure:"confirmed_statuses"`
}

// GatewayConfig points at the outbound messaging gateway.
type GatewayConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// OperatorConfig holds the single dashboard operator account.
type OperatorConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"` // Argon2id encoded hash
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: PIX_.
// Nested keys use underscore: PIX_DATABASE_HOST, PIX_WEBHOOK_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "pix_recebidos")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.migrate", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("webhook.secret", "")
	v.SetDefault("webhook.confirm_events", []string{
		"pix_paid", "pix_recebido", "cob_paga", "payment_confirmed",
	})
	v.SetDefault("provider.token_url", "")
	v.SetDefault("provider.query_url", "")
	v.SetDefault("provider.scope", "pix.read")
	v.SetDefault("provider.timeout", "30s")
	v.SetDefault("provider.confirmed_statuses", []string{
		"concluida", "paid", "liquidado", "realizado",
	})
	v.SetDefault("gateway.url", "")
	v.SetDefault("gateway.api_key", "")
	v.SetDefault("gateway.timeout", "30s")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "pix-recebidos")
	v.SetDefault("operator.username", "")
	v.SetDefault("operator.password_hash", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: PIX_PROVIDER_TOKEN_URL -> provider.token_url
	v.SetEnvPrefix("PIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
