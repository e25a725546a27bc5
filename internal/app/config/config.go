// Package config はアプリケーション設定を環境変数から読み込みます。
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// minJWTSecretLength はJWT署名シークレットの推奨最低バイト数です。
const minJWTSecretLength = 32

// Config は環境変数から読み込まれるアプリケーション設定を保持します。
type Config struct {
	Port int `env:"PORT" envDefault:"4000"`

	DBHost        string `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string `env:"DB_PORT" envDefault:"5432"`
	DBUser        string `env:"DB_USER" envDefault:"postgres"`
	DBPassword    string `env:"DB_PASSWORD"`
	DBName        string `env:"DB_NAME" envDefault:"movie_backend"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"false"`

	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"72h"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

// Addr はHTTPサーバーのリッスンアドレスを返します。
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// RedisAddr はRedisの接続アドレスを返します。REDIS_HOST未設定の場合は空文字列です。
func (c Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

// UseRedisCache はRedisキャッシュが設定されているかを返します。
func (c Config) UseRedisCache() bool {
	return c.RedisHost != ""
}

// Load は環境変数を解析してConfigを返します。
// カレントディレクトリに.envファイルがあれば先に読み込みます（未存在は無視）。
func Load() (*Config, error) {
	// .envは開発時の利便用。無ければ環境変数のみを使用する
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.JWTSecret) < minJWTSecretLength {
		slog.Warn("JWT_SECRET is shorter than recommended. Set a strong secret in production.",
			"length", len(cfg.JWTSecret), "recommended", minJWTSecretLength)
	}

	return cfg, nil
}
