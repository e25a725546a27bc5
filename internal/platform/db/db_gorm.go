// Package db はGORM経由のPostgreSQL接続を管理します。
package db

import (
	"fmt"
	"log/slog"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"movie_backend/internal/app/config"
	moviesentity "movie_backend/internal/feature/movies/domain/entity"
	usersentity "movie_backend/internal/feature/users/domain/entity"
)

// retryInterval は接続リトライの待機時間です。
const retryInterval = 3 * time.Second

// Opener はDSNからgorm.DBを開く関数です。テストで差し替えられるよう分離しています。
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN は設定からPostgreSQL接続用のDSN文字列を生成します。
func BuildDSN(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
}

// ConnectWithRetry は接続が成功するかタイムアウトするまでリトライします。
// コンテナ環境でDBの起動完了を待つための措置です。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err)
		time.Sleep(retryInterval)
	}
}

// openPostgres はPostgreSQLドライバでgorm.DBを開きます。
// TranslateErrorにより一意制約違反などをgormのエラー定数に変換します。
func openPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// OpenDB は設定に従ってデータベースへ接続し、必要ならマイグレーションを実行します。
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, openPostgres)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.AutoMigrate(
			&usersentity.User{},
			&moviesentity.Movie{},
			&moviesentity.Comment{},
		); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return db, nil
}
