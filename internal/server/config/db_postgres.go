// Подключение к PostgreSQL и миграции.
//
// Пакет выполняет:
//   - открытие соединения с PostgreSQL (через драйвер pgx);
//   - настройку пула и проверку доступности базы (Ping);
//   - запуск миграций (golang-migrate) при старте сервера.
//
// Подключение возвращается вызывающему, глобального состояния нет.
package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/shared/logger"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
)

// OpenDB открывает пул подключений к базе по DSN, настраивает его
// и проверяет доступность базы.
func OpenDB(ctx context.Context, cfg DBConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	ConfigurePool(db, cfg)

	pingCtx := ctx
	if cfg.PingTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.PingTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// ConfigurePool применяет лимиты пула из конфига. Нулевые значения не трогаются.
func ConfigurePool(db *sql.DB, cfg DBConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

// RunMigrations применяет миграции из cfg.Path.
//
// Если миграции выключены: ничего не делает.
// migrate.ErrNoChange ошибкой не считается.
func RunMigrations(db *sql.DB, cfg MigrationsConfig, log *logger.HTTPLogger) error {
	if !cfg.Enabled {
		return nil
	}
	if log == nil {
		log = logger.NewNop()
	}
	sugar := log.Logger.Sugar()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		sugar.Errorf("error creating migration driver: %v", err)
		return fmt.Errorf("migration driver: %w", err)
	}

	// создаём миграции с выбранным драйвером
	m, err := migrate.NewWithDatabaseInstance(cfg.Path, "postgres", driver)
	if err != nil {
		sugar.Errorf("error creating migrations: %v", err)
		return fmt.Errorf("migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		sugar.Errorf("error applying migrations: %v", err)
		return fmt.Errorf("apply migrations: %w", err)
	}

	sugar.Info("migrations applied successfully")
	return nil
}
