// @title           Notekeeper API
// @version         1.0
// @description     Personal notes backend.
// @description     Provides user accounts, token sessions and per-user notes.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey AuthToken
// @in header
// @name auth-token
//
// Package main содержит точку входа серверного приложения notekeeper.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера (по умолчанию ./configs/server.yaml);
//   - инициализацию подключения к базе данных и миграции;
//   - создание репозиториев, сервисов, middleware и HTTP-обработчиков;
//   - запуск сервера (HTTPS, если tls.enabled) с заданными таймаутами;
//   - корректное (graceful) завершение работы по SIGINT, SIGTERM, SIGQUIT.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/api"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/config"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/middleware"
	h "github.com/IvanChernomyrdin/go-notekeeper/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/repository"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/service"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/go-notekeeper/swagger/docs"
)

func main() {
	configPath := flag.String("config", "./configs/server.yaml", "path to server config")
	flag.Parse()

	// до загрузки конфига пишем в логгер по умолчанию
	sugar := logger.NewHTTPLogger().Logger.Sugar()

	if err := godotenv.Load(); err != nil {
		sugar.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		sugar.Fatal(err)
	}

	httpLogger, err := logger.New(cfg.LoggerOptions())
	if err != nil {
		sugar.Fatal(err)
	}
	defer func() { _ = httpLogger.Sync() }()
	sugar = httpLogger.Logger.Sugar()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// подключаем базу данных
	db, err := config.OpenDB(ctx, cfg.DB)
	if err != nil {
		sugar.Fatal(err)
	}
	defer db.Close()

	if err := config.RunMigrations(db, cfg.Migrations, httpLogger); err != nil {
		sugar.Fatal(err)
	}

	// создаём репы
	usersRepo := repository.NewUsersRepository(db)
	notesRepo := repository.NewNotesRepository(db)
	repos := service.Repositories{
		Users: usersRepo,
		Notes: notesRepo,
	}

	hasher, err := cfg.PasswordHasher()
	if err != nil {
		sugar.Fatal(err)
	}
	// ключ подписи один на выпуск и проверку
	tokens := crypto.NewTokenCodec(cfg.TokenConfig())

	svc := service.NewServices(repos, hasher, tokens)
	verifier := middleware.NewJWTVerifier(tokens, cfg.Auth.Header)
	handler := api.NewHandler(svc, notesRepo, httpLogger, verifier)
	router := h.NewRouter(handler, h.Options{
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Swagger:      cfg.Server.Swagger,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: tlsVersion(cfg.TLS.MinVersion)}
	}

	g, gctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infow("server started", "addr", server.Addr, "tls", cfg.TLS.Enabled, "env", cfg.Env)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-gctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единая обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}

func tlsVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}
