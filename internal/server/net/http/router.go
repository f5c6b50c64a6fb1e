// Package http реализует маршрутизацию HTTP-слоя сервера notekeeper.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - подключение гейта аутентификации к защищённым маршрутам.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/api"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/middleware"
)

// Options: настройки роутера, не относящиеся к обработчикам.
type Options struct {
	// MaxBodyBytes: лимит тела запроса, 0: без лимита
	MaxBodyBytes int64
	// Swagger: отдавать ли /swagger/*
	Swagger bool
}

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - публичные эндпоинты /auth/createuser и /auth/login;
//   - /health и (опционально) swagger;
//   - группу защищённых эндпоинтов: /auth/getuser и /notes/*.
func NewRouter(h *api.Handler, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))
	if opts.MaxBodyBytes > 0 {
		r.Use(chimw.RequestSize(opts.MaxBodyBytes))
	}

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		api.WriteError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	if opts.Swagger {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}
	r.Get("/health", h.Health)

	// Публичные пути
	r.Route("/auth", func(r chi.Router) {
		r.Post("/createuser", h.Register)
		r.Post("/login", h.Login)
		// защищённый путь
		r.With(h.Verifier.AuthMiddleware()).Post("/getuser", h.GetUser)
	})

	// защищены пути
	r.Route("/notes", func(r chi.Router) {
		r.Use(h.Verifier.AuthMiddleware())
		r.Get("/fetchallnotes", h.ListNotes)
		r.Post("/addnote", h.CreateNote)
		r.Put("/updatenote/{id}", h.UpdateNote)
		r.Delete("/deletenote/{id}", h.DeleteNote)
	})

	return r
}
