// Package cli реализует командный интерфейс (CLI) клиентского приложения notekeeper.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - загрузку локальных учётных данных (токена сессии) из файла;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета: функция Execute.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/agent/api"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/agent/config"
)

// ErrNotLoggedIn нет сохранённого токена.
var ErrNotLoggedIn = errors.New("not logged in: run `notekeeper login` first")

// App содержит состояние CLI-приложения, разделяемое между командами.
type App struct {
	// ServerURL базовый URL сервера (например, "http://127.0.0.1:8080").
	ServerURL string
	// AuthHeader имя заголовка, в котором передаётся токен.
	AuthHeader string
	// CredsPath путь к файлу с сохранённым токеном.
	CredsPath string
	// Creds загруженные учётные данные. Заполняется в PersistentPreRunE.
	Creds *config.Credentials
}

// Client возвращает API-клиента с текущим токеном (если он есть).
func (a *App) Client() *api.Client {
	c := NewAPIClient(a.ServerURL).WithAuthHeader(a.AuthHeader)
	if a.Creds != nil {
		c.WithToken(a.Creds.AuthToken)
	}
	return c
}

// AuthedClient как Client, но требует сохранённый токен.
func (a *App) AuthedClient() (*api.Client, error) {
	if !a.Creds.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	return a.Client(), nil
}

// SaveToken сохраняет токен сессии в файл учётных данных.
func (a *App) SaveToken(email, token string) error {
	if a.Creds == nil {
		a.Creds = &config.Credentials{}
	}
	a.Creds.AuthToken = token
	a.Creds.Email = email
	a.Creds.Server = a.ServerURL
	return config.Save(a.CredsPath, a.Creds)
}

// Init применяет переменные окружения и загружает учётные данные.
// Значения флагов, заданные явно, имеют приоритет над окружением.
func (a *App) Init(cmd *cobra.Command) error {
	e, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	if e.Server != "" && !flagChanged(cmd, "server") {
		a.ServerURL = e.Server
	}
	if e.AuthHeader != "" && !flagChanged(cmd, "auth-header") {
		a.AuthHeader = e.AuthHeader
	}
	if !flagChanged(cmd, "credentials") {
		a.CredsPath = e.CredsPath
	}
	if a.CredsPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		a.CredsPath = p
	}

	creds, err := config.Load(a.CredsPath)
	if err != nil {
		return fmt.Errorf("load credentials %s: %w", a.CredsPath, err)
	}
	a.Creds = creds
	return nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate выводятся командой version.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "notekeeper",
		Short: "notekeeper CLI: личные заметки на сервере notekeeper",
		Long: `notekeeper CLI.

Команды:
  register  Регистрация нового пользователя
  login     Вход (токен сохраняется локально)
  logout    Удалить сохранённый токен
  me        Текущий пользователь
  notes     Работа с заметками (list, add, update, delete)
  version   Версия и дата сборки

Примеры:
  notekeeper register --name alice --email alice@example.com
  notekeeper login --email alice@example.com
  notekeeper notes add --title "groceries" --description "milk and eggs" --tag home
  notekeeper notes list
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.Init(cmd)
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", config.DefaultServerURL, "server base URL")
	cmd.PersistentFlags().StringVar(&app.AuthHeader, "auth-header", api.DefaultAuthHeader, "header carrying the session token")
	cmd.PersistentFlags().StringVar(&app.CredsPath, "credentials", "", "credentials file (default ~/.notekeeper/credentials.json)")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewMeCmd(app))
	cmd.AddCommand(NewNotesCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке сообщение выводится в stderr, процесс завершается с кодом 1.
func Execute(buildVersion, buildDate string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd(buildVersion, buildDate).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
