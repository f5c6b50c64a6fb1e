package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/agent/config"
)

// NewLoginCmd создаёт CLI-команду для входа пользователя.
//
// Полученный токен сохраняется в локальный файл учётных данных.
//
// Пример использования:
//
//	notekeeper login --email alice@example.com --password secret1
func NewLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Вход пользователя (токен сохраняется локально)",
		Long: `Вход пользователя.

Пример:
  notekeeper login --email alice@example.com --password secret1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordOrPrompt(cmd, password)
			if err != nil {
				return err
			}

			token, err := app.Client().Login(cmd.Context(), email, pw)
			if err != nil {
				return err
			}
			if err := app.SaveToken(email, token); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "login ok (token saved)")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for login")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	cmd.MarkFlagRequired("email")

	return cmd
}

// NewLogoutCmd удаляет сохранённый токен. На сервере сессии не хранятся,
// поэтому запрос к нему не нужен.
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Удалить сохранённый токен",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Clear(app.CredsPath); err != nil {
				return err
			}
			app.Creds = &config.Credentials{}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

// NewMeCmd выводит пользователя, которому принадлежит сохранённый токен.
func NewMeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Показать текущего пользователя",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.AuthedClient()
			if err != nil {
				return err
			}
			u, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:    %s\n", u.ID)
			fmt.Fprintf(out, "name:  %s\n", u.Name)
			fmt.Fprintf(out, "email: %s\n", u.Email)
			if !u.Date.IsZero() {
				fmt.Fprintf(out, "since: %s\n", u.Date.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
