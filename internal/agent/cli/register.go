package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRegisterCmd создаёт CLI-команду для регистрации нового пользователя.
//
// После успешной регистрации сервер сразу выдаёт токен, он сохраняется
// локально, так что отдельный login не нужен. Если --password не указан,
// пароль запрашивается без эха.
//
// Пример использования:
//
//	notekeeper register --name alice --email alice@example.com --password secret1
func NewRegisterCmd(app *App) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя на сервере.

Пример:
  notekeeper register --name alice --email alice@example.com --password secret1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordOrPrompt(cmd, password)
			if err != nil {
				return err
			}

			token, err := app.Client().Register(cmd.Context(), name, email, pw)
			if err != nil {
				return err
			}
			if err := app.SaveToken(email, token); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "registration successful, logged in as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (at least 3 characters)")
	cmd.Flags().StringVar(&email, "email", "", "email for registration")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")

	return cmd
}
