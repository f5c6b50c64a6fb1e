package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/agent/api"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/shared/utils"
)

// NewNotesCmd группа команд для работы с заметками.
func NewNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Заметки текущего пользователя",
		Long: `Заметки текущего пользователя.

Примеры:
  notekeeper notes list
  notekeeper notes add --title groceries --description "milk and eggs" --tag home
  notekeeper notes update <id> --tag work
  notekeeper notes delete <id>
`,
	}

	cmd.AddCommand(newNotesListCmd(app))
	cmd.AddCommand(newNotesAddCmd(app))
	cmd.AddCommand(newNotesUpdateCmd(app))
	cmd.AddCommand(newNotesDeleteCmd(app))

	return cmd
}

func newNotesListCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Список заметок",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.AuthedClient()
			if err != nil {
				return err
			}
			notes, err := c.ListNotes(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), notes)
			}
			if len(notes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no notes")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTAG\tTITLE\tDESCRIPTION\tDATE")
			for _, n := range notes {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", n.ID, n.Tag, n.Title, n.Description, formatDate(n))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print notes as JSON")
	return cmd
}

func newNotesAddCmd(app *App) *cobra.Command {
	var in api.NoteInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Создать заметку",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.AuthedClient()
			if err != nil {
				return err
			}
			n, err := c.AddNote(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "note created: %s\n", n.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "title (at least 3 characters)")
	cmd.Flags().StringVar(&in.Description, "description", "", "description (at least 5 characters)")
	cmd.Flags().StringVar(&in.Tag, "tag", "", "tag (optional)")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("description")

	return cmd
}

func newNotesUpdateCmd(app *App) *cobra.Command {
	var title, description, tag string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Изменить заметку (только указанные поля)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var upd api.NoteUpdate
			if cmd.Flags().Changed("title") {
				upd.Title = utils.Ptr(title)
			}
			if cmd.Flags().Changed("description") {
				upd.Description = utils.Ptr(description)
			}
			if cmd.Flags().Changed("tag") {
				upd.Tag = utils.Ptr(tag)
			}
			if upd.Title == nil && upd.Description == nil && upd.Tag == nil {
				return fmt.Errorf("nothing to update: set --title, --description or --tag")
			}

			c, err := app.AuthedClient()
			if err != nil {
				return err
			}
			n, err := c.UpdateNote(cmd.Context(), args[0], upd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "note updated: %s\n", n.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&tag, "tag", "", "new tag")

	return cmd
}

func newNotesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Удалить заметку",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.AuthedClient()
			if err != nil {
				return err
			}
			n, err := c.DeleteNote(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "note deleted: %s (%s)\n", n.ID, n.Title)
			return nil
		},
	}
}

func formatDate(n api.Note) string {
	if n.Date.IsZero() {
		return "-"
	}
	return n.Date.Local().Format("2006-01-02 15:04")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
