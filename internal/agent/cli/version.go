package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// BuildInfo сведения о сборке клиента.
type BuildInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	Go        string `json:"go"`
}

// NewVersionCmd выводит версию клиента и дату сборки.
//
//	notekeeper version
//	notekeeper version --json
func NewVersionCmd(buildVersion, buildDate string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Показать версию и дату сборки",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := BuildInfo{Version: buildVersion, BuildDate: buildDate, Go: runtime.Version()}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%s\nbuild_date=%s\ngo=%s\n", info.Version, info.BuildDate, info.Go)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print build info as JSON")
	return cmd
}
