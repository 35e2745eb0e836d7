package commands

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

func newConfigCommand(opts *options) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the --config file and
flag overrides are applied. With --check only validation is reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.cfg.Validate(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if check {
				_, err := fmt.Fprintln(out, "ok")
				return err
			}
			enc := toml.NewEncoder(out)
			enc.SetIndentTables(true)
			return enc.Encode(opts.cfg)
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "only validate the configuration")
	return cmd
}
