package commands

import (
	"fmt"
	"io"

	"github.com/agiangrant/viewkit"
	"github.com/spf13/cobra"
)

// options are shared by every subcommand and filled before they run.
type options struct {
	configPath string
	logLevel   string

	cfg      viewkit.Config
	closeLog io.Closer
}

// NewRootCommand returns the viewkit command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "viewkit",
		Short:        "Inspect layouts and run animations headless",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			viewkit.SetLogger(nil)
			if opts.closeLog != nil {
				return opts.closeLog.Close()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (TOML); defaults apply when unset")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		newLayoutCommand(opts),
		newAnimateCommand(opts),
		newThumbCommand(opts),
		newConfigCommand(opts),
	)
	return root
}

func (o *options) load(stderr io.Writer) error {
	o.cfg = viewkit.DefaultConfig()
	if o.configPath != "" {
		cfg, err := viewkit.LoadConfig(o.configPath)
		if err != nil {
			return err
		}
		o.cfg = cfg
	}
	if o.logLevel != "" {
		o.cfg.Log.Level = o.logLevel
	}

	logger, closer, err := viewkit.NewLogger(o.cfg.Log, stderr)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	viewkit.SetLogger(logger)
	o.closeLog = closer
	return nil
}
