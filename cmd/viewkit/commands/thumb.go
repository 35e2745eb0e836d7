package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/agiangrant/viewkit/retained"
	"github.com/agiangrant/viewkit/thumb"
	"github.com/spf13/cobra"
)

func newThumbCommand(opts *options) *cobra.Command {
	var maxEdge int
	cmd := &cobra.Command{
		Use:   "thumb <file>...",
		Short: "Decode thumbnails on the background fetcher and print their sizes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if maxEdge > 0 {
				cfg.Thumbnail.MaxEdge = maxEdge
			}
			cfg.Thumbnail.MaxPending = max(cfg.Thumbnail.MaxPending, len(args))

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			app := retained.NewApplication(cfg)
			f := thumb.New(app, cfg.Thumbnail)
			f.Launch(ctx)
			defer f.Shutdown()

			out := cmd.OutOrStdout()
			remaining := len(args)
			var errs []error
			done := func(r thumb.Result) {
				if r.Err != nil {
					errs = append(errs, r.Err)
					fmt.Fprintf(out, "%s\terror: %v\n", r.Path, r.Err)
				} else {
					b := r.Image.Bounds()
					fmt.Fprintf(out, "%s\t%dx%d\n", r.Path, b.Dx(), b.Dy())
				}
				if remaining--; remaining == 0 {
					app.Quit()
				}
			}
			for _, path := range args {
				if err := f.Add(path, done); err != nil {
					return err
				}
			}
			if err := app.Run(ctx); err != nil {
				return err
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().IntVar(&maxEdge, "max-edge", 0, "longest thumbnail edge in pixels (default from config)")
	return cmd
}
