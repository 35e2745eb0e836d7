package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/agiangrant/viewkit/inflate"
	"github.com/agiangrant/viewkit/internal/headless"
	"github.com/agiangrant/viewkit/retained"
	"github.com/spf13/cobra"
)

func newLayoutCommand(opts *options) *cobra.Command {
	var width, height float32
	cmd := &cobra.Command{
		Use:   "layout <file>",
		Short: "Lay out a layout document and print the bounds of every view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 || height <= 0 {
				return fmt.Errorf("window size %gx%g must be positive", width, height)
			}
			app := retained.NewApplication(opts.cfg)
			native := headless.New(width, height)
			win, err := app.NewWindow(native, args[0])
			if err != nil {
				return err
			}
			defer win.Close()
			native.Show()

			tree, err := inflate.New(app.Context()).Load(args[0])
			if err != nil {
				return err
			}
			win.SetContent(tree.Root)
			win.LayoutNow()
			return printTree(cmd.OutOrStdout(), tree)
		},
	}
	cmd.Flags().Float32Var(&width, "width", 800, "window width in pixels")
	cmd.Flags().Float32Var(&height, "height", 600, "window height in pixels")
	return cmd
}

func printTree(w io.Writer, tree *inflate.Tree) error {
	for _, e := range tree.Entries {
		v := e.Widget.AsView()
		line := strings.Repeat("  ", e.Depth) + e.Type
		if v.ID() != retained.NoID {
			line += fmt.Sprintf(" #%d", v.ID())
		}
		line += " " + v.Bounds().String()
		switch v.Visibility() {
		case retained.Hide:
			line += " hidden"
		case retained.Vanished:
			line += " vanished"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
