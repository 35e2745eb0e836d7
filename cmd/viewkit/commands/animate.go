package commands

import (
	"fmt"
	"time"

	"github.com/agiangrant/viewkit/anim"
	"github.com/agiangrant/viewkit/internal/headless"
	"github.com/agiangrant/viewkit/retained"
	"github.com/spf13/cobra"
)

// animatable maps a property name to the ViewAnimator call and the
// parameter it moves.
var animatable = map[string]struct {
	set  func(va *retained.ViewAnimator, to float32) *retained.ViewAnimator
	read func(p retained.AnimeParams) float32
}{
	"alpha":       {(*retained.ViewAnimator).Alpha, func(p retained.AnimeParams) float32 { return p.Alpha }},
	"scale":       {(*retained.ViewAnimator).Scale, func(p retained.AnimeParams) float32 { return p.ScaleX }},
	"translate-x": {(*retained.ViewAnimator).TranslateX, func(p retained.AnimeParams) float32 { return p.TranslateX }},
	"translate-y": {(*retained.ViewAnimator).TranslateY, func(p retained.AnimeParams) float32 { return p.TranslateY }},
	"rotate":      {(*retained.ViewAnimator).Rotate, func(p retained.AnimeParams) float32 { return p.Rotate }},
}

func newAnimateCommand(opts *options) *cobra.Command {
	var (
		property  string
		to        float32
		duration  time.Duration
		easing    string
		maxFrames int
	)
	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Run a view animation on a simulated clock and print each frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prop, ok := animatable[property]
			if !ok {
				return fmt.Errorf("unknown property %q", property)
			}
			if easing == "" {
				easing = opts.cfg.Animation.Easing
			}
			ease, ok := anim.EasingByName(easing)
			if !ok {
				return fmt.Errorf("unknown easing %q (known: %v)", easing, anim.EasingNames())
			}
			if duration <= 0 {
				duration = opts.cfg.AnimationDuration()
			}

			now := time.Unix(0, 0)
			app := retained.NewApplication(opts.cfg, retained.WithClock(func() time.Time { return now }))
			native := headless.New(100, 100)
			win, err := app.NewWindow(native, "animate")
			if err != nil {
				return err
			}
			defer win.Close()
			native.Show()

			v := retained.NewView(app.Context())
			v.SetLayoutSize(retained.Fill, retained.Fill)
			win.SetContent(v)

			prop.set(v.Animate(), to).Duration(duration).Easing(ease).Start()

			out := cmd.OutOrStdout()
			interval := opts.cfg.FrameInterval()
			start := now
			for frame := 0; v.Animate().IsRunning(); frame++ {
				if maxFrames > 0 && frame >= maxFrames {
					break
				}
				app.Tick(now)
				fmt.Fprintf(out, "%d\t%s\t%g\n", frame, now.Sub(start), prop.read(v.AnimeParams()))
				now = now.Add(interval)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&property, "property", "alpha", "alpha, scale, translate-x, translate-y or rotate")
	cmd.Flags().Float32Var(&to, "to", 0, "final value")
	cmd.Flags().DurationVar(&duration, "duration", 0, "animation length (default from config)")
	cmd.Flags().StringVar(&easing, "easing", "", "easing name (default from config)")
	cmd.Flags().IntVar(&maxFrames, "frames", 0, "stop after this many frames (0 runs to the end)")
	return cmd
}
