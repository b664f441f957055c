package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/phanxgames/holokit"
	"github.com/phanxgames/holokit/internal/room"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "Run a scripted scenario headless and print the outcome",
	Long: `Builds the demo room, plays a YAML or JSON script of press, move, release,
lost, tap, hold, look, goto and wait steps one frame at a time, and prints
the events seen and the final pose of every cube.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		runner, err := holokit.LoadScriptFile(args[0])
		if err != nil {
			return err
		}
		maxFrames, _ := cmd.Flags().GetInt("max-frames")
		tps, _ := cmd.Flags().GetInt("tps")
		if tps <= 0 {
			return fmt.Errorf("--tps must be positive, got %d", tps)
		}

		r, s, err := room.Build(room.DefaultLayout(), cfg)
		if err != nil {
			return err
		}
		defer s.Close()
		s.SetLogger(logger)

		rec := &eventRecorder{counts: map[holokit.EventType]int{}}
		s.SetEventSink(holokit.MultiSink{rec, eventLogger{logger}})

		if err := replay(s, runner, 1/float64(tps), maxFrames); err != nil {
			return err
		}
		rec.print(cmd.OutOrStdout(), s.Frame())
		printCubes(cmd.OutOrStdout(), r)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().Int("max-frames", 10000, "Stop after this many frames even if the script is not done")
	replayCmd.Flags().Int("tps", 60, "Simulated frames per second")
}

// replay advances s until runner is done, then runs one more frame so the
// last step's effects are applied.
func replay(s *holokit.Session, runner *holokit.ScriptRunner, dt float64, maxFrames int) error {
	if err := s.RunScript(runner); err != nil {
		return err
	}
	for i := 0; i < maxFrames; i++ {
		if runner.Done() && s.PendingInjections() == 0 {
			s.Update(dt)
			return nil
		}
		s.Update(dt)
	}
	return fmt.Errorf("script not finished after %d frames", maxFrames)
}

type eventRecorder struct {
	counts map[holokit.EventType]int
}

func (r *eventRecorder) EmitEvent(ev holokit.InteractionEvent) {
	r.counts[ev.Type]++
}

func (r *eventRecorder) print(w io.Writer, frames uint64) {
	fmt.Fprintf(w, "frames: %d\n", frames)
	types := make([]holokit.EventType, 0, len(r.counts))
	for t := range r.counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		fmt.Fprintf(w, "%-20s %d\n", t.String(), r.counts[t])
	}
}

func printCubes(w io.Writer, r *room.Room) {
	for i, c := range r.Cubes {
		p := c.Position
		m := r.Movables[i]
		fmt.Fprintf(w, "%-8s (%.3f, %.3f, %.3f) selected=%t\n", c.Name, p[0], p[1], p[2], m.Selected())
	}
}
