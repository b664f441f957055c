package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phanxgames/holokit"
	"github.com/phanxgames/holokit/ebitenhost"
	"github.com/phanxgames/holokit/internal/room"
	"github.com/phanxgames/holokit/promstats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the demo room in a window",
	Long: `Opens a window over the demo room. The arrow keys turn the head, the left
mouse button is a hand and space taps.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		layout := room.DefaultLayout()
		layout.Cubes, _ = cmd.Flags().GetInt("cubes")

		_, s, err := room.Build(layout, cfg)
		if err != nil {
			return err
		}
		defer s.Close()
		s.SetLogger(logger)

		if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
			reg := prometheus.NewRegistry()
			sink, err := promstats.NewSink(reg)
			if err != nil {
				return err
			}
			s.SetEventSink(sink)
			srv := &http.Server{Addr: addr, Handler: promstats.Handler(reg)}
			go func() {
				logger.Info("serving metrics", "addr", addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("metrics server failed", "error", err)
				}
			}()
			defer srv.Close()
		} else {
			s.SetEventSink(eventLogger{logger})
		}

		opts := ebitenhost.DefaultOptions()
		opts.Width, _ = cmd.Flags().GetInt("width")
		opts.Height, _ = cmd.Flags().GetInt("height")
		return ebitenhost.Run(s, opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("cubes", room.DefaultLayout().Cubes, "Number of movable cubes")
	runCmd.Flags().Int("width", ebitenhost.DefaultOptions().Width, "Window width")
	runCmd.Flags().Int("height", ebitenhost.DefaultOptions().Height, "Window height")
	runCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :2112)")
}

// eventLogger logs every interaction event at debug level.
type eventLogger struct {
	logger *slog.Logger
}

func (l eventLogger) EmitEvent(ev holokit.InteractionEvent) {
	l.logger.Debug(ev.Type.String(),
		"entity", ev.EntityName,
		"source", ev.SourceID,
		"session", ev.Session,
	)
}
