// Package promstats exports holokit interaction events as Prometheus metrics.
package promstats

import (
	"net/http"

	"github.com/phanxgames/holokit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sink is a holokit.EventSink that records every event it receives. Like a
// Session it is not safe for concurrent use.
type Sink struct {
	events       *prometheus.CounterVec
	gazeDistance prometheus.Histogram
	manipulating prometheus.Gauge
	placing      prometheus.Gauge
	sources      prometheus.Gauge

	// pressed holds the sources counted by the sources gauge.
	pressed map[holokit.SourceID]struct{}
}

// NewSink creates a sink and registers its metrics with reg. A nil reg
// registers with prometheus.DefaultRegisterer.
func NewSink(reg prometheus.Registerer) (*Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &Sink{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "holokit_events_total",
				Help: "Total number of interaction events by type",
			},
			[]string{"type"},
		),
		gazeDistance: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "holokit_gaze_enter_distance_meters",
			Help:    "Distance of the gaze hit when an entity gains focus",
			Buckets: []float64{0.5, 1, 2, 3, 5, 8, 13},
		}),
		manipulating: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "holokit_manipulations_active",
			Help: "Number of entities being moved by hand",
		}),
		placing: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "holokit_placements_active",
			Help: "Number of entities being placed on surfaces",
		}),
		sources: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "holokit_sources_pressed",
			Help: "Number of interaction sources currently pressed",
		}),
		pressed: make(map[holokit.SourceID]struct{}),
	}
	for _, c := range []prometheus.Collector{s.events, s.gazeDistance, s.manipulating, s.placing, s.sources} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// EmitEvent implements holokit.EventSink.
func (s *Sink) EmitEvent(ev holokit.InteractionEvent) {
	s.events.WithLabelValues(ev.Type.String()).Inc()
	switch ev.Type {
	case holokit.EventGazeEnter:
		s.gazeDistance.Observe(ev.Distance)
	case holokit.EventManipulationStart:
		s.manipulating.Inc()
	case holokit.EventManipulationEnd:
		s.manipulating.Dec()
	case holokit.EventPlacementStart:
		s.placing.Inc()
	case holokit.EventPlacementEnd:
		s.placing.Dec()
	case holokit.EventSourcePressed:
		if _, ok := s.pressed[ev.SourceID]; !ok {
			s.pressed[ev.SourceID] = struct{}{}
			s.sources.Inc()
		}
	case holokit.EventSourceReleased, holokit.EventSourceLost:
		if _, ok := s.pressed[ev.SourceID]; ok {
			delete(s.pressed, ev.SourceID)
			s.sources.Dec()
		}
	}
}

// Handler returns an HTTP handler serving the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
