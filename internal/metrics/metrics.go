package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PollCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sniperscope_poll_cycles_total",
		Help: "Completed feed poll cycles.",
	})

	FeedErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sniperscope_feed_errors_total",
		Help: "Feed failures by kind.",
	}, []string{"kind"}) // kind: unavailable|decode

	OpportunitiesDetected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sniperscope_opportunities_detected_total",
		Help: "Opportunities that cleared the filter.",
	})

	DedupeRotations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sniperscope_dedupe_rotations_total",
		Help: "Full clears of the seen-pairs set.",
	})

	StoreSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sniperscope_opportunity_store_size",
		Help: "Opportunities currently held in the store.",
	})

	SnipesSimulated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sniperscope_snipes_simulated_total",
		Help: "Simulated snipe submissions.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
