package observability

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TurnsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "advisor_turns_total",
			Help: "User turns processed",
		},
	)
	RecommendationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "advisor_recommendations_total",
			Help: "Recommendation lists served with at least one candidate",
		},
	)
	CollaboratorFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "advisor_collaborator_failures_total",
			Help: "Text-generation calls that degraded to the fallback reply",
		},
	)
	ClosingsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "advisor_closings_total",
			Help: "Deferred closing pitches delivered",
		},
	)
)

func Start(port string) {
	prometheus.MustRegister(
		TurnsTotal,
		RecommendationsTotal,
		CollaboratorFailuresTotal,
		ClosingsTotal,
	)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(":"+port, nil); err != nil {
			log.Printf("[Metrics] server stopped: %v", err)
		}
	}()
}
