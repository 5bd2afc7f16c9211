package location

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// movesTotal counts SetCurrentLocation calls by outcome.
	movesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shramba_location_moves_total",
		Help: "Location moves by result",
	}, []string{"result"})

	// chainLength tracks how many containers a chain lookup walked.
	chainLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "shramba_location_chain_length",
		Help:    "Containers walked per chain lookup",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
	})
)

func observeMove(err error) {
	switch {
	case err == nil:
		movesTotal.WithLabelValues("ok").Inc()
	case errors.Is(err, ErrCycleDetected):
		movesTotal.WithLabelValues("cycle_rejected").Inc()
	case errors.Is(err, ErrSelfReference):
		movesTotal.WithLabelValues("self_rejected").Inc()
	case errors.Is(err, ErrItemNotFound), errors.Is(err, ErrContainerNotFound):
		movesTotal.WithLabelValues("not_found").Inc()
	case errors.Is(err, ErrConflict):
		movesTotal.WithLabelValues("conflict").Inc()
	default:
		movesTotal.WithLabelValues("error").Inc()
	}
}
