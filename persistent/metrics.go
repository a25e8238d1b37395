package persistent

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	synchronizeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "preferences_synchronize_total",
		Help: "The total number of synchronize calls that reached the backend",
	}, []string{"backend", "result"})

	synchronizeKeys = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "preferences_synchronize_keys_total",
		Help: "The total number of keys flushed to the backend",
	}, []string{"backend", "op"})
)
