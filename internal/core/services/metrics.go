package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	historyOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kanso",
		Subsystem: "history",
		Name:      "operations_total",
		Help:      "History store operations by kind and outcome.",
	}, []string{"operation", "outcome"})

	historyStores = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "kanso",
		Subsystem: "history",
		Name:      "open_stores",
		Help:      "Number of per-user history stores held in memory.",
	})
)
