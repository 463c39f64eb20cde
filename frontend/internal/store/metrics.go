package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opGetAll = "get_all"
	opEdit   = "edit"
	opDelete = "delete"
)

var operationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "postadmin",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Post store operations by outcome",
	},
	[]string{"op", "result"},
)

func observe(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	operationsTotal.WithLabelValues(op, result).Inc()
}
