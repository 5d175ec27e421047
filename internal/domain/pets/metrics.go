package pets

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var queryOutcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "petstore_query_outcomes_total",
		Help: "Natural-language queries by resolution path (llm, no_tool, fallback)",
	},
	[]string{"outcome"},
)
