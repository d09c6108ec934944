package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query engine Prometheus metrics.
var (
	FilterRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stylist",
			Name:      "filter_requests_total",
			Help:      "Total number of filter invocations",
		},
		[]string{"entry", "outcome"}, // outcome: ok / empty / unavailable / error
	)

	RecommendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stylist",
			Name:      "recommend_requests_total",
			Help:      "Total number of recommendation invocations",
		},
		[]string{"outcome"},
	)

	ChatToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stylist",
			Name:      "chat_tool_calls_total",
			Help:      "Tool calls dispatched by the chat orchestrator",
		},
		[]string{"tool"},
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(FilterRequestsTotal)
	prometheus.MustRegister(RecommendRequestsTotal)
	prometheus.MustRegister(ChatToolCallsTotal)
	engineMetricsRegistered = true
}
