package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CommandsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bot",
		Name:      "commands_total",
		Help:      "Total handled bot commands by command name and outcome.",
	}, []string{"command", "outcome"})

	UpdatesDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bot",
		Name:      "updates_dropped_total",
		Help:      "Total inbound updates dropped by the flood limiter.",
	})

	AccessDeniedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bot",
		Name:      "access_denied_total",
		Help:      "Total requests refused because the sender is not the operator.",
	})

	RPCRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bot",
		Name:      "daemon_rpc_requests_total",
		Help:      "Total Transmission RPC calls by method and result.",
	}, []string{"method", "result"})

	RPCDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bot",
		Name:      "daemon_rpc_duration_seconds",
		Help:      "Transmission RPC call duration in seconds.",
		Buckets:   []float64{0.05, 0.1, 0.3, 0.5, 1, 2, 5, 10, 30},
	}, []string{"method"})

	TorrentsAddedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bot",
		Name:      "torrents_added_total",
		Help:      "Total torrents successfully submitted to the daemon.",
	})
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		CommandsTotal,
		UpdatesDroppedTotal,
		AccessDeniedTotal,
		RPCRequestsTotal,
		RPCDuration,
		TorrentsAddedTotal,
	)
}
