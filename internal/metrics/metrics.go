package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

// Collector bundles the service's prometheus metrics on a private registry.
type Collector struct {
	reg *prometheus.Registry

	ReportsIngested prometheus.Counter
	ReportsRejected prometheus.Counter
	ReportsStale    prometheus.Counter

	CommuteQueries prometheus.Counter

	BroadcastsSent    prometheus.Counter
	BroadcastsDropped prometheus.Counter
	LiveSubscribers   prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		ReportsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "commute_position_reports_ingested_total",
			Help: "Position reports accepted and applied to the store.",
		}),
		ReportsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "commute_position_reports_rejected_total",
			Help: "Position reports rejected for malformed or out-of-range payloads.",
		}),
		ReportsStale: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "commute_position_reports_stale_total",
			Help: "Position reports discarded for arriving out of timestamp order.",
		}),
		CommuteQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "commute_status_queries_total",
			Help: "Rider commute-status queries served.",
		}),
		BroadcastsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "commute_live_broadcasts_sent_total",
			Help: "Position updates delivered to live subscribers.",
		}),
		BroadcastsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "commute_live_broadcasts_dropped_total",
			Help: "Position updates dropped because a subscriber buffer was full.",
		}),
		LiveSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "commute_live_subscribers",
			Help: "Currently connected live subscriptions.",
		}),
	}

	reg.MustRegister(
		c.ReportsIngested,
		c.ReportsRejected,
		c.ReportsStale,
		c.CommuteQueries,
		c.BroadcastsSent,
		c.BroadcastsDropped,
		c.LiveSubscribers,
	)

	return c
}

// Handler serves the registry in the prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
