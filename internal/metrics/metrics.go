// Package metrics exposes ledger activity as Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
)

const namespace = "hotelbudget"

// Collector records mutations, refreshes, the current summary and HTTP traffic.
type Collector struct {
	registry *prometheus.Registry

	mutations       *prometheus.CounterVec
	mutationLatency *prometheus.HistogramVec
	refreshes       *prometheus.CounterVec
	refreshLatency  prometheus.Histogram
	rollupCount     *prometheus.GaugeVec
	rollupAmount    *prometheus.GaugeVec
	profitOrLoss    prometheus.Gauge
	requests        *prometheus.CounterVec
}

// New registers every collector on a private registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Ledger writes by category and outcome.",
		}, []string{"category", "outcome"}),
		mutationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mutation_duration_seconds",
			Help:      "Time from submission to refreshed summary.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"category"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summary_refreshes_total",
			Help:      "Summary refreshes by result.",
		}, []string{"result"}),
		refreshLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "summary_refresh_duration_seconds",
			Help:      "Duration of the four-category re-read.",
			Buckets:   prometheus.DefBuckets,
		}),
		rollupCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "category_records",
			Help:      "Records per category in the current summary.",
		}, []string{"category"}),
		rollupAmount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "category_total_amount",
			Help:      "Summed amount per category in the current summary.",
		}, []string{"category"}),
		profitOrLoss: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "profit_or_loss",
			Help:      "Income minus expenditure in the current summary.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.mutations, c.mutationLatency,
		c.refreshes, c.refreshLatency,
		c.rollupCount, c.rollupAmount, c.profitOrLoss,
		c.requests,
	)
	return c
}

// ObserveMutation counts one write attempt.
func (c *Collector) ObserveMutation(category models.Category, outcome string, elapsed time.Duration) {
	c.mutations.WithLabelValues(string(category), outcome).Inc()
	if outcome == "ok" {
		c.mutationLatency.WithLabelValues(string(category)).Observe(elapsed.Seconds())
	}
}

// ObserveRefresh counts one summary refresh.
func (c *Collector) ObserveRefresh(ok bool, elapsed time.Duration) {
	result := "ok"
	if !ok {
		result = "error"
	}
	c.refreshes.WithLabelValues(result).Inc()
	c.refreshLatency.Observe(elapsed.Seconds())
}

// SetSummary publishes the rollups of a freshly swapped summary.
func (c *Collector) SetSummary(s models.FinancialSummary) {
	for _, category := range models.Categories() {
		r := s.Rollup(category)
		c.rollupCount.WithLabelValues(string(category)).Set(float64(r.Count))
		c.rollupAmount.WithLabelValues(string(category)).Set(r.TotalAmount.InexactFloat64())
	}
	c.profitOrLoss.Set(s.ProfitOrLoss.InexactFloat64())
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Middleware counts requests by matched route.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		c.requests.WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
	}
}
