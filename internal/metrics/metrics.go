package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Requests served, by route pattern, method and status code.",
		},
		[]string{"route", "method", "code"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "Time to serve a request, by route pattern.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"route", "method"},
	)
	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_http_requests_in_flight",
			Help: "Requests currently being served.",
		},
	)

	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_upstream_requests_total",
			Help: "Calls made to the storefront backend, by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_upstream_request_duration_seconds",
			Help:    "Latency of calls to the storefront backend.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storefront_upstream_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open).",
		},
		[]string{"name"},
	)

	cartRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_refreshes_total",
			Help: "Cart mirror refreshes, by result.",
		},
		[]string{"result"},
	)
	cartMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Cart mutations attempted, by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	cartItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_cart_items",
			Help: "Total item quantity in the cart mirror.",
		},
	)

	geocoderThrottledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_geocoder_throttled_total",
			Help: "Location lookups refused by the geocoder rate limit.",
		},
	)
)

// Upstream outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomeTransport = "transport_error"
)

func ObserveUpstream(operation, outcome string, duration time.Duration) {
	upstreamRequestsTotal.WithLabelValues(operation, outcome).Inc()
	upstreamRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func SetBreakerState(name string, state float64) {
	breakerState.WithLabelValues(name).Set(state)
}

func CartRefreshed(result string, totalItems int) {
	cartRefreshesTotal.WithLabelValues(result).Inc()
	cartItems.Set(float64(totalItems))
}

func CartMutation(operation, outcome string) {
	cartMutationsTotal.WithLabelValues(operation, outcome).Inc()
}

func GeocoderThrottled() {
	geocoderThrottledTotal.Inc()
}

type codeRecorder struct {
	http.ResponseWriter
	code int
}

func (c *codeRecorder) WriteHeader(code int) {
	c.code = code
	c.ResponseWriter.WriteHeader(code)
}

// routeOf strips the method from a ServeMux pattern, "GET /api/v1/cart"
// becoming "/api/v1/cart". Unrouted requests share one label so 404 probes
// cannot grow the series count.
func routeOf(pattern string) string {
	if pattern == "" {
		return "unmatched"
	}
	if _, route, found := strings.Cut(pattern, " "); found {
		return route
	}
	return pattern
}

// Middleware must wrap the ServeMux directly: the route label is read from
// r.Pattern, which the mux sets on the request it is handed.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		start := time.Now()
		rec := &codeRecorder{ResponseWriter: w, code: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := routeOf(r.Pattern)
		httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rec.code)).Inc()
		httpRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the default registry, which already carries the Go and
// process collectors.
func Handler() http.Handler {
	return promhttp.Handler()
}
