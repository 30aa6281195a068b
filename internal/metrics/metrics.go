package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	serviceOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "alugaki",
			Name:      "service_operations_total",
			Help:      "Core service operations by service and operation.",
		},
		[]string{"service", "op"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "alugaki",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(serviceOps, httpRequests)
	})
}

// IncOp increments the counter for a service operation.
func IncOp(service, op string) {
	serviceOps.WithLabelValues(service, op).Inc()
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}
