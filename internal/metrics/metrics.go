package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests"},
		[]string{"route", "method", "status"},
	)
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request duration seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	InFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "http_in_flight_requests", Help: "In-flight HTTP requests"},
	)

	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "auth_logins_total", Help: "Login attempts by result"},
		[]string{"result"},
	)
	CatalogWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "catalog_writes_total", Help: "Catalog writes by entity and operation"},
		[]string{"entity", "op"},
	)
	MailEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "mail_events_total", Help: "Mail events by routing key and outcome"},
		[]string{"key", "result"},
	)
)

// MustRegister registers everything on reg, or on the default registry when reg is nil.
func MustRegister(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(RequestsTotal, ReqDuration, InFlight, Logins, CatalogWrites, MailEvents)
}
