package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics коллектор метрик сервиса
// У каждого экземпляра свой registry, поэтому New можно вызывать в тестах многократно
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration     *prometheus.HistogramVec
	DBQueryErrors       *prometheus.CounterVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec

	ReservationsCreated  *prometheus.CounterVec
	ReservationsRejected *prometheus.CounterVec
	SlotStatusChanges    *prometheus.CounterVec
	QuotesSaved          *prometheus.CounterVec
	PhotosUploaded       *prometheus.CounterVec
}

// New создает и регистрирует все метрики
func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	f := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		ReservationsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservations_created_total",
			Help:        "Reservations successfully created",
			ConstLabels: constLabels,
		}, []string{"slot"}),

		ReservationsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservations_rejected_total",
			Help:        "Reservations rejected by validation or availability",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		SlotStatusChanges: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_status_changes_total",
			Help:        "Manual slot block/unblock operations",
			ConstLabels: constLabels,
		}, []string{"status"}),

		QuotesSaved: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "quotes_saved_total",
			Help:        "Quotes saved by the admin",
			ConstLabels: constLabels,
		}, []string{"status", "notified"}),

		PhotosUploaded: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "photos_uploaded_total",
			Help:        "Photos accepted by the uploader",
			ConstLabels: constLabels,
		}, []string{"content_type"}),
	}
}

// Handler HTTP-обработчик для scrape
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry нужен тестам для чтения значений
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP записывает метрики одного HTTP запроса
func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// Бизнес-метрики. Методы безопасны для nil: при выключенных метриках коллектор не создается

func (m *Metrics) ReservationCreated(slot string) {
	if m == nil {
		return
	}
	m.ReservationsCreated.WithLabelValues(slot).Inc()
}

func (m *Metrics) ReservationRejected(reason string) {
	if m == nil {
		return
	}
	m.ReservationsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) SlotStatusChanged(status string) {
	if m == nil {
		return
	}
	m.SlotStatusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) QuoteSaved(status string, notified bool) {
	if m == nil {
		return
	}
	m.QuotesSaved.WithLabelValues(status, strconv.FormatBool(notified)).Inc()
}

func (m *Metrics) PhotoUploaded(contentType string) {
	if m == nil {
		return
	}
	m.PhotosUploaded.WithLabelValues(contentType).Inc()
}
