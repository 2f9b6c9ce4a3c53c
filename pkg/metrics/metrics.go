package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса. Все методы безопасны для nil-получателя,
// чтобы код мог работать с выключенными метриками без проверок.
type Metrics struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbPool          *prometheus.GaugeVec
	reservations    *prometheus.CounterVec
	slotsGenerated  prometheus.Counter
	slotsSkipped    prometheus.Counter
	cacheLookups    *prometheus.CounterVec
	publishedEvents *prometheus.CounterVec
}

// New регистрирует метрики в переданном registerer.
// В production передается prometheus.DefaultRegisterer, в тестах - prometheus.NewRegistry().
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency by operation",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbQueryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Failed database queries by operation",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		dbPool: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),
		reservations: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_attempts_total",
			Help:        "Reservation attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		slotsGenerated: f.NewCounter(prometheus.CounterOpts{
			Name:        "slots_generated_total",
			Help:        "Availability slots inserted by the slot generator",
			ConstLabels: constLabels,
		}),
		slotsSkipped: f.NewCounter(prometheus.CounterOpts{
			Name:        "slots_generation_skipped_total",
			Help:        "Slots skipped by the generator because they already existed",
			ConstLabels: constLabels,
		}),
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "browse_cache_lookups_total",
			Help:        "Browse cache lookups by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		publishedEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "events_published_total",
			Help:        "Domain events published by routing key and result",
			ConstLabels: constLabels,
		}, []string{"routing_key", "result"}),
	}
}

// ObserveHTTP записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPool обновляет состояние пула соединений
func (m *Metrics) SetDBPool(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbPool.WithLabelValues("open").Set(float64(open))
	m.dbPool.WithLabelValues("in_use").Set(float64(inUse))
	m.dbPool.WithLabelValues("idle").Set(float64(idle))
}

// RecordReservation считает попытку бронирования с результатом
// (created, replayed, already_reserved, not_found, unauthorized, error)
func (m *Metrics) RecordReservation(outcome string) {
	if m == nil {
		return
	}
	m.reservations.WithLabelValues(outcome).Inc()
}

// RecordGeneration считает результат генерации слотов
func (m *Metrics) RecordGeneration(generated, skipped int) {
	if m == nil {
		return
	}
	m.slotsGenerated.Add(float64(generated))
	m.slotsSkipped.Add(float64(skipped))
}

// RecordCacheLookup считает попадания/промахи кэша
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// RecordPublish считает публикацию события
func (m *Metrics) RecordPublish(routingKey string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.publishedEvents.WithLabelValues(routingKey, result).Inc()
}
