package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics счётчики и гистограммы практики
type Metrics struct {
	registry     *prometheus.Registry
	appointments *prometheus.CounterVec
	patients     *prometheus.CounterVec
	generations  *prometheus.CounterVec
	genLatency   *prometheus.HistogramVec
	updates      *prometheus.CounterVec
	renders      prometheus.Histogram
}

// New регистрирует метрики в собственном реестре
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		appointments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "psy_practice",
			Subsystem: "appointments",
			Name:      "operations_total",
			Help:      "Операции с приёмами",
		}, []string{"op", "result"}),
		patients: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "psy_practice",
			Subsystem: "patients",
			Name:      "operations_total",
			Help:      "Операции с карточками пациентов",
		}, []string{"op", "result"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "psy_practice",
			Subsystem: "generation",
			Name:      "jobs_total",
			Help:      "Завершённые задачи генерации",
		}, []string{"kind", "result"}),
		genLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "psy_practice",
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Длительность задач генерации",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "psy_practice",
			Subsystem: "bot",
			Name:      "updates_total",
			Help:      "Обработанные обновления Telegram",
		}, []string{"type"}),
		renders: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "psy_practice",
			Subsystem: "render",
			Name:      "week_seconds",
			Help:      "Время отрисовки недельной сетки",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
	reg.MustRegister(
		m.appointments,
		m.patients,
		m.generations,
		m.genLatency,
		m.updates,
		m.renders,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler отдаёт метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveAppointment(op string, err error) {
	if m == nil {
		return
	}
	m.appointments.WithLabelValues(op, result(err)).Inc()
}

func (m *Metrics) ObservePatient(op string, err error) {
	if m == nil {
		return
	}
	m.patients.WithLabelValues(op, result(err)).Inc()
}

func (m *Metrics) ObserveGeneration(kind string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(kind, result(err)).Inc()
	m.genLatency.WithLabelValues(kind).Observe(seconds)
}

func (m *Metrics) ObserveUpdate(kind string) {
	if m == nil {
		return
	}
	m.updates.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveRender(seconds float64) {
	if m == nil {
		return
	}
	m.renders.Observe(seconds)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
