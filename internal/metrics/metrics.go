package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fire_alert"

// Metrics - счетчики, гистограммы и датчики сервиса оповещений
type Metrics struct {
	ConnectedClients prometheus.Gauge

	// Метрики цикла обхода клиентов
	Sweeps        *prometheus.CounterVec // labels: outcome={ok,error}
	SweepDuration prometheus.Histogram

	// Метрики доставки оповещений
	AlertsSent     prometheus.Counter
	HazardsAlerted prometheus.Counter
	SendFailures   prometheus.Counter
	SafePoints     *prometheus.CounterVec // labels: tier
	NoFireReplies  prometheus.Counter

	InboundMessages   *prometheus.CounterVec // labels: result={accepted,invalid,rate_limited}
	HazardCache       *prometheus.CounterVec // labels: result={hit,miss,error}
	WebhookDeliveries *prometheus.CounterVec // labels: outcome={success,error,dropped}
}

// NewMetrics создает метрики и регистрирует их в реестре Prometheus по умолчанию
func NewMetrics() *Metrics {
	m := newMetrics(true)

	prometheus.MustRegister(
		m.ConnectedClients,
		m.Sweeps,
		m.SweepDuration,
		m.AlertsSent,
		m.HazardsAlerted,
		m.SendFailures,
		m.SafePoints,
		m.NoFireReplies,
		m.InboundMessages,
		m.HazardCache,
		m.WebhookDeliveries,
	)

	return m
}

// NewMetricsForTesting создает незарегистрированные метрики, чтобы тесты
// не паниковали с "already registered"
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}

func newMetrics(withHelp bool) *Metrics {
	help := func(s string) string {
		if withHelp {
			return s
		}
		return ""
	}

	return &Metrics{
		ConnectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected_clients",
			Help:      help("Number of registered websocket clients."),
		}),
		Sweeps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeps_total",
			Help:      help("Sweep cycles by outcome."),
		}, []string{"outcome"}),
		SweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      help("Duration of a complete sweep over all clients."),
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		AlertsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_sent_total",
			Help:      help("Fire alert payloads delivered to clients."),
		}),
		HazardsAlerted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hazards_alerted_total",
			Help:      help("Hazards included in delivered alerts."),
		}),
		SendFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "send_failures_total",
			Help:      help("Failed websocket writes."),
		}),
		SafePoints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "safe_points_total",
			Help:      help("Resolved safe points by resolution tier."),
		}, []string{"tier"}),
		NoFireReplies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "no_fire_replies_total",
			Help:      help("Immediate evaluations that found no fires."),
		}),
		InboundMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inbound_messages_total",
			Help:      help("Inbound websocket messages by result."),
		}, []string{"result"}),
		HazardCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hazard_cache_total",
			Help:      help("Active hazard snapshot cache lookups by result."),
		}, []string{"result"}),
		WebhookDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_deliveries_total",
			Help:      help("Alert webhook deliveries by outcome."),
		}, []string{"outcome"}),
	}
}
