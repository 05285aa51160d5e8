package metrics

import "github.com/prometheus/client_golang/prometheus"

type Observer interface {
	Observe(val float64, labels ...string)

	// for now we will tightly couple to the prometheus collector type
	// the go otel metrics sdk also has a prometheus adapter that implements this interface.
	prometheus.Collector
}

type Metrics struct {
	TMIMsgsCount     Observer
	TMICommandCount  Observer
	CodeBlockCount   Observer
	PasteCount       Observer
	PasteLatency     Observer
	RateLimitedCount Observer
	CooldownEntries  Observer
}

func (m Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.TMIMsgsCount,
		m.TMICommandCount,
		m.CodeBlockCount,
		m.PasteCount,
		m.PasteLatency,
		m.RateLimitedCount,
		m.CooldownEntries,
	}
}

// New creates the bot's metrics under the given namespace.
func New(namespace string) Metrics {
	return Metrics{
		TMIMsgsCount: NewPromCounter(prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tmi_messages_total",
			Help:      "Number of chat messages received.",
		})),
		TMICommandCount: NewPromCounterVec(prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tmi_commands_total",
			Help:      "Number of chat commands invoked.",
		}, []string{"command"})),
		CodeBlockCount: NewPromCounter(prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "code_blocks_total",
			Help:      "Number of chat messages classified as code blocks.",
		})),
		PasteCount: NewPromCounterVec(prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pastes_total",
			Help:      "Number of paste submissions by result.",
		}, []string{"result"})),
		PasteLatency: NewPromHistogram(prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "paste_latency_seconds",
			Help:      "Time taken to submit a paste.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		})),
		RateLimitedCount: NewPromCounter(prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Number of code blocks dropped by the per-user cooldown.",
		})),
		CooldownEntries: NewPromGauge(prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cooldown_entries",
			Help:      "Number of users tracked by the cooldown limiter.",
		})),
	}
}
