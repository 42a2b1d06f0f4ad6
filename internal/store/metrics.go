package store

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Store-level Prometheus metrics. All metrics carry a "store" label whose value
// is the Group set in ProviderConfig.
var (
	// HitsTotal counts lookups that found an entry.
	HitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_store_hits_total",
			Help: "Total number of session store hits.",
		},
		[]string{"store"},
	)

	// MissesTotal counts lookups that found nothing.
	MissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_store_misses_total",
			Help: "Total number of session store misses.",
		},
		[]string{"store"},
	)

	// EvictionsTotal counts entries evicted by capacity, expiry or deletion.
	EvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_store_evictions_total",
			Help: "Total number of entries evicted from the session store.",
		},
		[]string{"store"},
	)

	// ErrorsTotal counts backend failures per operation.
	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_store_errors_total",
			Help: "Total number of failed session store operations.",
		},
		[]string{"store", "operation"},
	)
)

func init() {
	prometheus.MustRegister(
		HitsTotal,
		MissesTotal,
		EvictionsTotal,
		ErrorsTotal,
	)
}

// entriesCollector reports the current entry count of one store group by
// calling lenFunc at scrape time, so backend-side expiry is reflected.
type entriesCollector struct {
	desc    *prometheus.Desc
	lenFunc func() int
}

func (c *entriesCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *entriesCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.lenFunc()))
}

var (
	entriesCollectorMu sync.Mutex
	entriesCollectors  = make(map[string]*entriesCollector)
	// entriesReg is swapped by tests for an isolated registry.
	entriesReg prometheus.Registerer = prometheus.DefaultRegisterer
)

// registerEntriesCollector registers the entries gauge for group, replacing
// any collector previously registered for the same group.
func registerEntriesCollector(group string, lenFunc func() int) {
	c := &entriesCollector{
		desc: prometheus.NewDesc(
			"session_store_entries",
			"Current number of entries in the session store.",
			nil,
			prometheus.Labels{"store": group},
		),
		lenFunc: lenFunc,
	}

	entriesCollectorMu.Lock()
	defer entriesCollectorMu.Unlock()

	if old, ok := entriesCollectors[group]; ok {
		entriesReg.Unregister(old)
	}
	entriesCollectors[group] = c
	_ = entriesReg.Register(c)
}

func unregisterEntriesCollector(group string) {
	entriesCollectorMu.Lock()
	defer entriesCollectorMu.Unlock()

	if c, ok := entriesCollectors[group]; ok {
		entriesReg.Unregister(c)
		delete(entriesCollectors, group)
	}
}
