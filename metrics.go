package lru

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the operations performed on a Cache. It implements
// prometheus.Collector and has to be registered by the caller.
//
// Every counter moves by at most one per cache call, so comparing operation
// counts with elapsed time is a direct check that calls stay constant-time as
// the cache grows.
type Metrics struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	inserts   prometheus.Counter
	updates   prometheus.Counter
	evictions prometheus.Counter
	removals  prometheus.Counter
	entries   prometheus.Gauge
}

// NewMetrics creates the metrics of one cache. All series carry a "cache"
// label set to name.
func NewMetrics(namespace, name string) *Metrics {
	labels := prometheus.Labels{"cache": name}
	counter := func(metric, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "lru",
			Name:        metric,
			Help:        help,
			ConstLabels: labels,
		})
	}
	return &Metrics{
		hits:      counter("hits_total", "Number of lookups that found their key."),
		misses:    counter("misses_total", "Number of lookups that did not find their key."),
		inserts:   counter("inserts_total", "Number of keys added to the cache."),
		updates:   counter("updates_total", "Number of values replaced for a present key."),
		evictions: counter("evictions_total", "Number of entries evicted to make room for a new key."),
		removals:  counter("removals_total", "Number of entries removed explicitly."),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "lru",
			Name:        "entries",
			Help:        "Number of live entries.",
			ConstLabels: labels,
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.hits, m.misses, m.inserts, m.updates, m.evictions, m.removals, m.entries}
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors() {
		c.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors() {
		c.Collect(ch)
	}
}

// The recording helpers below are no-ops on a nil *Metrics so the cache
// does not have to check whether metrics are enabled.

func (m *Metrics) lookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.hits.Inc()
	} else {
		m.misses.Inc()
	}
}

func (m *Metrics) set(present, evicted bool, entries int) {
	if m == nil {
		return
	}
	if present {
		m.updates.Inc()
	} else {
		m.inserts.Inc()
	}
	if evicted {
		m.evictions.Inc()
	}
	m.entries.Set(float64(entries))
}

func (m *Metrics) remove(entries int) {
	if m == nil {
		return
	}
	m.removals.Inc()
	m.entries.Set(float64(entries))
}

func (m *Metrics) setEntries(entries int) {
	if m == nil {
		return
	}
	m.entries.Set(float64(entries))
}
