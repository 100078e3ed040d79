package formtree

import (
	"sync/atomic"
	"time"
)

// Metrics tracks engine activity using lock-free atomic counters.
// All methods are safe for concurrent use.
type Metrics struct {
	treesBuilt atomic.Uint64

	validationsTotal atomic.Uint64
	validationsValid atomic.Uint64
	validationTimeNs atomic.Uint64

	errorsTotal   atomic.Uint64
	warningsTotal atomic.Uint64

	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordBuild records a completed tree build.
func (m *Metrics) RecordBuild() {
	m.treesBuilt.Add(1)
}

// RecordValidation records a completed validation pass.
func (m *Metrics) RecordValidation(duration time.Duration, result *Result) {
	m.validationsTotal.Add(1)
	if result.Valid {
		m.validationsValid.Add(1)
	}
	m.validationTimeNs.Add(uint64(duration.Nanoseconds()))
	m.errorsTotal.Add(uint64(result.ErrorCount()))
	m.warningsTotal.Add(uint64(result.WarningCount()))
}

// RecordCache records document-cache hit/miss deltas.
func (m *Metrics) RecordCache(hits, misses uint64) {
	m.cacheHits.Add(hits)
	m.cacheMisses.Add(misses)
}

// TreesBuilt returns the number of trees built.
func (m *Metrics) TreesBuilt() uint64 { return m.treesBuilt.Load() }

// ValidationsTotal returns the number of validation passes run.
func (m *Metrics) ValidationsTotal() uint64 { return m.validationsTotal.Load() }

// ValidationRate returns the fraction of passes with a valid outcome.
func (m *Metrics) ValidationRate() float64 {
	total := m.validationsTotal.Load()
	if total == 0 {
		return 0
	}
	return float64(m.validationsValid.Load()) / float64(total)
}

// AverageValidationTime returns the mean duration of a validation pass.
func (m *Metrics) AverageValidationTime() time.Duration {
	total := m.validationsTotal.Load()
	if total == 0 {
		return 0
	}
	return time.Duration(m.validationTimeNs.Load() / total)
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`

	TreesBuilt uint64 `json:"trees_built"`

	ValidationsTotal    uint64  `json:"validations_total"`
	ValidationsValid    uint64  `json:"validations_valid"`
	ValidationRate      float64 `json:"validation_rate"`
	AvgValidationTimeNs uint64  `json:"avg_validation_time_ns"`

	ErrorsTotal   uint64 `json:"errors_total"`
	WarningsTotal uint64 `json:"warnings_total"`

	CacheHits   uint64 `json:"cache_hits"`
	CacheMisses uint64 `json:"cache_misses"`
}

// Snapshot returns a point-in-time copy of all counters.
func (m *Metrics) Snapshot() Snapshot {
	total := m.validationsTotal.Load()

	var rate float64
	var avgNs uint64
	if total > 0 {
		rate = float64(m.validationsValid.Load()) / float64(total)
		avgNs = m.validationTimeNs.Load() / total
	}

	return Snapshot{
		Timestamp:           time.Now(),
		TreesBuilt:          m.treesBuilt.Load(),
		ValidationsTotal:    total,
		ValidationsValid:    m.validationsValid.Load(),
		ValidationRate:      rate,
		AvgValidationTimeNs: avgNs,
		ErrorsTotal:         m.errorsTotal.Load(),
		WarningsTotal:       m.warningsTotal.Load(),
		CacheHits:           m.cacheHits.Load(),
		CacheMisses:         m.cacheMisses.Load(),
	}
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.treesBuilt.Store(0)
	m.validationsTotal.Store(0)
	m.validationsValid.Store(0)
	m.validationTimeNs.Store(0)
	m.errorsTotal.Store(0)
	m.warningsTotal.Store(0)
	m.cacheHits.Store(0)
	m.cacheMisses.Store(0)
}
