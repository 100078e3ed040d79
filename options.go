package formtree

import (
	"io"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// Option configures the engine.
type Option func(*Options)

// Options holds all engine configuration.
type Options struct {
	// Validation
	MaxErrors       int  // 0 means unlimited
	ValidateFormats bool // run format-tag checks during validation

	// Reference resolution
	MaxRefDepth int // bound on $ref chain length per node

	// Input-range conversion
	NumberStep float64 // epsilon converting exclusive number bounds

	// Document cache
	CacheSize int

	// HTTP loader
	HTTPTimeout time.Duration

	// Batch validation
	WorkerCount int

	// Logging
	Logger logrus.FieldLogger
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return &Options{
		MaxErrors:       0,
		ValidateFormats: true,
		MaxRefDepth:     32,
		NumberStep:      0.01,
		CacheSize:       128,
		HTTPTimeout:     30 * time.Second,
		WorkerCount:     runtime.NumCPU(),
		Logger:          log,
	}
}

// WithMaxErrors caps the number of issues a validation pass reports.
// Use 0 for unlimited.
func WithMaxErrors(max int) Option {
	return func(o *Options) {
		o.MaxErrors = max
	}
}

// WithFormatValidation enables or disables format-tag checking.
func WithFormatValidation(enable bool) Option {
	return func(o *Options) {
		o.ValidateFormats = enable
	}
}

// WithMaxRefDepth bounds the length of a $ref chain followed while
// building one node. Chains beyond the bound fail with
// CyclicReferenceError.
func WithMaxRefDepth(depth int) Option {
	return func(o *Options) {
		if depth > 0 {
			o.MaxRefDepth = depth
		}
	}
}

// WithNumberStep sets the epsilon used to convert an exclusive number
// bound into an inclusive input bound. Validation semantics are not
// affected; exclusivity stays exact there.
func WithNumberStep(step float64) Option {
	return func(o *Options) {
		if step > 0 {
			o.NumberStep = step
		}
	}
}

// WithCacheSize sets the document cache capacity.
func WithCacheSize(size int) Option {
	return func(o *Options) {
		if size > 0 {
			o.CacheSize = size
		}
	}
}

// WithHTTPTimeout sets the timeout of the default http/https loader.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout > 0 {
			o.HTTPTimeout = timeout
		}
	}
}

// WithWorkerCount sets the number of workers used for batch validation.
// Defaults to runtime.NumCPU().
func WithWorkerCount(count int) Option {
	return func(o *Options) {
		if count > 0 {
			o.WorkerCount = count
		}
	}
}

// WithLogger sets the logger. By default logging is discarded.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *Options) {
		if log != nil {
			o.Logger = log
		}
	}
}
