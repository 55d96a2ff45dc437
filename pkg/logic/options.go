package logic

import (
	"github.com/hsdfat8/kitcheck/internal/domain/models"
	"github.com/hsdfat8/kitcheck/pkg/repository"
)

// DefaultHeavyLensThresholdKg is the lens weight above which rod support is advised
const DefaultHeavyLensThresholdKg = 2.0

// AdapterLookup is the part of the adapter registry the resolver needs
type AdapterLookup interface {
	FindCompatibleAdapters(fromMount, toMount string) []models.Adapter
}

// Options tunes a validation pass
type Options struct {
	Registry             AdapterLookup
	HeavyLensThresholdKg float64
	Overrides            []OverrideRule
}

// Option mutates Options
type Option func(*Options)

var defaultRegistry = repository.NewDefaultAdapterRegistry()

// DefaultOptions returns the built-in registry, override table and thresholds
func DefaultOptions() Options {
	return Options{
		Registry:             defaultRegistry,
		HeavyLensThresholdKg: DefaultHeavyLensThresholdKg,
		Overrides:            DefaultOverrideRules(),
	}
}

// WithRegistry replaces the adapter registry
func WithRegistry(registry AdapterLookup) Option {
	return func(o *Options) {
		o.Registry = registry
	}
}

// WithHeavyLensThreshold sets the lens weight advisory threshold in kilograms
func WithHeavyLensThreshold(kg float64) Option {
	return func(o *Options) {
		o.HeavyLensThresholdKg = kg
	}
}

// WithOverrides replaces the vendor-specific override table
func WithOverrides(rules []OverrideRule) Option {
	return func(o *Options) {
		o.Overrides = rules
	}
}

func newOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.HeavyLensThresholdKg <= 0 {
		o.HeavyLensThresholdKg = DefaultHeavyLensThresholdKg
	}
	return o
}
