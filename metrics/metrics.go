// Copyright (c) 2025 The NextSwap developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "net/http"

// metrics is a singleton that provides global access to a set of meters.
// It defaults to a no-op implementation; the daemon swaps in prometheus.
var metrics Metrics = noopMetrics{}

// Metrics defines the interface for metrics service implementations.
type Metrics interface {
	GetOrCreateCountMeter(name string) CountMeter
	GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter
	GetOrCreateGaugeMeter(name string) GaugeMeter
	GetOrCreateHandler() http.Handler
}

// CountMeter is a cumulative count.
type CountMeter interface {
	Add(int64)
}

// CountVecMeter is a cumulative count with labels.
type CountVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

// GaugeMeter is a point-in-time value.
type GaugeMeter interface {
	Set(int64)
	Add(int64)
}

// Counter returns a count meter with the given name.
func Counter(name string) CountMeter {
	return metrics.GetOrCreateCountMeter(name)
}

// CounterVec returns a labeled count meter with the given name.
func CounterVec(name string, labels []string) CountVecMeter {
	return metrics.GetOrCreateCountVecMeter(name, labels)
}

// Gauge returns a gauge meter with the given name.
func Gauge(name string) GaugeMeter {
	return metrics.GetOrCreateGaugeMeter(name)
}

// HTTPHandler returns the http handler for scraping metrics.
func HTTPHandler() http.Handler {
	return metrics.GetOrCreateHandler()
}

// LazyLoadCounter resolves the meter on first use, so package-level
// meters pick up a backend installed after package init.
func LazyLoadCounter(name string) func() CountMeter {
	var meter CountMeter
	return func() CountMeter {
		if meter == nil {
			meter = Counter(name)
		}
		return meter
	}
}

// LazyLoadCounterVec is the labeled variant of LazyLoadCounter.
func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	var meter CountVecMeter
	return func() CountVecMeter {
		if meter == nil {
			meter = CounterVec(name, labels)
		}
		return meter
	}
}

// LazyLoadGauge resolves the gauge on first use.
func LazyLoadGauge(name string) func() GaugeMeter {
	var meter GaugeMeter
	return func() GaugeMeter {
		if meter == nil {
			meter = Gauge(name)
		}
		return meter
	}
}

type noopMetrics struct{}

type noopMeter struct{}

func (noopMeter) Add(int64)                             {}
func (noopMeter) AddWithLabel(int64, map[string]string) {}
func (noopMeter) Set(int64)                             {}

func (noopMetrics) GetOrCreateCountMeter(string) CountMeter { return noopMeter{} }

func (noopMetrics) GetOrCreateCountVecMeter(string, []string) CountVecMeter { return noopMeter{} }

func (noopMetrics) GetOrCreateGaugeMeter(string) GaugeMeter { return noopMeter{} }

func (noopMetrics) GetOrCreateHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotImplemented)
	})
}
