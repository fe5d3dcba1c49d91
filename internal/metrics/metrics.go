// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics provides an interface with a prometheus-backed
// implementation and a no-op implementation, chosen once at process
// start. corepool depends only on the Metrics interface, so embedding
// the engine in a process that never wants Prometheus costs nothing.
package metrics

import "net/http"

// Metrics is the instrumentation surface corepool and cmd/poolctl use.
// Implementations must be safe for concurrent use.
type Metrics interface {
	GetOrCreateCountMeter(name string) CountMeter
	GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter
	GetOrCreateGaugeMeter(name string) GaugeMeter
	GetOrCreateGaugeVecMeter(name string, labels []string) GaugeVecMeter
	GetOrCreateHandler() http.Handler
}

type CountMeter interface {
	Add(i int64)
}

type CountVecMeter interface {
	AddWithLabel(i int64, labels map[string]string)
}

type GaugeMeter interface {
	Set(i int64)
	Add(i int64)
}

type GaugeVecMeter interface {
	GaugeWithLabel(i int64, labels map[string]string)
}

var defaultMetrics Metrics = defaultNoopMetrics()

// Default returns the process-wide Metrics implementation. It starts out
// as a no-op and is swapped by EnablePrometheus.
func Default() Metrics { return defaultMetrics }

// EnablePrometheus switches the process-wide default to a Prometheus-
// backed implementation. It is idempotent: calling it twice does not
// reset already-registered collectors.
func EnablePrometheus() {
	if _, ok := defaultMetrics.(*prometheusMetrics); !ok {
		defaultMetrics = newPrometheusMetrics()
	}
}
