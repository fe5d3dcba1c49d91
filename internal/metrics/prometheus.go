// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "incentive_core"

type prometheusMetrics struct {
	counters    sync.Map
	counterVecs sync.Map
	gauges      sync.Map
	gaugeVecs   sync.Map
}

func newPrometheusMetrics() Metrics {
	return &prometheusMetrics{}
}

func (o *prometheusMetrics) GetOrCreateCountMeter(name string) CountMeter {
	if v, ok := o.counters.Load(name); ok {
		return v.(CountMeter)
	}
	meter := o.newCountMeter(name)
	actual, _ := o.counters.LoadOrStore(name, meter)
	return actual.(CountMeter)
}

func (o *prometheusMetrics) GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter {
	if v, ok := o.counterVecs.Load(name); ok {
		return v.(CountVecMeter)
	}
	meter := o.newCountVecMeter(name, labels)
	actual, _ := o.counterVecs.LoadOrStore(name, meter)
	return actual.(CountVecMeter)
}

func (o *prometheusMetrics) GetOrCreateGaugeMeter(name string) GaugeMeter {
	if v, ok := o.gauges.Load(name); ok {
		return v.(GaugeMeter)
	}
	meter := o.newGaugeMeter(name)
	actual, _ := o.gauges.LoadOrStore(name, meter)
	return actual.(GaugeMeter)
}

func (o *prometheusMetrics) GetOrCreateGaugeVecMeter(name string, labels []string) GaugeVecMeter {
	if v, ok := o.gaugeVecs.Load(name); ok {
		return v.(GaugeVecMeter)
	}
	meter := o.newGaugeVecMeter(name, labels)
	actual, _ := o.gaugeVecs.LoadOrStore(name, meter)
	return actual.(GaugeVecMeter)
}

func (o *prometheusMetrics) GetOrCreateHandler() http.Handler {
	return promhttp.Handler()
}

func (o *prometheusMetrics) newCountMeter(name string) CountMeter {
	meter := prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name})
	if err := prometheus.Register(meter); err != nil {
		slog.Warn("unable to register metric", "name", name, "err", err)
	}
	return &promCountMeter{counter: meter}
}

func (o *prometheusMetrics) newCountVecMeter(name string, labels []string) CountVecMeter {
	meter := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name}, labels)
	if err := prometheus.Register(meter); err != nil {
		slog.Warn("unable to register metric", "name", name, "err", err)
	}
	return &promCountVecMeter{counter: meter}
}

func (o *prometheusMetrics) newGaugeMeter(name string) GaugeMeter {
	meter := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name})
	if err := prometheus.Register(meter); err != nil {
		slog.Warn("unable to register metric", "name", name, "err", err)
	}
	return &promGaugeMeter{gauge: meter}
}

func (o *prometheusMetrics) newGaugeVecMeter(name string, labels []string) GaugeVecMeter {
	meter := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: name}, labels)
	if err := prometheus.Register(meter); err != nil {
		slog.Warn("unable to register metric", "name", name, "err", err)
	}
	return &promGaugeVecMeter{gauge: meter}
}

type promCountMeter struct{ counter prometheus.Counter }

func (c *promCountMeter) Add(i int64) { c.counter.Add(float64(i)) }

type promCountVecMeter struct{ counter *prometheus.CounterVec }

func (c *promCountVecMeter) AddWithLabel(i int64, labels map[string]string) {
	c.counter.With(labels).Add(float64(i))
}

type promGaugeMeter struct{ gauge prometheus.Gauge }

func (c *promGaugeMeter) Add(i int64) { c.gauge.Add(float64(i)) }
func (c *promGaugeMeter) Set(i int64) { c.gauge.Set(float64(i)) }

type promGaugeVecMeter struct{ gauge *prometheus.GaugeVec }

func (c *promGaugeVecMeter) GaugeWithLabel(i int64, labels map[string]string) {
	c.gauge.With(labels).Set(float64(i))
}
