package main

import (
	"github.com/prometheus/client_golang/prometheus"

	"median-probe/internal/sampler"
)

var labels = []string{"probe", "target"}

var (
	probeUp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "median_probe_up",
			Help: "Probe success (1) or failure (0)",
		},
		labels,
	)

	latencyLast = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "median_probe_latency_ms",
			Help: "Latest probe latency in milliseconds",
		},
		labels,
	)

	latencyMedian = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "median_probe_latency_median_ms",
			Help: "Running median of probe latency over the window (ms)",
		},
		labels,
	)

	latencyMin = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "median_probe_latency_min_ms",
			Help: "Smallest probe latency in the window (ms)",
		},
		labels,
	)

	latencyMax = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "median_probe_latency_max_ms",
			Help: "Largest probe latency in the window (ms)",
		},
		labels,
	)

	latencyMean = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "median_probe_latency_mean_ms",
			Help: "Mean probe latency over the window (ms)",
		},
		labels,
	)

	latencyStdDev = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "median_probe_latency_stddev_ms",
			Help: "Sample standard deviation of probe latency over the window (ms)",
		},
		labels,
	)

	probeFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "median_probe_failures_total",
			Help: "Total number of failed probes",
		},
		labels,
	)

	probeFailureBurstsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "median_probe_failure_bursts_total",
			Help: "Total number of consecutive failure bursts at or above the burst threshold",
		},
		labels,
	)
)

func registerMetrics(reg prometheus.Registerer) {
	reg.MustRegister(
		probeUp,
		latencyLast,
		latencyMedian,
		latencyMin,
		latencyMax,
		latencyMean,
		latencyStdDev,
		probeFailuresTotal,
		probeFailureBurstsTotal,
	)
}

// record publishes one sampling result.
func record(res sampler.Result) {
	lv := []string{string(res.Target.Kind), res.Target.Addr}

	if !res.OK {
		probeUp.WithLabelValues(lv...).Set(0)
		probeFailuresTotal.WithLabelValues(lv...).Inc()
		return
	}

	probeUp.WithLabelValues(lv...).Set(1)
	if res.BurstEnded > 0 {
		probeFailureBurstsTotal.WithLabelValues(lv...).Inc()
	}

	w := res.Window
	latencyLast.WithLabelValues(lv...).Set(usToMs(res.Latency.Microseconds()))
	latencyMedian.WithLabelValues(lv...).Set(usToMs(int64(w.Median)))
	latencyMin.WithLabelValues(lv...).Set(usToMs(int64(w.Min)))
	latencyMax.WithLabelValues(lv...).Set(usToMs(int64(w.Max)))
	latencyMean.WithLabelValues(lv...).Set(usToMs(w.Mean))
	latencyStdDev.WithLabelValues(lv...).Set(usToMs(w.StdDev))
}

func usToMs(us int64) float64 {
	return float64(us) / 1e3
}
