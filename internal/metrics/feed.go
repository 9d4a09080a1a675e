// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ticker metrics
	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "padmeta_ticks_total",
		Help: "Total number of ticker passes",
	})

	rendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "padmeta_renders_total",
		Help: "Total number of DLS renders by trigger",
	}, []string{"trigger"}) // trigger=tick|command

	outputFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "padmeta_output_failures_total",
		Help: "Total number of output write failures by output",
	}, []string{"output"}) // output=dls|mot

	activeKind = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "padmeta_active_content",
		Help: "Currently authoritative content kind (1 for the active kind, 0 otherwise)",
	}, []string{"kind"})

	contentChangesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "padmeta_content_changes_total",
		Help: "Total number of resolved content changes",
	})

	// Image pool metrics
	orphansRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "padmeta_orphan_images_removed_total",
		Help: "Total number of unreferenced images deleted from the upload pool",
	})

	orphanRemoveFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "padmeta_orphan_image_remove_failures_total",
		Help: "Total number of failed orphan image deletions",
	})

	reconcileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "padmeta_pool_reconcile_duration_seconds",
		Help:    "Duration of upload pool reconciliation scans",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	})

	uploadsStoredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "padmeta_uploads_stored_total",
		Help: "Total number of images stored in the upload pool by type",
	}, []string{"type"}) // type=jpg|png

	// Command metrics
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "padmeta_commands_total",
		Help: "Total number of content commands by command and outcome",
	}, []string{"command", "outcome"}) // outcome=ok|invalid|publish_failed
)

var kinds = []string{"track", "program", "station"}

func IncTick() { ticksTotal.Inc() }

func IncRender(trigger string) { rendersTotal.WithLabelValues(trigger).Inc() }

func IncOutputFailure(output string) { outputFailuresTotal.WithLabelValues(output).Inc() }

func IncContentChange() { contentChangesTotal.Inc() }

// SetActiveKind marks kind as on air and every other kind as idle.
func SetActiveKind(kind string) {
	for _, k := range kinds {
		v := 0.0
		if k == kind {
			v = 1
		}
		activeKind.WithLabelValues(k).Set(v)
	}
}

func AddOrphansRemoved(n int) {
	if n > 0 {
		orphansRemovedTotal.Add(float64(n))
	}
}

func AddOrphanRemoveFailures(n int) {
	if n > 0 {
		orphanRemoveFailuresTotal.Add(float64(n))
	}
}

func ObserveReconcile(seconds float64) { reconcileDuration.Observe(seconds) }

func IncUploadStored(imageType string) { uploadsStoredTotal.WithLabelValues(imageType).Inc() }

func IncCommand(command, outcome string) { commandsTotal.WithLabelValues(command, outcome).Inc() }
