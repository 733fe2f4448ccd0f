// Package chunkobserve carries the Prometheus metrics and health endpoint
// for the chunking send pipeline.
package chunkobserve

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChunksEmitted is the number of chunks a single Split call produced.
	ChunksEmitted = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "htmlchunk_chunks_emitted",
		Help:    "Number of chunks produced per Split call.",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
	})

	// SplitExceededTotal counts Split calls that returned
	// SplitExceededTheLimitError: a no-split subtree was intrinsically
	// larger than the configured budget.
	SplitExceededTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "htmlchunk_split_exceeded_total",
		Help: "Total number of Split calls whose best-effort result still exceeded the chunk budget.",
	})

	// SplitDuration is the wall-clock cost of tokenizing, grouping, and
	// subdividing a single Split call.
	SplitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "htmlchunk_split_duration_seconds",
		Help:    "Duration of a Split call.",
		Buckets: prometheus.DefBuckets,
	})

	// ChunkBytes is the byte size of each chunk actually sent.
	ChunkBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "htmlchunk_chunk_bytes",
		Help:    "Byte size of each emitted chunk.",
		Buckets: prometheus.ExponentialBuckets(64, 2, 8),
	})

	// SendFailuresTotal counts chunks that failed to reach Telegram,
	// labelled by reason. The chunkbot sender records every failed
	// BotAPI.Send under the single reason "telegram_api".
	SendFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "htmlchunk_send_failures_total",
		Help: "Total number of chunk sends that returned an error, by reason.",
	}, []string{"reason"})
)
