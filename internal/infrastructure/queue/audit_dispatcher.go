package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/zafiri/staff-portal/internal/api/metrics"
	"github.com/zafiri/staff-portal/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
	writeTimeout   = 5 * time.Second
)

// AuditDispatcher fans audit entries out to a fixed set of workers,
// sharded by actor so each actor's trail stays in order. Writes never
// block the request path: a full shard drops the entry with a warning.
type AuditDispatcher struct {
	workers []chan ports.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
}

var _ ports.AuditSink = (*AuditDispatcher)(nil)

// NewAuditDispatcher creates a dispatcher with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan ports.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is
// cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Submit hands an entry to the worker responsible for its actor.
func (d *AuditDispatcher) Submit(entry ports.AuditEntry) {
	idx := d.shardIndex(entry.Actor)
	select {
	case d.workers[idx] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().Str("actor", entry.Actor).Str("action", entry.Action).Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps an actor deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(actor string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actor))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AuditEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			err := d.repo.Record(writeCtx, entry)
			cancel()
			if err != nil {
				d.log.Error().Err(err).
					Str("actor", entry.Actor).
					Str("action", entry.Action).
					Int("worker_id", id).
					Msg("audit write failed")
			}
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
