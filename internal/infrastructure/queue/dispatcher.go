package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/stepwise/process-tracker/internal/api/metrics"
	"github.com/stepwise/process-tracker/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes cache invalidations to a fixed set of workers using
// consistent hashing on the owner, so invalidations for one owner are
// applied in submission order.
type Dispatcher struct {
	workers []chan string
	cache   ports.SummaryCache
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, cache ports.SummaryCache, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		cache:   cache,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an invalidation to the worker responsible for the owner.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(owner string) {
	i := d.shardIndex(owner)
	d.workers[i] <- owner
	metrics.InvalidationQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps an owner deterministically to a worker index.
func (d *Dispatcher) shardIndex(owner string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(owner))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case owner, ok := <-ch:
			if !ok {
				return
			}
			if err := d.cache.Invalidate(ctx, owner); err != nil {
				d.log.Error().Err(err).
					Str("owner", owner).
					Int("worker_id", id).
					Msg("cache invalidation failed")
			}
			metrics.InvalidationQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
