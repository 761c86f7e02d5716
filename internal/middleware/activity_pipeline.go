package middleware

import (
	"context"
	"sync"
	"time"

	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"
	applogger "Tickfunds/pkg/logger"

	"github.com/google/uuid"
)

// BatchProcessor is the minimal downstream the pipeline needs.
type BatchProcessor interface {
	ProcessBatch(ctx context.Context, events []models.ActivityEvent) error
}

// Drop reasons.
const (
	DropThrottled  = "throttled"
	DropBufferFull = "buffer_full"
	DropFlushError = "flush_error"
	DropInvalid    = "invalid"
	DropStopped    = "stopped"
)

// ActivityPipeline sits between usecases and the activity backend.
// Record never blocks: events are throttled per kind, buffered, and flushed
// in batches by a background worker.
type ActivityPipeline struct {
	proc    BatchProcessor
	metrics domrepo.Metrics
	l       *applogger.Logger

	maxPerSecond  int
	bufSize       int
	batchSize     int
	flushInterval time.Duration
	now           func() time.Time

	bufCh chan models.ActivityEvent
	stop  chan struct{}
	done  chan struct{}

	mu      sync.Mutex
	started bool
	stopped bool
	windows map[string]*window // per-kind throttle window
}

type window struct {
	start time.Time
	count int
}

type PipelineOption func(*ActivityPipeline)

// WithMaxPerSecond caps accepted events per kind per second. Zero disables.
func WithMaxPerSecond(n int) PipelineOption {
	return func(p *ActivityPipeline) {
		if n >= 0 {
			p.maxPerSecond = n
		}
	}
}

func WithBufferSize(n int) PipelineOption {
	return func(p *ActivityPipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

func WithBatchSize(n int) PipelineOption {
	return func(p *ActivityPipeline) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

func WithFlushInterval(d time.Duration) PipelineOption {
	return func(p *ActivityPipeline) {
		if d > 0 {
			p.flushInterval = d
		}
	}
}

func WithLogger(l *applogger.Logger) PipelineOption {
	return func(p *ActivityPipeline) {
		if l != nil {
			p.l = l
		}
	}
}

func NewActivityPipeline(proc BatchProcessor, metrics domrepo.Metrics, opts ...PipelineOption) *ActivityPipeline {
	p := &ActivityPipeline{
		proc:          proc,
		metrics:       metrics,
		l:             applogger.NewNop(),
		maxPerSecond:  200,
		bufSize:       1000,
		batchSize:     50,
		flushInterval: 2 * time.Second,
		now:           time.Now,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
		windows:       make(map[string]*window),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.bufCh = make(chan models.ActivityEvent, p.bufSize)
	return p
}

// Record buffers an event. Events over the per-kind rate, beyond the buffer
// or arriving after Stop are dropped and counted.
func (p *ActivityPipeline) Record(_ context.Context, kind, subject string, attrs map[string]string) {
	if kind == "" {
		p.drop(DropInvalid)
		return
	}
	now := p.now()
	e := models.ActivityEvent{
		ID:         uuid.NewString(),
		Kind:       kind,
		Subject:    subject,
		Attributes: attrs,
		Timestamp:  now.UTC(),
	}

	// the send happens under mu so Stop cannot start draining in between
	p.mu.Lock()
	reason := ""
	switch {
	case p.stopped:
		reason = DropStopped
	case !p.allowLocked(kind, now):
		reason = DropThrottled
	default:
		select {
		case p.bufCh <- e:
		default:
			reason = DropBufferFull
		}
	}
	p.mu.Unlock()

	if reason != "" {
		p.drop(reason)
	}
}

func (p *ActivityPipeline) drop(reason string) {
	if p.metrics != nil {
		p.metrics.RecordActivityDropped(reason)
	}
}

func (p *ActivityPipeline) allowLocked(kind string, now time.Time) bool {
	if p.maxPerSecond <= 0 {
		return true
	}
	w, ok := p.windows[kind]
	if !ok || now.Sub(w.start) >= time.Second {
		p.windows[kind] = &window{start: now, count: 1}
		return true
	}
	if w.count >= p.maxPerSecond {
		return false
	}
	w.count++
	return true
}

// Start launches the background flusher. It is a no-op when already started.
func (p *ActivityPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started || p.stopped {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go p.run(ctx)
}

func (p *ActivityPipeline) run(ctx context.Context) {
	defer close(p.done)
	ticker := time.NewTicker(p.flushInterval)
	defer ticker.Stop()

	batch := make([]models.ActivityEvent, 0, p.batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		p.flush(context.WithoutCancel(ctx), batch)
		batch = make([]models.ActivityEvent, 0, p.batchSize)
	}

	for {
		select {
		case <-p.stop:
			for {
				select {
				case e := <-p.bufCh:
					batch = append(batch, e)
					if len(batch) >= p.batchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		case <-ctx.Done():
			flush()
			return
		case e := <-p.bufCh:
			batch = append(batch, e)
			if len(batch) >= p.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func (p *ActivityPipeline) flush(ctx context.Context, batch []models.ActivityEvent) {
	start := time.Now()
	if err := p.proc.ProcessBatch(ctx, batch); err != nil {
		p.l.Warn("activity flush failed",
			applogger.Int("events", len(batch)),
			applogger.Error(err),
		)
		if p.metrics != nil {
			p.metrics.RecordError("pipeline_flush")
		}
		for range batch {
			p.drop(DropFlushError)
		}
		return
	}
	if p.metrics != nil {
		p.metrics.RecordLatency("pipeline_flush", time.Since(start).Seconds())
	}
}

// Stop drains the buffer, flushes it, and waits for the worker or ctx.
func (p *ActivityPipeline) Stop(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	started := p.started
	p.mu.Unlock()

	close(p.stop)
	if !started {
		// no worker will flush what was buffered
		for n := len(p.bufCh); n > 0; n-- {
			<-p.bufCh
			p.drop(DropStopped)
		}
		return nil
	}
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending reports buffered events not yet flushed.
func (p *ActivityPipeline) Pending() int { return len(p.bufCh) }

var _ domrepo.ActivityRecorder = (*ActivityPipeline)(nil)
