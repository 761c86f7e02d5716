package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"Tickfunds/internal/domain/models"
	applogger "Tickfunds/pkg/logger"
	"Tickfunds/pkg/queue"
)

// VerificationJobType is the queue message type of KYC checks.
const VerificationJobType = "kyc.verify"

var ErrVerifierClosed = errors.New("verifier closed")

// CompleteFunc records the result of a verification check.
type CompleteFunc func(ctx context.Context, job models.VerificationJob) error

// Verifier runs verification checks asynchronously after their delay.
type Verifier interface {
	Schedule(ctx context.Context, job models.VerificationJob) error
	Bind(fn CompleteFunc)
}

// InlineVerifier completes checks on in-process timers.
type InlineVerifier struct {
	l *applogger.Logger

	mu       sync.Mutex
	complete CompleteFunc
	closed   bool
	stop     chan struct{}
	wg       sync.WaitGroup
}

func NewInlineVerifier(l *applogger.Logger) *InlineVerifier {
	if l == nil {
		l = applogger.NewNop()
	}
	return &InlineVerifier{l: l, stop: make(chan struct{})}
}

func (v *InlineVerifier) Bind(fn CompleteFunc) {
	v.mu.Lock()
	v.complete = fn
	v.mu.Unlock()
}

func (v *InlineVerifier) Schedule(_ context.Context, job models.VerificationJob) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrVerifierClosed
	}
	if v.complete == nil {
		return fmt.Errorf("verifier has no completion handler")
	}
	complete := v.complete
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		t := time.NewTimer(job.Delay)
		defer t.Stop()
		select {
		case <-v.stop:
			return
		case <-t.C:
		}
		if err := complete(context.Background(), job); err != nil {
			v.l.Error("verification failed",
				applogger.String("session", job.SessionID),
				applogger.String("check", job.Check),
				applogger.Error(err),
			)
		}
	}()
	return nil
}

// Close abandons pending checks and waits for running ones.
func (v *InlineVerifier) Close() error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil
	}
	v.closed = true
	close(v.stop)
	v.mu.Unlock()
	v.wg.Wait()
	return nil
}

// Enqueuer is the producing side of a job queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, msgType string, payload interface{}) error
}

// QueueVerifier hands checks to the Redis job queue, so any worker process
// can complete them. Register Job() with the queue before it starts.
type QueueVerifier struct {
	q Enqueuer

	mu       sync.RWMutex
	complete CompleteFunc
}

func NewQueueVerifier(q Enqueuer) *QueueVerifier {
	return &QueueVerifier{q: q}
}

func (v *QueueVerifier) Bind(fn CompleteFunc) {
	v.mu.Lock()
	v.complete = fn
	v.mu.Unlock()
}

func (v *QueueVerifier) Schedule(ctx context.Context, job models.VerificationJob) error {
	return v.q.Enqueue(ctx, VerificationJobType, job)
}

// Job returns the queue handler that completes enqueued checks.
func (v *QueueVerifier) Job() queue.Job {
	return verificationJob{v: v}
}

type verificationJob struct {
	v *QueueVerifier
}

func (verificationJob) Name() string { return "kyc-verification" }

func (verificationJob) Type() string { return VerificationJobType }

// Handle waits out the check's delay, then records the result.
func (j verificationJob) Handle(ctx context.Context, payload interface{}) error {
	job, err := queue.ParsePayload[models.VerificationJob](payload)
	if err != nil {
		return fmt.Errorf("parse verification job: %w", err)
	}
	j.v.mu.RLock()
	complete := j.v.complete
	j.v.mu.RUnlock()
	if complete == nil {
		return fmt.Errorf("verifier has no completion handler")
	}

	if job.Delay > 0 {
		t := time.NewTimer(job.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	return complete(ctx, *job)
}

var (
	_ Verifier = (*InlineVerifier)(nil)
	_ Verifier = (*QueueVerifier)(nil)
	_ Enqueuer = (*queue.RedisQueue)(nil)
)
