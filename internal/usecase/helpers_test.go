package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"Tickfunds/internal/domain/models"
	"Tickfunds/internal/repository"
	xhttp "Tickfunds/pkg/http"

	"github.com/stretchr/testify/require"
)

func loadCatalog(t *testing.T) *repository.Catalog {
	t.Helper()
	c, err := repository.LoadCatalog()
	require.NoError(t, err)
	return c
}

// requireAppError asserts err is an *xhttp.AppError with the given status.
func requireAppError(t *testing.T, err error, status int) *xhttp.AppError {
	t.Helper()
	var appErr *xhttp.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, status, appErr.Status, appErr.Message)
	return appErr
}

type recordedActivity struct {
	kind, subject string
	attrs         map[string]string
}

type fakeRecorder struct {
	mu     sync.Mutex
	events []recordedActivity
}

func (r *fakeRecorder) Record(_ context.Context, kind, subject string, attrs map[string]string) {
	r.mu.Lock()
	r.events = append(r.events, recordedActivity{kind: kind, subject: subject, attrs: attrs})
	r.mu.Unlock()
}

func (r *fakeRecorder) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.kind
	}
	return out
}

type fakeMetrics struct {
	mu           sync.Mutex
	cacheHits    int
	cacheMisses  int
	errors       map[string]int
	verification map[string]bool
	activity     map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{errors: map[string]int{}, verification: map[string]bool{}, activity: map[string]int{}}
}

func (m *fakeMetrics) RecordActivity(kind, _ string) {
	m.mu.Lock()
	m.activity[kind]++
	m.mu.Unlock()
}

func (m *fakeMetrics) RecordActivityDropped(string) {}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	m.errors[kind]++
	m.mu.Unlock()
}

func (m *fakeMetrics) RecordCacheLookup(_ string, hit bool) {
	m.mu.Lock()
	if hit {
		m.cacheHits++
	} else {
		m.cacheMisses++
	}
	m.mu.Unlock()
}

func (m *fakeMetrics) RecordVerification(step string, ok bool) {
	m.mu.Lock()
	m.verification[step] = ok
	m.mu.Unlock()
}

func (m *fakeMetrics) RecordLatency(string, float64) {}

func (m *fakeMetrics) verificationResult(step string) (ok, seen bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ok, seen = m.verification[step]
	return ok, seen
}

// fakeActivityStore serves canned view counts.
type fakeActivityStore struct {
	mu     sync.Mutex
	counts []models.SubjectCount
	err    error
	stored []models.ActivityEvent
}

func (s *fakeActivityStore) Init(context.Context) error { return nil }

func (s *fakeActivityStore) Store(_ context.Context, e models.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.stored = append(s.stored, e)
	return nil
}

func (s *fakeActivityStore) StoreBatch(ctx context.Context, events []models.ActivityEvent) error {
	for _, e := range events {
		if err := s.Store(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (s *fakeActivityStore) TopSubjects(context.Context, string, time.Time, int) ([]models.SubjectCount, error) {
	return s.counts, s.err
}

func (s *fakeActivityStore) Health(context.Context) error { return nil }

func (s *fakeActivityStore) Close() error { return nil }
