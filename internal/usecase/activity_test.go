package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"Tickfunds/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	batches [][]models.ActivityEvent
	err     error
	closed  bool
}

func (p *fakePublisher) PublishBatch(_ context.Context, events []models.ActivityEvent) error {
	if p.err != nil {
		return p.err
	}
	p.batches = append(p.batches, events)
	return nil
}

func (p *fakePublisher) Close() error {
	p.closed = true
	return nil
}

func TestActivityProcessor_ProcessBatch(t *testing.T) {
	pub := &fakePublisher{}
	m := newFakeMetrics()
	p := NewActivityProcessor(pub, m, BackendKafka)

	events := []models.ActivityEvent{
		{ID: "1", Kind: models.ActivityFundViewed, Subject: "fund-1"},
		{ID: "2", Kind: models.ActivityFundViewed, Subject: "fund-2"},
		{ID: "3", Kind: models.ActivityRiskAssessed, Subject: "Moderate"},
	}
	require.NoError(t, p.ProcessBatch(context.Background(), events))
	require.NoError(t, p.ProcessBatch(context.Background(), nil))
	assert.Len(t, pub.batches, 1)
	assert.Equal(t, 2, m.activity[models.ActivityFundViewed])

	p.Close()
	assert.True(t, pub.closed)
}

func TestActivityProcessor_Errors(t *testing.T) {
	m := newFakeMetrics()
	p := NewActivityProcessor(&fakePublisher{err: errors.New("broker down")}, m, BackendKafka)
	err := p.ProcessBatch(context.Background(), []models.ActivityEvent{{Kind: models.ActivityFundViewed}})
	assert.Error(t, err)
	assert.Equal(t, 1, m.errors["process_batch"])

	p = NewActivityProcessor(&fakePublisher{}, m, "carrier-pigeon")
	assert.Error(t, p.ProcessBatch(context.Background(), []models.ActivityEvent{{Kind: models.ActivityFundViewed}}))
}

func TestActivitySinkHandler_Handle(t *testing.T) {
	store := &fakeActivityStore{}
	m := newFakeMetrics()
	h := NewActivitySinkHandler("tickfunds.activity", store, m)
	assert.Equal(t, "tickfunds.activity", h.Topic())

	e := models.ActivityEvent{ID: "1", Kind: models.ActivityFundViewed, Subject: "fund-1", Timestamp: time.Now().UTC()}
	b, err := json.Marshal(e)
	require.NoError(t, err)
	require.NoError(t, h.Handle(context.Background(), b))
	require.Len(t, store.stored, 1)
	assert.Equal(t, "fund-1", store.stored[0].Subject)
	assert.Equal(t, 1, m.activity[models.ActivityFundViewed])

	assert.Error(t, h.Handle(context.Background(), []byte("{not json")))
	assert.Equal(t, 1, m.errors["consumer_unmarshal"])

	store.err = errors.New("insert failed")
	assert.Error(t, h.Handle(context.Background(), b))
	assert.Equal(t, 1, m.errors["consumer_store"])
}
