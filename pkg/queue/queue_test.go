package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verifyPayload struct {
	SessionID string `json:"sessionId"`
	Step      string `json:"step"`
}

type recordingJob struct {
	got []*verifyPayload
}

func (j *recordingJob) Name() string { return "recording" }
func (j *recordingJob) Type() string { return "kyc.verify" }
func (j *recordingJob) Handle(_ context.Context, payload interface{}) error {
	p, err := ParsePayload[verifyPayload](payload)
	if err != nil {
		return err
	}
	j.got = append(j.got, p)
	return nil
}

func TestParsePayload(t *testing.T) {
	raw := json.RawMessage(`{"sessionId":"s1","step":"pan"}`)
	p, err := ParsePayload[verifyPayload](raw)
	require.NoError(t, err)
	assert.Equal(t, "s1", p.SessionID)

	p, err = ParsePayload[verifyPayload](map[string]interface{}{"step": "ifsc"})
	require.NoError(t, err)
	assert.Equal(t, "ifsc", p.Step)

	direct := verifyPayload{Step: "final"}
	p, err = ParsePayload[verifyPayload](direct)
	require.NoError(t, err)
	assert.Equal(t, "final", p.Step)

	_, err = ParsePayload[verifyPayload](42)
	assert.Error(t, err)

	_, err = ParsePayload[verifyPayload](json.RawMessage(`{`))
	assert.Error(t, err)
}

func TestProcessMessageDispatchesByType(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	q := NewRedisQueue(nil, nil, client, ModeConsumerOnly, WithKeyPrefix("test:queue"))
	job := &recordingJob{}
	q.RegisterJobs(job, job)

	q.processMessage(Message{ID: "1", Type: "kyc.verify", Payload: json.RawMessage(`{"sessionId":"s9","step":"aadhaar"}`)})
	q.processMessage(Message{ID: "2", Type: "unknown"})

	require.Len(t, job.got, 1)
	assert.Equal(t, "s9", job.got[0].SessionID)
	assert.Equal(t, "test:queue:messages", q.queueKey())
	assert.Equal(t, "test:queue:dlq", q.deadLetterKey())
}

func TestEnqueueRequiresRunningQueue(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	q := NewRedisQueue(nil, nil, client, ModeProducerOnly)
	err := q.Enqueue(context.Background(), "kyc.verify", verifyPayload{})
	assert.EqualError(t, err, "queue not running")
	assert.NoError(t, q.Stop(context.Background()))
	assert.Equal(t, "producer-only", ModeProducerOnly.String())
}
