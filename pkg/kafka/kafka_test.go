package kafka

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func (w *fakeWriter) written() []kafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafka.Message(nil), w.msgs...)
}

type fakeReader struct {
	ch        chan kafka.Message
	mu        sync.Mutex
	committed []int64
}

func newFakeReader(msgs ...kafka.Message) *fakeReader {
	r := &fakeReader{ch: make(chan kafka.Message, len(msgs))}
	for _, m := range msgs {
		r.ch <- m
	}
	return r
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case m := <-r.ch:
		return m, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func (r *fakeReader) offsets() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

type funcHandler struct {
	topic string
	fn    func(context.Context, []byte) error
}

func (h funcHandler) Topic() string                             { return h.topic }
func (h funcHandler) Handle(ctx context.Context, b []byte) error { return h.fn(ctx, b) }

func TestProducerEncodesValues(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, "gzip")

	require.NoError(t, p.Publish(context.Background(), "activity", []byte("k"), map[string]string{"kind": "fund_viewed"}))
	require.NoError(t, p.PublishMessage(context.Background(), "logs", []byte(`{"level":"error"}`)))
	require.NoError(t, p.PublishBatch(context.Background(), "activity", nil))

	msgs := w.written()
	require.Len(t, msgs, 2)
	assert.Equal(t, "activity", msgs[0].Topic)
	assert.JSONEq(t, `{"kind":"fund_viewed"}`, string(msgs[0].Value))
	assert.Equal(t, []byte("k"), msgs[0].Key)
	assert.Equal(t, "logs", msgs[1].Topic)
	assert.Nil(t, msgs[1].Key)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestProducerWrapsWriteErrors(t *testing.T) {
	boom := errors.New("broker down")
	p := newProducer(&fakeWriter{err: boom}, "gzip")

	err := p.Publish(context.Background(), "activity", nil, "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "activity")
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.Error(t, err)
	_, err = NewConsumer()
	assert.Error(t, err)
}

func testConsumer(retries int) *Consumer {
	return newConsumer(&ConsumerConfig{
		WorkerCount: 2,
		BufferSize:  4,
		RetryMax:    retries,
		BackoffMin:  time.Millisecond,
		BackoffMax:  2 * time.Millisecond,
	})
}

func TestConsumerHandlesAndCommits(t *testing.T) {
	reader := newFakeReader(
		kafka.Message{Topic: "activity", Offset: 1, Value: []byte("a")},
		kafka.Message{Topic: "activity", Offset: 2, Value: []byte("b")},
	)
	c := testConsumer(0)
	c.newReader = func(string) messageReader { return reader }

	var handled atomic.Int32
	c.RegisterHandler(funcHandler{topic: "activity", fn: func(context.Context, []byte) error {
		handled.Add(1)
		return nil
	}})

	require.NoError(t, c.Start(context.Background()))
	assert.Eventually(t, func() bool { return len(reader.offsets()) == 2 }, time.Second, 5*time.Millisecond)
	require.NoError(t, c.Stop(context.Background()))
	assert.Equal(t, int32(2), handled.Load())
}

func TestConsumerRetriesThenDeadLetters(t *testing.T) {
	reader := newFakeReader()
	dlq := &fakeWriter{}
	c := testConsumer(2)
	c.readers["activity"] = reader
	c.dlq = dlq

	var attempts atomic.Int32
	var hookErrors atomic.Int32
	c.RegisterHandler(funcHandler{topic: "activity", fn: func(context.Context, []byte) error {
		attempts.Add(1)
		return errors.New("clickhouse unavailable")
	}})
	c.WithConsumerHook(NewHookChain(TraceHook{}, HookFuncs{
		Err: func(context.Context, string, kafka.Message, []byte, error) { hookErrors.Add(1) },
	}))

	c.process(context.Background(), &message{topic: "activity", km: kafka.Message{Offset: 7, Value: []byte("payload")}})

	assert.Equal(t, int32(3), attempts.Load())
	assert.Equal(t, int32(3), hookErrors.Load())
	msgs := dlq.written()
	require.Len(t, msgs, 1)
	assert.Equal(t, []byte("payload"), msgs[0].Value)
	assert.Equal(t, []int64{7}, reader.offsets())
}

func TestConsumerLeavesOffsetWithoutDLQ(t *testing.T) {
	reader := newFakeReader()
	c := testConsumer(0)
	c.readers["activity"] = reader
	c.RegisterHandler(funcHandler{topic: "activity", fn: func(context.Context, []byte) error {
		panic("bad payload")
	}})

	c.process(context.Background(), &message{topic: "activity", km: kafka.Message{Offset: 3}})
	assert.Empty(t, reader.offsets())
}

func TestHookChainPassesTraceID(t *testing.T) {
	var seen string
	chain := NewHookChain(TraceHook{}, nil, HookFuncs{
		Before: func(ctx context.Context, _ string, km kafka.Message, data []byte) (context.Context, kafka.Message, []byte, error) {
			seen = TraceIDFrom(ctx)
			return ctx, km, data, nil
		},
	})

	km := kafka.Message{Headers: []kafka.Header{{Key: "trace_id", Value: []byte("abc")}}}
	_, _, _, err := chain.BeforeHandle(context.Background(), "t", km, nil)
	require.NoError(t, err)
	assert.Equal(t, "abc", seen)
}

func TestHookChainRecoversPanics(t *testing.T) {
	chain := NewHookChain(HookFuncs{
		Before: func(context.Context, string, kafka.Message, []byte) (context.Context, kafka.Message, []byte, error) {
			panic("boom")
		},
		After: func(context.Context, string, kafka.Message, []byte, error) { panic("again") },
	})

	_, _, _, err := chain.BeforeHandle(context.Background(), "t", kafka.Message{}, nil)
	var hookErr *HookError
	require.ErrorAs(t, err, &hookErr)
	assert.Equal(t, "ERR_PANIC", hookErr.Code)
	assert.NotPanics(t, func() { chain.AfterHandle(context.Background(), "t", kafka.Message{}, nil, nil) })
}

func TestBackoffWithJitterStaysInRange(t *testing.T) {
	for attempt := 1; attempt < 10; attempt++ {
		d := backoffWithJitter(10*time.Millisecond, 80*time.Millisecond, attempt)
		assert.LessOrEqual(t, d, 80*time.Millisecond)
		assert.Greater(t, d, time.Duration(0))
	}
}
