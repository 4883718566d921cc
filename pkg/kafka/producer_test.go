package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
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

func TestPublishEncodesValues(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, "snappy")

	require.NoError(t, p.Publish(context.Background(), "events", []byte("k"), map[string]int{"a": 1}))
	require.NoError(t, p.PublishBatch(context.Background(), "events", []Message{
		{Key: []byte("raw"), Value: []byte("bytes")},
		{Key: []byte("str"), Value: "text"},
	}))

	require.Len(t, w.msgs, 3)
	assert.Equal(t, "events", w.msgs[0].Topic)
	assert.JSONEq(t, `{"a":1}`, string(w.msgs[0].Value))
	assert.Equal(t, "bytes", string(w.msgs[1].Value))
	assert.Equal(t, "text", string(w.msgs[2].Value))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishWrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := NewProducerWithWriter(&fakeWriter{err: boom}, "snappy")
	err := p.Publish(context.Background(), "events", nil, "x")
	assert.ErrorIs(t, err, boom)
}

func TestPublishRejectsUnencodable(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, "snappy")
	err := p.Publish(context.Background(), "events", nil, make(chan int))
	assert.Error(t, err)
	assert.Empty(t, w.msgs)
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.Error(t, err)

	p, err := NewProducer(WithBrokers([]string{"localhost:9092"}), WithCompression("zstd"))
	require.NoError(t, err)
	assert.Equal(t, kafka.Zstd, p.writer.(*kafka.Writer).Compression)
	require.NoError(t, p.Close())
}
