package repository

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinCast/internal/domain/models"
	pkgkafka "FinCast/pkg/kafka"
)

type recordingWriter struct {
	msgs   []kafka.Message
	closed int
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed++
	return nil
}

func TestKafkaPublisherSendsKeyedJSON(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher(pkgkafka.NewProducerWithWriter(w, "snappy"), "fincast.events")

	ev := models.RunCompletedEvent{Type: models.EventRunCompleted, RunID: "r1", MAE: 1.25, Timestamp: time.Unix(0, 0).UTC()}
	require.NoError(t, p.PublishEvent(context.Background(), "r1", ev))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "fincast.events", w.msgs[0].Topic)
	assert.Equal(t, "r1", string(w.msgs[0].Key))
	assert.Contains(t, string(w.msgs[0].Value), `"type":"run.completed"`)
	assert.Contains(t, string(w.msgs[0].Value), `"mae":1.25`)

	require.NoError(t, p.Close())
	assert.Equal(t, 1, w.closed)
}

func TestSharedKafkaPublisherLeavesProducerOpen(t *testing.T) {
	w := &recordingWriter{}
	p := NewSharedKafkaPublisher(pkgkafka.NewProducerWithWriter(w, "snappy"), "fincast.logs")
	require.NoError(t, p.Close())
	assert.Zero(t, w.closed)
}
