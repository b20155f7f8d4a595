package publisher

import (
	"context"
	"encoding/json"
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

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafka_PublishEncodesJSONWithKey(t *testing.T) {
	fw := &fakeWriter{}
	p := newKafkaWithWriter(fw, "storefront.orders")

	require.NoError(t, p.Publish(context.Background(), "ORD-ABC-123", map[string]any{"type": "order.placed"}))
	require.Len(t, fw.msgs, 1)

	assert.Equal(t, "ORD-ABC-123", string(fw.msgs[0].Key))

	var body map[string]any
	require.NoError(t, json.Unmarshal(fw.msgs[0].Value, &body))
	assert.Equal(t, "order.placed", body["type"])

	require.NoError(t, p.Close())
	assert.True(t, fw.closed)
}

func TestKafka_PublishWrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := newKafkaWithWriter(&fakeWriter{err: boom}, "t")

	err := p.Publish(context.Background(), "k", struct{}{})
	assert.ErrorIs(t, err, boom)
}

func TestNew_NopWithoutBrokers(t *testing.T) {
	p := New(nil, "t")
	assert.IsType(t, Nop{}, p)
	assert.NoError(t, p.Publish(context.Background(), "k", 1))

	_, ok := New([]string{"localhost:9092"}, "t").(*Kafka)
	assert.True(t, ok)
}
