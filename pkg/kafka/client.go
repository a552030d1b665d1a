// Package kafka wraps the franz-go client for producing keyed records
package kafka

import (
	"context"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaClient defines the interface for Kafka operations
type KafkaClient interface {
	// Produce sends a record and waits for the broker acknowledgement
	Produce(ctx context.Context, topic string, key, value []byte) error
	// ProduceAsync buffers a record and returns immediately; onError is
	// invoked from the client's callback goroutine when delivery fails
	ProduceAsync(ctx context.Context, topic string, key, value []byte, onError func(error))
	// Flush waits until all buffered records are acknowledged or ctx is done
	Flush(ctx context.Context) error
	Close() error
	GetClient() *kgo.Client
}

// Client represents a Kafka client wrapper
type Client struct {
	client *kgo.Client
}

// New creates a new Kafka client with the provided options.
// Brokers are dialled lazily on the first request.
func New(opts ...kgo.Opt) (KafkaClient, error) {
	kafkaClient, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}
	return &Client{client: kafkaClient}, nil
}

// Produce sends a record synchronously
func (k *Client) Produce(ctx context.Context, topic string, key, value []byte) error {
	record := &kgo.Record{Topic: topic, Key: key, Value: value}
	return k.client.ProduceSync(ctx, record).FirstErr()
}

// ProduceAsync sends a record asynchronously
func (k *Client) ProduceAsync(ctx context.Context, topic string, key, value []byte, onError func(error)) {
	record := &kgo.Record{Topic: topic, Key: key, Value: value}
	k.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil && onError != nil {
			onError(err)
		}
	})
}

// Flush waits for buffered records
func (k *Client) Flush(ctx context.Context) error {
	return k.client.Flush(ctx)
}

// Close closes the Kafka client
func (k *Client) Close() error {
	if k.client != nil {
		k.client.Close()
	}
	return nil
}

// GetClient returns the underlying Kafka client for advanced operations
func (k *Client) GetClient() *kgo.Client {
	return k.client
}
