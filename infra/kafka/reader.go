package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Reader consumes the trade feed topic.
type Reader struct {
	reader *kafka.Reader
}

func NewReader(brokers []string, topic, group string) *Reader {
	return &Reader{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  group,
			MinBytes: 1,
			MaxBytes: 1 << 20,
		}),
	}
}

// Next blocks until one message arrives and returns its payload.
func (r *Reader) Next(ctx context.Context) ([]byte, error) {
	msg, err := r.reader.ReadMessage(ctx)
	if err != nil {
		return nil, err
	}
	return msg.Value, nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}
