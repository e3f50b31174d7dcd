package feed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"

	"fenrir/domain/book"
	"fenrir/infra/spsc"
)

// Publisher is the single consumer of the engine's trade ring. Drain
// moves reports into the outbox; Broadcast pushes staged entries to a
// Kafka topic and acks the ones the broker accepts.
type Publisher struct {
	ring     *spsc.Ring[book.TradeReport]
	outbox   *Outbox
	producer sarama.SyncProducer
	topic    string
}

func NewPublisher(ring *spsc.Ring[book.TradeReport], outbox *Outbox, brokers []string, topic string) (*Publisher, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("feed: create producer: %w", err)
	}

	return &Publisher{
		ring:     ring,
		outbox:   outbox,
		producer: producer,
		topic:    topic,
	}, nil
}

// Drain polls the ring until ctx ends. It must be the ring's only
// consumer.
func (p *Publisher) Drain(ctx context.Context) {
	buf := make([]byte, 0, 64)
	for ctx.Err() == nil {
		tr, ok := p.ring.Pop()
		if !ok {
			time.Sleep(200 * time.Microsecond)
			continue
		}
		buf = AppendTrade(buf[:0], tr)
		if err := p.outbox.Put(tr.Seq, buf); err != nil {
			log.Printf("[feed] outbox put seq=%d: %v", tr.Seq, err)
		}
	}
}

// Broadcast publishes staged reports every interval until ctx ends.
func (p *Publisher) Broadcast(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.broadcastOnce()
		}
	}
}

func (p *Publisher) broadcastOnce() {
	_ = p.outbox.ScanPending(func(seq uint64, frame []byte) error {
		msg := &sarama.ProducerMessage{
			Topic: p.topic,
			Value: sarama.ByteEncoder(frame),
		}
		if _, _, err := p.producer.SendMessage(msg); err != nil {
			return nil // broker unavailable, retry next tick
		}
		_ = p.outbox.Ack(seq)
		return nil
	})
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
