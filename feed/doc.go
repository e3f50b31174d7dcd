// Package feed is the downstream consumer of the engine's trade ring.
// It drains reports into a pebble-backed outbox and broadcasts them to
// a Kafka topic with at-least-once delivery; acknowledged entries are
// removed from the outbox.
package feed
