package domain

import (
	"context"
	"time"
)

// RawPostRecord is the flat JSON payload published to the source topic. The
// field names match the archive CSV columns after header normalization.
type RawPostRecord struct {
	TweetText string `json:"tweet_text"`
	Time      string `json:"time"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// RawMessage is a single post with its publication time.
type RawMessage struct {
	Text      string
	Timestamp time.Time
}

// WaitObservation is the wait time one post reports for one terminal.
// Hours is nil when the post does not yield a determinable value.
type WaitObservation struct {
	ID          string    `json:"id"`
	Terminal    string    `json:"terminal"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
	Hours       *float64  `json:"hours"`
	ProcessedAt time.Time `json:"processed_at,omitzero"`
}

// Known reports whether the observation carries a wait value.
func (o WaitObservation) Known() bool {
	return o.Hours != nil
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
