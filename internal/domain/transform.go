package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are the time formats seen in archive exports and on the
// source topic. Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseRawEvent deserializes a RawEvent's value into a RawMessage. An empty
// "time" field falls back to the transport timestamp.
func ParseRawEvent(raw RawEvent) (RawMessage, error) {
	var rec RawPostRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return RawMessage{}, fmt.Errorf("parse raw event: %w", err)
	}

	ts := raw.Timestamp
	if strings.TrimSpace(rec.Time) != "" {
		parsed, err := ParseTimestamp(rec.Time)
		if err != nil {
			return RawMessage{}, fmt.Errorf("parse raw event: %w", err)
		}
		ts = parsed
	}

	return RawMessage{Text: rec.TweetText, Timestamp: ts}, nil
}

// ParseTimestamp parses a post time in any of the supported layouts.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// observationID produces a deterministic ID from the observation's key fields.
// Reprocessing the same post yields the same ID.
func observationID(terminal string, ts time.Time, text string) string {
	input := terminal + "|" + strconv.FormatInt(ts.UnixNano(), 10) + "|" + text
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if terminal == "" {
		return short
	}
	return terminal + "-" + short
}

// StampProcessed sets ProcessedAt on each observation from the package clock.
func StampProcessed(obs []WaitObservation) []WaitObservation {
	now := clock.Now().UTC()
	for i := range obs {
		obs[i].ProcessedAt = now
	}
	return obs
}

// SerializeObservation marshals an observation into an OutputEvent keyed by ID.
func SerializeObservation(obs WaitObservation) (OutputEvent, error) {
	data, err := json.Marshal(obs)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize wait observation: %w", err)
	}
	return OutputEvent{
		Key:   []byte(obs.ID),
		Value: data,
		Headers: map[string]string{
			"terminal":     obs.Terminal,
			"hours_known":  strconv.FormatBool(obs.Known()),
			"processed_at": obs.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}

// FormatHours renders hours for tabular output; unknown is the empty string.
func FormatHours(h *float64) string {
	if h == nil {
		return ""
	}
	return strconv.FormatFloat(*h, 'g', -1, 64)
}
