package domain

// Extractor turns posts into wait observations for a fixed terminal
// configuration. It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	terminals Terminals
}

// NewExtractor creates an Extractor for the given terminals.
func NewExtractor(terminals Terminals) *Extractor {
	return &Extractor{terminals: terminals}
}

// Terminals returns the configuration the extractor was built with.
func (e *Extractor) Terminals() Terminals {
	return e.terminals
}

// Extract resolves the wait msg reports for terminal. It does not apply the
// relevance filter; callers select posts with IsRelevant first. An
// unconfigured terminal yields an observation with unknown hours.
func (e *Extractor) Extract(msg RawMessage, terminal string) WaitObservation {
	return e.extractNormalized(NormalizeText(msg.Text, e.terminals.routePrefix), msg, terminal)
}

// ExtractAll returns one observation per configured terminal the post is
// relevant to, in configuration order. Irrelevant posts yield nil.
func (e *Extractor) ExtractAll(msg RawMessage) []WaitObservation {
	normalized := NormalizeText(msg.Text, e.terminals.routePrefix)

	var out []WaitObservation
	for _, terminal := range e.terminals.Names() {
		if !IsRelevant(normalized, terminal) {
			continue
		}
		out = append(out, e.extractNormalized(normalized, msg, terminal))
	}
	return out
}

// ExtractTerminal runs the extractor over msgs for a single terminal, keeping
// only relevant posts. Output order follows input order.
func (e *Extractor) ExtractTerminal(msgs []RawMessage, terminal string) []WaitObservation {
	out := make([]WaitObservation, 0, len(msgs))
	for _, msg := range msgs {
		normalized := NormalizeText(msg.Text, e.terminals.routePrefix)
		if !IsRelevant(normalized, terminal) {
			continue
		}
		out = append(out, e.extractNormalized(normalized, msg, terminal))
	}
	return out
}

func (e *Extractor) extractNormalized(normalized string, msg RawMessage, terminal string) WaitObservation {
	obs := WaitObservation{
		ID:        observationID(terminal, msg.Timestamp, normalized),
		Terminal:  terminal,
		Text:      normalized,
		Timestamp: msg.Timestamp,
	}
	other, ok := e.terminals.Other(terminal)
	if !ok {
		return obs
	}
	obs.Hours = ResolveHours(normalized, terminal, other, e.terminals.alt)
	return obs
}
