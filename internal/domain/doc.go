// Package domain turns ferry-operator status posts into per-terminal wait-time
// observations for the Edmonds/Kingston route.
//
// # Data Source
//
// Posts originate from the operator's route alert feed. The upstream collector
// (or an archive export) publishes each post as flat JSON with the same column
// names the archive CSV files use:
//
//	{"tweet_text": "Edm/King - Edmonds 1 hour wait, Kingston no wait https://t.co/x", "time": "2019-07-04 16:05:00+00:00"}
//
// # Post Conventions
//
// Route prefix:
//
//	Posts begin with "edm/king -" (after case folding). It names both terminals
//	and would defeat terminal attribution, so it is stripped first.
//
// Links and boarding-pass notices:
//
//	A trailing link ("https://t.co/...") runs to the end of the post and is
//	dropped with everything after it. The clauses ", wsp boarding pass required"
//	and ", no wsp boarding pass required" carry no wait information and contain
//	"no", which would otherwise read as "no wait".
//
// Dual-terminal posts:
//
//	"edmonds 1 hour wait - kingston 2 hour wait"
//	"edmonds no wait, kingston 90 minute wait"
//	Clauses are separated by "-" or ",". Each clause is attributed to the
//	terminal it names (canonical or alternate spelling, see [Terminals]).
//	A post is dual-terminal only when both canonical names appear; otherwise
//	it is parsed whole.
//
// # Wait Values
//
// Hours come from a fixed keyword table, tried in order, first match wins:
//
//	"1" | "one" | "60 minute"  → 1
//	"2" | "two"                → 2
//	"3" | "three"              → 3
//	"4" | "four"               → 4
//	"90 min"                   → 1.5
//	"no" ... "wait"            → 0
//	otherwise                  → unknown (nil)
//
// Matching is by substring, so "21 cars" and "31 minutes" both read as 1. The
// historical series downstream was produced under these exact semantics and
// the order is kept as-is. See [ParseHours].
//
// # ID Generation
//
// Observation IDs are deterministic SHA-256 prefixes of terminal|time|text, so
// redelivered posts produce identical observations and downstream upserts stay
// idempotent. See [observationID].
package domain
