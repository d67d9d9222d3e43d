// Command validate checks the extractor against a labelled fixture of posts.
// Each row names a post, the terminal it is read for, and the wait a human
// read from it (blank for unknown). Disagreements are reported per phase.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -fixture cmd/validate/testdata/labelled_posts.csv \
//	  -terminals terminals.yaml
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/ferry-wait-etl/internal/config"
	"github.com/couchcryptid/ferry-wait-etl/internal/domain"
	"github.com/couchcryptid/ferry-wait-etl/internal/pipeline"
	"github.com/google/go-cmp/cmp"
)

var baseDate = time.Date(2019, time.July, 4, 0, 0, 0, 0, time.UTC)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// labelledPost is one fixture row.
type labelledPost struct {
	lineNum  int
	text     string
	terminal string
	expected *float64
	rawWant  string
}

func main() {
	fixture := flag.String("fixture", "", "labelled CSV with text, terminal, expected columns")
	terminalsPath := flag.String("terminals", "", "terminals YAML file (default: edmonds/kingston)")
	flag.Parse()

	if *fixture == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(os.Stdout, *fixture, *terminalsPath); code != 0 {
		os.Exit(code)
	}
}

func run(w io.Writer, fixturePath, terminalsPath string) int {
	fmt.Fprintln(w, "=== Ferry Wait Extraction Validation ===")
	fmt.Fprintln(w)

	terminals, err := config.LoadTerminals(terminalsPath)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}

	posts, err := loadFixture(fixturePath)
	if err != nil {
		fmt.Fprintf(w, "FATAL: load fixture: %v\n", err)
		return 1
	}

	ex := domain.NewExtractor(terminals)
	phases := []*phase{
		validateFixture(posts, terminals),
		validateRelevance(posts, terminals),
		validateExtraction(posts, ex),
		validateBatchParity(posts, ex),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Posts: %d labelled, %d unknown\n", len(posts), countUnknown(posts))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// ── Data loading ──

func loadFixture(path string) ([]labelledPost, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) < 2 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}

	cols := map[string]int{}
	for i, h := range all[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range []string{"text", "terminal", "expected"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing %q column", name)
		}
	}

	posts := make([]labelledPost, 0, len(all)-1)
	for i, row := range all[1:] {
		get := func(name string) string {
			if j := cols[name]; j < len(row) {
				return strings.TrimSpace(row[j])
			}
			return ""
		}
		post := labelledPost{
			lineNum:  i + 2,
			text:     get("text"),
			terminal: strings.ToLower(get("terminal")),
			rawWant:  get("expected"),
		}
		if post.rawWant != "" {
			v, err := strconv.ParseFloat(post.rawWant, 64)
			if err == nil {
				post.expected = &v
			}
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func countUnknown(posts []labelledPost) int {
	n := 0
	for i := range posts {
		if posts[i].rawWant == "" {
			n++
		}
	}
	return n
}

func message(post labelledPost) domain.RawMessage {
	return domain.RawMessage{
		Text:      post.text,
		Timestamp: baseDate.Add(time.Duration(post.lineNum) * time.Minute),
	}
}

// ── Phase 1: Fixture ──
// Every row names a configured terminal and a parsable expected value.

func validateFixture(posts []labelledPost, terminals domain.Terminals) *phase {
	p := &phase{name: "Phase 1: Fixture (labels)"}
	for _, post := range posts {
		if post.text == "" {
			p.errorf("line %d: empty text", post.lineNum)
		}
		if !terminals.Has(post.terminal) {
			p.errorf("line %d: terminal %q is not configured", post.lineNum, post.terminal)
		}
		if post.rawWant != "" && post.expected == nil {
			p.errorf("line %d: expected %q is not a number", post.lineNum, post.rawWant)
		}
	}
	return p
}

// ── Phase 2: Relevance ──
// Labelled posts must pass the relevance filter for their terminal.

func validateRelevance(posts []labelledPost, terminals domain.Terminals) *phase {
	p := &phase{name: "Phase 2: Relevance (filter)"}
	for _, post := range posts {
		normalized := domain.NormalizeText(post.text, terminals.RoutePrefix())
		if !domain.IsRelevant(normalized, post.terminal) {
			p.errorf("line %d: %q not relevant to %s after normalization (%q)",
				post.lineNum, post.text, post.terminal, normalized)
		}
	}
	return p
}

// ── Phase 3: Extraction ──
// Extracted hours agree with the human label.

func validateExtraction(posts []labelledPost, ex *domain.Extractor) *phase {
	p := &phase{name: "Phase 3: Extraction (hours vs label)"}
	for _, post := range posts {
		obs := ex.Extract(message(post), post.terminal)
		if !hoursEq(obs.Hours, post.expected) {
			p.errorf("line %d (%s): %q: expected %s, got %s",
				post.lineNum, post.terminal, post.text, fmtHours(post.expected), fmtHours(obs.Hours))
		}
	}
	return p
}

// ── Phase 4: Batch parity ──
// The parallel runner produces the sequential result for every terminal.

func validateBatchParity(posts []labelledPost, ex *domain.Extractor) *phase {
	p := &phase{name: "Phase 4: Batch Parity (parallel vs sequential)"}

	msgs := make([]domain.RawMessage, len(posts))
	for i := range posts {
		msgs[i] = message(posts[i])
	}

	got, err := pipeline.RunBatch(context.Background(), ex, msgs, 4)
	if err != nil {
		p.errorf("run batch: %v", err)
		return p
	}
	for _, terminal := range ex.Terminals().Names() {
		want := ex.ExtractTerminal(msgs, terminal)
		if diff := cmp.Diff(want, got[terminal]); diff != "" {
			p.errorf("%s: parallel result differs (-sequential +parallel):\n%s", terminal, diff)
		}
	}
	return p
}

// ── Helpers ──

func hoursEq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return math.Abs(*a-*b) < 1e-9
}

func fmtHours(h *float64) string {
	if h == nil {
		return "<unknown>"
	}
	return domain.FormatHours(h)
}
