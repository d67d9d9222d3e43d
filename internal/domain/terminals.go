package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// AltNameTable maps a canonical terminal name to the short or alternate
// spellings used for it in posts, e.g. "edmonds" -> {"edm", "edms", " ed"}.
// Leading or trailing spaces in an alternate are significant.
type AltNameTable map[string][]string

// DefaultRoutePrefix is the route indicator that opens every Edmonds/Kingston post.
const DefaultRoutePrefix = "edm/king -"

// Terminals is the immutable terminal configuration shared by every extraction.
// Build it with NewTerminals or DefaultTerminals; the zero value has no terminals.
type Terminals struct {
	names       [2]string
	alt         AltNameTable
	routePrefix string
}

// DefaultTerminals returns the Edmonds/Kingston configuration.
func DefaultTerminals() Terminals {
	t, err := NewTerminals(
		[]string{"edmonds", "kingston"},
		AltNameTable{
			"edmonds":  {"edm", "edms", " ed"},
			"kingston": {"kgstn", "king"},
		},
		DefaultRoutePrefix,
	)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTerminals validates and copies a terminal configuration. Exactly two
// distinct, non-empty, lowercase canonical names are required because posts
// are case-folded before matching.
func NewTerminals(names []string, alt AltNameTable, routePrefix string) (Terminals, error) {
	if len(names) != 2 {
		return Terminals{}, fmt.Errorf("expected exactly 2 terminals, got %d", len(names))
	}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return Terminals{}, errors.New("terminal name must not be empty")
		}
		if name != strings.ToLower(name) {
			return Terminals{}, fmt.Errorf("terminal name %q must be lowercase", name)
		}
	}
	if names[0] == names[1] {
		return Terminals{}, fmt.Errorf("duplicate terminal name %q", names[0])
	}
	for key := range alt {
		if !slices.Contains(names, key) {
			return Terminals{}, fmt.Errorf("alternate names given for unknown terminal %q", key)
		}
	}

	copied := make(AltNameTable, len(names))
	for _, name := range names {
		for _, a := range alt[name] {
			if a == "" {
				return Terminals{}, fmt.Errorf("empty alternate name for terminal %q", name)
			}
			copied[name] = append(copied[name], strings.ToLower(a))
		}
	}

	return Terminals{
		names:       [2]string{names[0], names[1]},
		alt:         copied,
		routePrefix: strings.ToLower(routePrefix),
	}, nil
}

// Names returns the canonical terminal names in configuration order.
func (t Terminals) Names() []string {
	if t.names[0] == "" {
		return nil
	}
	return []string{t.names[0], t.names[1]}
}

// Has reports whether name is a configured canonical terminal name.
func (t Terminals) Has(name string) bool {
	return name != "" && (name == t.names[0] || name == t.names[1])
}

// Other returns the terminal that is not name.
func (t Terminals) Other(name string) (string, bool) {
	switch {
	case !t.Has(name):
		return "", false
	case name == t.names[0]:
		return t.names[1], true
	default:
		return t.names[0], true
	}
}

// AltNames returns a copy of the alternate table.
func (t Terminals) AltNames() AltNameTable {
	out := make(AltNameTable, len(t.alt))
	for k, v := range t.alt {
		out[k] = slices.Clone(v)
	}
	return out
}

func (t Terminals) RoutePrefix() string {
	return t.routePrefix
}
