package domain

import "regexp"

// hoursRule maps a keyword pattern to a wait in hours.
type hoursRule struct {
	pattern *regexp.Regexp
	hours   float64
}

// hoursRules is evaluated in order; the first matching pattern wins. Patterns
// match anywhere in the fragment, so a "1" inside "21" or "10:15" reads as 1.
var hoursRules = []hoursRule{
	{regexp.MustCompile(`1|one|60 minute`), 1},
	{regexp.MustCompile(`2|two`), 2},
	{regexp.MustCompile(`3|three`), 3},
	{regexp.MustCompile(`4|four`), 4},
	{regexp.MustCompile(`90 min`), 1.5},
	{regexp.MustCompile(`no.*wait`), 0},
}

// ParseHours returns the wait in hours described by fragment, or nil when no
// rule matches.
func ParseHours(fragment string) *float64 {
	for _, r := range hoursRules {
		if r.pattern.MatchString(fragment) {
			return hoursPtr(r.hours)
		}
	}
	return nil
}

func hoursPtr(h float64) *float64 {
	return &h
}
