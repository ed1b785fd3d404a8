/*
filter.go - Filter/Search evaluation against the cached list

PURPOSE:
  Applies the view's FilterSpecs against a cached snapshot and returns the
  subset matching ALL specs (logical AND). Filtering never re-fetches.

PREDICATES:
  substring:  case-insensitive containment over one or more concatenated
              fields (e.g. first + last name)
  equals:     exact match against a single field
  date_range: inclusive bound check, value encoded "from..to"

EDGE CASE POLICY:
  - An empty/unset filter value is a no-op (matches everything)
  - A missing field is a non-match for equals/date_range
  - A missing field is the empty string for substring, so it fails a
    non-empty search but passes an empty one

ORDERING:
  The filter is stable: original cache order is preserved, nothing is
  re-sorted. filter(filter(L, p1), p2) == filter(L, p1 AND p2).

SEE ALSO:
  - types.go: FilterSpec and FilterValues
  - controller.go: Wires filter values from UI controls
*/
package listview

import (
	"strings"
	"time"
)

// RangeSeparator splits the two bounds of a date_range filter value.
const RangeSeparator = ".."

// Apply returns the items matching every spec with a non-empty value, in
// their original order. Specs without a corresponding value are no-ops.
func Apply(items []ListItem, specs []FilterSpec, values FilterValues) []ListItem {
	active := make([]FilterSpec, 0, len(specs))
	for _, s := range specs {
		if strings.TrimSpace(values[s.Key]) != "" {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return items
	}

	out := make([]ListItem, 0, len(items))
	for _, it := range items {
		matched := true
		for _, s := range active {
			if !s.Matches(it, values[s.Key]) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, it)
		}
	}
	return out
}

// Matches evaluates one spec against one item. An empty value matches.
func (s FilterSpec) Matches(it ListItem, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return true
	}

	switch s.Kind {
	case FilterSubstring:
		return s.matchSubstring(it, value)
	case FilterEquals:
		return s.matchEquals(it, value)
	case FilterDateRange:
		return s.matchDateRange(it, value)
	default:
		// Unknown kinds never filter anything out.
		return true
	}
}

func (s FilterSpec) matchSubstring(it ListItem, term string) bool {
	parts := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		parts = append(parts, it.String(f))
	}
	haystack := strings.ToLower(strings.Join(parts, " "))
	return strings.Contains(haystack, strings.ToLower(term))
}

func (s FilterSpec) matchEquals(it ListItem, value string) bool {
	if len(s.Fields) == 0 {
		return false
	}
	f := s.Fields[0]
	if !it.Has(f) {
		return false
	}
	return it.String(f) == value
}

func (s FilterSpec) matchDateRange(it ListItem, value string) bool {
	if len(s.Fields) == 0 {
		return false
	}
	f := s.Fields[0]
	if !it.Has(f) {
		return false
	}
	at, ok := parseDate(it.String(f))
	if !ok {
		return false
	}

	from, to, ok := parseRange(value)
	if !ok {
		return false
	}
	if !from.IsZero() && at.Before(from) {
		return false
	}
	if !to.IsZero() && at.After(to) {
		return false
	}
	return true
}

// parseRange splits "from..to" into bounds. Either side may be empty for an
// open-ended range. The upper bound is inclusive through end of day.
func parseRange(value string) (from, to time.Time, ok bool) {
	lo, hi, found := strings.Cut(value, RangeSeparator)
	if !found {
		// A bare date filters to that single day.
		lo, hi = value, value
	}
	if lo = strings.TrimSpace(lo); lo != "" {
		from, ok = parseDate(lo)
		if !ok {
			return time.Time{}, time.Time{}, false
		}
	}
	if hi = strings.TrimSpace(hi); hi != "" {
		to, ok = parseDate(hi)
		if !ok {
			return time.Time{}, time.Time{}, false
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, true
}

// dateLayouts are the field formats seen across backend responses.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
