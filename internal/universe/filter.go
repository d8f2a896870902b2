package universe

import (
	"regexp"
	"sort"
	"strings"
)

var (
	// Trailing class markers for warrants, units, rights and preferred
	// shares, in both legacy dot form and hyphen form.
	nonCommonSuffix = regexp.MustCompile(`[.-][WURP]$`)
	validSymbol     = regexp.MustCompile(`^[A-Z][A-Z0-9-]*$`)
)

// Normalize cleans one raw ticker and reports whether it belongs in the
// universe. Legacy dot share classes are rewritten to hyphen form
// (BRK.B -> BRK-B); warrants, units, rights and preferred classes are
// excluded, as are symbols with special characters or more than 6 runes.
func Normalize(raw string) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" || len(s) > 6 {
		return "", false
	}
	if strings.ContainsAny(s, "$#") {
		return "", false
	}
	if nonCommonSuffix.MatchString(s) {
		return "", false
	}
	s = strings.ReplaceAll(s, ".", "-")
	if !validSymbol.MatchString(s) {
		return "", false
	}
	return s, true
}

// Filter normalizes every raw ticker, drops the invalid ones, dedupes and
// sorts. Applying it twice yields the same set as applying it once.
func Filter(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		sym, ok := Normalize(r)
		if !ok {
			continue
		}
		if _, dup := seen[sym]; dup {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}
