package ingest

import (
	"regexp"
	"strings"
)

// The untappd feed titles follow a fixed grammar:
//
//	"<user> is drinking a(n) <beer> by <brewery> [at <location>]"
//
// The trailing location clause is stripped before matching. Both
// patterns are greedy, so a beer name containing " by " resolves with the
// brewery after the last occurrence, matching the feed's own convention.
var (
	locationClause = regexp.MustCompile(`^(.+)\s+at\s+(.+)$`)
	titleGrammar   = regexp.MustCompile(`^(?P<user>.+)\s+is\s+drinking\s+an?\s+(?P<beer>.+)\s+by\s+(?P<brewery>.+)$`)
)

// TitleMatch holds the pieces extracted from a feed entry title.
type TitleMatch struct {
	User    string
	Beer    string
	Brewery string
}

// ParseTitle parses a feed entry title against the checkin grammar.
// Failure is data, not an error: malformed titles are dropped by the
// caller, never escalated.
func ParseTitle(title string) (TitleMatch, bool) {
	if m := locationClause.FindStringSubmatch(title); m != nil {
		title = m[1]
	}

	m := titleGrammar.FindStringSubmatch(title)
	if m == nil {
		return TitleMatch{}, false
	}

	match := TitleMatch{}

	for i, name := range titleGrammar.SubexpNames() {
		switch name {
		case "user":
			match.User = strings.TrimSpace(m[i])
		case "beer":
			match.Beer = strings.TrimSpace(m[i])
		case "brewery":
			match.Brewery = strings.TrimSpace(m[i])
		}
	}

	return match, true
}
