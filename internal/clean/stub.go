package clean

import (
	"regexp"
	"strings"

	"jobclean/internal/config"
)

// StubDetector flags short descriptions that say nothing beyond the title or
// are a known filler template.
type StubDetector struct {
	maxLen    int
	prefixLen int
	fillerRe  *regexp.Regexp
}

func NewStubDetector(r config.Rules) *StubDetector {
	return &StubDetector{
		maxLen:    r.Stubs.MaxLength,
		prefixLen: r.Stubs.TitlePrefixLength,
		fillerRe: regexp.MustCompile(`^Job opportunity at .+?\.\s*(?:` +
			Alternation(r.Stubs.FillerEndings) + `)`),
	}
}

// Selects reports whether desc is short enough to be checked.
func (d *StubDetector) Selects(desc string) bool { return runeLen(desc) < d.maxLen }

func (d *StubDetector) IsStub(title, desc string) bool {
	dc := strings.ToLower(strings.TrimSpace(desc))
	tc := strings.ToLower(strings.TrimSpace(title))
	// An empty title would prefix every description.
	if tc != "" && (strings.HasPrefix(dc, tc) || strings.HasPrefix(tc, firstRunes(dc, d.prefixLen))) {
		return true
	}
	return d.fillerRe.MatchString(desc)
}
