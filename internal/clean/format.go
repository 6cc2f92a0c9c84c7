package clean

import (
	"regexp"
	"strings"

	"jobclean/internal/config"
)

var (
	starRunRe       = regexp.MustCompile(`\*{3,}`)
	underscoreRunRe = regexp.MustCompile(`_{3,}`)
	dashRunRe       = regexp.MustCompile(`-{5,}`)
	equalsRunRe     = regexp.MustCompile(`={3,}`)
	newlineRunRe    = regexp.MustCompile(`\n{4,}`)
)

type formatRule struct {
	name  string
	apply func(string) string
}

// DescriptionFormatter tidies plain-text descriptions: banner removal, a blank
// line before section headers, decorative runs collapsed.
type DescriptionFormatter struct {
	rules    []formatRule
	bannerRe *regexp.Regexp
	headerRe *regexp.Regexp
}

func NewDescriptionFormatter(r config.Rules) *DescriptionFormatter {
	f := &DescriptionFormatter{
		// whole first line only: "Vacancy for a driver" is content, "VACANCY!" is not
		bannerRe: regexp.MustCompile(`(?i)^\s*(?:` + Alternation(r.Format.SpamBanners) + `)!*[ \t]*(?:\n+|$)`),
		headerRe: regexp.MustCompile(`\n(?:` + Alternation(r.Format.SectionHeaders) + `)`),
	}
	f.rules = []formatRule{
		{"banner", f.stripBanner},
		{"headers", f.spaceHeaders},
		{"artifacts", collapseArtifacts},
		{"newlines", func(s string) string { return newlineRunRe.ReplaceAllString(s, "\n\n\n") }},
	}
	return f
}

func (f *DescriptionFormatter) Format(desc string) string {
	for _, r := range f.rules {
		desc = r.apply(desc)
	}
	return desc
}

func (f *DescriptionFormatter) stripBanner(s string) string {
	return strings.TrimSpace(f.bannerRe.ReplaceAllString(s, ""))
}

// spaceHeaders inserts a blank line before each header that sits on its own
// line right after text.
func (f *DescriptionFormatter) spaceHeaders(s string) string {
	locs := f.headerRe.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(locs))
	last := 0
	for _, loc := range locs {
		i := loc[0]
		if i > 0 && s[i-1] == '\n' {
			continue
		}
		b.WriteString(s[last:i])
		b.WriteByte('\n')
		last = i
	}
	b.WriteString(s[last:])
	return b.String()
}

func collapseArtifacts(s string) string {
	s = starRunRe.ReplaceAllString(s, "")
	s = underscoreRunRe.ReplaceAllString(s, "")
	s = dashRunRe.ReplaceAllString(s, "---")
	return equalsRunRe.ReplaceAllString(s, "")
}
