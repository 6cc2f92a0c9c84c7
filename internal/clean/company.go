package clean

import (
	"regexp"
	"strings"

	"jobclean/internal/config"
)

// Company extractor names, as reported in the companies pass breakdown.
const (
	ExtractOpportunity = "opportunity"
	ExtractAbout       = "about"
	ExtractSeeking     = "seeking"
	ExtractSource      = "source"
	ExtractDefault     = "default"
)

var (
	opportunityRe = regexp.MustCompile(`Job opportunity at ([^.]+?)\.`)
	aboutRe       = regexp.MustCompile(`(?i)About (?:the )?Company[:\s]*\n\s*([^\n]+)`)
)

type companyRule struct {
	name string
	find func(desc, source string) string
}

// CompanyExtractor infers a missing employer name. Rules run in order and the
// first non-empty result wins; the placeholder is the last resort.
type CompanyExtractor struct {
	rules       []companyRule
	seekingRe   *regexp.Regexp
	sources     map[string]string
	placeholder string
}

func NewCompanyExtractor(r config.Rules) *CompanyExtractor {
	e := &CompanyExtractor{
		seekingRe: regexp.MustCompile(`^([A-Z][A-Za-z\s&.,()]+(?:` + Alternation(r.Companies.LegalSuffixes) +
			`)\.?)\s+(?:is|are)\s+(?:seeking|looking|hiring|recruiting)`),
		sources:     r.Companies.Sources,
		placeholder: r.Companies.Placeholder,
	}
	e.rules = []companyRule{
		{ExtractOpportunity, func(d, _ string) string { return submatch(opportunityRe, d) }},
		{ExtractAbout, func(d, _ string) string { return submatch(aboutRe, d) }},
		{ExtractSeeking, func(d, _ string) string { return submatch(e.seekingRe, d) }},
		{ExtractSource, func(_, s string) string { return e.sources[strings.TrimSpace(s)] }},
	}
	return e
}

func (e *CompanyExtractor) Placeholder() string { return e.placeholder }

// Extract returns the inferred company name and the rule that produced it
// (ExtractDefault for the placeholder).
func (e *CompanyExtractor) Extract(desc, source string) (name, rule string) {
	for _, r := range e.rules {
		if name := tidyCompany(r.find(desc, source)); name != "" {
			return name, r.name
		}
	}
	return e.placeholder, ExtractDefault
}

func submatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func tidyCompany(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".")
	return strings.TrimSpace(s)
}
