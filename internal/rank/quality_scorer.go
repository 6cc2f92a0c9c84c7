// internal/rank/quality_scorer.go
package rank

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"jobclean/internal/clean"
	"jobclean/internal/config"
	"jobclean/internal/domain"
)

// Signal tags, returned by Score for every signal that contributed.
const (
	TagCompany           = "company"
	TagSalary            = "salary"
	TagDescriptionLong   = "description_long"
	TagDescriptionMedium = "description_medium"
	TagSections          = "sections"
	TagJobType           = "job_type"
	TagManual            = "manual"
	TagContact           = "contact"
)

var emailRe = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)

type signal struct {
	tag    string
	weight int
	hit    func(l domain.Listing) bool
}

// QualityScorer adds up independent completeness signals. There is no clamp;
// the default weights sum to 100.
type QualityScorer struct {
	signals     []signal
	placeholder string
	long        int
	medium      int
	sectionsRe  *regexp.Regexp
	phoneRe     *regexp.Regexp
	manual      map[string]bool
}

func NewQualityScorer(r config.Rules) *QualityScorer {
	w := r.Scoring.Weights
	s := &QualityScorer{
		placeholder: r.Companies.Placeholder,
		long:        r.Scoring.LongDescription,
		medium:      r.Scoring.MediumDescription,
		sectionsRe:  regexp.MustCompile(`(?i)(?:` + clean.Alternation(r.Scoring.SectionKeywords) + `)`),
		phoneRe:     regexp.MustCompile(`(?i)\b(?:` + clean.Alternation(r.Scoring.ContactKeywords) + `)[\s:]+[+(]?\d[\d\s+()-]*`),
		manual:      map[string]bool{},
	}
	for _, m := range r.Scoring.ManualSources {
		s.manual[strings.ToLower(strings.TrimSpace(m))] = true
	}

	s.signals = []signal{
		{TagCompany, w.Company, s.hasCompany},
		{TagSalary, w.Salary, func(l domain.Listing) bool { return l.SalaryMin != nil || l.SalaryMax != nil }},
		{TagDescriptionLong, w.DescriptionLong, func(l domain.Listing) bool { return utf8.RuneCountInString(l.Description) > s.long }},
		{TagDescriptionMedium, w.DescriptionMedium, func(l domain.Listing) bool {
			n := utf8.RuneCountInString(l.Description)
			return n > s.medium && n <= s.long
		}},
		{TagSections, w.Sections, func(l domain.Listing) bool { return s.sectionsRe.MatchString(l.Description) }},
		{TagJobType, w.JobType, func(l domain.Listing) bool { return strings.TrimSpace(l.JobType) != "" }},
		{TagManual, w.Manual, s.isManual},
		{TagContact, w.Contact, s.hasContact},
	}
	return s
}

func (s *QualityScorer) Score(l domain.Listing) (int, []string) {
	score := 0
	var tags []string
	for _, sig := range s.signals {
		if sig.hit(l) {
			score += sig.weight
			tags = append(tags, sig.tag)
		}
	}
	return score, tags
}

func (s *QualityScorer) hasCompany(l domain.Listing) bool {
	cn := strings.TrimSpace(l.CompanyName)
	return cn != "" && cn != s.placeholder
}

func (s *QualityScorer) isManual(l domain.Listing) bool {
	src := strings.ToLower(strings.TrimSpace(l.Source))
	return src == "" || s.manual[src]
}

func (s *QualityScorer) hasContact(l domain.Listing) bool {
	return emailRe.MatchString(l.Description) || s.phoneRe.MatchString(l.Description)
}
