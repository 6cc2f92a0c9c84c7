package clean

import (
	"regexp"
	"sort"
	"strings"

	"jobclean/internal/config"
)

// Title rule names double as the statistics keys of the titles pass.
const (
	RuleLocation        = "location_stripped"
	RulePositionPrefix  = "position_prefix"
	RuleUrgentTag       = "urgent_tag"
	RuleHeadcountPrefix = "headcount_prefix"
	RuleBasedSuffix     = "based_suffix"
	RuleSpecialFix      = "special_fix"
	RuleCaps            = "caps_fixed"
)

const sep = `\s*[-–—]\s*`

var (
	// "- City" or "- City Name, Province Name" left over after the known places.
	genericPlaceRe = regexp.MustCompile(sep + `[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*(?:,\s*[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)?\s*$`)
	separatorRe    = regexp.MustCompile(`[-–—]\s`)
	headcountRe    = regexp.MustCompile(`(?i)^\s*\d+\s*x\s+`)
	basedSuffixRe  = regexp.MustCompile(`(?i)\s*\([^)]*BASED\)\s*$`)
)

// TitleResult is the outcome of normalizing one title.
type TitleResult struct {
	Title string
	// Company is set only when an override supplies one.
	Company string
	// Fired lists the rules that changed the title, in order.
	Fired []string
}

type titleRule struct {
	name    string
	applies func(title string) bool
	apply   func(r *TitleResult) bool
}

type TitleNormalizer struct {
	rules     []titleRule
	places    []*regexp.Regexp
	prefix    *regexp.Regexp
	urgentPre *regexp.Regexp
	urgentSuf *regexp.Regexp
	acronyms  map[string]bool
	overrides []config.Override
	minLen    int
	capsMin   int
}

func NewTitleNormalizer(r config.Rules) *TitleNormalizer {
	n := &TitleNormalizer{
		prefix:    regexp.MustCompile(`(?i)^\s*(?:` + Alternation(r.Titles.Prefixes) + `)\s*`),
		urgentPre: regexp.MustCompile(`(?i)^\s*(?:` + Alternation(r.Titles.UrgentTags) + `)\s*[-:]\s*`),
		urgentSuf: regexp.MustCompile(`(?i)\s*[-–]\s*(?:` + Alternation(r.Titles.UrgentTags) + `)\s*$`),
		acronyms:  upperSet(r.Titles.Acronyms),
		overrides: r.Titles.Overrides,
		minLen:    r.Titles.MinLength,
		capsMin:   r.Titles.CapsMinimum,
	}

	places := append([]string(nil), r.Titles.Places...)
	sort.SliceStable(places, func(i, j int) bool { return runeLen(places[i]) > runeLen(places[j]) })
	for _, p := range places {
		n.places = append(n.places, regexp.MustCompile(`(?i)`+sep+regexp.QuoteMeta(p)+`\s*$`))
	}

	n.rules = []titleRule{
		{RuleLocation, separatorRe.MatchString, n.stripLocation},
		{RulePositionPrefix, n.prefix.MatchString, n.stripPrefix},
		{RuleUrgentTag, n.hasUrgentTag, n.stripUrgentTag},
		{RuleHeadcountPrefix, headcountRe.MatchString, n.stripHeadcount},
		{RuleBasedSuffix, basedSuffixRe.MatchString, n.stripBasedSuffix},
		{RuleSpecialFix, func(t string) bool { return n.override(t) != nil }, n.applyOverride},
		{RuleCaps, n.isShouting, n.fixCaps},
	}
	return n
}

// RuleNames lists the title rules in the order they run.
func (n *TitleNormalizer) RuleNames() []string {
	out := make([]string, len(n.rules))
	for i, r := range n.rules {
		out[i] = r.name
	}
	return out
}

// Selects reports whether any title rule applies to title.
func (n *TitleNormalizer) Selects(title string) bool {
	for _, r := range n.rules {
		if r.applies(title) {
			return true
		}
	}
	return false
}

// Normalize runs every applicable rule over title in order; each rule sees the
// output of the previous ones.
func (n *TitleNormalizer) Normalize(title string) TitleResult {
	res := TitleResult{Title: title}
	for _, r := range n.rules {
		if !r.applies(res.Title) {
			continue
		}
		if r.apply(&res) {
			res.Fired = append(res.Fired, r.name)
		}
	}
	return res
}

// stripLocation removes known trailing places, longest first, until none is
// left, so "Clerk - Morobe - Lae" becomes "Clerk". The generic
// capitalized-clause pattern only runs when no known place matched, so
// "Manager - Sales - Lae" keeps "Manager - Sales".
func (n *TitleNormalizer) stripLocation(r *TitleResult) bool {
	out := r.Title
	matched := false
	for swept := true; swept; {
		swept = false
		for _, re := range n.places {
			if re.MatchString(out) {
				out = re.ReplaceAllString(out, "")
				matched, swept = true, true
			}
		}
	}
	if !matched {
		out = genericPlaceRe.ReplaceAllString(out, "")
	}
	if out == r.Title {
		return false
	}
	out = strings.TrimSpace(out)
	if runeLen(out) <= n.minLen {
		return false
	}
	r.Title = out
	return true
}

func (n *TitleNormalizer) stripPrefix(r *TitleResult) bool {
	out := strings.TrimSpace(n.prefix.ReplaceAllString(r.Title, ""))
	if out == "" {
		return false
	}
	r.Title = out
	return true
}

func (n *TitleNormalizer) hasUrgentTag(t string) bool {
	return n.urgentPre.MatchString(t) || n.urgentSuf.MatchString(t)
}

func (n *TitleNormalizer) stripUrgentTag(r *TitleResult) bool {
	out := n.urgentPre.ReplaceAllString(r.Title, "")
	out = strings.TrimSpace(n.urgentSuf.ReplaceAllString(out, ""))
	return commit(r, out)
}

func (n *TitleNormalizer) stripHeadcount(r *TitleResult) bool {
	return commit(r, strings.TrimSpace(headcountRe.ReplaceAllString(r.Title, "")))
}

func (n *TitleNormalizer) stripBasedSuffix(r *TitleResult) bool {
	return commit(r, strings.TrimSpace(basedSuffixRe.ReplaceAllString(r.Title, "")))
}

func commit(r *TitleResult, out string) bool {
	if out == "" || out == r.Title {
		return false
	}
	r.Title = out
	return true
}

// override finds the correction for title. Only shouting titles are eligible,
// the same ones the caps rule would otherwise rewrite.
func (n *TitleNormalizer) override(title string) *config.Override {
	if !n.isShouting(title) {
		return nil
	}
	t := strings.ToUpper(strings.TrimSpace(title))
	for i := range n.overrides {
		o := &n.overrides[i]
		if o.Title != "" && t == strings.ToUpper(strings.TrimSpace(o.Title)) {
			return o
		}
		if o.Contains != "" && strings.Contains(t, strings.ToUpper(o.Contains)) {
			return o
		}
	}
	return nil
}

func (n *TitleNormalizer) applyOverride(r *TitleResult) bool {
	o := n.override(r.Title)
	if o == nil {
		return false
	}
	r.Title = o.NewTitle
	if o.NewCompany != "" {
		r.Company = o.NewCompany
	}
	return true
}

func (n *TitleNormalizer) isShouting(t string) bool {
	return runeLen(t) > n.capsMin && isAllCaps(t)
}

func (n *TitleNormalizer) fixCaps(r *TitleResult) bool {
	return commit(r, n.TitleCase(r.Title))
}

// TitleCase title-cases s word by word. Allow-listed acronyms stay upper-case
// and a leading "(" or "-" is kept in front of the cased remainder.
func (n *TitleNormalizer) TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		bare := strings.Trim(strings.ToUpper(w), "(),-:/")
		switch {
		case n.acronyms[bare]:
			words[i] = strings.ToUpper(w)
		case strings.HasPrefix(w, "(") || strings.HasPrefix(w, "-"):
			inner := w[1:]
			if n.acronyms[strings.ToUpper(inner)] {
				words[i] = w[:1] + strings.ToUpper(inner)
			} else {
				words[i] = w[:1] + capitalize(inner)
			}
		default:
			words[i] = capitalize(w)
		}
	}
	return strings.Join(words, " ")
}
