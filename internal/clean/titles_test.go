package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobclean/internal/config"
)

func newTitles() *TitleNormalizer { return NewTitleNormalizer(config.Default()) }

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		company string
		fired   []string
	}{
		{"known province", "Accountant - Morobe", "Accountant", "", []string{RuleLocation}},
		{"en dash city", "Driver – Port Moresby", "Driver", "", []string{RuleLocation}},
		{"case-insensitive place", "Nurse - national capital district", "Nurse", "", []string{RuleLocation}},
		{"chained known places", "Clerk - Lae - Morobe", "Clerk", "", []string{RuleLocation}},
		{"generic place", "Accountant - Some Town", "Accountant", "", []string{RuleLocation}},
		{"generic town and province", "Nurse - Bulolo, Wau District", "Nurse", "", []string{RuleLocation}},
		{"stacked known places", "Clerk - Morobe - Lae", "Clerk", "", []string{RuleLocation}},
		{"known place stops generic", "Manager - Sales - Lae", "Manager - Sales", "", []string{RuleLocation}},
		{"no over-strip to near empty", "IT - Lae", "IT - Lae", "", nil},
		{"hyphenated word is not a separator", "Project Co-Ordinator", "Project Co-Ordinator", "", nil},
		{"position prefix", "Position: Sales Manager", "Sales Manager", "", []string{RulePositionPrefix}},
		{"bare position label kept", "Position:", "Position:", "", nil},
		{"prefix then place", "Position: Cashier - Goroka", "Cashier", "", []string{RuleLocation, RulePositionPrefix}},
		{"urgent tag", "URGENT: Site Engineer", "Site Engineer", "", []string{RuleUrgentTag}},
		{"headcount", "2 x Security Guards", "Security Guards", "", []string{RuleHeadcountPrefix}},
		{"headcount needs a space", "4x4 Driver", "4x4 Driver", "", nil},
		{"based suffix", "Mechanic (POM BASED)", "Mechanic", "", []string{RuleBasedSuffix}},
		{"all caps with acronyms", "IT MANAGER FOR HEAD OFFICE", "IT Manager For Head Office", "", []string{RuleCaps}},
		{"punctuated acronyms", "SENIOR OFFICER (HR) M&E", "Senior Officer (HR) M&E", "", []string{RuleCaps}},
		{"leading parenthesis", "FIELD WORKER (TEMPORARY)", "Field Worker (Temporary)", "", []string{RuleCaps}},
		{"short caps left alone", "CLERK", "CLERK", "", nil},
		{"caps with place", "ACCOUNTS CLERK - LAE", "Accounts Clerk", "", []string{RuleLocation, RuleCaps}},
		{"override", "COMPLETE AUTO SERVICES -LAE", "Auto Services Technician", "Complete Auto Services", []string{RuleSpecialFix}},
		{"already clean", "Finance Officer", "Finance Officer", "", nil},
	}
	n := newTitles()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := n.Normalize(tc.in)
			assert.Equal(t, tc.want, got.Title)
			assert.Equal(t, tc.company, got.Company)
			assert.Equal(t, tc.fired, got.Fired)
		})
	}
}

func TestNormalizeTitleIsIdempotent(t *testing.T) {
	n := newTitles()
	for _, in := range []string{
		"Accountant - Morobe",
		"Clerk - Morobe - Lae",
		"Position: Sales Manager",
		"IT MANAGER FOR HEAD OFFICE",
		"COMPLETE AUTO SERVICES -LAE",
		"URGENT: NEW GRADUATE (LAE BASED)",
	} {
		once := n.Normalize(in).Title
		twice := n.Normalize(once)
		assert.Equal(t, once, twice.Title, in)
		assert.Empty(t, twice.Fired, in)
	}
}

func TestTitleSelects(t *testing.T) {
	n := newTitles()
	assert.True(t, n.Selects("Accountant - Morobe"))
	assert.True(t, n.Selects("Position: Clerk"))
	assert.True(t, n.Selects("HEAD CHEF"))
	assert.False(t, n.Selects("Head Chef"))
	assert.False(t, n.Selects("CHEF"))
}

func TestTitleOverrideExactMatch(t *testing.T) {
	r := config.Default()
	r.Titles.Overrides = []config.Override{{Title: "acme trading", NewTitle: "Sales Assistant", NewCompany: "Acme Trading"}}
	n := NewTitleNormalizer(r)

	got := n.Normalize("ACME TRADING")
	assert.Equal(t, "Sales Assistant", got.Title)
	assert.Equal(t, "Acme Trading", got.Company)

	got = n.Normalize("ACME TRADING CLERK")
	assert.Equal(t, "Acme Trading Clerk", got.Title, "exact match only")
	assert.Empty(t, got.Company)
}

func TestTitleOverrideNeedsCaps(t *testing.T) {
	n := NewTitleNormalizer(config.Default())

	for _, title := range []string{
		"Complete Auto Services Mechanic",
		"Apprentice at Complete Auto Services",
	} {
		got := n.Normalize(title)
		assert.Equal(t, title, got.Title)
		assert.Empty(t, got.Company)
		assert.NotContains(t, got.Fired, RuleSpecialFix)
		assert.False(t, n.Selects(title), title)
	}

	got := n.Normalize("Mechanic - Complete Auto Services")
	assert.NotContains(t, got.Fired, RuleSpecialFix)
	assert.Empty(t, got.Company)

	got = n.Normalize("COMPLETE AUTO SERVICES MECHANIC")
	assert.Equal(t, "Auto Services Technician", got.Title)
	assert.Equal(t, []string{RuleSpecialFix}, got.Fired)
}

func TestRuleNamesInOrder(t *testing.T) {
	assert.Equal(t, []string{
		RuleLocation, RulePositionPrefix, RuleUrgentTag, RuleHeadcountPrefix,
		RuleBasedSuffix, RuleSpecialFix, RuleCaps,
	}, newTitles().RuleNames())
}
