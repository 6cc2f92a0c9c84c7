package rank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobclean/internal/config"
	"jobclean/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func TestQualityScoreExample(t *testing.T) {
	s := NewQualityScorer(config.Default())
	desc := "Responsibilities:\n" + strings.Repeat("Drive the company truck safely. ", 20)
	require.Greater(t, len(desc), 500)

	l := domain.Listing{
		Title:       "Driver",
		Description: desc,
		CompanyName: "Ok Tedi Mining",
		JobType:     "full-time",
	}
	score, tags := s.Score(l)
	assert.Equal(t, 75, score)
	assert.Equal(t, []string{TagCompany, TagDescriptionLong, TagSections, TagJobType, TagManual}, tags)

	l.Description += "\nEmail jobs@oktedi.com.pg"
	score, tags = s.Score(l)
	assert.Equal(t, 85, score)
	assert.Contains(t, tags, TagContact)
}

func TestQualityScoreSignals(t *testing.T) {
	base := domain.Listing{Source: "pngjobseek"}
	tests := []struct {
		name   string
		mutate func(l *domain.Listing)
		want   int
		tag    string
	}{
		{"nothing", func(l *domain.Listing) {}, 0, ""},
		{"real company", func(l *domain.Listing) { l.CompanyName = "Telikom" }, 20, TagCompany},
		{"placeholder company", func(l *domain.Listing) { l.CompanyName = "Employer on WantokJobs" }, 0, ""},
		{"salary max only", func(l *domain.Listing) { l.SalaryMax = ptr(900) }, 15, TagSalary},
		{"medium description", func(l *domain.Listing) { l.Description = strings.Repeat("x", 300) }, 10, TagDescriptionMedium},
		{"medium boundary", func(l *domain.Listing) { l.Description = strings.Repeat("x", 500) }, 10, TagDescriptionMedium},
		{"long boundary", func(l *domain.Listing) { l.Description = strings.Repeat("x", 501) }, 20, TagDescriptionLong},
		{"short description", func(l *domain.Listing) { l.Description = strings.Repeat("x", 200) }, 0, ""},
		{"section keyword", func(l *domain.Listing) { l.Description = "key selection criteria below" }, 15, TagSections},
		{"job type", func(l *domain.Listing) { l.JobType = "contract" }, 10, TagJobType},
		{"blank job type", func(l *domain.Listing) { l.JobType = "  " }, 0, ""},
		{"empty source", func(l *domain.Listing) { l.Source = "" }, 10, TagManual},
		{"manual source", func(l *domain.Listing) { l.Source = "Manual" }, 10, TagManual},
		{"phone", func(l *domain.Listing) { l.Description = "Call 7123 4567" }, 10, TagContact},
		{"phone with colon", func(l *domain.Listing) { l.Description = "Tel: +675 321 1234" }, 10, TagContact},
		{"telephone", func(l *domain.Listing) { l.Description = "Telephone: 675 321 4567" }, 10, TagContact},
		{"mobile", func(l *domain.Listing) { l.Description = "Mobile 7012 3456" }, 10, TagContact},
		{"call without number", func(l *domain.Listing) { l.Description = "Call us today" }, 0, ""},
		{"keyword inside a word", func(l *domain.Listing) { l.Description = "recall 5 items" }, 0, ""},
		{"email", func(l *domain.Listing) { l.Description = "send to hr@bsp.com.pg" }, 10, TagContact},
	}
	s := NewQualityScorer(config.Default())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := base
			tc.mutate(&l)
			score, tags := s.Score(l)
			assert.Equal(t, tc.want, score)
			if tc.tag == "" {
				assert.Empty(t, tags)
			} else {
				assert.Equal(t, []string{tc.tag}, tags)
			}
		})
	}
}

func TestQualityScoreMaximum(t *testing.T) {
	s := NewQualityScorer(config.Default())
	l := domain.Listing{
		CompanyName: "Kina Bank",
		SalaryMin:   ptr(1000),
		Description: "Duties: " + strings.Repeat("a", 600) + " phone 325 7000",
		JobType:     "full-time",
		Source:      "manual",
	}
	score, _ := s.Score(l)
	assert.Equal(t, 100, score)
}

func TestQualityScoreIsStable(t *testing.T) {
	s := NewQualityScorer(config.Default())
	l := domain.Listing{CompanyName: "Puma Energy", Description: "Requirements: degree", QualityScore: 35}
	first, _ := s.Score(l)
	l.QualityScore = first
	second, _ := s.Score(l)
	assert.Equal(t, first, second)
}

func TestQualityScoreCustomWeights(t *testing.T) {
	r := config.Default()
	r.Scoring.Weights.Company = 50
	r.Scoring.ManualSources = nil
	s := NewQualityScorer(r)

	score, tags := s.Score(domain.Listing{CompanyName: "Trukai", Source: ""})
	assert.Equal(t, 60, score, "empty source still counts as manual")
	assert.Equal(t, []string{TagCompany, TagManual}, tags)
}

func TestBracket(t *testing.T) {
	tests := map[int]string{
		100: "80-100", 80: "80-100", 79: "60-79", 60: "60-79", 59: "40-59",
		40: "40-59", 39: "20-39", 20: "20-39", 19: "0-19", 0: "0-19",
	}
	for score, want := range tests {
		assert.Equal(t, want, Bracket(score), score)
	}
	for _, b := range Brackets {
		assert.NotEmpty(t, b)
	}
	assert.Len(t, Brackets, 5)
}
