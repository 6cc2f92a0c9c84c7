package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"jobclean/internal/clean"
	"jobclean/internal/config"
	"jobclean/internal/domain"
	"jobclean/internal/rank"
)

// Stage names, in run order.
const (
	StageTitles    = "titles"
	StageCompanies = "companies"
	StageMarkup    = "markup"
	StageStubs     = "stubs"
	StageFormat    = "format"
	StageScores    = "scores"
)

// Stages builds the cleanup stages from the rule tables, in run order.
// Markup must precede formatting and scoring.
func Stages(r config.Rules) []Stage {
	return []Stage{
		&titleStage{n: clean.NewTitleNormalizer(r)},
		&companyStage{e: clean.NewCompanyExtractor(r)},
		&markupStage{},
		&stubStage{d: clean.NewStubDetector(r)},
		&formatStage{f: clean.NewDescriptionFormatter(r)},
		&scoreStage{s: rank.NewQualityScorer(r)},
	}
}

type titleStage struct{ n *clean.TitleNormalizer }

func (*titleStage) Name() string { return StageTitles }

func (s *titleStage) Run(ctx context.Context, st Store, log *slog.Logger) (Result, error) {
	var res Result
	for _, name := range s.n.RuleNames() {
		res.Add(name, 0)
	}
	res.Add("updated", 0)

	jobs, err := st.Active(ctx)
	if err != nil {
		return res, err
	}
	for _, l := range jobs {
		if !s.n.Selects(l.Title) {
			continue
		}
		res.Selected++
		out := s.n.Normalize(l.Title)

		var c domain.Change
		if out.Title != l.Title {
			c.Title = &out.Title
		}
		if out.Company != "" && out.Company != l.CompanyName {
			c.CompanyName = &out.Company
		}
		if c.Empty() {
			continue
		}
		if err := st.Update(ctx, l.ID, c); err != nil {
			return res, fmt.Errorf("update title %d: %w", l.ID, err)
		}
		for _, rule := range out.Fired {
			res.Add(rule, 1)
		}
		res.Add("updated", 1)
		res.Changed++
		log.Debug("title", "id", l.ID, "from", l.Title, "to", out.Title, "rules", out.Fired)
	}
	return res, nil
}

type companyStage struct{ e *clean.CompanyExtractor }

func (*companyStage) Name() string { return StageCompanies }

func (s *companyStage) Run(ctx context.Context, st Store, log *slog.Logger) (Result, error) {
	var res Result
	res.Add("extracted", 0)
	res.Add("defaulted", 0)

	jobs, err := st.Active(ctx)
	if err != nil {
		return res, err
	}
	for _, l := range jobs {
		if strings.TrimSpace(l.CompanyName) != "" {
			continue
		}
		res.Selected++
		name, rule := s.e.Extract(l.Description, l.Source)
		if err := st.Update(ctx, l.ID, domain.Change{CompanyName: &name}); err != nil {
			return res, fmt.Errorf("update company %d: %w", l.ID, err)
		}
		res.Changed++
		if rule == clean.ExtractDefault {
			res.Add("defaulted", 1)
		} else {
			res.Add("extracted", 1)
			res.AddBreakdown("by_"+rule, 1)
		}
		log.Debug("company", "id", l.ID, "company", name, "rule", rule)
	}
	return res, nil
}

type markupStage struct{}

func (*markupStage) Name() string { return StageMarkup }

func (s *markupStage) Run(ctx context.Context, st Store, log *slog.Logger) (Result, error) {
	var res Result
	res.Add("stripped", 0)

	jobs, err := st.Active(ctx)
	if err != nil {
		return res, err
	}
	for _, l := range jobs {
		if !clean.HasMarkup(l.Description) {
			continue
		}
		res.Selected++
		out := clean.StripMarkup(l.Description)
		if out == l.Description {
			continue
		}
		if err := st.Update(ctx, l.ID, domain.Change{Description: &out}); err != nil {
			return res, fmt.Errorf("update description %d: %w", l.ID, err)
		}
		res.Add("stripped", 1)
		res.Changed++
		log.Debug("markup", "id", l.ID, "before", len(l.Description), "after", len(out))
	}
	return res, nil
}

type stubStage struct{ d *clean.StubDetector }

func (*stubStage) Name() string { return StageStubs }

func (s *stubStage) Run(ctx context.Context, st Store, log *slog.Logger) (Result, error) {
	var res Result
	res.Add("deactivated", 0)
	res.Add("kept", 0)

	jobs, err := st.Active(ctx)
	if err != nil {
		return res, err
	}
	closed := domain.StatusClosed
	for _, l := range jobs {
		if !s.d.Selects(l.Description) {
			continue
		}
		res.Selected++
		if !s.d.IsStub(l.Title, l.Description) {
			res.Add("kept", 1)
			continue
		}
		if err := st.Update(ctx, l.ID, domain.Change{Status: &closed}); err != nil {
			return res, fmt.Errorf("close stub %d: %w", l.ID, err)
		}
		res.Add("deactivated", 1)
		res.Changed++
		log.Debug("stub", "id", l.ID, "title", l.Title)
	}
	return res, nil
}

type formatStage struct{ f *clean.DescriptionFormatter }

func (*formatStage) Name() string { return StageFormat }

func (s *formatStage) Run(ctx context.Context, st Store, log *slog.Logger) (Result, error) {
	var res Result
	res.Add("normalized", 0)

	jobs, err := st.Active(ctx)
	if err != nil {
		return res, err
	}
	for _, l := range jobs {
		res.Selected++
		out := s.f.Format(l.Description)
		if out == l.Description {
			continue
		}
		if err := st.Update(ctx, l.ID, domain.Change{Description: &out}); err != nil {
			return res, fmt.Errorf("update description %d: %w", l.ID, err)
		}
		res.Add("normalized", 1)
		res.Changed++
		log.Debug("format", "id", l.ID)
	}
	return res, nil
}

type scoreStage struct{ s rank.Scorer }

func (*scoreStage) Name() string { return StageScores }

// Run writes a score for every active listing, changed or not, so
// updated_at marks the run. Changed counts only scores that moved.
func (s *scoreStage) Run(ctx context.Context, st Store, log *slog.Logger) (Result, error) {
	var res Result
	res.Add("scored", 0)
	for _, b := range rank.Brackets {
		res.AddBreakdown(b, 0)
	}

	jobs, err := st.Active(ctx)
	if err != nil {
		return res, err
	}
	for _, l := range jobs {
		res.Selected++
		score, tags := s.s.Score(l)
		if err := st.Update(ctx, l.ID, domain.Change{QualityScore: &score}); err != nil {
			return res, fmt.Errorf("update score %d: %w", l.ID, err)
		}
		res.Add("scored", 1)
		res.AddBreakdown(rank.Bracket(score), 1)
		if score != l.QualityScore {
			res.Changed++
		}
		log.Debug("score", "id", l.ID, "score", score, "signals", tags)
	}
	return res, nil
}
