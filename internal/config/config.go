// internal/config/config.go
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yml
var defaultRules []byte

// Override is a one-off title correction for an all-caps title. It matches when
// the title equals Title or contains Contains (both case-insensitive).
type Override struct {
	Title      string `yaml:"title" validate:"required_without=Contains"`
	Contains   string `yaml:"contains" validate:"required_without=Title"`
	NewTitle   string `yaml:"new_title" validate:"required"`
	NewCompany string `yaml:"new_company"`
}

type Weights struct {
	Company           int `yaml:"company"`
	Salary            int `yaml:"salary"`
	DescriptionLong   int `yaml:"description_long"`
	DescriptionMedium int `yaml:"description_medium"`
	Sections          int `yaml:"sections"`
	JobType           int `yaml:"job_type"`
	Manual            int `yaml:"manual"`
	Contact           int `yaml:"contact"`
}

type Rules struct {
	Titles struct {
		Places      []string   `yaml:"places" validate:"dive,required"`
		Prefixes    []string   `yaml:"prefixes" validate:"dive,required"`
		UrgentTags  []string   `yaml:"urgent_tags" validate:"dive,required"`
		Acronyms    []string   `yaml:"acronyms" validate:"dive,required"`
		MinLength   int        `yaml:"min_length" validate:"gte=0"`
		CapsMinimum int        `yaml:"caps_minimum" validate:"gte=0"`
		Overrides   []Override `yaml:"overrides" validate:"dive"`
	} `yaml:"titles"`

	Companies struct {
		Placeholder   string   `yaml:"placeholder" validate:"required"`
		LegalSuffixes []string `yaml:"legal_suffixes" validate:"min=1,dive,required"`
		// Sources maps a source tag to a company name. An empty name marks an
		// aggregator: no inference from the tag.
		Sources map[string]string `yaml:"sources"`
	} `yaml:"companies"`

	Stubs struct {
		MaxLength         int      `yaml:"max_length" validate:"gt=0"`
		TitlePrefixLength int      `yaml:"title_prefix_length" validate:"gt=0"`
		FillerEndings     []string `yaml:"filler_endings" validate:"dive,required"`
	} `yaml:"stubs"`

	Format struct {
		SpamBanners    []string `yaml:"spam_banners" validate:"dive,required"`
		SectionHeaders []string `yaml:"section_headers" validate:"dive,required"`
	} `yaml:"format"`

	Scoring struct {
		Weights           Weights  `yaml:"weights"`
		LongDescription   int      `yaml:"long_description" validate:"gt=0"`
		MediumDescription int      `yaml:"medium_description" validate:"gt=0,ltfield=LongDescription"`
		SectionKeywords   []string `yaml:"section_keywords" validate:"min=1,dive,required"`
		ContactKeywords   []string `yaml:"contact_keywords" validate:"min=1,dive,required"`
		ManualSources     []string `yaml:"manual_sources"`
	} `yaml:"scoring"`
}

// Default returns the built-in rule tables.
func Default() Rules {
	var r Rules
	if err := yaml.Unmarshal(defaultRules, &r); err != nil {
		panic(fmt.Sprintf("config: embedded rules.yml: %v", err))
	}
	return r
}

// Load returns the built-in rules overlaid with the file at path (if any),
// validated.
func Load(path string) (Rules, error) {
	r := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return r, fmt.Errorf("read rules %s: %w", path, err)
		}
		if err := Overlay(&r, b); err != nil {
			return r, fmt.Errorf("overlay rules %s: %w", path, err)
		}
	}
	if err := Validate(r); err != nil {
		return r, err
	}
	return r, nil
}
