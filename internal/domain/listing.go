package domain

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// Listing is one row of the jobs table as seen by the cleanup passes.
// Nullable text columns are read as "".
type Listing struct {
	ID           int64
	Title        string
	Description  string
	CompanyName  string
	Status       Status
	Source       string
	SalaryMin    *float64
	SalaryMax    *float64
	JobType      string
	QualityScore int
	// UpdatedAt is the raw column value; the store stamps it, nothing parses it.
	UpdatedAt string
}

// Change carries the fields a pass wants written back. Nil fields are left
// untouched; the store always refreshes updated_at alongside them.
type Change struct {
	Title        *string
	Description  *string
	CompanyName  *string
	Status       *Status
	QualityScore *int
}

func (c Change) Empty() bool {
	return c.Title == nil && c.Description == nil && c.CompanyName == nil &&
		c.Status == nil && c.QualityScore == nil
}

// Apply returns l with the change applied.
func (c Change) Apply(l Listing) Listing {
	if c.Title != nil {
		l.Title = *c.Title
	}
	if c.Description != nil {
		l.Description = *c.Description
	}
	if c.CompanyName != nil {
		l.CompanyName = *c.CompanyName
	}
	if c.Status != nil {
		l.Status = *c.Status
	}
	if c.QualityScore != nil {
		l.QualityScore = *c.QualityScore
	}
	return l
}
