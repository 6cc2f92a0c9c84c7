package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"jobclean/internal/domain"
)

// Memory is an in-memory jobs table with the same read/write surface as Tx.
// Stage tests run against it.
type Memory struct {
	rows map[int64]domain.Listing
	Now  func() time.Time

	// Writes counts non-empty Update calls per listing id.
	Writes map[int64]int
}

func NewMemory(listings ...domain.Listing) *Memory {
	m := &Memory{
		rows:   make(map[int64]domain.Listing, len(listings)),
		Now:    time.Now,
		Writes: make(map[int64]int),
	}
	for _, l := range listings {
		if l.Status == "" {
			l.Status = domain.StatusActive
		}
		m.rows[l.ID] = l
	}
	return m
}

func (m *Memory) Active(_ context.Context) ([]domain.Listing, error) {
	var out []domain.Listing
	for _, l := range m.rows {
		if l.Status == domain.StatusActive {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) Update(_ context.Context, id int64, c domain.Change) error {
	if c.Empty() {
		return nil
	}
	l, ok := m.rows[id]
	if !ok {
		return fmt.Errorf("update job %d: no such row", id)
	}
	l = c.Apply(l)
	l.UpdatedAt = m.Now().UTC().Format("2006-01-02 15:04:05")
	m.rows[id] = l
	m.Writes[id]++
	return nil
}

func (m *Memory) Get(id int64) (domain.Listing, bool) {
	l, ok := m.rows[id]
	return l, ok
}

// TotalWrites sums Writes.
func (m *Memory) TotalWrites() int {
	n := 0
	for _, w := range m.Writes {
		n += w
	}
	return n
}

func (m *Memory) ResetWrites() {
	m.Writes = make(map[int64]int)
}

func (m *Memory) CountBySource(_ context.Context) ([]SourceCount, error) {
	counts := map[string]int{}
	for _, l := range m.rows {
		counts[l.Source]++
	}
	out := make([]SourceCount, 0, len(counts))
	for s, n := range counts {
		out = append(out, SourceCount{Source: s, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Source < out[j].Source
	})
	return out, nil
}

func (m *Memory) CountActive(_ context.Context) (int, error) {
	n := 0
	for _, l := range m.rows {
		if l.Status == domain.StatusActive {
			n++
		}
	}
	return n, nil
}
