package catalog

import (
	"fmt"
	"sync/atomic"

	"github.com/saleslens/backend/internal/domain"
)

// Snapshot is an immutable view of the baseline catalog plus zero or more
// industry override tables. It is built once (during load) and never mutated
// afterwards; tables keep insertion order because override matching is
// first-match-wins.
type Snapshot struct {
	baseline   []domain.ProductRecord
	industries map[string][]domain.IndustryOverride
}

// NewSnapshot creates an empty snapshot ready for loading
func NewSnapshot() *Snapshot {
	return &Snapshot{
		industries: make(map[string][]domain.IndustryOverride),
	}
}

// LoadBaseline sets the baseline table. A row without a name or code breaks
// the baseline contract and aborts the load; catalog data problems must
// surface at startup, not per request.
func (s *Snapshot) LoadBaseline(rows []domain.ProductRecord) error {
	for i, row := range rows {
		if row.Name == "" || row.Code == "" {
			return fmt.Errorf("%w: baseline row %d missing name or code", domain.ErrInvalidData, i+1)
		}
	}
	s.baseline = make([]domain.ProductRecord, len(rows))
	copy(s.baseline, rows)
	return nil
}

// LoadIndustry adds or replaces the override table for label. Labels are
// opaque, case-sensitive strings.
func (s *Snapshot) LoadIndustry(label string, rows []domain.IndustryOverride) error {
	if label == "" {
		return fmt.Errorf("%w: empty industry label", domain.ErrInvalidData)
	}
	for i, row := range rows {
		if row.ProductName == "" {
			return fmt.Errorf("%w: industry %q row %d missing product name", domain.ErrInvalidData, label, i+1)
		}
	}
	table := make([]domain.IndustryOverride, len(rows))
	copy(table, rows)
	s.industries[label] = table
	return nil
}

// Baseline returns the baseline table in insertion order
func (s *Snapshot) Baseline() []domain.ProductRecord {
	return s.baseline
}

// IndustryTable returns the override table registered for label, or false
// when the industry has no table at all.
func (s *Snapshot) IndustryTable(label string) ([]domain.IndustryOverride, bool) {
	rows, ok := s.industries[label]
	return rows, ok
}

// Industries returns the registered industry labels
func (s *Snapshot) Industries() []string {
	labels := make([]string, 0, len(s.industries))
	for label := range s.industries {
		labels = append(labels, label)
	}
	return labels
}

// Store holds the current catalog snapshot. Readers call Snapshot and work
// against whatever complete snapshot was current at that moment; Replace
// swaps the whole snapshot atomically so a reload never exposes a
// half-updated table.
type Store struct {
	snap atomic.Pointer[Snapshot]
}

// NewStore creates a store holding the given snapshot
func NewStore(snap *Snapshot) *Store {
	st := &Store{}
	st.snap.Store(snap)
	return st
}

// Snapshot returns the current catalog snapshot
func (st *Store) Snapshot() *Snapshot {
	return st.snap.Load()
}

// Replace swaps in a new snapshot
func (st *Store) Replace(snap *Snapshot) {
	st.snap.Store(snap)
}
