// Package filter selects roster subsets for display and lookup.
package filter

import (
	"github.com/rotisserie/eris"

	"github.com/cris-labs/cris/internal/model"
)

// ErrNotFound is the normal negative result of an ID lookup. It is not a
// system error; callers surface it as an informational message.
var ErrNotFound = eris.New("customer not found")

// StatusSet is the set of statuses an operator has selected.
type StatusSet map[model.Status]bool

// NewStatusSet builds a set from the given statuses.
func NewStatusSet(statuses ...model.Status) StatusSet {
	set := make(StatusSet, len(statuses))
	for _, s := range statuses {
		set[s] = true
	}
	return set
}

// ByStatus returns exactly the records whose status is in the set, preserving
// roster order. An empty set selects nothing, it does not mean "no filter".
func ByStatus(records []model.Customer, statuses StatusSet) []model.Customer {
	out := make([]model.Customer, 0, len(records))
	for _, c := range records {
		if statuses[c.Status] {
			out = append(out, c)
		}
	}
	return out
}

// FindByID looks up a customer by exact ID over the whole roster, independent
// of any active status filter.
func FindByID(records []model.Customer, id string) (*model.Customer, error) {
	for i := range records {
		if records[i].ID == id {
			c := records[i]
			return &c, nil
		}
	}
	return nil, ErrNotFound
}
