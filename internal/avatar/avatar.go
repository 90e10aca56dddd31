// Package avatar hands out decorative profile images for map popups. Purely
// cosmetic: assignments never feed filtering, placement, or prediction.
package avatar

import (
	"fmt"
	"math/rand/v2"

	"github.com/cris-labs/cris/internal/model"
)

// Defaults for the avatar reference space.
const (
	DefaultSeed  = 88
	DefaultSpace = 1000
	defaultSize  = 150
	defaultBase  = "https://picsum.photos"
)

// Assigner draws avatar references from a fixed pseudo-random space, seeded
// once per process. Reproducible within a run, not guaranteed across runs.
type Assigner struct {
	base  string
	space int
	rng   *rand.Rand
}

// Option configures an Assigner.
type Option func(*Assigner)

// WithBaseURL overrides the image service base URL.
func WithBaseURL(base string) Option {
	return func(a *Assigner) { a.base = base }
}

// WithSpace overrides the size of the random reference space.
func WithSpace(n int) Option {
	return func(a *Assigner) { a.space = n }
}

// New creates an Assigner seeded with seed.
func New(seed uint64, opts ...Option) *Assigner {
	a := &Assigner{
		base:  defaultBase,
		space: DefaultSpace,
		rng:   rand.New(rand.NewPCG(seed, 0)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assign draws one reference per record, independently, and returns them keyed
// by customer ID. The records themselves are untouched: avatar state lives
// outside the data model so nothing downstream can depend on it.
func (a *Assigner) Assign(records []model.Customer) map[string]string {
	refs := make(map[string]string, len(records))
	for i := range records {
		refs[records[i].ID] = a.next()
	}
	return refs
}

func (a *Assigner) next() string {
	n := a.rng.IntN(a.space) + 1
	return fmt.Sprintf("%s/%d/%d?random=%d", a.base, defaultSize, defaultSize, n)
}
