// Package enumset turns a fixed set of build-time constants into a
// runtime-extensible registry of singleton value entries.
//
// A Set starts from constants declared at package init and completes itself
// on first use from a bound Source. Every name maps to exactly one *Entry
// for the life of the set, so handles compare with ==
package enumset

import "context"

// Record is a raw registration row supplied by a Source
// Sequence drives ordering; the registry never renumbers
type Record[P any] struct {
	Name     string
	Payload  P
	Sequence int
}

// Source supplies external records for a Set
// FetchRecords is called once per successful population; errors propagate
// to the caller unchanged and leave the set unpopulated
type Source[P any] interface {
	FetchRecords(ctx context.Context) ([]Record[P], error)
}

// SourceFunc adapts a plain function to a Source
type SourceFunc[P any] func(ctx context.Context) ([]Record[P], error)

// FetchRecords implements Source
func (f SourceFunc[P]) FetchRecords(ctx context.Context) ([]Record[P], error) { return f(ctx) }
