// Package colour is the process-wide colour registry: three build-time
// constants completed at first use by whatever source is bound (the built-in
// palette when nothing is). Handles are singletons and compare with ==
package colour

import (
	"context"

	"palette/internal/core/enumset"
)

// RGB is the colour payload, one byte per channel
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Colour is a registry entry carrying an RGB payload
type Colour = enumset.Entry[RGB]

// Source supplies colour records beyond the build-time constants
type Source = enumset.Source[RGB]

// Record is a raw colour row as supplied by a Source
type Record = enumset.Record[RGB]

var set = enumset.NewSet[RGB](
	enumset.WithKind[RGB]("colour"),
	enumset.WithDefaultSource[RGB](func() Source { return builtinSource{} }),
)

// Build-time constants. Declaration order fixes their sequence
var (
	Red   = set.MustDeclare("RED", RGB{R: 255})
	Green = set.MustDeclare("GREEN", RGB{G: 255})
	Blue  = set.MustDeclare("BLUE", RGB{B: 255})
)

// ValueOf resolves a name to its canonical colour, populating the registry
// on first use
func ValueOf(ctx context.Context, name string) (*Colour, error) { return set.ValueOf(ctx, name) }

// Values returns every colour ordered by sequence ascending
func Values(ctx context.Context) ([]*Colour, error) { return set.Values(ctx) }

// BindSource replaces the bound source; consulted at population time only
func BindSource(s Source) { set.BindSource(s) }

// CurrentSource returns the effective source, defaulting to the built-in
// palette when nothing has been bound
func CurrentSource() Source { return set.CurrentSource() }

// Reset returns the registry to its unpopulated state. Test support only
func Reset() { set.Reset() }
