package enumset

import (
	"cmp"
	"encoding/json"
	"fmt"

	perr "palette/internal/platform/errors"
)

// Entry is a single immutable member of a Set
//
// Entries are handed out by the owning Set and never constructed by callers,
// so two handles refer to the same member exactly when the pointers are equal
type Entry[P any] struct {
	name    string
	payload P
	seq     int
}

// Name returns the registered name
func (e *Entry[P]) Name() string { return e.name }

// Sequence returns the ordering rank
func (e *Entry[P]) Sequence() int { return e.seq }

// Payload returns the attached payload value
func (e *Entry[P]) Payload() P { return e.payload }

// Compare orders entries by sequence ascending
func (e *Entry[P]) Compare(o *Entry[P]) int { return cmp.Compare(e.seq, o.seq) }

// String renders the entry for logs and test output
func (e *Entry[P]) String() string {
	return fmt.Sprintf("%s(seq=%d, payload=%+v)", e.name, e.seq, e.payload)
}

// MarshalJSON encodes the name only. Payload and sequence live in the
// registry, not in persisted state; decoding resolves the name back to the
// canonical instance
func (e *Entry[P]) MarshalJSON() ([]byte, error) { return json.Marshal(e.name) }

// Clone always fails: entries are singletons and a second instance would
// break identity equality
func (e *Entry[P]) Clone() (*Entry[P], error) {
	return nil, perr.Unsupportedf("%s is a singleton; clone not supported", e.name)
}
