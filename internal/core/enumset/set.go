package enumset

import (
	"context"
	"fmt"
	"sort"
	"sync"

	perr "palette/internal/platform/errors"
)

// Set is a registry of singleton entries keyed by exact name
//
// A Set holds constants declared via MustDeclare plus whatever the bound
// Source contributes, merged on first use. The first registration of a name
// wins; later records with the same name are silently discarded. Lookups
// are case sensitive
type Set[P any] struct {
	mu sync.RWMutex

	kind          string
	declared      []*Entry[P]
	declaredNames map[string]struct{}

	source        Source[P]
	defaultSource func() Source[P]

	// frozen after a successful population until Reset
	entries   map[string]*Entry[P]
	ordered   []*Entry[P]
	populated bool
}

// Option configures a Set at construction
type Option[P any] func(*Set[P])

// WithKind labels the set's members for error messages (e.g. "colour")
func WithKind[P any](kind string) Option[P] {
	return func(s *Set[P]) { s.kind = kind }
}

// WithDefaultSource installs a lazily-constructed production source, bound
// only if nothing else has been bound by first population
func WithDefaultSource[P any](fn func() Source[P]) Option[P] {
	return func(s *Set[P]) { s.defaultSource = fn }
}

// NewSet returns an empty, unpopulated Set
func NewSet[P any](opts ...Option[P]) *Set[P] {
	s := &Set[P]{
		kind:          "entry",
		declaredNames: make(map[string]struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// MustDeclare registers a build-time constant and returns its canonical
// handle. Sequence is the declaration order starting at zero. Panics on an
// empty name, a duplicate name, or a declaration after the set has
// populated; all three are programmer errors
func (s *Set[P]) MustDeclare(name string, payload P) *Entry[P] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		panic("enumset: declared name must not be empty")
	}
	if s.populated {
		panic(fmt.Sprintf("enumset: cannot declare %s %q after population", s.kind, name))
	}
	if _, dup := s.declaredNames[name]; dup {
		panic(fmt.Sprintf("enumset: %s %q declared twice", s.kind, name))
	}

	e := &Entry[P]{name: name, payload: payload, seq: len(s.declared)}
	s.declaredNames[name] = struct{}{}
	s.declared = append(s.declared, e)
	return e
}

// ValueOf resolves a name to its canonical entry, populating the set on
// first use. Unknown names fail with a NotFound error carrying the name
func (s *Set[P]) ValueOf(ctx context.Context, name string) (*Entry[P], error) {
	if err := s.ensurePopulated(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	e := s.entries[name]
	s.mu.RUnlock()
	if e == nil {
		return nil, perr.NotFoundf("no %s by the name %s found", s.kind, name)
	}
	return e, nil
}

// Values returns every entry ordered by sequence ascending, populating the
// set on first use. The slice is freshly allocated per call
func (s *Set[P]) Values(ctx context.Context) ([]*Entry[P], error) {
	if err := s.ensurePopulated(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]*Entry[P], len(s.ordered))
	copy(out, s.ordered)
	s.mu.RUnlock()
	return out, nil
}

// BindSource replaces the bound source. Binding is consulted at population
// time only: rebinding after a successful population does not alter the
// frozen mapping (Reset first in tests)
func (s *Set[P]) BindSource(src Source[P]) {
	s.mu.Lock()
	s.source = src
	s.mu.Unlock()
}

// CurrentSource returns the effective source, installing the lazy default
// if nothing has been bound yet
func (s *Set[P]) CurrentSource() Source[P] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveSourceLocked()
}

// Reset returns the set to its unpopulated state, keeping declared constants
// and the bound source. Handles for declared constants stay valid; handles
// for source-contributed entries are re-minted on the next population.
// Test support only
func (s *Set[P]) Reset() {
	s.mu.Lock()
	s.entries = nil
	s.ordered = nil
	s.populated = false
	s.mu.Unlock()
}

func (s *Set[P]) resolveSourceLocked() Source[P] {
	if s.source == nil && s.defaultSource != nil {
		s.source = s.defaultSource()
	}
	return s.source
}

// ensurePopulated performs the one-time merge of declared constants and
// source records. The write lock is held across the fetch so the source is
// consulted at most once per transition; a fetch failure leaves the set
// unpopulated and the error travels to the caller unchanged, so the next
// call simply retries
func (s *Set[P]) ensurePopulated(ctx context.Context) error {
	s.mu.RLock()
	done := s.populated
	s.mu.RUnlock()
	if done {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.populated {
		return nil
	}

	var recs []Record[P]
	if src := s.resolveSourceLocked(); src != nil {
		var err error
		recs, err = src.FetchRecords(ctx)
		if err != nil {
			return err
		}
	}

	entries := make(map[string]*Entry[P], len(s.declared)+len(recs))
	ordered := make([]*Entry[P], 0, len(s.declared)+len(recs))
	for _, e := range s.declared {
		entries[e.name] = e
		ordered = append(ordered, e)
	}
	for _, r := range recs {
		if _, taken := entries[r.Name]; taken {
			continue // first registration wins
		}
		e := &Entry[P]{name: r.Name, payload: r.Payload, seq: r.Sequence}
		entries[r.Name] = e
		ordered = append(ordered, e)
	}

	// stable: equal sequences keep declaration-then-source insertion order
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].seq < ordered[j].seq })

	s.entries = entries
	s.ordered = ordered
	s.populated = true
	return nil
}

// Error predicates

// IsUnknownEntry reports whether err is a failed name resolution
func IsUnknownEntry(err error) bool { return perr.IsCode(err, perr.ErrorCodeNotFound) }

// IsDuplicationNotSupported reports whether err is a refused entry clone
func IsDuplicationNotSupported(err error) bool { return perr.IsCode(err, perr.ErrorCodeUnsupported) }
