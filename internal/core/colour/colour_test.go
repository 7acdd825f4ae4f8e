package colour

import (
	"context"
	"encoding/json"
	stderrs "errors"
	"testing"

	"palette/internal/core/enumset"
	perr "palette/internal/platform/errors"
	kit "palette/internal/platform/testkit"
)

// fakeDB is a scriptable colour source standing in for a real backing store
type fakeDB struct {
	recs  []Record
	err   error
	calls int
}

func (f *fakeDB) FetchRecords(context.Context) ([]Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.recs, nil
}

// testRecords deliberately inverts the built-in palette's channels so a test
// can tell which source fed the registry
func testRecords() []Record {
	return []Record{
		{Name: "BLACK", Payload: RGB{R: 255, G: 255, B: 255}, Sequence: 3},
		{Name: "WHITE", Payload: RGB{}, Sequence: 4},
		{Name: "YELLOW", Payload: RGB{R: 255, G: 255}, Sequence: 5},
	}
}

// rebind points the package registry at src for this test and restores the
// pristine lazy-default state afterwards. The registry is process-global, so
// every test touching it runs under the testkit lock
func rebind(t *testing.T, src Source) {
	t.Helper()
	kit.Serial(t)
	Reset()
	BindSource(src)
	t.Cleanup(func() {
		Reset()
		BindSource(nil)
	})
}

func TestValues_MergesConstantsAndBoundSource(t *testing.T) {
	rebind(t, &fakeDB{recs: testRecords()})

	vals, err := Values(context.Background())
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	if len(vals) != 6 {
		t.Fatalf("len(Values) = %d, want 6", len(vals))
	}

	wantOrder := []string{"RED", "GREEN", "BLUE", "BLACK", "WHITE", "YELLOW"}
	for i, w := range wantOrder {
		if vals[i].Name() != w {
			t.Fatalf("Values[%d] = %s, want %s", i, vals[i].Name(), w)
		}
		if vals[i].Sequence() != i {
			t.Fatalf("%s sequence = %d, want %d", w, vals[i].Sequence(), i)
		}
	}
	if vals[0] != Red {
		t.Fatalf("Values[0] is not the RED constant handle")
	}
}

func TestValueOf_ReturnsCanonicalHandles(t *testing.T) {
	rebind(t, &fakeDB{recs: testRecords()})
	ctx := context.Background()

	red, err := ValueOf(ctx, "RED")
	if err != nil {
		t.Fatalf("ValueOf(RED): %v", err)
	}
	if red != Red {
		t.Fatalf("ValueOf(RED) returned a different handle than the constant")
	}

	b1, err := ValueOf(ctx, "BLACK")
	if err != nil {
		t.Fatalf("ValueOf(BLACK): %v", err)
	}
	b2, err := ValueOf(ctx, "BLACK")
	if err != nil {
		t.Fatalf("ValueOf(BLACK) again: %v", err)
	}
	if b1 != b2 {
		t.Fatalf("dynamic handles must be identical across lookups")
	}
	if b1.Payload() != (RGB{R: 255, G: 255, B: 255}) {
		t.Fatalf("BLACK should carry the bound source's channels, got %+v", b1.Payload())
	}

	y, err := ValueOf(ctx, "YELLOW")
	if err != nil {
		t.Fatalf("ValueOf(YELLOW): %v", err)
	}
	if y.Payload() != (RGB{R: 255, G: 255}) || y.Sequence() != 5 {
		t.Fatalf("YELLOW record mismatch: %v", y)
	}
}

func TestValueOf_UnknownColourName(t *testing.T) {
	rebind(t, &fakeDB{recs: testRecords()})

	_, err := ValueOf(context.Background(), "MAGENTA")
	if err == nil {
		t.Fatalf("expected an error for MAGENTA")
	}
	if !enumset.IsUnknownEntry(err) {
		t.Fatalf("IsUnknownEntry = false for %v", err)
	}
	kit.MustContain(t, err.Error(), "MAGENTA")
	kit.MustContain(t, err.Error(), "colour")
}

func TestClone_IsRefusedForEveryEntry(t *testing.T) {
	rebind(t, &fakeDB{recs: testRecords()})

	if _, err := Red.Clone(); !enumset.IsDuplicationNotSupported(err) {
		t.Fatalf("cloning RED: err = %v", err)
	}

	black, err := ValueOf(context.Background(), "BLACK")
	if err != nil {
		t.Fatalf("ValueOf(BLACK): %v", err)
	}
	if _, err := black.Clone(); !enumset.IsDuplicationNotSupported(err) {
		t.Fatalf("cloning BLACK: err = %v", err)
	}
}

func TestJSONRoundTrip_PreservesIdentity(t *testing.T) {
	rebind(t, &fakeDB{recs: testRecords()})
	ctx := context.Background()

	// build-time constant
	data, err := json.Marshal(Red)
	if err != nil {
		t.Fatalf("Marshal(RED): %v", err)
	}
	if string(data) != `"RED"` {
		t.Fatalf("Marshal(RED) = %s, want %q", data, `"RED"`)
	}
	back, err := DecodeJSON(ctx, data)
	if err != nil {
		t.Fatalf("DecodeJSON(RED): %v", err)
	}
	if back != Red {
		t.Fatalf("decoded RED is not the constant handle")
	}

	// dynamic entry goes through the same round trip
	black, err := ValueOf(ctx, "BLACK")
	if err != nil {
		t.Fatalf("ValueOf(BLACK): %v", err)
	}
	data, err = json.Marshal(black)
	if err != nil {
		t.Fatalf("Marshal(BLACK): %v", err)
	}
	got, err := DecodeJSON(ctx, data)
	if err != nil {
		t.Fatalf("DecodeJSON(BLACK): %v", err)
	}
	if got != black {
		t.Fatalf("decoded BLACK is not the canonical handle")
	}
}

func TestDecodeJSON_Failures(t *testing.T) {
	rebind(t, &fakeDB{recs: testRecords()})
	ctx := context.Background()

	if _, err := DecodeJSON(ctx, []byte(`{`)); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("malformed JSON should be a validation error, got %v", err)
	}
	if _, err := DecodeJSON(ctx, []byte(`"MAGENTA"`)); !enumset.IsUnknownEntry(err) {
		t.Fatalf("unknown name should surface as unknown entry, got %v", err)
	}
}

func TestCollision_BuildTimeConstantWins(t *testing.T) {
	recs := append(testRecords(), Record{Name: "RED", Payload: RGB{R: 1, G: 2, B: 3}, Sequence: 9})
	rebind(t, &fakeDB{recs: recs})
	ctx := context.Background()

	vals, err := Values(ctx)
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	if len(vals) != 6 {
		t.Fatalf("colliding record must be discarded, len = %d", len(vals))
	}

	red, err := ValueOf(ctx, "RED")
	if err != nil {
		t.Fatalf("ValueOf(RED): %v", err)
	}
	if red != Red || red.Payload() != (RGB{R: 255}) || red.Sequence() != 0 {
		t.Fatalf("constant lost the collision: %v", red)
	}
}

func TestPopulationFailure_LeavesRegistryRetryable(t *testing.T) {
	boom := stderrs.New("colour db offline")
	db := &fakeDB{err: boom}
	rebind(t, db)
	ctx := context.Background()

	if _, err := Values(ctx); !stderrs.Is(err, boom) {
		t.Fatalf("source failure must propagate unchanged, got %v", err)
	}
	if _, err := ValueOf(ctx, "RED"); !stderrs.Is(err, boom) {
		t.Fatalf("registry should stay unpopulated after a failure, got %v", err)
	}

	// the source recovers; the very next call succeeds
	db.err = nil
	db.recs = testRecords()
	red, err := ValueOf(ctx, "RED")
	if err != nil {
		t.Fatalf("ValueOf(RED) after recovery: %v", err)
	}
	if red != Red {
		t.Fatalf("constant handle changed across the failed attempt")
	}
	if db.calls != 3 {
		t.Fatalf("fetch count = %d, want 3 (two failures, one success)", db.calls)
	}
}

func TestBuiltinPaletteIsTheDefault(t *testing.T) {
	rebind(t, nil) // nothing bound: the lazy built-in palette applies

	vals, err := Values(context.Background())
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	wantOrder := []string{"RED", "GREEN", "BLUE", "BLACK", "WHITE"}
	if len(vals) != len(wantOrder) {
		t.Fatalf("len(Values) = %d, want %d", len(vals), len(wantOrder))
	}
	for i, w := range wantOrder {
		if vals[i].Name() != w {
			t.Fatalf("Values[%d] = %s, want %s", i, vals[i].Name(), w)
		}
	}

	black, white := vals[3], vals[4]
	if black.Payload() != (RGB{}) || black.Sequence() != 4 {
		t.Fatalf("built-in BLACK mismatch: %v", black)
	}
	if white.Payload() != (RGB{R: 255, G: 255, B: 255}) || white.Sequence() != 5 {
		t.Fatalf("built-in WHITE mismatch: %v", white)
	}
	if CurrentSource() == nil {
		t.Fatalf("CurrentSource should report the installed default")
	}
}

func TestCurrentSource_ReturnsBinding(t *testing.T) {
	db := &fakeDB{recs: testRecords()}
	rebind(t, db)

	if got := CurrentSource(); got != Source(db) {
		t.Fatalf("CurrentSource = %v, want the bound fake", got)
	}
}
