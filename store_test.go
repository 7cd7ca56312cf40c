package splat

import (
	"math/rand/v2"
	"testing"
)

// newFilledStore returns a store with n black, fully opaque splats.
func newFilledStore(t *testing.T, n int, opts ...StoreOption) *Store {
	t.Helper()
	s := NewStore(append([]StoreOption{WithCapacity(max(n, 1) * 2)}, opts...)...)
	for i := 0; i < n; i++ {
		s.Add(Splat{Position: V3(float64(i), 0, 0), Color: Black, Opacity: 1, Size: 0.05})
	}
	return s
}

func splats(n int) []Splat {
	out := make([]Splat, n)
	for i := range out {
		out[i] = Splat{Position: V3(float64(i), 1, 2), Color: Red, Opacity: 0.5, Size: 0.1}
	}
	return out
}

func mustSplat(t *testing.T, s *Store, i int) Splat {
	t.Helper()
	sp, ok := s.Splat(i)
	if !ok {
		t.Fatalf("Splat(%d) not found (count %d)", i, s.Count())
	}
	return sp
}

func TestStore_Add(t *testing.T) {
	s := NewStore(WithCapacity(2))

	if got := s.Add(Splat{Position: V3(1, 2, 3), Color: Red, Opacity: 0.5, Size: 0.25}); got != 0 {
		t.Errorf("first Add() = %d, want 0", got)
	}
	if got := s.Add(Splat{}); got != 1 {
		t.Errorf("second Add() = %d, want 1", got)
	}
	if got := s.Add(Splat{}); got != NoSlot {
		t.Errorf("Add() on full store = %d, want NoSlot", got)
	}
	if s.Count() != 2 || s.Remaining() != 0 {
		t.Errorf("Count() = %d, Remaining() = %d", s.Count(), s.Remaining())
	}

	sp := mustSplat(t, s, 0)
	want := Splat{Position: V3(1, 2, 3), Color: Red, Opacity: 0.5, Size: 0.25}
	if sp != want {
		t.Errorf("Splat(0) = %+v, want %+v", sp, want)
	}
	if tags := s.Tags(); tags[0] != 0 || tags[1] != 1 {
		t.Errorf("Tags() = %v, want [0 1]", tags)
	}
}

func TestStore_AddManyCapacity(t *testing.T) {
	s := NewStore(WithCapacity(10))

	if got := s.AddMany(splats(4)); got != 4 {
		t.Errorf("AddMany(4) = %d, want 4", got)
	}
	if got := s.AddMany(splats(10)); got != 6 {
		t.Errorf("AddMany(10) with 6 free = %d, want 6", got)
	}
	if got := s.AddMany(splats(3)); got != 0 {
		t.Errorf("AddMany() on full store = %d, want 0", got)
	}
	if s.Count() != 10 {
		t.Errorf("Count() = %d, want 10", s.Count())
	}
	// Excess splats are dropped, not wrapped onto earlier slots.
	if sp := mustSplat(t, s, 0); sp.Position != V3(0, 1, 2) {
		t.Errorf("slot 0 overwritten: %+v", sp)
	}
	if sp := mustSplat(t, s, 9); sp.Position != V3(5, 1, 2) {
		t.Errorf("slot 9 = %+v, want the sixth splat of the second batch", sp)
	}
}

func TestStore_CapacityInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	s := NewStore(WithCapacity(37))
	for i := 0; i < 500; i++ {
		if rng.IntN(2) == 0 {
			s.Add(Splat{})
		} else {
			s.AddMany(splats(rng.IntN(9)))
		}
		if s.Count() > s.Capacity() {
			t.Fatalf("step %d: Count() = %d exceeds Capacity() = %d", i, s.Count(), s.Capacity())
		}
		if len(s.Positions()) != s.Count()*3 || len(s.Opacities()) != s.Count() {
			t.Fatalf("step %d: views do not match count", i)
		}
	}
	if s.Count() != s.Capacity() {
		t.Errorf("Count() = %d, want full store", s.Count())
	}
}

func TestStore_Paint(t *testing.T) {
	s := newFilledStore(t, 4)

	s.Paint([]int{1, 3}, Red, 0.5)

	for i, want := range []RGB{Black, {0.5, 0, 0}, Black, {0.5, 0, 0}} {
		if got := mustSplat(t, s, i).Color; got != want {
			t.Errorf("slot %d color = %v, want %v", i, got, want)
		}
	}

	s.Paint([]int{1}, Red, 0.5)
	if got := mustSplat(t, s, 1).Color; got != (RGB{0.75, 0, 0}) {
		t.Errorf("second paint = %v, want {0.75 0 0}", got)
	}
}

func TestStore_PaintSkipsInvalid(t *testing.T) {
	s := newFilledStore(t, 3)
	rev := s.Revision()

	s.Paint([]int{-1, 3, 100}, Red, 1)
	s.Erase([]int{-5, 3}, 1)

	for i := 0; i < 3; i++ {
		if sp := mustSplat(t, s, i); sp.Color != Black || sp.Opacity != 1 {
			t.Errorf("slot %d changed: %+v", i, sp)
		}
	}
	if s.Revision() != rev {
		t.Error("Revision() changed without a mutation")
	}
}

func TestStore_EraseFloor(t *testing.T) {
	s := newFilledStore(t, 2)
	for i := 0; i < 15; i++ {
		s.Erase([]int{0}, 0.3)
		if o := mustSplat(t, s, 0).Opacity; o < 0 {
			t.Fatalf("opacity went negative: %v", o)
		}
	}
	if o := mustSplat(t, s, 0).Opacity; o != 0 {
		t.Errorf("opacity = %v, want 0", o)
	}
	if o := mustSplat(t, s, 1).Opacity; o != 1 {
		t.Errorf("untouched slot opacity = %v, want 1", o)
	}
}

func TestStore_StrengthClamped(t *testing.T) {
	s := newFilledStore(t, 1)
	s.Paint([]int{0}, Red, 3)
	if got := mustSplat(t, s, 0).Color; got != Red {
		t.Errorf("Paint(strength 3) = %v, want Red", got)
	}
	s.Erase([]int{0}, -1)
	if o := mustSplat(t, s, 0).Opacity; o != 1 {
		t.Errorf("Erase(strength -1) opacity = %v, want 1", o)
	}
}

func TestStore_UndoEditExact(t *testing.T) {
	s := newFilledStore(t, 10)

	s.StartStroke(StrokeEdit)
	s.Paint([]int{2, 5}, Red, 0.5)
	s.Paint([]int{2, 7}, Red, 0.5)
	s.EndStroke()

	if got := mustSplat(t, s, 2).Color; got != (RGB{0.75, 0, 0}) {
		t.Fatalf("slot 2 after two dabs = %v", got)
	}

	if !s.Undo() {
		t.Fatal("Undo() = false, want true")
	}
	for i := 0; i < 10; i++ {
		sp := mustSplat(t, s, i)
		if sp.Color != Black || sp.Opacity != 1 {
			t.Errorf("slot %d = %+v, want black and opaque", i, sp)
		}
	}
	if s.HistoryLen() != 0 {
		t.Errorf("HistoryLen() = %d, want 0", s.HistoryLen())
	}
}

func TestStore_UndoAppend(t *testing.T) {
	s := NewStore(WithCapacity(16))

	s.StartStroke(StrokeAdd)
	s.AddMany(splats(5))
	s.EndStroke()

	if s.Count() != 5 {
		t.Fatalf("Count() = %d, want 5", s.Count())
	}
	s.Undo()
	if s.Count() != 0 {
		t.Errorf("Count() after undo = %d, want 0", s.Count())
	}
}

func TestStore_CaptureOnce(t *testing.T) {
	s := newFilledStore(t, 4)
	s.Paint([]int{1}, Green, 1)
	s.Erase([]int{1}, 0.25)

	s.StartStroke(StrokeEdit)
	s.Paint([]int{1, 2}, Red, 0.5)
	s.Erase([]int{1, 2}, 0.5)
	s.Paint([]int{1}, Blue, 1)
	s.Erase([]int{2}, 0.5)
	s.EndStroke()

	s.Undo()

	if sp := mustSplat(t, s, 1); sp.Color != Green || sp.Opacity != 0.75 {
		t.Errorf("slot 1 = %+v, want the pre-stroke green at 0.75", sp)
	}
	if sp := mustSplat(t, s, 2); sp.Color != Black || sp.Opacity != 1 {
		t.Errorf("slot 2 = %+v, want the pre-stroke black at 1", sp)
	}
}

func TestStore_UndoOrder(t *testing.T) {
	s := NewStore(WithCapacity(16))

	s.StartStroke(StrokeAdd)
	s.AddMany(splats(3))
	s.EndStroke()

	s.StartStroke(StrokeEdit)
	s.Erase([]int{0, 1, 2}, 0.5)
	s.EndStroke()

	s.StartStroke(StrokeAdd)
	s.AddMany(splats(2))
	s.EndStroke()

	if s.HistoryLen() != 3 {
		t.Fatalf("HistoryLen() = %d, want 3", s.HistoryLen())
	}

	s.Undo()
	if s.Count() != 3 {
		t.Errorf("after first undo Count() = %d, want 3", s.Count())
	}
	if o := mustSplat(t, s, 0).Opacity; o != 0 {
		t.Errorf("edit reverted out of order: opacity %v", o)
	}

	s.Undo()
	if o := mustSplat(t, s, 0).Opacity; o != 0.5 {
		t.Errorf("after second undo opacity = %v, want 0.5", o)
	}

	s.Undo()
	if s.Count() != 0 {
		t.Errorf("after third undo Count() = %d, want 0", s.Count())
	}
	if s.Undo() {
		t.Error("Undo() on empty log = true")
	}
}

func TestStore_EmptyEditStrokeNotRecorded(t *testing.T) {
	s := newFilledStore(t, 3)

	s.StartStroke(StrokeEdit)
	s.Paint([]int{50}, Red, 1) // stale pick, out of range
	s.EndStroke()

	if s.HistoryLen() != 0 {
		t.Errorf("HistoryLen() = %d, want 0 for a stroke that touched nothing", s.HistoryLen())
	}
}

func TestStore_AddStrokeRecordedAtStart(t *testing.T) {
	s := NewStore(WithCapacity(4))
	s.StartStroke(StrokeAdd)
	if s.HistoryLen() != 1 {
		t.Errorf("HistoryLen() during add stroke = %d, want 1", s.HistoryLen())
	}
	s.EndStroke()
	if s.HistoryLen() != 1 {
		t.Errorf("HistoryLen() after add stroke = %d, want 1", s.HistoryLen())
	}
}

func TestStore_EndStrokeWithoutStart(t *testing.T) {
	s := newFilledStore(t, 2)
	s.EndStroke()
	if s.StrokeActive() || s.HistoryLen() != 0 {
		t.Error("EndStroke() without a stroke changed state")
	}
}

func TestStore_EditsOutsideStrokeNotRecorded(t *testing.T) {
	s := newFilledStore(t, 2)
	s.Paint([]int{0}, Red, 1)
	s.Erase([]int{1}, 1)
	if s.HistoryLen() != 0 {
		t.Errorf("HistoryLen() = %d, want 0", s.HistoryLen())
	}
	if s.Undo() {
		t.Error("Undo() = true with empty log")
	}
}

func TestStore_RestartDiscardsCapture(t *testing.T) {
	s := newFilledStore(t, 3)

	s.StartStroke(StrokeEdit)
	s.Paint([]int{0}, Red, 1)
	s.StartStroke(StrokeEdit) // abandons the first stroke
	s.Paint([]int{1}, Red, 1)
	s.EndStroke()

	if s.HistoryLen() != 1 {
		t.Fatalf("HistoryLen() = %d, want 1", s.HistoryLen())
	}
	s.Undo()
	if got := mustSplat(t, s, 0).Color; got != Red {
		t.Errorf("abandoned stroke was reverted: slot 0 = %v", got)
	}
	if got := mustSplat(t, s, 1).Color; got != Black {
		t.Errorf("slot 1 = %v, want Black", got)
	}
}

func TestStore_Clear(t *testing.T) {
	s := NewStore(WithCapacity(32))
	for i := 0; i < 5; i++ {
		s.StartStroke(StrokeAdd)
		s.AddMany(splats(3))
		s.EndStroke()
	}

	s.Clear()

	if s.Count() != 0 {
		t.Errorf("Count() after Clear = %d", s.Count())
	}
	if s.Undo() {
		t.Error("Undo() after Clear = true")
	}
	if s.Count() != 0 || s.HistoryLen() != 0 {
		t.Errorf("state after undo: count %d, history %d", s.Count(), s.HistoryLen())
	}
}

func TestStore_ClearMidEditStroke(t *testing.T) {
	s := newFilledStore(t, 4)

	s.StartStroke(StrokeEdit)
	s.Paint([]int{1}, Red, 1)
	s.Clear()
	if !s.StrokeActive() {
		t.Fatal("Clear ended the active stroke")
	}
	if s.Count() != 0 || s.HistoryLen() != 0 {
		t.Fatalf("after Clear: count %d, history %d", s.Count(), s.HistoryLen())
	}

	// The orphaned capture is still committed.
	s.EndStroke()
	if s.HistoryLen() != 1 {
		t.Fatalf("HistoryLen() = %d, want 1", s.HistoryLen())
	}
	if !s.Undo() {
		t.Fatal("Undo() = false, want true")
	}
	if s.Count() != 0 || s.HistoryLen() != 0 {
		t.Errorf("after undo: count %d, history %d", s.Count(), s.HistoryLen())
	}
}

func TestStore_UndoMidEditStroke(t *testing.T) {
	s := newFilledStore(t, 4)

	s.StartStroke(StrokeEdit)
	s.Paint([]int{0}, Green, 1)
	s.EndStroke()

	s.StartStroke(StrokeEdit)
	s.Paint([]int{0, 1}, Red, 1)
	// Reverts the first stroke underneath the open one.
	s.Undo()
	if sp := mustSplat(t, s, 0); sp.Color != Black {
		t.Errorf("slot 0 after mid-stroke undo = %v, want black", sp.Color)
	}
	if sp := mustSplat(t, s, 1); sp.Color != Red {
		t.Errorf("slot 1 after mid-stroke undo = %v, want red", sp.Color)
	}
	s.EndStroke()
	if s.HistoryLen() != 1 {
		t.Fatalf("HistoryLen() = %d, want 1", s.HistoryLen())
	}

	// The open stroke captured slot 0 while it was still green.
	s.Undo()
	if sp := mustSplat(t, s, 0); sp.Color != Green {
		t.Errorf("slot 0 = %v, want green", sp.Color)
	}
	if sp := mustSplat(t, s, 1); sp.Color != Black {
		t.Errorf("slot 1 = %v, want black", sp.Color)
	}
}

func TestStore_UndoMidAddStroke(t *testing.T) {
	tests := []struct {
		name      string
		interrupt func(*Store)
	}{
		{"undo", func(s *Store) { s.Undo() }},
		{"clear", func(s *Store) { s.Clear() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(WithCapacity(16))

			s.StartStroke(StrokeAdd)
			s.AddMany(splats(3))
			tt.interrupt(s)
			if s.Count() != 0 || s.HistoryLen() != 0 {
				t.Fatalf("after %s: count %d, history %d", tt.name, s.Count(), s.HistoryLen())
			}

			// The rest of the stroke has no append entry left to undo.
			s.AddMany(splats(2))
			s.EndStroke()
			if s.StrokeActive() {
				t.Error("StrokeActive() = true after EndStroke")
			}
			if s.Undo() {
				t.Error("Undo() = true, want false")
			}
			if s.Count() != 2 {
				t.Errorf("Count() = %d, want 2", s.Count())
			}
		})
	}
}

func TestStore_BoundedHistory(t *testing.T) {
	s := NewStore(WithCapacity(64), WithHistoryDepth(3))
	for i := 0; i < 5; i++ {
		s.StartStroke(StrokeAdd)
		s.AddMany(splats(2))
		s.EndStroke()
	}

	if s.HistoryLen() != 3 {
		t.Fatalf("HistoryLen() = %d, want 3", s.HistoryLen())
	}
	for _, want := range []int{8, 6, 4} {
		s.Undo()
		if s.Count() != want {
			t.Errorf("Count() = %d, want %d", s.Count(), want)
		}
	}
	// The two oldest strokes were evicted.
	if s.Undo() {
		t.Error("Undo() succeeded past the history depth")
	}
	if s.Count() != 4 {
		t.Errorf("Count() = %d, want 4", s.Count())
	}
}

func TestStore_UnboundedHistory(t *testing.T) {
	s := NewStore(WithCapacity(1000), WithHistoryDepth(0))
	for i := 0; i < 300; i++ {
		s.StartStroke(StrokeAdd)
		s.Add(Splat{})
		s.EndStroke()
	}
	if s.HistoryLen() != 300 {
		t.Errorf("HistoryLen() = %d, want 300", s.HistoryLen())
	}
	for s.Undo() {
	}
	if s.Count() != 0 {
		t.Errorf("Count() = %d, want 0", s.Count())
	}
}

// Slot indices are the only identity: after an append is undone and new
// splats reuse the slots, a stale pick set addresses the new splats.
func TestStore_SlotReuseAfterUndo(t *testing.T) {
	s := NewStore(WithCapacity(8))

	s.StartStroke(StrokeAdd)
	s.AddMany(splats(3))
	s.EndStroke()
	stale := []int{2}

	s.Undo()
	s.StartStroke(StrokeAdd)
	s.Add(Splat{Color: Blue, Opacity: 1})
	s.Add(Splat{Color: Blue, Opacity: 1})
	s.Add(Splat{Color: Blue, Opacity: 1})
	s.EndStroke()

	s.Paint(stale, Green, 1)
	if got := mustSplat(t, s, 2).Color; got != Green {
		t.Errorf("slot 2 = %v; stale index should address the reused slot", got)
	}
}

func TestStore_Views(t *testing.T) {
	s := NewStore(WithCapacity(4))
	s.Add(Splat{Position: V3(1, 2, 3), Color: RGB{0.1, 0.2, 0.3}, Opacity: 0.4, Size: 0.5})

	pos := s.Positions()
	if len(pos) != 3 || cap(pos) != 3 || pos[0] != 1 || pos[1] != 2 || pos[2] != 3 {
		t.Errorf("Positions() = %v (cap %d)", pos, cap(pos))
	}
	if col := s.Colors(); len(col) != 3 || col[2] != 0.3 {
		t.Errorf("Colors() = %v", col)
	}
	if o := s.Opacities(); len(o) != 1 || o[0] != 0.4 {
		t.Errorf("Opacities() = %v", o)
	}
	if sz := s.Sizes(); len(sz) != 1 || sz[0] != 0.5 {
		t.Errorf("Sizes() = %v", sz)
	}
}

func TestStore_Revision(t *testing.T) {
	s := NewStore(WithCapacity(4))
	r0 := s.Revision()
	s.Add(Splat{Opacity: 1})
	r1 := s.Revision()
	if r1 <= r0 {
		t.Error("Add() did not bump revision")
	}
	s.Erase([]int{0}, 0.1)
	if s.Revision() <= r1 {
		t.Error("Erase() did not bump revision")
	}
	r2 := s.Revision()
	s.AddMany(nil)
	if s.Revision() != r2 {
		t.Error("empty AddMany() bumped revision")
	}
}

func TestNewStore_Options(t *testing.T) {
	s := NewStore()
	if s.Capacity() != DefaultCapacity {
		t.Errorf("default Capacity() = %d", s.Capacity())
	}
	s = NewStore(WithCapacity(0), WithHistoryDepth(-3))
	if s.Capacity() != DefaultCapacity || s.history.limit != DefaultHistoryDepth {
		t.Errorf("invalid options were applied: cap %d depth %d", s.Capacity(), s.history.limit)
	}
}

func BenchmarkStore_PaintStroke(b *testing.B) {
	s := NewStore(WithCapacity(100_000))
	s.AddMany(make([]Splat, 100_000))
	slots := make([]int, 2000)
	for i := range slots {
		slots[i] = i * 37 % 100_000
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.StartStroke(StrokeEdit)
		for d := 0; d < 10; d++ {
			s.Paint(slots, Red, 0.1)
		}
		s.EndStroke()
		s.Undo()
	}
}
