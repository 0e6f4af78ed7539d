package dpor

import "testing"

func TestVectorClockIncrementJoin(t *testing.T) {
	a := NewVectorClock(3)
	a.Increment(0)
	a.Increment(0)
	a.Increment(2)

	b := NewVectorClock(3)
	b.Increment(1)
	b.Increment(2)
	b.Increment(2)

	a.Join(b)
	want := VectorClock{2, 1, 2}
	if !a.Equal(want) {
		t.Errorf("join result %v, want %v", a, want)
	}
}

func TestVectorClockJoinIdempotent(t *testing.T) {
	a := VectorClock{1, 2, 3}
	before := a.Copy()
	a.Join(a)
	if !a.Equal(before) {
		t.Errorf("vc.Join(vc) changed the clock: %v -> %v", before, a)
	}

	other := VectorClock{3, 1, 2}
	a.Join(other)
	joined := a.Copy()
	a.Join(other)
	if !a.Equal(joined) {
		t.Errorf("joining the same clock twice changed the result: %v -> %v", joined, a)
	}
}

func TestVectorClockPartialOrder(t *testing.T) {
	lo := VectorClock{1, 0, 2}
	hi := VectorClock{1, 1, 2}
	if !lo.PartialLE(hi) {
		t.Errorf("%v should be <= %v", lo, hi)
	}
	if hi.PartialLE(lo) {
		t.Errorf("%v should not be <= %v", hi, lo)
	}
	if lo.ConcurrentWith(hi) {
		t.Errorf("%v and %v are ordered, not concurrent", lo, hi)
	}

	x := VectorClock{2, 0}
	y := VectorClock{0, 2}
	if !x.ConcurrentWith(y) {
		t.Errorf("%v and %v should be concurrent", x, y)
	}

	same := VectorClock{1, 1}
	if !same.PartialLE(VectorClock{1, 1}) {
		t.Errorf("a clock should be <= itself")
	}
}

func TestVectorClockCopyIsIndependent(t *testing.T) {
	a := VectorClock{1, 2}
	c := a.Copy()
	a.Increment(0)
	if c[0] != 1 {
		t.Errorf("copy shares storage with the original")
	}
}

func TestVectorClockIncrementOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("incrementing past the clock length should panic")
		}
	}()
	v := NewVectorClock(2)
	v.Increment(2)
}
