package policies

import "testing"

func TestRandomPolicyDeterministicForSeed(t *testing.T) {
	a := NewRandomPolicy(42)
	b := NewRandomPolicy(42)
	runnable := []int{0, 1, 2}
	for step := 0; step < 100; step++ {
		ta, _ := a.Next(step, -1, runnable)
		tb, _ := b.Next(step, -1, runnable)
		if ta != tb {
			t.Fatalf("step %d: seeded policies diverged (%d vs %d)", step, ta, tb)
		}
	}
}

func TestRandomPolicyResetReplays(t *testing.T) {
	p := NewRandomPolicy(7)
	runnable := []int{0, 1}
	first := make([]int, 20)
	for i := range first {
		first[i], _ = p.Next(i, -1, runnable)
	}
	p.Reset()
	for i := range first {
		tid, _ := p.Next(i, -1, runnable)
		if tid != first[i] {
			t.Fatalf("step %d: reset did not replay the sequence", i)
		}
	}
}

func TestRandomPolicyEmptyRunnable(t *testing.T) {
	p := NewRandomPolicy(1)
	if _, ok := p.Next(0, -1, nil); ok {
		t.Errorf("empty runnable set should return no thread")
	}
}

func TestRandomPolicyPicksOnlyRunnable(t *testing.T) {
	p := NewRandomPolicy(3)
	runnable := []int{2, 5}
	for step := 0; step < 50; step++ {
		tid, ok := p.Next(step, -1, runnable)
		if !ok || (tid != 2 && tid != 5) {
			t.Fatalf("step %d: picked %d from %v", step, tid, runnable)
		}
	}
}

func TestStickyPolicyPrefersLastThread(t *testing.T) {
	p := NewStickyPolicy(0.9, 11)
	runnable := []int{0, 1}
	kept := 0
	const trials = 1000
	for i := 0; i < trials; i++ {
		tid, ok := p.Next(i, 0, runnable)
		if !ok {
			t.Fatalf("sticky policy returned no thread")
		}
		if tid == 0 {
			kept++
		}
	}
	// with p=0.9 the previous thread should dominate clearly
	if kept < trials*7/10 {
		t.Errorf("previous thread kept only %d/%d times", kept, trials)
	}
}

func TestStickyPolicySingleRunnable(t *testing.T) {
	p := NewStickyPolicy(0.5, 1)
	tid, ok := p.Next(0, 3, []int{3})
	if !ok || tid != 3 {
		t.Errorf("single runnable thread not chosen: %d %v", tid, ok)
	}
}

func TestStickyPolicyWithoutLastFallsBackToUniform(t *testing.T) {
	p := NewStickyPolicy(0.9, 5)
	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		tid, ok := p.Next(i, -1, []int{0, 1, 2})
		if !ok {
			t.Fatalf("no thread chosen")
		}
		seen[tid] = true
	}
	if len(seen) != 3 {
		t.Errorf("uniform fallback never chose some threads: %v", seen)
	}
}
