package parallel

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"
	"testing"
)

func TestChunksCoverRange(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		n       int
	}{
		{"empty", 4, 0},
		{"fewer items than workers", 8, 3},
		{"even", 2, 64},
		{"uneven", 3, 1001},
		{"single worker", 1, 17},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := New(tc.workers)
			next := 0
			for _, c := range p.Chunks(tc.n) {
				if c[0] != next {
					t.Fatalf("chunk starts at %d, want %d", c[0], next)
				}
				if c[1] <= c[0] {
					t.Fatalf("empty chunk %v", c)
				}
				next = c[1]
			}
			if next != tc.n {
				t.Errorf("chunks end at %d, want %d", next, tc.n)
			}
		})
	}
}

func TestNewDefaultsWorkers(t *testing.T) {
	if New(0).Workers() < 1 {
		t.Error("default pool has no workers")
	}
	if got := New(3).Workers(); got != 3 {
		t.Errorf("Workers() = %d, want 3", got)
	}
}

func TestZeroPool(t *testing.T) {
	var p Pool
	if got := p.Workers(); got != 1 {
		t.Errorf("Workers() = %d, want 1", got)
	}
	out, err := Map(context.Background(), &p, []int{1, 2, 3}, func(v int) int { return v * 2 })
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(out, []int{2, 4, 6}) {
		t.Errorf("Map = %v, want [2 4 6]", out)
	}
}

func TestForVisitsEveryIndexOnce(t *testing.T) {
	const n = 10_000
	var hits [n]atomic.Int32

	err := New(4).For(context.Background(), n, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			hits[i].Add(1)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := range hits {
		if got := hits[i].Load(); got != 1 {
			t.Fatalf("index %d visited %d times", i, got)
		}
	}
}

func TestForReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := New(2).For(context.Background(), 100, func(lo, hi int) error {
		if lo == 0 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want boom", err)
	}
}

func TestForCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	err := New(2).For(ctx, 100, func(lo, hi int) error {
		calls.Add(1)
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if calls.Load() != 0 {
		t.Errorf("%d chunks ran after cancel", calls.Load())
	}
}

func TestCollect(t *testing.T) {
	got, err := Collect(context.Background(), New(3), 50, func(lo, hi int) ([]int, error) {
		out := make([]int, 0, hi-lo)
		for i := lo; i < hi; i++ {
			out = append(out, i*i)
		}
		return out, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 50 {
		t.Fatalf("len = %d, want 50", len(got))
	}
	slices.Sort(got)
	for i, v := range got {
		if v != i*i {
			t.Fatalf("got[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestMapKeepsOrder(t *testing.T) {
	in := make([]int, 1000)
	for i := range in {
		in[i] = i
	}
	got, err := Map(context.Background(), New(8), in, func(v int) int { return -v })
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range got {
		if v != -i {
			t.Fatalf("got[%d] = %d, want %d", i, v, -i)
		}
	}
}

func BenchmarkFor(b *testing.B) {
	p := New(0)
	data := make([]float64, 1<<16)
	ctx := context.Background()

	for b.Loop() {
		_ = p.For(ctx, len(data), func(lo, hi int) error {
			for i := lo; i < hi; i++ {
				data[i] = data[i]*0.5 + 1
			}
			return nil
		})
	}
}
