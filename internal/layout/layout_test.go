package layout

import (
	"math/rand/v2"
	"testing"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestPlaceStaysInsideMargin(t *testing.T) {
	rng := seeded(1)
	const width, height, size = 800, 600, 40
	m := Margin(size)

	for i := 0; i < 500; i++ {
		p := Place(rng, width, height, size, nil)
		if p.X < m || p.X >= width-m || p.Y < m || p.Y >= height-m {
			t.Fatalf("point %+v outside [%d, %d) x [%d, %d)", p, m, width-m, m, height-m)
		}
	}
}

func TestAcceptedPlacementsKeepSpacing(t *testing.T) {
	sizes := []int{20, 53, 100}
	for _, size := range sizes {
		rng := seeded(uint64(size))
		var placed []Point
		for i := 0; i < 30; i++ {
			p, ok := TryPlace(rng, 1920, 1080, size, placed)
			if !ok {
				continue
			}
			for _, q := range placed {
				if p.Distance(q) < MinSpacing(size) {
					t.Fatalf("size %d: accepted %+v is %.1f from %+v, want >= %.1f",
						size, p, p.Distance(q), q, MinSpacing(size))
				}
			}
			placed = append(placed, p)
		}
		if len(placed) == 0 {
			t.Errorf("size %d: no placement accepted", size)
		}
	}
}

func TestExhaustedSearchFallsBackToOverlap(t *testing.T) {
	// One-pixel sampling range: every candidate is the same point.
	const size = 20
	width := 2*Margin(size) + 1
	height := 2*Margin(size) + 1
	rng := seeded(7)

	first, ok := TryPlace(rng, width, height, size, nil)
	if !ok {
		t.Fatal("first placement on an empty canvas must succeed")
	}

	second, ok := TryPlace(rng, width, height, size, []Point{first})
	if ok {
		t.Fatal("expected the fallback path")
	}
	if second != first {
		t.Errorf("fallback = %+v, want overlapping %+v", second, first)
	}
}

func TestPlaceIsDeterministicForSeed(t *testing.T) {
	a, b := seeded(99), seeded(99)
	var pa, pb []Point
	for i := 0; i < 20; i++ {
		pa = append(pa, Place(a, 1024, 768, 50, pa))
		pb = append(pb, Place(b, 1024, 768, 50, pb))
	}
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("placement %d differs: %+v vs %+v", i, pa[i], pb[i])
		}
	}
}

func TestFits(t *testing.T) {
	tests := []struct {
		w, h, size int
		want       bool
	}{
		{1920, 1080, 72, true},
		{81, 81, 20, true},
		{80, 81, 20, false},
		{300, 300, 130, false},
	}
	for _, tt := range tests {
		if got := Fits(tt.w, tt.h, tt.size); got != tt.want {
			t.Errorf("Fits(%d, %d, %d) = %v, want %v", tt.w, tt.h, tt.size, got, tt.want)
		}
	}
}
