package logic

import "testing"

func TestRandRange(t *testing.T) {
	cases := []struct {
		name     string
		min, max float64
	}{
		{"symmetric", -2, 2},
		{"reversed", 3, -3},
		{"degenerate", 4, 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewRand(5)
			lo, hi := c.min, c.max
			if hi < lo {
				lo, hi = hi, lo
			}
			for i := 0; i < 500; i++ {
				v := r.Range(c.min, c.max)
				if v < lo || v > hi {
					t.Fatalf("value %v outside [%v, %v]", v, lo, hi)
				}
			}
		})
	}
}

func TestRandSeedIsReproducible(t *testing.T) {
	a := NewRand(123)
	b := NewRand(123)
	for i := 0; i < 20; i++ {
		if x, y := a.Range(-1, 1), b.Range(-1, 1); x != y {
			t.Fatalf("sample %d differs: %v != %v", i, x, y)
		}
	}
}
