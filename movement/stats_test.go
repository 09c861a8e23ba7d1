package movement

import (
	"math"
	"testing"
)

func TestJumpForceCurve(t *testing.T) {
	st := DefaultTuning().Stats

	for n := st.MinNumber; n <= st.MaxNumber; n++ {
		if f := JumpForceFor(st, n); f < 1.0 {
			t.Fatalf("jump force for %d = %v, below floor", n, f)
		}
	}
	for n := 2; n <= st.MaxNumber; n++ {
		if JumpForceFor(st, n) > JumpForceFor(st, n-1) {
			t.Fatalf("jump force increased from %d to %d", n-1, n)
		}
	}
	for n := -1; n > st.MinNumber; n-- {
		if JumpForceFor(st, n-1) <= JumpForceFor(st, n) {
			t.Fatalf("jump force did not increase from %d to %d", n, n-1)
		}
	}
	if JumpForceFor(st, -9) <= JumpForceFor(st, 9) {
		t.Fatalf("jump(-9)=%v should exceed jump(9)=%v", JumpForceFor(st, -9), JumpForceFor(st, 9))
	}

	st.JumpPenalty = 5
	if f := JumpForceFor(st, 9); f != st.MinJumpForce {
		t.Fatalf("expected floor %v for steep penalty, got %v", st.MinJumpForce, f)
	}
}

func TestScaleCurve(t *testing.T) {
	st := DefaultTuning().Stats

	if ScaleFor(st, 0) != 1 || ScaleFor(st, 1) != 1 {
		t.Fatalf("scale(0)=%v scale(1)=%v, want 1", ScaleFor(st, 0), ScaleFor(st, 1))
	}
	for n := 1; n <= st.MaxNumber; n++ {
		if ScaleFor(st, n) < ScaleFor(st, n-1) {
			t.Fatalf("scale decreased from %d to %d", n-1, n)
		}
	}
	for n := -1; n > st.MinNumber; n-- {
		if ScaleFor(st, n-1) > ScaleFor(st, n) {
			t.Fatalf("negative scale grew from %d to %d", n, n-1)
		}
	}

	st.ScaleIncrement = 0.2
	if s := ScaleFor(st, -9); s != st.MinScale {
		t.Fatalf("expected floor %v, got %v", st.MinScale, s)
	}
}

func TestStatsFor(t *testing.T) {
	st := DefaultTuning().Stats

	cases := []struct {
		name string
		n    int
		want Stats
	}{
		{"one", 1, Stats{Speed: 7, JumpForce: 13, Mass: 1, Scale: 1}},
		{"zero", 0, Stats{Speed: 7, JumpForce: 13, Mass: 1, Scale: 1}},
		{"five", 5, Stats{Speed: 8.4, JumpForce: 9.4, Mass: 1.6, Scale: 1.4}},
		{"minus_three", -3, Stats{Speed: 7.7, JumpForce: 14.2, Mass: 1.3, Scale: 0.8}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := StatsFor(st, c.n)
			if !near(got.Speed, c.want.Speed) || !near(got.JumpForce, c.want.JumpForce) ||
				!near(got.Mass, c.want.Mass) || !near(got.Scale, c.want.Scale) {
				t.Fatalf("StatsFor(%d) = %+v, want %+v", c.n, got, c.want)
			}
			if got.Mass <= 0 {
				t.Fatalf("mass must be positive, got %v", got.Mass)
			}
		})
	}
}

func TestClampNumber(t *testing.T) {
	st := DefaultTuning().Stats
	cases := []struct{ in, want int }{
		{-20, -9}, {-9, -9}, {0, 0}, {9, 9}, {12, 9},
	}
	for _, c := range cases {
		if got := ClampNumber(st, c.in); got != c.want {
			t.Errorf("ClampNumber(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseNumeral(t *testing.T) {
	cases := []struct {
		text string
		want int
		ok   bool
	}{
		{"7", 7, true},
		{"-3", -3, true},
		{"−4", -4, true},
		{" 2 ", 2, true},
		{"", 0, false},
		{"seven", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseNumeral(c.text)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseNumeral(%q) = %d, %v; want %d, %v", c.text, got, ok, c.want, c.ok)
		}
	}
}

func TestTierFor(t *testing.T) {
	lt := DefaultTuning().Label
	cases := []struct {
		n    int
		want Tier
	}{
		{0, TierLow}, {3, TierLow}, {-3, TierLow}, {4, TierMid}, {-6, TierMid}, {7, TierHigh}, {-9, TierHigh},
	}
	for _, c := range cases {
		if got := TierFor(lt, c.n); got != c.want {
			t.Errorf("TierFor(%d) = %v, want %v", c.n, got, c.want)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"bounds", func(t *Tuning) { t.Stats.MinNumber, t.Stats.MaxNumber = 3, -3 }},
		{"mass", func(t *Tuning) { t.Stats.InitialMass = 0 }},
		{"jump_floor", func(t *Tuning) { t.Stats.MinJumpForce = 0.5 }},
		{"min_scale", func(t *Tuning) { t.Stats.MinScale = 0 }},
		{"collider", func(t *Tuning) { t.Collider.Height = 0 }},
		{"buffer", func(t *Tuning) { t.Jump.BufferTime = -1 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tn := DefaultTuning()
			c.mutate(&tn)
			if err := tn.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
