package logic

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
)

type recordingBody struct {
	writes []float64
}

func (b *recordingBody) SetAngularVelocity(w float64) {
	b.writes = append(b.writes, w)
}

func (b *recordingBody) last() float64 {
	if len(b.writes) == 0 {
		return 0
	}
	return b.writes[len(b.writes)-1]
}

type countingDebug struct {
	enabled  bool
	messages []string
}

func (d *countingDebug) DebugEnabled() bool { return d.enabled }

func (d *countingDebug) PrintDebug(msg string) { d.messages = append(d.messages, msg) }

// edgeRand returns min, max, then the midpoint, cycling.
type edgeRand struct {
	n int
}

func (r *edgeRand) Range(min, max float64) float64 {
	defer func() { r.n++ }()
	switch r.n % 3 {
	case 0:
		return min
	case 1:
		return max
	default:
		return (min + max) / 2
	}
}

func TestApplyVelocityStaysInRange(t *testing.T) {
	cases := []struct {
		name     string
		force    float64
		variance float64
	}{
		{"positive", 5, 2},
		{"negative_force", -3, 1.5},
		{"wide", 0, 100},
		{"tiny", 1, 1e-9},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			body := &recordingBody{}
			a := NewAngularVelocityInitializer(AngularVelocityConfig{EveryFrame: true, Force: c.force, Variance: c.variance}, NewRand(42), nil)
			if err := a.Initialize(body); err != nil {
				t.Fatalf("initialize: %v", err)
			}
			for i := 0; i < 1000; i++ {
				a.Update()
			}
			if len(body.writes) != 1000 {
				t.Fatalf("expected 1000 writes, got %d", len(body.writes))
			}
			lo, hi := c.force-c.variance, c.force+c.variance
			for i, w := range body.writes {
				if w < lo || w > hi {
					t.Fatalf("sample %d = %v outside [%v, %v]", i, w, lo, hi)
				}
			}
		})
	}
}

func TestApplyVelocityIntervalEdges(t *testing.T) {
	body := &recordingBody{}
	a := NewAngularVelocityInitializer(AngularVelocityConfig{EveryFrame: true, Force: 5, Variance: 2}, &edgeRand{}, nil)
	if err := a.Initialize(body); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		a.Update()
	}
	want := []float64{3, 7, 5}
	for i := range want {
		if body.writes[i] != want[i] {
			t.Fatalf("write %d: expected %v, got %v", i, want[i], body.writes[i])
		}
	}
}

func TestZeroVarianceIsDeterministic(t *testing.T) {
	for _, force := range []float64{5, -5, 0, 12.25} {
		body := &recordingBody{}
		a := NewAngularVelocityInitializer(AngularVelocityConfig{EveryFrame: true, Force: force}, NewRand(7), nil)
		if err := a.Initialize(body); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 50; i++ {
			a.Update()
		}
		for i, w := range body.writes {
			if w != force {
				t.Fatalf("force %v: write %d = %v", force, i, w)
			}
		}
	}
}

func TestNegativeVarianceIsSymmetric(t *testing.T) {
	a := NewAngularVelocityInitializer(AngularVelocityConfig{Force: 1, Variance: -2}, &edgeRand{}, nil)
	if got := a.Config().Variance; got != 2 {
		t.Fatalf("expected variance 2, got %v", got)
	}
	body := &recordingBody{}
	if err := a.Initialize(body); err != nil {
		t.Fatal(err)
	}
	if body.last() != -1 {
		t.Fatalf("expected -1, got %v", body.last())
	}
}

func TestOneShotAppliesExactlyOnce(t *testing.T) {
	body := &recordingBody{}
	a := NewAngularVelocityInitializer(AngularVelocityConfig{Force: 5, Variance: 2}, NewRand(1), nil)
	if err := a.Initialize(body); err != nil {
		t.Fatal(err)
	}
	if a.Armed() {
		t.Fatal("one-shot initializer should be disarmed after Initialize")
	}
	first := body.last()
	for i := 0; i < 100; i++ {
		a.Update()
	}
	if len(body.writes) != 1 {
		t.Fatalf("expected exactly 1 write, got %d", len(body.writes))
	}
	if body.last() != first || a.LastForce() != first {
		t.Fatalf("value changed after first application: %v -> %v", first, body.last())
	}
	if a.Applications() != 1 {
		t.Fatalf("expected 1 application, got %d", a.Applications())
	}
}

func TestContinuousAppliesEveryTick(t *testing.T) {
	body := &recordingBody{}
	a := NewAngularVelocityInitializer(AngularVelocityConfig{EveryFrame: true, Force: 5, Variance: 2}, NewRand(3), nil)
	if err := a.Initialize(body); err != nil {
		t.Fatal(err)
	}
	if len(body.writes) != 0 {
		t.Fatalf("continuous Initialize should not apply, got %d writes", len(body.writes))
	}
	if !a.Armed() {
		t.Fatal("continuous initializer should be armed")
	}
	for n := 1; n <= 10; n++ {
		a.Update()
		if len(body.writes) != n {
			t.Fatalf("after %d ticks expected %d writes, got %d", n, n, len(body.writes))
		}
	}
}

func TestUpdateBeforeInitializeIsNoop(t *testing.T) {
	a := NewAngularVelocityInitializer(AngularVelocityConfig{EveryFrame: true, Force: 5}, nil, nil)
	a.Update()
	if a.Applications() != 0 {
		t.Fatalf("expected no applications, got %d", a.Applications())
	}
}

func TestInitializeErrors(t *testing.T) {
	a := NewAngularVelocityInitializer(AngularVelocityConfig{Force: 5}, nil, nil)
	if err := a.Initialize(nil); !errors.Is(err, ErrNilBody) {
		t.Fatalf("expected ErrNilBody, got %v", err)
	}
	if a.Initialized() {
		t.Fatal("nil body must leave the initializer unbound")
	}

	first := &recordingBody{}
	if err := a.Initialize(first); err != nil {
		t.Fatal(err)
	}
	second := &recordingBody{}
	if err := a.Initialize(second); !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}
	if len(second.writes) != 0 || len(first.writes) != 1 {
		t.Fatalf("body must not be reassigned: first=%d second=%d", len(first.writes), len(second.writes))
	}
}

func TestDebugTraceCounts(t *testing.T) {
	cases := []struct {
		name       string
		everyFrame bool
		enabled    bool
		ticks      int
		want       int
	}{
		{"off_one_shot", false, false, 10, 0},
		{"off_continuous", true, false, 10, 0},
		{"on_one_shot", false, true, 10, 1},
		{"on_continuous", true, true, 10, 10},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dbg := &countingDebug{enabled: c.enabled}
			a := NewAngularVelocityInitializer(AngularVelocityConfig{EveryFrame: c.everyFrame, Force: 1}, nil, dbg)
			if err := a.Initialize(&recordingBody{}); err != nil {
				t.Fatal(err)
			}
			for i := 0; i < c.ticks; i++ {
				a.Update()
			}
			if len(dbg.messages) != c.want {
				t.Fatalf("expected %d messages, got %d", c.want, len(dbg.messages))
			}
			if len(dbg.messages) != a.Applications() && c.enabled {
				t.Fatalf("messages %d != applications %d", len(dbg.messages), a.Applications())
			}
			for _, m := range dbg.messages {
				if m != AppliedMessage {
					t.Fatalf("unexpected message %q", m)
				}
			}
		})
	}
}

func TestOneShotScenario(t *testing.T) {
	body := &recordingBody{}
	a := NewAngularVelocityInitializer(AngularVelocityConfig{Force: 5, Variance: 0}, nil, nil)
	if err := a.Initialize(body); err != nil {
		t.Fatal(err)
	}
	if body.last() != 5.0 {
		t.Fatalf("expected 5.0, got %v", body.last())
	}
	for i := 0; i < 5; i++ {
		a.Update()
	}
	if body.last() != 5.0 || len(body.writes) != 1 {
		t.Fatalf("expected unchanged 5.0 with one write, got %v (%d writes)", body.last(), len(body.writes))
	}
}

func TestContinuousScenario(t *testing.T) {
	body := &recordingBody{}
	a := NewAngularVelocityInitializer(AngularVelocityConfig{EveryFrame: true, Force: 5, Variance: 2}, NewRand(99), nil)
	if err := a.Initialize(body); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		a.Update()
	}
	if len(body.writes) != 3 {
		t.Fatalf("expected 3 writes, got %d", len(body.writes))
	}
	for i, w := range body.writes {
		if w < 3 || w > 7 {
			t.Fatalf("sample %d = %v outside [3, 7]", i, w)
		}
	}
	if body.last() != body.writes[2] || a.LastForce() != body.writes[2] {
		t.Fatalf("final value %v should equal third sample %v", body.last(), body.writes[2])
	}
}

func TestDebugWritesOwnerPrefix(t *testing.T) {
	var buf bytes.Buffer
	dbg := NewDebug("spinner", true, log.New(&buf, "", 0))
	a := NewAngularVelocityInitializer(AngularVelocityConfig{Force: 2}, nil, dbg)
	if err := a.Initialize(&recordingBody{}); err != nil {
		t.Fatal(err)
	}
	got := strings.TrimSpace(buf.String())
	if got != "spinner: "+AppliedMessage {
		t.Fatalf("unexpected trace %q", got)
	}
}
