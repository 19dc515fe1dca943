package entity

import (
	"strings"
	"testing"

	"github.com/milk9111/lpk/ecs"
	"github.com/milk9111/lpk/ecs/component"
	"github.com/milk9111/lpk/levels"
	"github.com/milk9111/lpk/logic"
	"github.com/milk9111/lpk/prefabs"
)

func TestBuildEntityFromPrefab(t *testing.T) {
	cases := []struct {
		prefab     string
		everyFrame bool
		variance   float64
		circle     bool
	}{
		{"spinner.yaml", false, 0, false},
		{"spinner_random.yaml", false, 2, true},
		{"spinner_continuous.yaml", true, 2, false},
	}

	for _, c := range cases {
		t.Run(c.prefab, func(t *testing.T) {
			w := ecs.NewWorld()
			e, err := BuildEntity(w, c.prefab)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			av, ok := ecs.Get(w, e, component.AngularVelocityComponent.Kind())
			if !ok {
				t.Fatal("expected angular velocity component")
			}
			if av.EveryFrame != c.everyFrame || av.Force != 5 || av.Variance != c.variance {
				t.Fatalf("unexpected angular velocity %+v", av)
			}
			if av.Behavior != nil {
				t.Fatal("behavior is created by the system, not the builder")
			}
			body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
			if !ok {
				t.Fatal("expected physics body")
			}
			if (body.Radius > 0) != c.circle {
				t.Fatalf("unexpected collider %+v", body)
			}
			if body.Body != nil {
				t.Fatal("cp body is created by the physics system")
			}
			name, ok := ecs.Get(w, e, component.NameComponent.Kind())
			if !ok || name.Value == "" || name.Prefab != c.prefab {
				t.Fatalf("unexpected name %+v", name)
			}
			if !ecs.Has(w, e, component.ShapeRenderComponent.Kind()) {
				t.Fatal("expected shape render")
			}
		})
	}
}

func TestAngularVelocityDefaultForce(t *testing.T) {
	w := ecs.NewWorld()
	spec := prefabs.EntityBuildSpec{
		Name: "bare",
		Components: map[string]any{
			"angular_velocity": map[string]any{"every_frame": true},
		},
	}
	e, err := buildFromSpec(w, "bare.yaml", spec)
	if err != nil {
		t.Fatal(err)
	}
	av, _ := ecs.Get(w, e, component.AngularVelocityComponent.Kind())
	if av.Force != logic.DefaultAngularForce || av.Variance != 0 {
		t.Fatalf("expected default force, got %+v", av)
	}
}

func TestBuildEntityErrors(t *testing.T) {
	cases := []struct {
		name    string
		spec    prefabs.EntityBuildSpec
		wantErr string
	}{
		{
			name:    "no_components",
			spec:    prefabs.EntityBuildSpec{Name: "empty"},
			wantErr: "does not define components",
		},
		{
			name: "unknown_component",
			spec: prefabs.EntityBuildSpec{Name: "odd", Components: map[string]any{
				"transform": map[string]any{"x": 1},
				"wobble":    map[string]any{},
			}},
			wantErr: `no builder for component "wobble"`,
		},
		{
			name: "bad_component",
			spec: prefabs.EntityBuildSpec{Name: "bad", Components: map[string]any{
				"angular_velocity": map[string]any{"force": "fast"},
			}},
			wantErr: `add "angular_velocity"`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := buildFromSpec(w, c.name+".yaml", c.spec)
			if err == nil || !strings.Contains(err.Error(), c.wantErr) {
				t.Fatalf("expected error containing %q, got %v", c.wantErr, err)
			}
			if n := len(ecs.Entities(w)); n != 0 {
				t.Fatalf("failed build must not leave entities, found %d", n)
			}
		})
	}
}

func TestBuildEntityMissingPrefab(t *testing.T) {
	if _, err := BuildEntity(ecs.NewWorld(), "missing.yaml"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := BuildEntity(nil, "spinner.yaml"); err == nil {
		t.Fatal("expected error for nil world")
	}
}

func TestBuildScene(t *testing.T) {
	x, rot := 42.0, 1.25
	scene := &levels.Scene{
		Name: "test",
		Entities: []levels.Entity{
			{Prefab: "ground.yaml"},
			{Prefab: "spinner.yaml", X: &x, Rotation: &rot, Debug: true},
		},
	}
	w := ecs.NewWorld()
	ents, err := BuildScene(w, scene)
	if err != nil {
		t.Fatalf("build scene: %v", err)
	}
	if len(ents) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(ents))
	}

	tr, ok := ecs.Get(w, ents[1], component.TransformComponent.Kind())
	if !ok {
		t.Fatal("expected transform")
	}
	if tr.X != 42 || tr.Y != 200 || tr.Rotation != 1.25 {
		t.Fatalf("placement not applied: %+v", tr)
	}
	dbg, ok := ecs.Get(w, ents[1], component.DebugComponent.Kind())
	if !ok || !dbg.PrintDebug {
		t.Fatal("scene debug flag should enable tracing")
	}
	if ecs.Has(w, ents[0], component.AngularVelocityComponent.Kind()) {
		t.Fatal("ground should not spin")
	}
}

func TestBuildSceneStopsOnError(t *testing.T) {
	scene := &levels.Scene{
		Name: "broken",
		Entities: []levels.Entity{
			{Prefab: "spinner.yaml"},
			{Prefab: "missing.yaml"},
		},
	}
	w := ecs.NewWorld()
	ents, err := BuildScene(w, scene)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(ents) != 1 {
		t.Fatalf("expected the entities built before the failure, got %d", len(ents))
	}
}
