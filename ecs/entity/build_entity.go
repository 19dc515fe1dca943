package entity

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/milk9111/lpk/ecs"
	"github.com/milk9111/lpk/ecs/component"
	"github.com/milk9111/lpk/logic"
	"github.com/milk9111/lpk/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":        addTransform,
	"physics_body":     addPhysicsBody,
	"angular_velocity": addAngularVelocity,
	"debug":            addDebug,
	"shape_render":     addShapeRender,
}

// physics_body reads the transform for scale_with_transform, so transform
// must be built before it.
var componentBuildOrder = []string{
	"transform",
	"physics_body",
	"angular_velocity",
	"debug",
	"shape_render",
}

// BuildEntity creates an entity from the prefab at prefabPath. On any
// component error the entity is destroyed and nothing is left in the world.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, prefabPath, spec)
}

func buildFromSpec(w *ecs.World, prefabPath string, spec entityPrefabSpec) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name, Prefab: prefabPath}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: add name: %w", prefabPath, err)
	}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

const defaultBodySize = 32.0

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}

	width, height, radius := spec.Width, spec.Height, spec.Radius
	if spec.ScaleWithTransform {
		if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			width *= tr.ScaleX
			height *= tr.ScaleY
			radius *= max(tr.ScaleX, tr.ScaleY)
		}
	}
	if radius <= 0 {
		if width <= 0 {
			width = defaultBodySize
		}
		if height <= 0 {
			height = defaultBodySize
		}
	}
	if !spec.Static && spec.Mass <= 0 {
		spec.Mass = 1
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:      width,
		Height:     height,
		Radius:     radius,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
		Static:     spec.Static,
	})
}

type angularVelocitySpec = prefabs.AngularVelocityComponentSpec

func addAngularVelocity(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[angularVelocitySpec](raw)
	if err != nil {
		return fmt.Errorf("decode angular velocity spec: %w", err)
	}
	force := logic.DefaultAngularForce
	if spec.Force != nil {
		force = *spec.Force
	}
	return ecs.Add(w, e, component.AngularVelocityComponent.Kind(), &component.AngularVelocity{
		EveryFrame: spec.EveryFrame,
		Force:      force,
		Variance:   spec.Variance,
	})
}

type debugSpec = prefabs.DebugComponentSpec

func addDebug(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[debugSpec](raw)
	if err != nil {
		return fmt.Errorf("decode debug spec: %w", err)
	}
	return ecs.Add(w, e, component.DebugComponent.Kind(), &component.Debug{PrintDebug: spec.PrintDebug})
}

type shapeRenderSpec = prefabs.ShapeRenderComponentSpec

var defaultShapeColor = color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}

func addShapeRender(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[shapeRenderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode shape render spec: %w", err)
	}
	var clr color.Color = defaultShapeColor
	if spec.Color != nil && spec.Color.Color != nil {
		clr = spec.Color.Color
	}
	if spec.StrokeWidth <= 0 {
		spec.StrokeWidth = 1
	}
	return ecs.Add(w, e, component.ShapeRenderComponent.Kind(), &component.ShapeRender{
		Color:       clr,
		StrokeWidth: spec.StrokeWidth,
		Filled:      spec.Filled,
		Layer:       spec.Layer,
	})
}
