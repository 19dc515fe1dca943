package entity

import (
	"fmt"

	"github.com/milk9111/lpk/ecs"
	"github.com/milk9111/lpk/ecs/component"
	"github.com/milk9111/lpk/levels"
)

// BuildScene spawns every placement of scene. It stops at the first failure
// and returns the entities built so far alongside the error.
func BuildScene(w *ecs.World, scene *levels.Scene) ([]ecs.Entity, error) {
	if w == nil {
		return nil, fmt.Errorf("build scene: world is nil")
	}
	if scene == nil {
		return nil, fmt.Errorf("build scene: scene is nil")
	}

	out := make([]ecs.Entity, 0, len(scene.Entities))
	for i, placement := range scene.Entities {
		e, err := BuildEntity(w, placement.Prefab)
		if err != nil {
			return out, fmt.Errorf("build scene %q: entity %d: %w", scene.Name, i, err)
		}
		if err := applyPlacement(w, e, placement); err != nil {
			ecs.DestroyEntity(w, e)
			return out, fmt.Errorf("build scene %q: entity %d: %w", scene.Name, i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func applyPlacement(w *ecs.World, e ecs.Entity, p levels.Entity) error {
	if p.X != nil || p.Y != nil || p.Rotation != nil {
		var x, y, rot float64
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			x, y, rot = t.X, t.Y, t.Rotation
		}
		if p.X != nil {
			x = *p.X
		}
		if p.Y != nil {
			y = *p.Y
		}
		if p.Rotation != nil {
			rot = *p.Rotation
		}
		if err := SetEntityTransform(w, e, x, y, rot); err != nil {
			return fmt.Errorf("set transform: %w", err)
		}
	}
	if p.Debug {
		if err := ecs.Add(w, e, component.DebugComponent.Kind(), &component.Debug{PrintDebug: true}); err != nil {
			return fmt.Errorf("set debug: %w", err)
		}
	}
	return nil
}
