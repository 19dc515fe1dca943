// Package sim wires a scene into a world and the systems that run it.
package sim

import (
	"fmt"
	"log"

	"github.com/milk9111/lpk/ecs"
	"github.com/milk9111/lpk/ecs/entity"
	"github.com/milk9111/lpk/ecs/system"
	"github.com/milk9111/lpk/levels"
	"github.com/milk9111/lpk/logic"
)

type Options struct {
	// Seed for the shared random source. Zero picks a random seed.
	Seed       uint64
	Logger     *log.Logger
	ForceDebug bool
}

// Sim is one loaded scene. Systems run in the order physics, angular
// velocity, render, followed by any systems passed to AddSystem.
type Sim struct {
	Scene     *levels.Scene
	World     *ecs.World
	Scheduler *ecs.Scheduler
	Physics   *system.PhysicsSystem
	Angular   *system.AngularVelocitySystem
	Render    *system.RenderSystem

	ticks uint64
}

func Load(scenePath string, opts Options) (*Sim, error) {
	scene, err := levels.LoadScene(scenePath)
	if err != nil {
		return nil, fmt.Errorf("sim: load %s: %w", scenePath, err)
	}
	return New(scene, opts)
}

func New(scene *levels.Scene, opts Options) (*Sim, error) {
	if scene == nil {
		return nil, fmt.Errorf("sim: scene is nil")
	}
	w := ecs.NewWorld()
	physics := system.NewPhysicsSystem(system.PhysicsConfigFromScene(scene.Physics))
	angular := system.NewAngularVelocitySystem(logic.NewRand(opts.Seed), opts.Logger)
	angular.SetForceDebug(opts.ForceDebug)
	render := system.NewRenderSystem()

	if _, err := entity.BuildScene(w, scene); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	return &Sim{
		Scene:     scene,
		World:     w,
		Scheduler: ecs.NewScheduler(physics, angular, render),
		Physics:   physics,
		Angular:   angular,
		Render:    render,
	}, nil
}

func (s *Sim) AddSystem(sys ecs.System) {
	s.Scheduler.Add(sys)
}

// Step advances the scene by one tick.
func (s *Sim) Step() {
	s.Scheduler.Update(s.World)
	s.ticks++
}

func (s *Sim) Ticks() uint64 {
	return s.ticks
}
