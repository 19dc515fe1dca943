package system

import (
	"fmt"
	"log"

	"github.com/milk9111/lpk/ecs"
	"github.com/milk9111/lpk/ecs/component"
	"github.com/milk9111/lpk/logic"
)

// AngularVelocitySystem drives AngularVelocity behaviors. The first tick an
// entity's cp body exists the behavior is initialized, and on the same tick
// and every later one it is updated while armed. Disarmed behaviors are
// skipped for good.
type AngularVelocitySystem struct {
	rng        logic.RandomSource
	logger     *log.Logger
	forceDebug bool
	tick       uint64
}

// NewAngularVelocitySystem shares rng between every behavior it creates.
// Traces go to logger; a nil logger discards them.
func NewAngularVelocitySystem(rng logic.RandomSource, logger *log.Logger) *AngularVelocitySystem {
	if rng == nil {
		rng = logic.NewRand(0)
	}
	return &AngularVelocitySystem{rng: rng, logger: logger}
}

// SetForceDebug turns tracing on for every entity regardless of its Debug
// component.
func (s *AngularVelocitySystem) SetForceDebug(on bool) {
	if s == nil {
		return
	}
	s.forceDebug = on
}

func (s *AngularVelocitySystem) ForceDebug() bool {
	return s != nil && s.forceDebug
}

func (s *AngularVelocitySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.tick++

	ecs.ForEach2(w, component.AngularVelocityComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, av *component.AngularVelocity, pb *component.PhysicsBody) {
		if av.Behavior == nil {
			av.Behavior = logic.NewAngularVelocityInitializer(logic.AngularVelocityConfig{
				EveryFrame: av.EveryFrame,
				Force:      av.Force,
				Variance:   av.Variance,
			}, s.rng, s.debugFor(w, e))
		}
		b := av.Behavior
		before := b.Applications()

		if !b.Initialized() {
			// Body not created yet; retry next tick.
			if pb.Body == nil {
				return
			}
			if err := b.Initialize(pb.Body); err != nil {
				log.Printf("angular velocity: entity=%d initialize: %v", e, err)
				return
			}
		}
		b.Update()

		if b.Applications() > before {
			w.Events().Push(ecs.Event{
				Type: ecs.EventAngularVelocityApplied,
				Data: ecs.AngularVelocityApplied{Entity: e, Force: b.LastForce(), Tick: s.tick},
			})
		}
	})
}

func (s *AngularVelocitySystem) debugFor(w *ecs.World, e ecs.Entity) *entityDebug {
	owner := fmt.Sprintf("entity %d", e)
	if name, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && name.Value != "" {
		owner = fmt.Sprintf("%s (%d)", name.Value, e)
	}
	return &entityDebug{
		w:   w,
		e:   e,
		sys: s,
		out: logic.NewDebug(owner, true, s.logger),
	}
}

// entityDebug reads the entity's Debug component on every call so the flag
// can be toggled while the behavior runs.
type entityDebug struct {
	w   *ecs.World
	e   ecs.Entity
	sys *AngularVelocitySystem
	out *logic.Debug
}

func (d *entityDebug) DebugEnabled() bool {
	if d.sys.ForceDebug() {
		return true
	}
	dbg, ok := ecs.Get(d.w, d.e, component.DebugComponent.Kind())
	return ok && dbg.PrintDebug
}

func (d *entityDebug) PrintDebug(msg string) {
	d.out.PrintDebug(msg)
}
