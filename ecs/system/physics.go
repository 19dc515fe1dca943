package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/lpk/ecs"
	"github.com/milk9111/lpk/ecs/component"
	"github.com/milk9111/lpk/levels"
)

const collisionTypeSolid cp.CollisionType = 1

// PhysicsConfig configures the Chipmunk2D space. Step is in seconds per tick.
type PhysicsConfig struct {
	Gravity    cp.Vector
	Iterations int
	Damping    float64
	Step       float64
}

func PhysicsConfigFromScene(p levels.Physics) PhysicsConfig {
	return PhysicsConfig{
		Gravity:    cp.Vector{X: p.GravityX, Y: p.GravityY},
		Iterations: p.Iterations,
		Damping:    p.Damping,
		Step:       p.Step,
	}
}

func (c PhysicsConfig) withDefaults() PhysicsConfig {
	if c.Iterations <= 0 {
		c.Iterations = levels.DefaultIterations
	}
	if c.Damping <= 0 {
		c.Damping = levels.DefaultDamping
	}
	if c.Step <= 0 {
		c.Step = levels.DefaultStep
	}
	return c
}

// PhysicsSystem owns the cp space. Bodies are created lazily for entities
// with a PhysicsBody and a Transform, and removed once the entity dies or
// loses its PhysicsBody.
type PhysicsSystem struct {
	space *cp.Space
	cfg   PhysicsConfig
	steps uint64

	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

func NewPhysicsSystem(cfg PhysicsConfig) *PhysicsSystem {
	cfg = cfg.withDefaults()
	return &PhysicsSystem{
		space:    newSpace(cfg),
		cfg:      cfg,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func newSpace(cfg PhysicsConfig) *cp.Space {
	space := cp.NewSpace()
	space.Iterations = uint(cfg.Iterations)
	space.SetGravity(cfg.Gravity)
	space.SetDamping(cfg.Damping)
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Steps returns how many times the space has been stepped.
func (ps *PhysicsSystem) Steps() uint64 {
	if ps == nil {
		return 0
	}
	return ps.steps
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace(ps.cfg)
		clear(ps.entities)
	}

	ps.syncEntities(w)
	ps.space.Step(ps.cfg.Step)
	ps.steps++
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		if info := ps.entities[e]; info != nil {
			if bodyComp.Body == nil {
				bodyComp.Body = info.body
				bodyComp.Shape = info.shapes[0]
			}
			continue
		}

		info := ps.createBodyInfo(*transform, *bodyComp)
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp component.PhysicsBody) *bodyInfo {
	width, height, radius := bodyComp.Width, bodyComp.Height, bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width = 32
		height = 32
	}

	center := cp.Vector{X: transform.X, Y: transform.Y}
	info := &bodyInfo{static: bodyComp.Static}

	var body *cp.Body
	if bodyComp.Static {
		body = cp.NewStaticBody()
	} else {
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		var moment float64
		if radius > 0 {
			moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
		} else {
			moment = cp.MomentForBox(mass, width, height)
		}
		body = cp.NewBody(mass, moment)
	}
	body.SetPosition(center)
	body.SetAngle(transform.Rotation)
	body.SetAngularVelocity(0)
	ps.space.AddBody(body)

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeSolid)
	ps.space.AddShape(shape)

	info.body = body
	info.shapes = []*cp.Shape{shape}
	return info
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = bodyComp.Body.Angle()
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}

		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
		}
		ps.space.RemoveBody(info.body)
		delete(ps.entities, e)
	}
}
