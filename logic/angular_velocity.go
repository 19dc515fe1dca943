package logic

import (
	"errors"
	"math"
)

var (
	ErrNilBody            = errors.New("logic: angular velocity: body is nil")
	ErrAlreadyInitialized = errors.New("logic: angular velocity: already initialized")
)

// AppliedMessage is the trace emitted on every application when debug is on.
const AppliedMessage = "Angular Velocity Applied"

// DefaultAngularForce matches the authoring default for new initializers.
const DefaultAngularForce = 5.0

// AngularBody is the part of a rigid body the initializer writes to.
// *cp.Body satisfies it.
type AngularBody interface {
	SetAngularVelocity(w float64)
}

// AngularVelocityConfig is fixed at authoring time.
type AngularVelocityConfig struct {
	EveryFrame bool
	Force      float64
	Variance   float64
}

// AngularVelocityInitializer sets a body's angular velocity to
// Force + uniform(-Variance, Variance), either once on Initialize or on every
// Update. The value is assigned, not accumulated.
type AngularVelocityInitializer struct {
	cfg   AngularVelocityConfig
	rng   RandomSource
	debug DebugLoggable

	body        AngularBody
	initialized bool
	armed       bool

	applications int
	lastForce    float64
}

// NewAngularVelocityInitializer builds an initializer. A nil rng falls back to
// an unseeded source; a nil debug disables tracing.
func NewAngularVelocityInitializer(cfg AngularVelocityConfig, rng RandomSource, debug DebugLoggable) *AngularVelocityInitializer {
	if rng == nil {
		rng = NewRand(0)
	}
	if debug == nil {
		debug = NoDebug{}
	}
	cfg.Variance = math.Abs(cfg.Variance)
	return &AngularVelocityInitializer{cfg: cfg, rng: rng, debug: debug}
}

// Initialize binds the body. In one-shot mode the velocity is applied here and
// the initializer is disarmed for good; in continuous mode nothing is applied
// until the first Update.
func (a *AngularVelocityInitializer) Initialize(body AngularBody) error {
	if a == nil {
		return ErrNilBody
	}
	if a.initialized {
		return ErrAlreadyInitialized
	}
	if body == nil {
		return ErrNilBody
	}

	a.body = body
	a.initialized = true

	if !a.cfg.EveryFrame {
		a.applyVelocity()
		a.armed = false
		return nil
	}

	a.armed = true
	return nil
}

// Update applies the velocity once when armed and is a no-op otherwise.
func (a *AngularVelocityInitializer) Update() {
	if a == nil || !a.armed {
		return
	}
	a.applyVelocity()
}

func (a *AngularVelocityInitializer) applyVelocity() {
	frameForce := a.cfg.Force + a.rng.Range(-a.cfg.Variance, a.cfg.Variance)

	a.body.SetAngularVelocity(frameForce)
	a.applications++
	a.lastForce = frameForce

	if a.debug.DebugEnabled() {
		a.debug.PrintDebug(AppliedMessage)
	}
}

// Armed reports whether Update will apply on the next tick.
func (a *AngularVelocityInitializer) Armed() bool {
	return a != nil && a.armed
}

func (a *AngularVelocityInitializer) Initialized() bool {
	return a != nil && a.initialized
}

// Applications is the number of times the body has been written.
func (a *AngularVelocityInitializer) Applications() int {
	if a == nil {
		return 0
	}
	return a.applications
}

// LastForce is the most recent value written to the body.
func (a *AngularVelocityInitializer) LastForce() float64 {
	if a == nil {
		return 0
	}
	return a.lastForce
}

func (a *AngularVelocityInitializer) Config() AngularVelocityConfig {
	if a == nil {
		return AngularVelocityConfig{}
	}
	return a.cfg
}
