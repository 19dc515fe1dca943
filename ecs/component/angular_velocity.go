package component

import "github.com/milk9111/lpk/logic"

// AngularVelocity is the authoring data of an angular velocity initializer.
// Behavior is created by AngularVelocitySystem the first tick the entity's
// physics body exists and is never replaced afterwards.
type AngularVelocity struct {
	EveryFrame bool
	Force      float64
	Variance   float64

	Behavior *logic.AngularVelocityInitializer
}

var AngularVelocityComponent = NewComponent[AngularVelocity]()
