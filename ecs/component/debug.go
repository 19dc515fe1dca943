package component

// Debug enables diagnostic tracing for the behaviors on an entity.
type Debug struct {
	PrintDebug bool
}

var DebugComponent = NewComponent[Debug]()
