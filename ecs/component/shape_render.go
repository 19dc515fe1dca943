package component

import "image/color"

// ShapeRender draws the entity's collider outline. A marker line from the
// center shows the current rotation.
type ShapeRender struct {
	Color       color.Color
	StrokeWidth float32
	Filled      bool
	Layer       int
}

var ShapeRenderComponent = NewComponent[ShapeRender]()
