package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/lpk/ecs"
	"github.com/milk9111/lpk/ecs/component"
)

const circleMarkerWidth = 2

var whitePixel *ebiten.Image

// fillSource is a 1x1 white image scaled and tinted to draw filled boxes.
func fillSource() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// RenderSystem draws every entity with a ShapeRender, a PhysicsBody and a
// Transform, lowest layer first.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Update(*ecs.World) {}

type drawItem struct {
	shape     *component.ShapeRender
	body      *component.PhysicsBody
	transform *component.Transform
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}

	var items []drawItem
	ecs.ForEach3(w, component.ShapeRenderComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, s *component.ShapeRender, b *component.PhysicsBody, t *component.Transform) {
			items = append(items, drawItem{shape: s, body: b, transform: t})
		})
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].shape.Layer < items[j].shape.Layer
	})

	for _, it := range items {
		if it.body.Radius > 0 {
			drawCircleShape(screen, it)
			continue
		}
		drawBoxShape(screen, it)
	}
}

func drawCircleShape(screen *ebiten.Image, it drawItem) {
	cx, cy := float32(it.transform.X), float32(it.transform.Y)
	radius := float32(it.body.Radius)
	if it.shape.Filled {
		vector.DrawFilledCircle(screen, cx, cy, radius, it.shape.Color, true)
	} else {
		vector.StrokeCircle(screen, cx, cy, radius, it.shape.StrokeWidth, it.shape.Color, true)
	}
	// Rotation marker so spin is visible on a circle.
	ex := cx + radius*float32(math.Cos(it.transform.Rotation))
	ey := cy + radius*float32(math.Sin(it.transform.Rotation))
	vector.StrokeLine(screen, cx, cy, ex, ey, circleMarkerWidth, it.shape.Color, true)
}

func drawBoxShape(screen *ebiten.Image, it drawItem) {
	w, h := it.body.Width, it.body.Height
	if it.shape.Filled {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(w, h)
		op.GeoM.Translate(-w/2, -h/2)
		op.GeoM.Rotate(it.transform.Rotation)
		op.GeoM.Translate(it.transform.X, it.transform.Y)
		op.ColorScale.ScaleWithColor(it.shape.Color)
		screen.DrawImage(fillSource(), op)
		return
	}

	corners := boxCorners(it.transform.X, it.transform.Y, w, h, it.transform.Rotation)
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		vector.StrokeLine(screen, a[0], a[1], b[0], b[1], it.shape.StrokeWidth, it.shape.Color, true)
	}
}

// boxCorners returns the corners of a w×h box centered on (cx, cy) and
// rotated by angle radians, clockwise in screen space.
func boxCorners(cx, cy, w, h, angle float64) [4][2]float32 {
	hw, hh := w/2, h/2
	sin, cos := math.Sincos(angle)
	local := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var out [4][2]float32
	for i, p := range local {
		out[i][0] = float32(cx + p[0]*cos - p[1]*sin)
		out[i][1] = float32(cy + p[0]*sin + p[1]*cos)
	}
	return out
}
