package render

import (
	"math"

	"github.com/lixenwraith/communion/parameter"
	"github.com/lixenwraith/communion/vmath"
)

// Projector maps world space to terminal cells
// Camera sits on +Z looking at the origin; the swarm's orbital spin is a
// rigid rotation about Y applied here, not in the physics materialization
type Projector struct {
	width, height int
	cx, cy        float64
}

func NewProjector(width, height int) *Projector {
	return &Projector{
		width:  width,
		height: height,
		cx:     float64(width) / 2,
		cy:     float64(height) / 2,
	}
}

// Resize updates the viewport
func (p *Projector) Resize(width, height int) {
	p.width = width
	p.height = height
	p.cx = float64(width) / 2
	p.cy = float64(height) / 2
}

// RotateY spins a point about the Y axis by angle radians
func RotateY(v vmath.Vec3, angle float64) vmath.Vec3 {
	sin, cos := math.Sincos(angle)
	return vmath.Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// Project returns cell coordinates, perspective factor, and whether the
// point is in front of the camera
// Terminal cells are ~2x taller than wide; TerminalAspect squashes Y
func (p *Projector) Project(v vmath.Vec3) (x, y int, persp float64, visible bool) {
	depth := parameter.CameraDistance - v.Z
	if depth <= 1 {
		return 0, 0, 0, false
	}
	persp = parameter.CameraDistance / depth

	sx := p.cx + v.X*parameter.ProjectionScale*persp
	sy := p.cy - v.Y*parameter.ProjectionScale*persp*parameter.TerminalAspect

	x, y = int(math.Round(sx)), int(math.Round(sy))
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return x, y, persp, false
	}
	return x, y, persp, true
}
