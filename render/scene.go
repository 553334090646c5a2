package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/communion/breath"
	"github.com/lixenwraith/communion/parameter"
	"github.com/lixenwraith/communion/physics"
	"github.com/lixenwraith/communion/presence"
	"github.com/lixenwraith/communion/slot"
	"github.com/lixenwraith/communion/sphere"
	"github.com/lixenwraith/communion/vmath"
)

// moodColors maps each mood to its terminal color
var moodColors = [presence.MoodCount]tcell.Color{
	presence.MoodCalm:   tcell.ColorTeal,
	presence.MoodJoy:    tcell.ColorYellow,
	presence.MoodSorrow: tcell.ColorBlue,
	presence.MoodHope:   tcell.ColorGreen,
	presence.MoodWeary:  tcell.ColorGray,
}

var globeStyle = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
var hudStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver)

// shardRunes by apparent size, small to large
var shardRunes = []rune{'·', '•', '●'}

// Frame is everything the scene needs for one draw
// Value struct per tick; the renderer holds no references into the core
type Frame struct {
	Breath      breath.State
	SpinAngle   float64
	WobbleTime  float64
	OrbitRadius float64
	ShardRadius float64
	Population  int
	Connected   bool
}

// drawnShard is a projected shard awaiting painter's-order emit
type drawnShard struct {
	x, y  int
	z     float64
	r     rune
	style tcell.Style
}

// Scene renders the globe, shards and HUD onto a tcell screen
type Scene struct {
	screen    tcell.Screen
	projector *Projector

	// scratch reused across frames
	shards []drawnShard
}

func NewScene(screen tcell.Screen) *Scene {
	w, h := screen.Size()
	return &Scene{
		screen:    screen,
		projector: NewProjector(w, h),
	}
}

// Draw renders one complete frame and flushes it
func (sc *Scene) Draw(mgr *slot.Manager, frame Frame) {
	w, h := sc.screen.Size()
	sc.projector.Resize(w, h)
	sc.screen.Clear()

	sc.drawGlobe(frame)
	sc.drawShards(mgr, frame)
	sc.drawHUD(mgr, frame, w, h)

	sc.screen.Show()
}

// drawGlobe paints the central disc, swelling slightly with lung depth
func (sc *Scene) drawGlobe(frame Frame) {
	radius := parameter.GlobeRadius * (0.92 + 0.08*frame.Breath.Depth)

	// Project the disc in world units cell by cell
	rx := radius * parameter.ProjectionScale
	ry := rx * parameter.TerminalAspect
	cx := float64(sc.projector.width) / 2
	cy := float64(sc.projector.height) / 2

	for y := int(cy - ry); y <= int(cy+ry)+1; y++ {
		for x := int(cx - rx); x <= int(cx+rx)+1; x++ {
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			d := dx*dx + dy*dy
			if d > 1 {
				continue
			}
			r := '░'
			if d < 0.55 {
				r = '▒'
			}
			if x >= 0 && x < sc.projector.width && y >= 0 && y < sc.projector.height {
				sc.screen.SetContent(x, y, r, nil, globeStyle)
			}
		}
	}
}

// drawShards materializes, spins, projects and paints visible slots back to front
func (sc *Scene) drawShards(mgr *slot.Manager, frame Frame) {
	sc.shards = sc.shards[:0]
	capacity := mgr.Capacity()

	for _, idx := range mgr.VisibleIndices() {
		dir := sphere.Point(idx, capacity)
		pos := vmath.V3Scale(dir, frame.OrbitRadius+physics.WobbleOffset(idx, frame.WobbleTime))
		pos = RotateY(pos, frame.SpinAngle)

		x, y, persp, visible := sc.projector.Project(pos)
		if !visible {
			continue
		}

		// Behind the globe and inside its silhouette: occluded
		if pos.Z < 0 && math.Hypot(pos.X, pos.Y) < parameter.GlobeRadius {
			continue
		}

		scale := mgr.Scale(idx)
		if scale <= 0 {
			continue
		}

		mood, ok := mgr.Mood(idx)
		if !ok {
			continue
		}

		apparent := scale * persp
		r := shardRunes[0]
		if apparent > 0.55 {
			r = shardRunes[1]
		}
		if apparent > 0.95 {
			r = shardRunes[2]
		}

		style := tcell.StyleDefault.Foreground(moodColors[mood])
		if scale < 0.35 {
			style = style.Dim(true)
		}

		sc.shards = append(sc.shards, drawnShard{x: x, y: y, z: pos.Z, r: r, style: style})
	}

	// Painter's order: far shards first so near ones overwrite
	sort.Slice(sc.shards, func(i, j int) bool {
		return sc.shards[i].z < sc.shards[j].z
	})
	for _, s := range sc.shards {
		sc.screen.SetContent(s.x, s.y, s.r, nil, s.style)
	}
}

// drawHUD writes the status line on the bottom row
func (sc *Scene) drawHUD(mgr *slot.Manager, frame Frame, w, h int) {
	stats := mgr.Stats()
	link := "online"
	if !frame.Connected {
		link = "local"
	}
	text := fmt.Sprintf(" %d breathing · %s · cycle %d · %s ",
		stats.Visible, frame.Breath.Phase, frame.Breath.Cycle, link)

	row := h - 1
	for i, r := range text {
		if i >= w {
			break
		}
		sc.screen.SetContent(i, row, r, nil, hudStyle)
	}
}
