package parameter

import "time"

// Frame Loop
const (
	// FrameInterval targets 30 fps; terminal cells gain nothing above that
	FrameInterval = 33 * time.Millisecond
)

// Projection
const (
	// CameraDistance from globe center along +Z
	CameraDistance = 55.0

	// ProjectionScale maps world units to terminal cells at reference depth
	ProjectionScale = 1.6

	// TerminalAspect compensates cell height being ~2x cell width
	TerminalAspect = 0.5
)
