package constants

import "time"

// Host Loop Timing Constants
const (
	// FrameUpdateInterval is the rendering frame rate interval (~30 FPS, text only)
	FrameUpdateInterval = 33 * time.Millisecond

	// ToastDuration is how long transient notices (shard pickup) stay visible
	ToastDuration = 1200 * time.Millisecond
)

// Falling-Block Constants
const (
	// BlocksCols is the grid width in cells
	BlocksCols = 10

	// BlocksRows is the grid height in cells
	BlocksRows = 20

	// GravityStart is the initial interval between gravity ticks
	GravityStart = 800 * time.Millisecond

	// GravityDecay multiplies the interval each time a piece locks
	GravityDecay = 0.98

	// GravityFloor is the fastest allowed gravity interval
	GravityFloor = 100 * time.Millisecond

	// VisibilityThreshold is the visible fraction at or below which the game counts as out of view
	VisibilityThreshold = 0.25
)

// LineClearScores maps simultaneous cleared rows to awarded points
var LineClearScores = [5]int{0, 100, 300, 500, 800}
