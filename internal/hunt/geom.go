package hunt

import (
	"errors"
	"math"
)

// ErrInvalidCoordinate is returned when a pointer position cannot be
// converted to a percentage, typically because the surface has a zero
// dimension and the division produced Inf or NaN.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Point is an absolute pointer position in pixels, relative to the
// placement surface's top-left corner.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Percent is a marker position as container-relative percentages.
// Both axes are kept in [0,100]; the pair addresses the marker's
// visual center.
type Percent struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// Surface is the bounding box of the placement area in pixels.
type Surface struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ToPercent converts a pixel offset to a percentage of the container
// dimension. The result is unclamped; callers that write positions go
// through PercentAt, which clamps and validates.
func ToPercent(pixelOffset, containerDim float64) float64 {
	return pixelOffset / containerDim * 100
}

// ToPixels is the inverse of ToPercent.
func ToPixels(percent, containerDim float64) float64 {
	return percent / 100 * containerDim
}

// ClampPercent confines a percentage to [0,100].
func ClampPercent(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

// PercentAt converts a pointer position on a surface to a clamped
// percentage pair. A degenerate surface (zero or negative dimension)
// or a non-finite input yields ErrInvalidCoordinate; gestures carrying
// such positions must be discarded rather than written to an egg.
func PercentAt(p Point, s Surface) (Percent, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return Percent{}, ErrInvalidCoordinate
	}
	left := ToPercent(p.X, s.Width)
	top := ToPercent(p.Y, s.Height)
	if !isFinite(left) || !isFinite(top) {
		return Percent{}, ErrInvalidCoordinate
	}
	return Percent{Left: ClampPercent(left), Top: ClampPercent(top)}, nil
}

// Distance returns the euclidean distance between two pointer positions,
// used to separate taps from drags.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
