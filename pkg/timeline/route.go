package timeline

import (
	"fmt"
	"strings"
)

// Bar is a positioned task bar rectangle on the Gantt canvas.
type Bar struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Right returns the bar's right edge.
func (b Bar) Right() float64 { return b.X + b.Width }

// Bottom returns the bar's bottom edge.
func (b Bar) Bottom() float64 { return b.Y + b.Height }

// Routing constants.
const (
	// routeSafety is the minimum horizontal clearance for the direct curve.
	// Targets closer than this (or to the left) take the detour.
	routeSafety = 12.0
	// routeClearance is how far below the lower bar the detour runs.
	routeClearance = 14.0
	// routeLead is the straight lead-in before the arrow enters the target.
	routeLead = 10.0
)

// RouteDependency computes an SVG path from the end of one task bar to the
// start of another.
//
// When the target starts safely to the right of the source's end, the path
// is a single smooth cubic. When the target is to the left of or overlapping
// the source - the blocked-by-a-later-task case - the path takes a
// right-angle detour below both bars. The branch selection is a correctness
// requirement: the detour exists so the arrow never crosses bar interiors.
func RouteDependency(from, to Bar) string {
	x1, y1 := from.Right(), from.Y+from.Height/2
	x2, y2 := to.X, to.Y+to.Height/2

	if x2 >= x1+routeSafety {
		// Forward: cubic with horizontal tangents at both ends.
		mid := (x1 + x2) / 2
		return fmt.Sprintf("M %s %s C %s %s, %s %s, %s %s",
			f(x1), f(y1), f(mid), f(y1), f(mid), f(y2), f(x2), f(y2))
	}

	// Detour below both bars, entering the target from its left. Both
	// vertical legs run outside the bars' horizontal spans so the path
	// cannot cut through either interior when the bars overlap.
	below := max(from.Bottom(), to.Bottom()) + routeClearance
	descend := max(from.Right(), to.Right()) + routeLead
	rise := min(from.X, to.X) - routeLead

	var b strings.Builder
	fmt.Fprintf(&b, "M %s %s", f(x1), f(y1))
	fmt.Fprintf(&b, " L %s %s", f(descend), f(y1))
	fmt.Fprintf(&b, " L %s %s", f(descend), f(below))
	fmt.Fprintf(&b, " L %s %s", f(rise), f(below))
	fmt.Fprintf(&b, " L %s %s", f(rise), f(y2))
	fmt.Fprintf(&b, " L %s %s", f(x2), f(y2))
	return b.String()
}

// f formats a coordinate with one decimal place.
func f(v float64) string { return fmt.Sprintf("%.1f", v) }
