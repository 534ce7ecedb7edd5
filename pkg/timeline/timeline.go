// Package timeline derives Gantt geometry from a node set's date fields: a
// time axis of fixed-width columns, pixel offsets and widths for task bars,
// and dependency arrow paths between bars.
//
// All computations are pure date/pixel arithmetic. Malformed dates never
// fail a render: nodes whose start or end cannot be parsed are excluded from
// the computed task list, not from the overall node set.
package timeline

import "time"

// Scale is the granularity of the time axis.
type Scale string

// Supported scales.
const (
	ScaleDay   Scale = "day"
	ScaleWeek  Scale = "week"
	ScaleMonth Scale = "month"
)

// Per-scale column widths in pixels.
const (
	DayColWidth   = 40.0
	WeekColWidth  = 100.0
	MonthColWidth = 120.0
)

// Per-scale millisecond divisors for converting elapsed time into
// column-width units. A month uses the 30-day approximation - the axis is a
// visual ruler, not a calendar computation.
const (
	dayMillis   = 86_400_000.0
	weekMillis  = 7 * dayMillis
	monthMillis = 30 * dayMillis
)

// ColWidth returns the fixed column pixel width for a scale.
func (s Scale) ColWidth() float64 {
	switch s {
	case ScaleWeek:
		return WeekColWidth
	case ScaleMonth:
		return MonthColWidth
	default:
		return DayColWidth
	}
}

// millis returns the milliseconds-per-column divisor for a scale.
func (s Scale) millis() float64 {
	switch s {
	case ScaleWeek:
		return weekMillis
	case ScaleMonth:
		return monthMillis
	default:
		return dayMillis
	}
}

// Align snaps a date down to its column start: midnight for days, the
// preceding Monday for weeks, the 1st for months.
func (s Scale) Align(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch s {
	case ScaleWeek:
		// Weekday() is 0 for Sunday; shift so Monday is the week start.
		offset := (int(t.Weekday()) + 6) % 7
		return t.AddDate(0, 0, -offset)
	case ScaleMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return t
	}
}

// Next advances a column start to the next column.
func (s Scale) Next(t time.Time) time.Time {
	switch s {
	case ScaleWeek:
		return t.AddDate(0, 0, 7)
	case ScaleMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// Label formats a column start for display at this scale.
func (s Scale) Label(t time.Time) string {
	switch s {
	case ScaleMonth:
		return t.Format("Jan 2006")
	default:
		return t.Format("Jan 2")
	}
}

// =============================================================================
// Time Axis
// =============================================================================

// TimeColumn is one column of the Gantt time axis. Its span is
// [Start, End) - End is the next column's start.
type TimeColumn struct {
	Start time.Time `json:"start" bson:"start"`
	End   time.Time `json:"end" bson:"end"`
	Label string    `json:"label" bson:"label"`
	Width float64   `json:"width" bson:"width"`
	Today bool      `json:"today,omitempty" bson:"today,omitempty"`
}

// BuildTimeColumns generates the axis from minDate through maxDate at the
// given scale. The first column is aligned per the scale's rule; the last
// column is the one containing maxDate. The today marker is computed once,
// against the generated spans.
func BuildTimeColumns(minDate, maxDate time.Time, scale Scale) []TimeColumn {
	return buildTimeColumns(minDate, maxDate, scale, time.Now())
}

// buildTimeColumns is the testable core with an injected clock.
func buildTimeColumns(minDate, maxDate time.Time, scale Scale, now time.Time) []TimeColumn {
	if maxDate.Before(minDate) {
		minDate, maxDate = maxDate, minDate
	}

	var out []TimeColumn
	for cur := scale.Align(minDate); !cur.After(maxDate); cur = scale.Next(cur) {
		end := scale.Next(cur)
		out = append(out, TimeColumn{
			Start: cur,
			End:   end,
			Label: scale.Label(cur),
			Width: scale.ColWidth(),
			Today: !now.Before(cur) && now.Before(end),
		})
	}
	return out
}

// =============================================================================
// Bar Geometry
// =============================================================================

// BarPos is the horizontal placement of a task bar on the axis.
type BarPos struct {
	Left  float64 `json:"left" bson:"left"`
	Width float64 `json:"width" bson:"width"`
}

// BarPosition converts a task's start/end dates into a pixel offset and
// width relative to the axis origin minDate.
//
// The bar is never narrower than half a column, so zero-duration tasks stay
// visible and draggable.
func BarPosition(start, end, minDate time.Time, colWidth float64, scale Scale) BarPos {
	per := scale.millis()
	left := float64(start.Sub(minDate).Milliseconds()) / per * colWidth
	width := float64(end.Sub(start).Milliseconds()) / per * colWidth

	if minWidth := colWidth / 2; width < minWidth {
		width = minWidth
	}
	return BarPos{Left: left, Width: width}
}
