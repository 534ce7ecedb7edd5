package timeline

import (
	"time"

	"github.com/flowboardhq/flowboard/pkg/field"
	"github.com/flowboardhq/flowboard/pkg/model"
)

// Task is a node admitted to the Gantt view: both of its date fields parsed.
type Task struct {
	Node  model.Node `json:"node" bson:"node"`
	Start time.Time  `json:"start" bson:"start"`
	End   time.Time  `json:"end" bson:"end"`
}

// Accepted date layouts, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// ParseDate interprets a resolved field value as a date. It accepts
// time.Time values directly and strings in RFC 3339 or date-only form.
func ParseDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// Tasks extracts the Gantt task list from a node set.
//
// A node whose start or end field is missing or unparseable is excluded from
// the task list - a reduced list is the error surface here, never a failure.
// When the end precedes the start the two are swapped rather than dropped.
func Tasks(nodes []model.Node, startRef, endRef field.Ref, ctx field.Context) []Task {
	var out []Task
	for i := range nodes {
		n := &nodes[i]
		start, ok := ParseDate(field.Resolve(n, startRef, ctx))
		if !ok {
			continue
		}
		end, ok := ParseDate(field.Resolve(n, endRef, ctx))
		if !ok {
			continue
		}
		if end.Before(start) {
			start, end = end, start
		}
		out = append(out, Task{Node: *n, Start: start, End: end})
	}
	return out
}

// Span returns the earliest start and latest end across tasks.
// ok is false for an empty task list.
func Span(tasks []Task) (minDate, maxDate time.Time, ok bool) {
	if len(tasks) == 0 {
		return time.Time{}, time.Time{}, false
	}
	minDate, maxDate = tasks[0].Start, tasks[0].End
	for _, t := range tasks[1:] {
		if t.Start.Before(minDate) {
			minDate = t.Start
		}
		if t.End.After(maxDate) {
			maxDate = t.End
		}
	}
	return minDate, maxDate, true
}
