// Package table provides type-aware, stable sorting over resolved field
// values for table views.
package table

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/flowboardhq/flowboard/pkg/field"
	"github.com/flowboardhq/flowboard/pkg/model"
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Compare orders two resolved field values and returns -1, 0, or 1.
//
// Nulls sort after any defined value in ascending order and before in
// descending order - "nulls last" is direction-relative, not absolute.
// Strings compare case-insensitively; numbers and times compare
// numerically; mixed or unknown types fall back to comparing their string
// forms. Annotated wrappers are unwrapped first.
func Compare(a, b any, dir Direction) int {
	c := compareAscending(model.Unwrap(a), model.Unwrap(b))
	if dir == Descending {
		return -c
	}
	return c
}

func compareAscending(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	if an, aok := toFloat(a); aok {
		if bn, bok := toFloat(b); bok {
			return sign(an - bn)
		}
	}

	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			return at.Compare(bt)
		}
	}

	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			return strings.Compare(strings.ToLower(as), strings.ToLower(bs))
		}
	}

	// mixed/unknown types: compare string forms
	return strings.Compare(
		strings.ToLower(fmt.Sprint(a)),
		strings.ToLower(fmt.Sprint(b)),
	)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func sign(v float64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

// SortNodes returns the nodes ordered by the resolved value of ref.
// The sort is stable: ties keep their original relative order, which is what
// makes table snapshots reproducible. The input slice is not modified.
func SortNodes(nodes []model.Node, ref field.Ref, dir Direction, ctx field.Context) []model.Node {
	out := make([]model.Node, len(nodes))
	copy(out, nodes)

	keys := make([]any, len(out))
	for i := range out {
		keys[i] = field.Resolve(&out[i], ref, ctx)
	}

	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return Compare(keys[idx[i]], keys[idx[j]], dir) < 0
	})

	sorted := make([]model.Node, len(out))
	for i, j := range idx {
		sorted[i] = out[j]
	}
	return sorted
}
