// Package field resolves a node's value for a field reference.
//
// A reference is either direct (a built-in field or a property key on the node
// itself) or relational (follow edges of one type, in one direction, to a
// neighboring node of one type, then read a direct field there). All grouping,
// sorting, and reconciliation logic goes through this package so the two
// reference shapes behave identically everywhere.
//
// Resolution is a pure function of (node, reference, context): no lookups
// outside the caller-supplied edge set and node index, no mutation, no I/O.
package field

import (
	"github.com/flowboardhq/flowboard/pkg/model"
)

// Direction selects which endpoint of an edge must match the source node
// during relational resolution.
type Direction string

// Edge traversal directions.
const (
	// Outgoing matches edges whose from endpoint is the source node.
	Outgoing Direction = "outgoing"
	// Incoming matches edges whose to endpoint is the source node.
	Incoming Direction = "incoming"
)

// Path references a value on a neighboring node: follow edges of EdgeType in
// Direction to the first node of TargetType, then read TargetField there.
// TargetField is resolved as a direct key only - no multi-hop chains.
type Path struct {
	EdgeType    string    `json:"edge_type" toml:"edge_type" bson:"edge_type"`
	Direction   Direction `json:"direction" toml:"direction" bson:"direction"`
	TargetType  string    `json:"target_type" toml:"target_type" bson:"target_type"`
	TargetField string    `json:"target_field" toml:"target_field" bson:"target_field"`
}

// Ref is a field reference: either a direct key or a relational path.
// Exactly one of Key and Path should be set; when both are set, Path wins.
type Ref struct {
	Key  string `json:"key,omitempty" toml:"key" bson:"key,omitempty"`
	Path *Path  `json:"path,omitempty" toml:"path" bson:"path,omitempty"`
}

// IsRelational reports whether the reference requires an edge hop.
func (r Ref) IsRelational() bool { return r.Path != nil }

// IsZero reports whether the reference is empty (no key and no path).
func (r Ref) IsZero() bool { return r.Key == "" && r.Path == nil }

// Context carries the immutable inputs needed for relational resolution.
// The node index is caller-supplied so repeated resolutions stay O(1) per
// lookup; see [model.Snapshot.NodeIndex].
type Context struct {
	Edges []model.Edge
	Nodes model.NodeIndex
}

// Resolve returns the node's value for the given reference.
//
// Direct keys read the node record (built-ins "title" and "status") or the
// node's properties, unwrapping annotated values. Missing direct values
// resolve to nil.
//
// Relational paths resolve to the target node's field, or to the
// "Unassigned" sentinel when no matching edge or typed target exists.
// The sentinel is a value, never an error: resolution is total over any
// well-formed node/edge set.
func Resolve(n *model.Node, ref Ref, ctx Context) any {
	if ref.Path != nil {
		return resolveRelational(n, ref.Path, ctx)
	}
	return ResolveKey(n, ref.Key)
}

// ResolveKey resolves a direct field key on the node itself.
// Built-ins are read from the record; everything else from properties.
// Annotated wrappers are unwrapped before returning.
func ResolveKey(n *model.Node, key string) any {
	switch key {
	case model.FieldKeyTitle:
		return n.Title
	case model.FieldKeyStatus:
		if n.Status == "" {
			return nil
		}
		return n.Status
	}
	raw, ok := n.Property(key)
	if !ok {
		return nil
	}
	return model.Unwrap(raw)
}

// resolveRelational follows one edge hop and reads a direct field on the
// first matching target. Edge iteration order is the input order - not
// sorted - which keeps resolution deterministic for a stable snapshot
// without paying for a sort per lookup.
func resolveRelational(n *model.Node, p *Path, ctx Context) any {
	for _, e := range ctx.Edges {
		if e.Type != p.EdgeType {
			continue
		}
		var otherID string
		switch p.Direction {
		case Incoming:
			if e.ToNodeID != n.ID {
				continue
			}
			otherID = e.FromNodeID
		default: // Outgoing
			if e.FromNodeID != n.ID {
				continue
			}
			otherID = e.ToNodeID
		}

		target, ok := ctx.Nodes[otherID]
		if !ok || target == nil {
			continue
		}
		if p.TargetType != "" && target.Type != p.TargetType {
			continue
		}
		return ResolveKey(target, p.TargetField)
	}
	return model.SentinelUnassigned
}
