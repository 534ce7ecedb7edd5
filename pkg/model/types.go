package model

import "time"

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Built-in field keys present on every node record.
const (
	FieldKeyTitle  = "title"
	FieldKeyStatus = "status"
)

// SentinelUnassigned is the bucket value used when a field or relational
// reference cannot be resolved. Grouping treats it as a legitimate bucket,
// never as an error.
const SentinelUnassigned = "Unassigned"

// SentinelUngrouped is the label shown for the sentinel bucket in swimlane
// position (the row-dimension counterpart of SentinelUnassigned).
const SentinelUngrouped = "Ungrouped"

// Input caps for a single snapshot. These match the page-level fetch limits of
// the data collaborator and keep interactive latency acceptable.
const (
	MaxNodes = 1000
	MaxEdges = 5000
)

// =============================================================================
// FieldKind - Schema Field Types
// =============================================================================

// FieldKind identifies the value type of a schema field.
type FieldKind string

// Supported field kinds.
const (
	KindString   FieldKind = "string"
	KindNumber   FieldKind = "number"
	KindDatetime FieldKind = "datetime"
	KindEnum     FieldKind = "enum"
	KindPerson   FieldKind = "person"
	KindTags     FieldKind = "tag[]"
	KindJSON     FieldKind = "json"
	KindFiles    FieldKind = "file[]"
)

// =============================================================================
// Node - Typed Graph Vertex
// =============================================================================

// Node is a typed vertex in the workflow graph. Nodes are immutable within one
// engine invocation; identity is ID.
type Node struct {
	ID         string         `json:"id" bson:"id"`
	Type       string         `json:"type" bson:"type"`
	Title      string         `json:"title" bson:"title"`
	Status     string         `json:"status,omitempty" bson:"status,omitempty"`
	Properties map[string]any `json:"properties,omitempty" bson:"properties,omitempty"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" bson:"updated_at"`
}

// Property returns the raw stored value for key, which may be an annotated
// wrapper. Use Unwrap before comparing or displaying the value.
func (n *Node) Property(key string) (any, bool) {
	if n.Properties == nil {
		return nil, false
	}
	v, ok := n.Properties[key]
	return v, ok
}

// =============================================================================
// Edge - Directed Typed Arc
// =============================================================================

// Edge is a directed, typed connection between two nodes. Direction is
// semantically meaningful ("parent produces child", "blocks"); traversal
// utilities accept an explicit direction where both are sensible.
type Edge struct {
	ID         string `json:"id" bson:"id"`
	Type       string `json:"type" bson:"type"`
	FromNodeID string `json:"from_node_id" bson:"from_node_id"`
	ToNodeID   string `json:"to_node_id" bson:"to_node_id"`
}

// Other returns the endpoint of the edge that is not id. If id is not an
// endpoint of the edge, the from endpoint is returned.
func (e *Edge) Other(id string) string {
	if e.FromNodeID == id {
		return e.ToNodeID
	}
	return e.FromNodeID
}

// =============================================================================
// Schema - Read-Only Type Metadata
// =============================================================================

// FieldDef describes one field of a node or edge type.
type FieldDef struct {
	Key    string    `json:"key" bson:"key"`
	Label  string    `json:"label" bson:"label"`
	Kind   FieldKind `json:"kind" bson:"kind"`
	Values []string  `json:"values,omitempty" bson:"values,omitempty"`
}

// StateTransition is one allowed edge of a node type's state machine.
type StateTransition struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// StateMachine is the optional finite state machine attached to a node type.
type StateMachine struct {
	Enabled     bool              `json:"enabled" bson:"enabled"`
	Values      []string          `json:"values" bson:"values"`
	Transitions []StateTransition `json:"transitions,omitempty" bson:"transitions,omitempty"`
}

// Allows reports whether the state machine permits a transition from one
// status to another. A disabled machine allows everything.
func (m *StateMachine) Allows(from, to string) bool {
	if m == nil || !m.Enabled {
		return true
	}
	for _, t := range m.Transitions {
		if t.From == from && t.To == to {
			return true
		}
	}
	return false
}

// NodeType is schema metadata for one node type. It is read-only input to the
// engine and never mutated.
type NodeType struct {
	Name        string        `json:"name" bson:"name"`
	DisplayName string        `json:"display_name,omitempty" bson:"display_name,omitempty"`
	Fields      []FieldDef    `json:"fields,omitempty" bson:"fields,omitempty"`
	States      *StateMachine `json:"states,omitempty" bson:"states,omitempty"`
}

// Field returns the field definition with the given key.
func (t *NodeType) Field(key string) (FieldDef, bool) {
	for _, f := range t.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldDef{}, false
}

// EdgeType is schema metadata for one edge type.
type EdgeType struct {
	Name        string     `json:"name" bson:"name"`
	DisplayName string     `json:"display_name,omitempty" bson:"display_name,omitempty"`
	Fields      []FieldDef `json:"fields,omitempty" bson:"fields,omitempty"`
}
