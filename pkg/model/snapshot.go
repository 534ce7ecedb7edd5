package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrInvalidNodeID is returned by [Snapshot.Validate] when a node has an
	// empty ID. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Snapshot.Validate] when two nodes
	// share an ID. Node IDs must be unique across the snapshot.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownEdgeEndpoint is returned by [Snapshot.Validate] when an edge
	// references a node that is not part of the snapshot.
	ErrUnknownEdgeEndpoint = errors.New("unknown edge endpoint")

	// ErrTooManyNodes is returned when a snapshot exceeds MaxNodes.
	ErrTooManyNodes = errors.New("snapshot exceeds node limit")

	// ErrTooManyEdges is returned when a snapshot exceeds MaxEdges.
	ErrTooManyEdges = errors.New("snapshot exceeds edge limit")
)

// =============================================================================
// Snapshot - Immutable Engine Input
// =============================================================================

// Snapshot is the immutable input to every engine computation: the node and
// edge sets plus the read-only type schema. The engine never fetches or
// mutates data; callers replace the whole snapshot when inputs change.
type Snapshot struct {
	Nodes     []Node     `json:"nodes" bson:"nodes"`
	Edges     []Edge     `json:"edges" bson:"edges"`
	NodeTypes []NodeType `json:"node_types,omitempty" bson:"node_types,omitempty"`
	EdgeTypes []EdgeType `json:"edge_types,omitempty" bson:"edge_types,omitempty"`
}

// Validate checks snapshot integrity and returns nil if valid.
// It verifies that node IDs are non-empty and unique, that every edge
// references nodes present in the snapshot, and that the snapshot stays
// within the MaxNodes/MaxEdges caps.
func (s *Snapshot) Validate() error {
	if len(s.Nodes) > MaxNodes {
		return fmt.Errorf("%w: %d > %d", ErrTooManyNodes, len(s.Nodes), MaxNodes)
	}
	if len(s.Edges) > MaxEdges {
		return fmt.Errorf("%w: %d > %d", ErrTooManyEdges, len(s.Edges), MaxEdges)
	}

	seen := make(map[string]struct{}, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.ID == "" {
			return ErrInvalidNodeID
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
		}
		seen[n.ID] = struct{}{}
	}

	for _, e := range s.Edges {
		if _, ok := seen[e.FromNodeID]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownEdgeEndpoint, e.FromNodeID)
		}
		if _, ok := seen[e.ToNodeID]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownEdgeEndpoint, e.ToNodeID)
		}
	}
	return nil
}

// NodeIndex maps node IDs to node records. All relational field resolution
// goes through an index supplied by the caller, so resolution stays O(1) per
// lookup without re-scanning the node slice.
type NodeIndex map[string]*Node

// NodeIndex builds an index over the snapshot's nodes.
// The index points into the snapshot's node slice; it is valid as long as the
// snapshot itself.
func (s *Snapshot) NodeIndex() NodeIndex {
	idx := make(NodeIndex, len(s.Nodes))
	for i := range s.Nodes {
		idx[s.Nodes[i].ID] = &s.Nodes[i]
	}
	return idx
}

// Node returns the node with the given ID and true, or nil and false.
// This is a linear scan; build a NodeIndex for repeated lookups.
func (s *Snapshot) Node(id string) (*Node, bool) {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return &s.Nodes[i], true
		}
	}
	return nil, false
}

// NodeType returns the schema entry for a node type name.
func (s *Snapshot) NodeType(name string) (*NodeType, bool) {
	for i := range s.NodeTypes {
		if s.NodeTypes[i].Name == name {
			return &s.NodeTypes[i], true
		}
	}
	return nil, false
}

// EdgeType returns the schema entry for an edge type name.
func (s *Snapshot) EdgeType(name string) (*EdgeType, bool) {
	for i := range s.EdgeTypes {
		if s.EdgeTypes[i].Name == name {
			return &s.EdgeTypes[i], true
		}
	}
	return nil, false
}

// EdgesOfType returns the snapshot's edges with the given type, in input
// order. Stable input order keeps downstream resolution deterministic.
func (s *Snapshot) EdgesOfType(edgeType string) []Edge {
	var out []Edge
	for _, e := range s.Edges {
		if e.Type == edgeType {
			out = append(out, e)
		}
	}
	return out
}

// =============================================================================
// Snapshot Serialization API
// =============================================================================

// MarshalSnapshot serializes a Snapshot to pretty-printed JSON bytes.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalSnapshot deserializes JSON bytes into a Snapshot and validates it.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// WriteSnapshotFile writes a Snapshot to a JSON file.
func WriteSnapshotFile(s Snapshot, path string) error {
	data, err := MarshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadSnapshotFile reads and validates a Snapshot from a JSON file.
func ReadSnapshotFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalSnapshot(data)
}
