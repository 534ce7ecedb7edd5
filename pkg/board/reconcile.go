package board

import (
	"github.com/flowboardhq/flowboard/pkg/field"
	"github.com/flowboardhq/flowboard/pkg/model"
)

// MutationKind tells the mutation collaborator what kind of persisted change a
// drag/drop implies. The engine never applies mutations itself.
type MutationKind string

// Mutation kinds surfaced by Reconcile.
const (
	// MutationNone means the dimension did not change.
	MutationNone MutationKind = "none"
	// MutationStatus is a status field update on the dragged node.
	MutationStatus MutationKind = "status"
	// MutationProperty is a property update on the dragged node.
	MutationProperty MutationKind = "property"
	// MutationEdgeRewire means an edge must be deleted and/or created to move
	// the node under a different relational target.
	MutationEdgeRewire MutationKind = "edge_rewire"
)

// Intent describes the outcome of reconciling a drop target against a node's
// currently resolved position on the board.
type Intent struct {
	ColumnChanged    bool         `json:"column_changed"`
	SwimlaneChanged  bool         `json:"swimlane_changed"`
	ColumnMutation   MutationKind `json:"column_mutation"`
	SwimlaneMutation MutationKind `json:"swimlane_mutation"`
	TargetColumn     string       `json:"target_column,omitempty"`
	TargetSwimlane   string       `json:"target_swimlane,omitempty"`
}

// HasChange reports whether any dimension actually moved. Dropping a node
// back where it was must not trigger any external update call.
func (i Intent) HasChange() bool { return i.ColumnChanged || i.SwimlaneChanged }

// Reconcile compares a proposed (column, swimlane) drop target against the
// node's currently resolved keys and emits a mutation intent only for the
// dimensions that changed.
//
// The mutation kind depends on the grouping reference: a direct status field
// maps to a status update, any other direct field to a property update, and a
// relational reference to an edge rewire. targetSwimlane is ignored when
// swimlaneRef is nil (one-dimensional board).
func Reconcile(n *model.Node, targetColumn, targetSwimlane string, columnRef field.Ref, swimlaneRef *field.Ref, ctx field.Context) Intent {
	intent := Intent{
		ColumnMutation:   MutationNone,
		SwimlaneMutation: MutationNone,
	}

	if current := GroupKey(n, columnRef, ctx); current != targetColumn {
		intent.ColumnChanged = true
		intent.ColumnMutation = mutationKind(columnRef)
		intent.TargetColumn = targetColumn
	}

	if swimlaneRef != nil && !swimlaneRef.IsZero() {
		if current := GroupKey(n, *swimlaneRef, ctx); current != targetSwimlane {
			intent.SwimlaneChanged = true
			intent.SwimlaneMutation = mutationKind(*swimlaneRef)
			intent.TargetSwimlane = targetSwimlane
		}
	}

	return intent
}

func mutationKind(ref field.Ref) MutationKind {
	if ref.IsRelational() {
		return MutationEdgeRewire
	}
	if ref.Key == model.FieldKeyStatus {
		return MutationStatus
	}
	return MutationProperty
}
