// Package board computes kanban-style groupings of a node set and reconciles
// drag/drop targets against them.
//
// # Grouping
//
// [GroupNodes] buckets nodes along a primary column dimension and an optional
// secondary swimlane dimension. Both dimensions resolve their bucket key
// through the field package, so a column can be a direct property (almost
// always status) while a swimlane can be either a property or a relational
// path through the edge set ("group rows by assignee").
//
// Bucket ordering is author-controlled: an explicit order from the view
// configuration takes precedence, and keys observed in the data but absent
// from the explicit order are appended in first-seen order. Nothing is
// sorted alphabetically - the UI expects insertion order.
//
// Unresolvable keys collapse into the "Unassigned" sentinel bucket. The
// sentinel is ordinary output: grouping is a total function over any
// well-formed node/edge set and never fails a render.
//
// # Reconciliation
//
// [Reconcile] compares a proposed drop target with the node's currently
// resolved keys and reports which dimensions actually moved, along with the
// mutation kind the external mutation collaborator must apply (status update,
// property update, or edge rewire for relational swimlanes). Same-place drops
// produce no intent at all.
package board
