// Package pkg provides the core libraries for Flowboard view composition.
//
// # Overview
//
// Flowboard turns typed graph snapshots (nodes, edges, schema) into derived
// view models: kanban boards, dependency trees, Gantt timelines, sortable
// tables, and 2D canvas layouts. The pkg directory is organized into four
// main areas:
//
//  1. Engine - pure composition algorithms ([board], [tree], [timeline],
//     [layout], [table], [hops], [field])
//  2. Orchestration - [compose] ties the engine together and caches results
//  3. Infrastructure - [cache], [store], [config], [observability], [errors]
//  4. Surfaces - [server] (HTTP API) and [render] (Graphviz output)
//
// # Architecture
//
// The typical data flow through Flowboard:
//
//	Snapshot (model) + View config (view)
//	         ↓
//	    [hops] package (optional neighborhood filter)
//	         ↓
//	    [board] / [tree] / [timeline] / [table] / [layout]
//	         ↓
//	    [compose] ViewData (cached via [cache])
//	         ↓
//	    JSON API response or [render] SVG
//
// # Quick Start
//
// Compose a kanban board from a snapshot:
//
//	import (
//	    "context"
//	    "github.com/flowboardhq/flowboard/pkg/compose"
//	    "github.com/flowboardhq/flowboard/pkg/model"
//	    "github.com/flowboardhq/flowboard/pkg/view"
//	)
//
//	snap, _ := model.ReadSnapshotFile("snapshot.json")
//	cfg, _ := view.LoadFile("board.toml")
//
//	runner := compose.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), snap, cfg)
//	for _, lane := range result.Data.Board.Swimlanes {
//	    // render lane.Columns
//	}
//
// # Main Packages
//
// [model] - Snapshot types: nodes, edges, schema metadata, and state
// machines. Includes annotated-value unwrapping and snapshot validation.
//
// [field] - Field references: direct property keys and single-hop relational
// paths resolved through typed edges.
//
// [board] - Kanban grouping into columns and swimlanes, plus drag/drop
// reconciliation into mutation intents.
//
// [tree] - Parent/child forest construction over one edge type.
//
// [timeline] - Gantt task extraction, time column generation, bar geometry,
// and dependency routing.
//
// [layout] - Deterministic 2D canvas placement (hierarchy and cluster
// strategies).
//
// [table] - Stable multi-type sorting with null-last semantics.
//
// [hops] - BFS neighborhood filtering around a focal node.
//
// [compose] - The orchestrating engine: style dispatch, hop filtering, color
// keys, and the cached Runner used by CLI and server.
//
// [cache] - Content-addressed result caching with memory, file, Redis, and
// null backends.
//
// [store] - Saved view persistence with memory, file, and MongoDB backends.
//
// [server] - chi HTTP API exposing compose, reconcile, render, and saved
// views.
//
// [render] - DOT generation and Graphviz SVG rendering for tree and canvas
// views.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/board/...    # Specific package
//
// [model]: https://pkg.go.dev/github.com/flowboardhq/flowboard/pkg/model
// [field]: https://pkg.go.dev/github.com/flowboardhq/flowboard/pkg/field
// [board]: https://pkg.go.dev/github.com/flowboardhq/flowboard/pkg/board
// [tree]: https://pkg.go.dev/github.com/flowboardhq/flowboard/pkg/tree
// [timeline]: https://pkg.go.dev/github.com/flowboardhq/flowboard/pkg/timeline
// [layout]: https://pkg.go.dev/github.com/flowboardhq/flowboard/pkg/layout
// [table]: https://pkg.go.dev/github.com/flowboardhq/flowboard/pkg/table
// [hops]: https://pkg.go.dev/github.com/flowboardhq/flowboard/pkg/hops
// [compose]: https://pkg.go.dev/github.com/flowboardhq/flowboard/pkg/compose
// [cache]: https://pkg.go.dev/github.com/flowboardhq/flowboard/pkg/cache
// [store]: https://pkg.go.dev/github.com/flowboardhq/flowboard/pkg/store
// [config]: https://pkg.go.dev/github.com/flowboardhq/flowboard/pkg/config
// [observability]: https://pkg.go.dev/github.com/flowboardhq/flowboard/pkg/observability
// [errors]: https://pkg.go.dev/github.com/flowboardhq/flowboard/pkg/errors
// [server]: https://pkg.go.dev/github.com/flowboardhq/flowboard/pkg/server
// [render]: https://pkg.go.dev/github.com/flowboardhq/flowboard/pkg/render
// [view]: https://pkg.go.dev/github.com/flowboardhq/flowboard/pkg/view
package pkg
