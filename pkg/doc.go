// Package pkg provides the core libraries for the workcell layout solver.
//
// # Overview
//
// Workcell turns a structured requirement record (robot reach, a loose
// inventory of conveyors, pallets and boxes) into a deterministic floor-plan
// layout for a robot pick-and-place cell, plus the pick, place and spawn
// targets a motion planner needs. The pkg directory is organized into:
//
//  1. [workcell] - Data contract (requirement record in, Layout Result out)
//  2. [solver] - Pure layout logic (extract → place → targets → validate)
//  3. [pipeline] - Orchestration (load → solve → render) with caching
//  4. [render/floorplan] - Top-down floor plans via Graphviz
//  5. Infrastructure: [cache], [errors], [observability], [geom], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	Requirement record (JSON/YAML)
//	         ↓
//	    [solver] extract components, search positions, derive targets
//	         ↓
//	    [solver] acceptance checks set the result status
//	         ↓
//	    Layout Result (JSON/YAML) / floor plan (SVG/DOT)
//
// # Quick Start
//
//	req, _ := pipeline.LoadRequirement("cell.yaml")
//	res, err := solver.Solve(req, solver.DefaultConfig())
//	if err != nil {
//	    return err // precondition failed: no robot, bad reach, bad dimensions
//	}
//	if !res.OK() {
//	    fmt.Println("layout rejected:", res.Status)
//	}
//
// # Main Packages
//
// [solver] is pure: no I/O, no logging, no clock. The same record and config
// always produce byte-identical output, which is what makes content-hash
// caching in [pipeline] safe.
//
// [cache] offers file (CLI), in-memory LRU and Redis (server) backends behind
// one interface. Keys combine the record hash and the solver config hash.
//
// [observability] defines hook interfaces; the Prometheus implementation lives
// in internal/metrics so library users do not pull in a metrics backend.
//
// # Testing
//
// Run tests:
//
//	go test ./...                        # All tests
//	go test ./pkg/solver/...             # Specific package
//	go test -run Example ./pkg/...       # Examples only
//	WORKCELL_TEST_REDIS_URL=redis://localhost:6379/15 go test ./pkg/cache/...
//
// [workcell]: https://pkg.go.dev/github.com/matzehuels/workcell/pkg/workcell
// [solver]: https://pkg.go.dev/github.com/matzehuels/workcell/pkg/solver
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/workcell/pkg/pipeline
// [render/floorplan]: https://pkg.go.dev/github.com/matzehuels/workcell/pkg/render/floorplan
// [cache]: https://pkg.go.dev/github.com/matzehuels/workcell/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/workcell/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/workcell/pkg/observability
// [geom]: https://pkg.go.dev/github.com/matzehuels/workcell/pkg/geom
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/workcell/pkg/buildinfo
package pkg
