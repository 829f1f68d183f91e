// Package libdep analyzes the include structure of a modular header
// collection such as Boost. It maps every header to the module that owns
// it, derives the module dependency graph from #include directives and
// answers questions about that graph.
//
// # Collection layout
//
// A collection root holds a marker file (Jamroot by default) and a libs
// directory with one directory per module. A module directory that has an
// include subdirectory is a module; one that has a sublibs subdirectory
// contains nested modules, named with "~" in place of the path separator
// (numeric/conversion becomes numeric~conversion). See [Layout].
//
// # Pipeline
//
//  1. Registry: walk the module directories and record which module owns
//     each header ([BuildRegistry]).
//  2. Scan: extract the include targets of every file in a module's
//     include tree, and optionally its src and test trees. Targets are
//     classified through the registry; unregistered targets under the
//     reserved prefix go to the [UnknownModule] bucket.
//  3. Graph: scan every module once and accumulate the primary, reverse,
//     header-depends and header-includes relations ([Graph]).
//  4. Query: closures, levels, weights and subsets are computed from the
//     immutable graph by a [QueryBuilder].
//
// # Usage
//
//	e, err := libdep.Open(root, libdep.WithCache(filepath.Join(root, ".libdep.db")))
//	if err != nil { ... }
//	defer e.Close()
//
//	ctx := context.Background()
//	q := e.Query(ctx)
//	levels := q.Levels()
//	closure, err := q.Secondary("serialization")
//
// # Reports
//
// Every report has a narrow visitor interface ([PrimaryVisitor],
// [LevelVisitor], ...) and a driver function that walks a report value and
// calls the visitor in sorted order. Text and HTML renderers live in
// internal/render.
//
// # Extractors
//
// The default [Extractor] is a lexical line scanner. A tree-sitter based
// extractor (internal/cparse) can be selected with [WithExtractor]. With
// [WithCache], extracted include lists are kept in SQLite keyed by content
// hash, and the cache is dropped whenever the extractor changes.
//
// # Concurrency
//
// Graph builds scan one module at a time unless [WithWorkers] allows
// more. A built graph is immutable, so any number of queries may read it
// at once.
package libdep
