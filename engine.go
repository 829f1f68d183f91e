package libdep

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jward/libdep/internal/store"
)

// Engine owns a collection: its registry, the optional scan cache and the
// graph snapshots built from it.
type Engine struct {
	fsys      fs.FS
	root      string
	layout    Layout
	policy    ScanPolicy
	extractor Extractor
	cachePath string
	cache     *store.Store
	logger    *log.Logger
	workers   int

	reg *Registry

	mu     sync.Mutex
	graphs map[ScanPolicy]*graphGate
}

// graphGate builds one graph at most once.
type graphGate struct {
	once  sync.Once
	graph *Graph
}

// Option configures an Engine.
type Option func(*Engine)

// WithLayout sets the collection layout. Empty fields keep their defaults.
func WithLayout(l Layout) Option {
	return func(e *Engine) {
		e.layout = l.withDefaults()
	}
}

// WithPolicy sets which trees the global graph scans besides include trees.
func WithPolicy(p ScanPolicy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithExtractor replaces the lexical include extractor.
func WithExtractor(x Extractor) Option {
	return func(e *Engine) {
		if x != nil {
			e.extractor = x
		}
	}
}

// WithLogger sets the logger for traversal warnings and timings.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCache keeps extracted include lists in a SQLite database at path.
// An empty path disables the cache.
func WithCache(path string) Option {
	return func(e *Engine) {
		e.cachePath = path
	}
}

// WithWorkers scans up to n modules at once while building a graph. n <= 0
// uses one worker per CPU. The default is 1.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		e.workers = n
	}
}

// New creates an Engine over the collection rooted at fsys and builds its
// registry.
func New(fsys fs.FS, opts ...Option) (*Engine, error) {
	e := &Engine{
		fsys:      fsys,
		layout:    DefaultLayout(),
		extractor: LexicalExtractor(),
		logger:    discardLogger(),
		workers:   1,
		graphs:    make(map[ScanPolicy]*graphGate),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.cachePath != "" {
		if err := e.openCache(); err != nil {
			return nil, err
		}
	}

	started := time.Now()
	e.reg = BuildRegistry(fsys, e.layout, e.logger)
	e.logger.Debug("registry built", "modules", len(e.reg.Modules()), "elapsed", time.Since(started))
	return e, nil
}

// Open creates an Engine over the collection at root on disk.
func Open(root string, opts ...Option) (*Engine, error) {
	e, err := New(os.DirFS(root), opts...)
	if err != nil {
		return nil, err
	}
	e.root = root
	return e, nil
}

func (e *Engine) openCache() error {
	s, err := store.NewStore(e.cachePath)
	if err != nil {
		return fmt.Errorf("libdep: open cache: %w", err)
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return fmt.Errorf("libdep: migrate cache: %w", err)
	}
	e.cache = s

	if e.ExtractorChanged() {
		e.logger.Info("extractor changed, clearing scan cache", "extractor", e.extractor.Name())
		if err := s.Clear(); err != nil {
			s.Close()
			return fmt.Errorf("libdep: clear cache: %w", err)
		}
		if err := s.SetMetadata("extractor", e.extractor.Name()); err != nil {
			s.Close()
			return fmt.Errorf("libdep: record extractor: %w", err)
		}
	}
	return nil
}

// ExtractorChanged reports whether the cache was filled by a different
// extractor than the one configured. It is true for a fresh cache and
// false when no cache is open.
func (e *Engine) ExtractorChanged() bool {
	if e.cache == nil {
		return false
	}
	stored, err := e.cache.GetMetadata("extractor")
	if err != nil || stored == "" {
		return true
	}
	return stored != e.extractor.Name()
}

// Close releases the scan cache.
func (e *Engine) Close() error {
	if e.cache == nil {
		return nil
	}
	return e.cache.Close()
}

// Cache returns the scan cache, or nil when caching is disabled.
func (e *Engine) Cache() *Cache { return e.cache }

// Root returns the directory passed to Open, or "" for an Engine built on
// an arbitrary fs.FS.
func (e *Engine) Root() string { return e.root }

// Registry returns the collection registry.
func (e *Engine) Registry() *Registry { return e.reg }

// Policy returns the scan policy of the default graph.
func (e *Engine) Policy() ScanPolicy { return e.policy }

// Logger returns the Engine's logger.
func (e *Engine) Logger() *log.Logger { return e.logger }

func (e *Engine) scanner() *scanner {
	return e.scannerFor(e.fsys)
}

func (e *Engine) scannerFor(fsys fs.FS) *scanner {
	return &scanner{
		fsys:      fsys,
		reg:       e.reg,
		extractor: e.extractor,
		cache:     e.cache,
		logger:    e.logger,
	}
}

// Primary scans one module under policy and returns its dependencies.
func (e *Engine) Primary(ctx context.Context, module string, policy ScanPolicy) (*Dependencies, error) {
	module = NormalizeModule(module)
	if !e.reg.HasModule(module) {
		return nil, fmt.Errorf("libdep: primary: %w: %q", ErrUnknownModule, module)
	}
	return e.scanner().scanModule(ctx, module, policy), nil
}

// Graph returns the graph built with the Engine's policy, building it on
// first use.
func (e *Engine) Graph(ctx context.Context) *Graph {
	return e.GraphFor(ctx, e.policy)
}

// GraphFor returns the graph built with policy. Each policy is scanned at
// most once per Engine. The build runs to completion even if ctx is
// cancelled, since its result is shared by every later caller.
func (e *Engine) GraphFor(ctx context.Context, policy ScanPolicy) *Graph {
	e.mu.Lock()
	gate, ok := e.graphs[policy]
	if !ok {
		gate = &graphGate{}
		e.graphs[policy] = gate
	}
	e.mu.Unlock()

	gate.once.Do(func() {
		gate.graph = e.buildGraph(context.WithoutCancel(ctx), policy)
	})
	return gate.graph
}

func (e *Engine) buildGraph(ctx context.Context, policy ScanPolicy) *Graph {
	started := time.Now()
	g := newGraph(e.reg, policy)
	for _, d := range e.scanModules(ctx, e.reg.Modules(), policy) {
		g.accumulate(d)
	}
	e.logger.Debug("graph built",
		"modules", len(e.reg.Modules()),
		"sources", policy.Sources,
		"tests", policy.Tests,
		"elapsed", time.Since(started),
	)
	return g
}

// Query returns a QueryBuilder over the default graph.
func (e *Engine) Query(ctx context.Context) *QueryBuilder {
	return NewQueryBuilder(e.Graph(ctx))
}

// IndexStats summarizes a graph build.
type IndexStats struct {
	Modules     int `json:"modules"`
	Headers     int `json:"headers"`
	Edges       int `json:"edges"`
	CachedFiles int `json:"cached_files"`
}

// Index builds the default graph, filling the scan cache, and reports
// counts.
func (e *Engine) Index(ctx context.Context) (*IndexStats, error) {
	g := e.Graph(ctx)
	stats := &IndexStats{}
	for _, m := range g.Modules() {
		stats.Modules++
		stats.Headers += len(e.reg.Headers(m))
		stats.Edges += len(g.Primary(m))
	}
	if e.cache != nil {
		n, err := e.cache.FileCount()
		if err != nil {
			return nil, fmt.Errorf("libdep: index: %w", err)
		}
		stats.CachedFiles = n
	}
	return stats, nil
}
