package libdep

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

// MissingHeaders is the set of unresolved references of one module.
type MissingHeaders struct {
	Module  string         `json:"module"`
	Headers []HeaderSource `json:"headers"`
}

// MissingHeaders scans the include tree of every module and returns those
// that reference headers under the reserved prefix that no module owns.
func (e *Engine) MissingHeaders(ctx context.Context) []MissingHeaders {
	s := e.scanner()
	var out []MissingHeaders
	for _, m := range e.reg.Modules() {
		d := s.scanModule(ctx, m, ScanPolicy{})
		headers := d.Headers(UnknownModule)
		if len(headers) == 0 {
			continue
		}
		mh := MissingHeaders{Module: m}
		for _, h := range headers {
			mh.Headers = append(mh.Headers, HeaderSource{Header: h, From: d.From(h)})
		}
		out = append(out, mh)
	}
	return out
}

// ModuleSubset computes the subset report of m. Its start set is the
// module's headers plus, per the Engine's policy, the files of its source
// and test trees.
func (e *Engine) ModuleSubset(ctx context.Context, m string) (*SubsetReport, error) {
	q := e.Query(ctx)
	m, err := q.module("subset", m)
	if err != nil {
		return nil, err
	}

	start := e.reg.Headers(m)
	if e.policy.Sources {
		start = append(start, e.listFiles(e.fsys, e.layout.SourceDir(m))...)
	}
	if e.policy.Tests {
		start = append(start, e.listFiles(e.fsys, e.layout.TestDir(m))...)
	}
	return q.Subset(m, start), nil
}

// DirectorySubset computes a subset report for the files of an arbitrary
// directory, named name, that need not belong to the collection. Its
// includes are layered over the graph for this query only; the graph
// itself is left untouched.
func (e *Engine) DirectorySubset(ctx context.Context, name string, dir fs.FS) (*SubsetReport, error) {
	rel := e.listFiles(dir, ".")
	if len(rel) == 0 {
		return nil, fmt.Errorf("libdep: subset-for %s: no files", name)
	}

	start := make([]string, 0, len(rel))
	for _, p := range rel {
		start = append(start, path.Join(name, p))
	}
	d := newDependencies(name)
	e.scannerFor(dir).scanFiles(ctx, name, rel, d)

	overlay := setMap{}
	for _, m := range d.Modules(true) {
		for _, h := range d.Headers(m) {
			for _, f := range d.From(h) {
				overlay.add(f, h)
			}
		}
	}

	q := e.Query(ctx)
	includes := func(h string) []string {
		extra, ok := overlay[h]
		if !ok {
			return q.graph.Includes(h)
		}
		merged := extra.clone()
		for _, t := range q.graph.Includes(h) {
			merged.add(t)
		}
		return merged.sorted()
	}
	return q.subsetWith(name, start, includes), nil
}

// listFiles returns the paths of all regular files below dir, sorted.
// Unreadable entries are logged and skipped.
func (e *Engine) listFiles(fsys fs.FS, dir string) []string {
	if !exists(fsys, dir) {
		return nil
	}
	var files []string
	_ = fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			e.logger.Warn("skipping unreadable path", "path", p, "err", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	sort.Strings(files)
	return files
}
