package libdep

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recorder logs every visitor callback it receives.
type recorder struct{ calls []string }

func (r *recorder) rec(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

type groupRecorder struct{ recorder }

func (r *groupRecorder) Heading(m string)     { r.rec("heading %s", m) }
func (r *groupRecorder) ModuleStart(m string) { r.rec("module %s", m) }
func (r *groupRecorder) ModuleEnd(m string)   { r.rec("/module %s", m) }
func (r *groupRecorder) HeaderStart(h string) { r.rec("header %s", h) }
func (r *groupRecorder) HeaderEnd(h string)   { r.rec("/header %s", h) }
func (r *groupRecorder) FromHeader(f string)  { r.rec("from %s", f) }

type levelRecorder struct{ recorder }

func (r *levelRecorder) Begin()                     { r.rec("begin") }
func (r *levelRecorder) LevelStart(l int)           { r.rec("level %d", l) }
func (r *levelRecorder) ModuleStart(m string)       { r.rec("module %s", m) }
func (r *levelRecorder) Dependency(m string, l int) { r.rec("dep %s %d", m, l) }
func (r *levelRecorder) ModuleEnd(m string)         { r.rec("/module %s", m) }
func (r *levelRecorder) LevelEnd(l int)             { r.rec("/level %d", l) }
func (r *levelRecorder) End()                       { r.rec("end") }

type weightRecorder struct{ recorder }

func (r *weightRecorder) Begin()                    { r.rec("begin") }
func (r *weightRecorder) WeightStart(w int)         { r.rec("weight %d", w) }
func (r *weightRecorder) ModuleStart(m string)      { r.rec("module %s", m) }
func (r *weightRecorder) PrimaryStart()             { r.rec("primary") }
func (r *weightRecorder) Primary(m string, w int)   { r.rec("p %s %d", m, w) }
func (r *weightRecorder) PrimaryEnd()               { r.rec("/primary") }
func (r *weightRecorder) SecondaryStart()           { r.rec("secondary") }
func (r *weightRecorder) Secondary(m string, w int) { r.rec("s %s %d", m, w) }
func (r *weightRecorder) SecondaryEnd()             { r.rec("/secondary") }
func (r *weightRecorder) ModuleEnd(m string)        { r.rec("/module %s", m) }
func (r *weightRecorder) WeightEnd(w int)           { r.rec("/weight %d", w) }
func (r *weightRecorder) End()                      { r.rec("end") }

type headerRecorder struct{ recorder }

func (r *headerRecorder) Heading(h, m string)  { r.rec("heading %s %s", h, m) }
func (r *headerRecorder) ModuleStart(m string) { r.rec("module %s", m) }
func (r *headerRecorder) Header(h string)      { r.rec("file %s", h) }
func (r *headerRecorder) ModuleEnd(m string)   { r.rec("/module %s", m) }

type secondaryRecorder struct{ recorder }

func (r *secondaryRecorder) Heading(m string)     { r.rec("heading %s", m) }
func (r *secondaryRecorder) ModuleStart(m string) { r.rec("module %s", m) }
func (r *secondaryRecorder) Adds(m string)        { r.rec("adds %s", m) }
func (r *secondaryRecorder) ModuleEnd(m string)   { r.rec("/module %s", m) }

type subsetRecorder struct{ recorder }

func (r *subsetRecorder) Heading(m string)     { r.rec("heading %s", m) }
func (r *subsetRecorder) ModuleStart(m string) { r.rec("module %s", m) }
func (r *subsetRecorder) Path(p []string)      { r.rec("path %v", p) }
func (r *subsetRecorder) ModuleEnd(m string)   { r.rec("/module %s", m) }

type overviewRecorder struct{ recorder }

func (r *overviewRecorder) Begin()               { r.rec("begin") }
func (r *overviewRecorder) ModuleStart(m string) { r.rec("module %s", m) }
func (r *overviewRecorder) Dependency(m string)  { r.rec("dep %s", m) }
func (r *overviewRecorder) ModuleEnd(m string)   { r.rec("/module %s", m) }
func (r *overviewRecorder) End()                 { r.rec("end") }

func TestWalkPrimary(t *testing.T) {
	t.Parallel()
	r := &PrimaryReport{Module: "a", Groups: []DependencyGroup{
		{Module: "b", Headers: []HeaderSource{{Header: "b/y.hpp", From: []string{"a/x.hpp", "a/z.hpp"}}}},
	}}
	v := &groupRecorder{}
	WalkPrimary(r, v)
	assert.Equal(t, []string{
		"heading a",
		"module b",
		"header b/y.hpp", "from a/x.hpp", "from a/z.hpp", "/header b/y.hpp",
		"/module b",
	}, v.calls)
}

func TestWalkReverse(t *testing.T) {
	t.Parallel()
	r := &ReverseReport{Module: "b", Groups: []DependencyGroup{
		{Module: "a", Headers: []HeaderSource{{Header: "b/y.hpp", From: []string{"a/x.hpp"}}}},
	}}
	v := &groupRecorder{}
	WalkReverse(r, v)
	assert.Equal(t, []string{
		"heading b",
		"module a", "header b/y.hpp", "from a/x.hpp", "/header b/y.hpp", "/module a",
	}, v.calls)
}

func TestWalkSecondary(t *testing.T) {
	t.Parallel()
	q := newTestQueryBuilder(map[string][]string{"c": {"b"}, "b": {"a"}})
	c, err := q.Secondary("c")
	assert.NoError(t, err)

	v := &secondaryRecorder{}
	WalkSecondary(c, v)
	assert.Equal(t, []string{"heading c", "module b", "adds a", "/module b"}, v.calls)
}

func TestWalkHeader(t *testing.T) {
	t.Parallel()
	r := &HeaderReport{Header: "b/y.hpp", Module: "b", Groups: []HeaderGroup{
		{Module: "a", Headers: []string{"a/x.hpp"}},
	}}
	v := &headerRecorder{}
	WalkHeader(r, v)
	assert.Equal(t, []string{"heading b/y.hpp b", "module a", "file a/x.hpp", "/module a"}, v.calls)
}

func TestWalkLevels(t *testing.T) {
	t.Parallel()
	q := newTestQueryBuilder(map[string][]string{"b": {"a"}})
	v := &levelRecorder{}
	WalkLevels(q.Levels(), v)
	assert.Equal(t, []string{
		"begin",
		"level 0", "module a", "/module a", "/level 0",
		"level 1", "module b", "dep a 0", "/module b", "/level 1",
		"end",
	}, v.calls)
}

func TestWalkWeights(t *testing.T) {
	t.Parallel()
	q := newTestQueryBuilder(map[string][]string{"c": {"b"}, "b": {"a"}})
	v := &weightRecorder{}
	WalkWeights(q.Weights(), v)
	assert.Equal(t, []string{
		"begin",
		"weight 0", "module a", "/module a", "/weight 0",
		"weight 1", "module b", "primary", "p a 0", "/primary", "/module b", "/weight 1",
		"weight 2", "module c", "primary", "p b 1", "/primary", "secondary", "s a 0", "/secondary", "/module c", "/weight 2",
		"end",
	}, v.calls)
}

func TestWalkSubset(t *testing.T) {
	t.Parallel()
	r := &SubsetReport{Module: "a", Groups: []SubsetGroup{
		{Module: "b", Paths: [][]string{{"a/a.hpp", "b/b.hpp"}}},
	}}
	v := &subsetRecorder{}
	WalkSubset(r, v)
	assert.Equal(t, []string{"heading a", "module b", "path [a/a.hpp b/b.hpp]", "/module b"}, v.calls)
}

func TestWalkOverview(t *testing.T) {
	t.Parallel()
	q := newTestQueryBuilder(map[string][]string{"a": {"b", "c"}})
	v := &overviewRecorder{}
	WalkOverview(q.Overview(), v)
	assert.Equal(t, []string{
		"begin",
		"module a", "dep b", "dep c", "/module a",
		"module b", "/module b",
		"module c", "/module c",
		"end",
	}, v.calls)
}
