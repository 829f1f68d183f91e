package libdep

import (
	"context"
	"fmt"
)

// TestReport lists the modules a module's tests need: the primary
// dependencies of its include, source and test trees, then every module
// those pull in transitively.
type TestReport struct {
	Module    string         `json:"module"`
	Primary   []string       `json:"primary"`
	Secondary []TestAddition `json:"secondary"`
}

// TestAddition is a transitively needed module and the module that
// introduced it.
type TestAddition struct {
	Module string `json:"module"`
	From   string `json:"from"`
}

// TestDependencies builds the test report of m. The transitive part
// follows a graph that scans source trees but not test trees.
func (e *Engine) TestDependencies(ctx context.Context, m string) (*TestReport, error) {
	d, err := e.Primary(ctx, m, ScanPolicy{Sources: true, Tests: true})
	if err != nil {
		return nil, fmt.Errorf("libdep: test: %w", err)
	}
	r := &TestReport{Module: d.Module, Primary: d.Requirements()}

	seen := stringSet{d.Module: true}
	for _, p := range r.Primary {
		seen.add(p)
	}
	q := NewQueryBuilder(e.GraphFor(ctx, ScanPolicy{Sources: true}))
	for _, st := range q.SecondaryFrom(d.Module, r.Primary).Steps {
		for _, a := range st.Adds {
			if seen[a] {
				continue
			}
			seen.add(a)
			r.Secondary = append(r.Secondary, TestAddition{Module: a, From: st.Module})
		}
	}
	return r, nil
}

// Declaration is one build-system dependency declaration.
type Declaration struct {
	Package string `json:"package"`
	Scope   string `json:"scope"`
	Target  string `json:"target"`
}

// Declaration scopes.
const (
	ScopeInterface = "INTERFACE"
	ScopePublic    = "PUBLIC"
	ScopePrivate   = "PRIVATE"
)

// BuildDeclarations is the dependency block of a module's build script.
type BuildDeclarations struct {
	Module    string        `json:"module"`
	HasSource bool          `json:"has_source"`
	Public    []Declaration `json:"public"`
	Private   []Declaration `json:"private"`
}

// BuildDeclarations derives build declarations for m. A header-only module
// declares every dependency of its include tree as INTERFACE. Otherwise
// those are PUBLIC, and the extra dependencies of its source tree are
// PRIVATE.
func (e *Engine) BuildDeclarations(ctx context.Context, m string) (*BuildDeclarations, error) {
	public, private, info, err := e.requirementSplit(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("libdep: cmake: %w", err)
	}

	r := &BuildDeclarations{Module: info.Name, HasSource: info.HasSource}
	scope := ScopeInterface
	if info.HasSource {
		scope = ScopePublic
	}
	for _, d := range public {
		r.Public = append(r.Public, e.declaration(d, scope))
	}
	for _, d := range private {
		r.Private = append(r.Private, e.declaration(d, ScopePrivate))
	}
	return r, nil
}

func (e *Engine) declaration(m, scope string) Declaration {
	return Declaration{Package: e.layout.PackageName(m), Scope: scope, Target: e.layout.TargetName(m)}
}

// requirementSplit returns the requirements of m's include tree and the
// additional requirements of its source tree. The second set is empty for
// a module without sources.
func (e *Engine) requirementSplit(ctx context.Context, m string) (public, private []string, info ModuleInfo, err error) {
	inc, err := e.Primary(ctx, m, ScanPolicy{})
	if err != nil {
		return nil, nil, ModuleInfo{}, err
	}
	info, _ = e.reg.Module(inc.Module)
	public = inc.Requirements()
	if !info.HasSource {
		return public, nil, info, nil
	}

	src, err := e.Primary(ctx, m, ScanPolicy{Sources: true})
	if err != nil {
		return nil, nil, ModuleInfo{}, err
	}
	have := stringSet{}
	for _, d := range public {
		have.add(d)
	}
	for _, d := range src.Requirements() {
		if !have[d] {
			private = append(private, d)
		}
	}
	return public, private, info, nil
}

// PkgConfig is the content of a module's pkg-config file.
type PkgConfig struct {
	Vars            []string `json:"vars"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Version         string   `json:"version"`
	URL             string   `json:"url"`
	Cflags          string   `json:"cflags"`
	Libs            string   `json:"libs,omitempty"`
	Requires        []string `json:"requires"`
	RequiresPrivate []string `json:"requires_private"`
}

// PkgConfig derives the pkg-config metadata of m at version. vars are
// emitted verbatim ahead of the fields, one per line. Libs is set only for
// modules with both build and source directories.
func (e *Engine) PkgConfig(ctx context.Context, m, version string, vars []string) (*PkgConfig, error) {
	public, private, info, err := e.requirementSplit(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("libdep: pkgconfig: %w", err)
	}

	mp := ModulePath(info.Name)
	pc := &PkgConfig{
		Vars:        append([]string(nil), vars...),
		Name:        e.layout.PackagePrefix + "_" + mp,
		Description: fmt.Sprintf("%s C++ library '%s'", e.layout.DisplayName, mp),
		Version:     version,
		URL:         e.layout.HomeURL + mp,
		Cflags:      "-I${includedir}",
	}
	if info.HasBuild && info.HasSource {
		pc.Libs = "-L${libdir} -l" + e.layout.PackageName(info.Name)
	}
	for _, d := range public {
		pc.Requires = append(pc.Requires, e.layout.PackageName(d)+" = "+version)
	}
	for _, d := range private {
		pc.RequiresPrivate = append(pc.RequiresPrivate, e.layout.PackageName(d)+" = "+version)
	}
	return pc, nil
}
