package render

import (
	"io"
	"strings"

	"github.com/jward/libdep"
)

// The writers below produce the text-only outputs. Each returns the first
// write error.

// WriteModules writes one module name per line.
func WriteModules(w io.Writer, modules []string) error {
	p := &printer{w: w}
	for _, m := range modules {
		p.printf("%s\n", m)
	}
	return p.err
}

// WriteDependencies writes "m -> d1 d2" per module, omitting unresolved
// references.
func WriteDependencies(w io.Writer, lines []libdep.ModuleDependencies) error {
	p := &printer{w: w}
	for _, l := range lines {
		p.printf("%s ->", l.Module)
		for _, d := range l.Dependencies {
			if d != libdep.UnknownModule {
				p.printf(" %s", d)
			}
		}
		p.print("\n")
	}
	return p.err
}

// WriteExceptions writes each module path followed by its misplaced
// headers, indented.
func WriteExceptions(w io.Writer, groups []libdep.ExceptionGroup) error {
	p := &printer{w: w}
	for _, g := range groups {
		p.printf("%s:\n", libdep.ModulePath(g.Module))
		for _, h := range g.Headers {
			p.printf("  %s\n", h)
		}
	}
	return p.err
}

// WriteMissingHeaders writes, per module, the unresolved headers and the
// files that include them.
func WriteMissingHeaders(w io.Writer, missing []libdep.MissingHeaders) error {
	p := &printer{w: w}
	for _, m := range missing {
		p.printf("%s:\n", m.Module)
		for _, h := range m.Headers {
			p.printf("    <%s>\n", h.Header)
			for _, f := range h.From {
				p.printf("        from <%s>\n", f)
			}
		}
	}
	return p.err
}

// WriteTestReport writes the modules a module's tests need, the directly
// included ones first and then, after a blank line, the transitive ones
// with the module that introduced each.
func WriteTestReport(w io.Writer, r *libdep.TestReport) error {
	p := &printer{w: w}
	p.printf("Test dependencies for %s:\n\n", r.Module)
	for _, m := range r.Primary {
		p.printf("%s\n", m)
	}
	p.print("\n")
	for _, a := range r.Secondary {
		p.printf("%s (from %s)\n", a.Module, a.From)
	}
	return p.err
}

// WriteBuildDeclarations writes a build script fragment declaring the
// dependencies of a module. Compiled modules get their public and private
// declarations separated by a blank line.
func WriteBuildDeclarations(w io.Writer, r *libdep.BuildDeclarations) error {
	p := &printer{w: w}
	p.print("# Generated file. Do not edit.\n\n")
	writeDecls := func(decls []libdep.Declaration) {
		for _, d := range decls {
			p.printf("boost_declare_dependency(%s %s %s)\n", d.Package, d.Scope, d.Target)
		}
	}
	writeDecls(r.Public)
	if r.HasSource {
		p.print("\n")
		writeDecls(r.Private)
	}
	return p.err
}

// WritePkgConfig writes a pkg-config file.
func WritePkgConfig(w io.Writer, pc *libdep.PkgConfig) error {
	p := &printer{w: w}
	for _, v := range pc.Vars {
		p.printf("%s\n", v)
	}
	p.print("\n")
	p.printf("Name: %s\n", pc.Name)
	p.printf("Description: %s\n", pc.Description)
	p.printf("Version: %s\n", pc.Version)
	p.printf("URL: %s\n", pc.URL)
	p.printf("Cflags: %s\n", pc.Cflags)
	if pc.Libs != "" {
		p.printf("Libs: %s\n", pc.Libs)
	}
	if len(pc.Requires) > 0 {
		p.printf("Requires: %s\n", strings.Join(pc.Requires, ", "))
	}
	if len(pc.RequiresPrivate) > 0 {
		p.printf("Requires.private: %s\n", strings.Join(pc.RequiresPrivate, ", "))
	}
	return p.err
}
