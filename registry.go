package libdep

import (
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// UnknownModule is the bucket for include targets that carry the
// collection prefix but name no registered header. It is not a module and
// never appears in level or weight output.
const UnknownModule = "(unknown)"

// ModuleInfo describes one registered module.
type ModuleInfo struct {
	Name      string
	HasSource bool
	HasBuild  bool
	HasTests  bool
}

// Registry holds the header-to-module and module-to-headers tables of a
// collection. It is immutable once built.
type Registry struct {
	layout  Layout
	headers map[string]string
	owned   map[string][]string
	modules map[string]ModuleInfo
	names   []string
}

// NewRegistry builds a Registry from an explicit module-to-headers table.
// A header listed under two modules belongs to the first in sorted order.
func NewRegistry(layout Layout, owned map[string][]string) *Registry {
	r := newRegistry(layout)
	names := make([]string, 0, len(owned))
	for m := range owned {
		names = append(names, m)
	}
	sort.Strings(names)
	for _, m := range names {
		r.addModule(ModuleInfo{Name: m}, owned[m], nil)
	}
	r.finish()
	return r
}

func newRegistry(layout Layout) *Registry {
	return &Registry{
		layout:  layout.withDefaults(),
		headers: make(map[string]string),
		owned:   make(map[string][]string),
		modules: make(map[string]ModuleInfo),
	}
}

func (r *Registry) addModule(info ModuleInfo, headers []string, logger *log.Logger) {
	r.modules[info.Name] = info
	var kept []string
	for _, h := range headers {
		if owner, dup := r.headers[h]; dup {
			if logger != nil {
				logger.Warn("header registered twice", "header", h, "owner", owner, "module", info.Name)
			}
			continue
		}
		r.headers[h] = info.Name
		kept = append(kept, h)
	}
	sort.Strings(kept)
	r.owned[info.Name] = kept
}

func (r *Registry) finish() {
	r.names = make([]string, 0, len(r.modules))
	for m := range r.modules {
		r.names = append(r.names, m)
	}
	sort.Strings(r.names)
}

// BuildRegistry walks the module directories of the collection rooted at
// fsys. A module whose include tree cannot be read is logged and left out;
// it never aborts the walk. A header found under two modules belongs to the
// first in sorted order, whatever order the walk met them in.
func BuildRegistry(fsys fs.FS, layout Layout, logger *log.Logger) *Registry {
	if logger == nil {
		logger = discardLogger()
	}
	r := newRegistry(layout)
	b := registryBuilder{fsys: fsys, reg: r, logger: logger, found: make(map[string]foundModule)}
	b.scanSubmodules(r.layout.LibsDir)

	names := make([]string, 0, len(b.found))
	for m := range b.found {
		names = append(names, m)
	}
	sort.Strings(names)
	for _, m := range names {
		r.addModule(b.found[m].info, b.found[m].headers, logger)
	}
	r.finish()
	return r
}

type foundModule struct {
	info    ModuleInfo
	headers []string
}

type registryBuilder struct {
	fsys   fs.FS
	reg    *Registry
	logger *log.Logger
	found  map[string]foundModule
}

func (b *registryBuilder) scanSubmodules(dir string) {
	entries, err := fs.ReadDir(b.fsys, dir)
	if err != nil {
		b.logger.Warn("reading module directory", "dir", dir, "err", err)
		return
	}
	for _, e := range entries {
		p := path.Join(dir, e.Name())
		if !isDir(b.fsys, p, e) {
			continue
		}
		if exists(b.fsys, path.Join(p, "include")) {
			b.scanModuleHeaders(p)
		}
		if exists(b.fsys, path.Join(p, b.reg.layout.SublibsMarker)) {
			b.scanSubmodules(p)
		}
	}
}

func (b *registryBuilder) scanModuleHeaders(dir string) {
	module := NormalizeModule(strings.TrimPrefix(dir, b.reg.layout.LibsDir+"/"))
	include := path.Join(dir, "include")

	var headers []string
	err := fs.WalkDir(b.fsys, include, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		headers = append(headers, strings.TrimPrefix(p, include+"/"))
		return nil
	})
	if err != nil {
		b.logger.Warn("skipping module", "module", module, "err", err)
		return
	}

	info := ModuleInfo{
		Name:      module,
		HasSource: exists(b.fsys, path.Join(dir, "src")),
		HasBuild:  exists(b.fsys, path.Join(dir, "build")),
		HasTests:  exists(b.fsys, path.Join(dir, "test")),
	}
	b.found[module] = foundModule{info: info, headers: headers}
}

// Layout returns the layout the Registry was built with.
func (r *Registry) Layout() Layout { return r.layout }

// Modules returns every registered module name, sorted.
func (r *Registry) Modules() []string {
	return append([]string(nil), r.names...)
}

// HasModule reports whether module is registered.
func (r *Registry) HasModule(module string) bool {
	_, ok := r.modules[module]
	return ok
}

// Module returns the registered information for module.
func (r *Registry) Module(module string) (ModuleInfo, bool) {
	info, ok := r.modules[module]
	return info, ok
}

// Headers returns the headers owned by module, sorted.
func (r *Registry) Headers(module string) []string {
	return append([]string(nil), r.owned[module]...)
}

// ModuleOf returns the module owning header.
func (r *Registry) ModuleOf(header string) (string, bool) {
	m, ok := r.headers[header]
	return m, ok
}

// HasHeader reports whether header is owned by some module.
func (r *Registry) HasHeader(header string) bool {
	_, ok := r.headers[header]
	return ok
}

// Classify maps an include target to the module it belongs to. Registered
// headers resolve to their owner; unregistered targets under the reserved
// prefix resolve to UnknownModule; anything else is not part of the
// collection and reports false.
func (r *Registry) Classify(target string) (string, bool) {
	if m, ok := r.headers[target]; ok {
		return m, true
	}
	if strings.HasPrefix(target, r.layout.Prefix) {
		return UnknownModule, true
	}
	return "", false
}

// OwnerOf returns the module a scanned file belongs to. Headers resolve
// through the header table; source and test files, which are named by
// their root-relative path, resolve to the deepest module directory that
// contains them. It returns "" for files outside every module.
func (r *Registry) OwnerOf(file string) string {
	if m, ok := r.headers[file]; ok {
		return m
	}
	rest, ok := strings.CutPrefix(file, r.layout.LibsDir+"/")
	if !ok {
		return ""
	}
	dir := path.Dir(rest)
	for dir != "." && dir != "/" {
		if m := NormalizeModule(dir); r.HasModule(m) {
			return m
		}
		dir = path.Dir(dir)
	}
	return ""
}

// Buildable returns the modules that have both a build and a source
// directory, sorted.
func (r *Registry) Buildable() []string {
	var out []string
	for _, m := range r.names {
		if info := r.modules[m]; info.HasBuild && info.HasSource {
			out = append(out, m)
		}
	}
	return out
}

func exists(fsys fs.FS, name string) bool {
	_, err := fs.Stat(fsys, name)
	return err == nil
}

func isDir(fsys fs.FS, name string, e fs.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := fs.Stat(fsys, name)
	return err == nil && fi.IsDir()
}
