package libdep

import (
	"path"
	"strings"
)

// Layout describes where a collection keeps its modules and how its
// headers are named.
type Layout struct {
	// LibsDir is the directory, relative to the collection root, that holds
	// one directory per module.
	LibsDir string
	// SublibsMarker is the name of the subdirectory whose presence marks a
	// module directory as containing nested modules.
	SublibsMarker string
	// RootMarker is the file that identifies the collection root.
	RootMarker string
	// Prefix is the reserved include root. Include targets that start with
	// it but match no registered header are filed under UnknownModule.
	Prefix string
	// PackagePrefix names build and package metadata, as in
	// "<prefix>_<module>" and "<prefix>::<module>".
	PackagePrefix string
	// DisplayName and HomeURL fill the descriptive fields of package
	// metadata.
	DisplayName string
	HomeURL     string
}

// DefaultLayout returns the layout of a Boost-style collection.
func DefaultLayout() Layout {
	return Layout{
		LibsDir:       "libs",
		SublibsMarker: "sublibs",
		RootMarker:    "Jamroot",
		Prefix:        "boost/",
		PackagePrefix: "boost",
		DisplayName:   "Boost",
		HomeURL:       "http://www.boost.org/libs/",
	}
}

// withDefaults fills empty fields from DefaultLayout.
func (l Layout) withDefaults() Layout {
	d := DefaultLayout()
	if l.LibsDir == "" {
		l.LibsDir = d.LibsDir
	}
	if l.SublibsMarker == "" {
		l.SublibsMarker = d.SublibsMarker
	}
	if l.RootMarker == "" {
		l.RootMarker = d.RootMarker
	}
	if l.Prefix == "" {
		l.Prefix = d.Prefix
	}
	if l.PackagePrefix == "" {
		l.PackagePrefix = d.PackagePrefix
	}
	if l.DisplayName == "" {
		l.DisplayName = d.DisplayName
	}
	if l.HomeURL == "" {
		l.HomeURL = d.HomeURL
	}
	return l
}

// NormalizeModule converts a module path such as "numeric/conversion" into
// the module name "numeric~conversion". Names already in module form are
// returned unchanged.
func NormalizeModule(name string) string {
	return strings.ReplaceAll(strings.Trim(name, "/"), "/", "~")
}

// ModulePath is the inverse of NormalizeModule.
func ModulePath(module string) string {
	return strings.ReplaceAll(module, "~", "/")
}

// ModuleDir returns the directory of module relative to the collection root.
func (l Layout) ModuleDir(module string) string {
	return path.Join(l.LibsDir, ModulePath(module))
}

func (l Layout) IncludeDir(module string) string { return path.Join(l.ModuleDir(module), "include") }
func (l Layout) SourceDir(module string) string  { return path.Join(l.ModuleDir(module), "src") }
func (l Layout) TestDir(module string) string    { return path.Join(l.ModuleDir(module), "test") }
func (l Layout) BuildDir(module string) string   { return path.Join(l.ModuleDir(module), "build") }

// PackageName returns the package metadata name of module, e.g. "boost_numeric_conversion".
func (l Layout) PackageName(module string) string {
	return l.PackagePrefix + "_" + strings.ReplaceAll(module, "~", "_")
}

// TargetName returns the build target of module, e.g. "boost::numeric_conversion".
func (l Layout) TargetName(module string) string {
	return l.PackagePrefix + "::" + strings.ReplaceAll(module, "~", "_")
}
