package runtime

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/risor-io/risor/object"

	"github.com/jward/libdep"
)

// stringList converts items to a Risor list of strings.
func stringList(items []string) *object.List {
	out := make([]object.Object, len(items))
	for i, s := range items {
		out[i] = object.NewString(s)
	}
	return object.NewList(out)
}

// stringArg checks that fn was called with exactly one string argument.
func stringArg(fn string, args []object.Object) (string, *object.Error) {
	if len(args) != 1 {
		return "", object.NewArgsError(fn, 1, len(args))
	}
	s, ok := args[0].(*object.String)
	if !ok {
		return "", object.Errorf("%s: argument must be a string, got %s", fn, args[0].Type())
	}
	return s.Value(), nil
}

// makeScanFn creates "scan", the lexical include scanner.
//
// scan(source) → []string
func makeScanFn() *object.Builtin {
	return object.NewBuiltin("scan", func(ctx context.Context, args ...object.Object) object.Object {
		src, errObj := stringArg("scan", args)
		if errObj != nil {
			return errObj
		}
		return stringList(libdep.ScanIncludes([]byte(src)))
	})
}

// modules() → []string
func makeModulesFn(q *libdep.QueryBuilder) *object.Builtin {
	return object.NewBuiltin("modules", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 0 {
			return object.NewArgsError("modules", 0, len(args))
		}
		return stringList(q.Modules())
	})
}

// buildable() → []string
func makeBuildableFn(q *libdep.QueryBuilder) *object.Builtin {
	return object.NewBuiltin("buildable", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 0 {
			return object.NewArgsError("buildable", 0, len(args))
		}
		return stringList(q.Registry().Buildable())
	})
}

// headers(module) → []string
func makeHeadersFn(q *libdep.QueryBuilder) *object.Builtin {
	return object.NewBuiltin("headers", func(ctx context.Context, args ...object.Object) object.Object {
		m, errObj := stringArg("headers", args)
		if errObj != nil {
			return errObj
		}
		m = libdep.NormalizeModule(m)
		if !q.Registry().HasModule(m) {
			return object.Errorf("headers: %v: %q", libdep.ErrUnknownModule, m)
		}
		return stringList(q.Registry().Headers(m))
	})
}

// makeModuleListFn wraps a module → modules query.
//
// name(module) → []string
func makeModuleListFn(name string, fn func(string) ([]string, error)) *object.Builtin {
	return object.NewBuiltin(name, func(ctx context.Context, args ...object.Object) object.Object {
		m, errObj := stringArg(name, args)
		if errObj != nil {
			return errObj
		}
		out, err := fn(m)
		if err != nil {
			return object.Errorf("%s: %v", name, err)
		}
		return stringList(out)
	})
}

// makeHeaderListFn wraps a header → files relation. Unknown names yield
// an empty list.
//
// name(header) → []string
func makeHeaderListFn(name string, fn func(string) []string) *object.Builtin {
	return object.NewBuiltin(name, func(ctx context.Context, args ...object.Object) object.Object {
		h, errObj := stringArg(name, args)
		if errObj != nil {
			return errObj
		}
		return stringList(fn(h))
	})
}

// secondary(module) → []string, the modules reached only transitively.
func makeSecondaryFn(q *libdep.QueryBuilder) *object.Builtin {
	return object.NewBuiltin("secondary", func(ctx context.Context, args ...object.Object) object.Object {
		m, errObj := stringArg("secondary", args)
		if errObj != nil {
			return errObj
		}
		c, err := q.Secondary(m)
		if err != nil {
			return object.Errorf("secondary: %v", err)
		}
		return stringList(c.Additions())
	})
}

// reachable(module) → []string, every module reached directly or not.
func makeReachableFn(q *libdep.QueryBuilder) *object.Builtin {
	return object.NewBuiltin("reachable", func(ctx context.Context, args ...object.Object) object.Object {
		m, errObj := stringArg("reachable", args)
		if errObj != nil {
			return errObj
		}
		c, err := q.Secondary(m)
		if err != nil {
			return object.Errorf("reachable: %v", err)
		}
		return stringList(c.Reachable())
	})
}

// level(module) → int, or nil when undetermined.
func makeLevelFn(q *libdep.QueryBuilder) *object.Builtin {
	return object.NewBuiltin("level", func(ctx context.Context, args ...object.Object) object.Object {
		m, errObj := stringArg("level", args)
		if errObj != nil {
			return errObj
		}
		l, err := q.Level(m)
		if err != nil {
			return object.Errorf("level: %v", err)
		}
		if libdep.IsUndetermined(l) {
			return object.Nil
		}
		return object.NewInt(int64(l))
	})
}

// weight(module) → int
func makeWeightFn(q *libdep.QueryBuilder) *object.Builtin {
	return object.NewBuiltin("weight", func(ctx context.Context, args ...object.Object) object.Object {
		m, errObj := stringArg("weight", args)
		if errObj != nil {
			return errObj
		}
		w, err := q.Weight(m)
		if err != nil {
			return object.Errorf("weight: %v", err)
		}
		return object.NewInt(int64(w))
	})
}

// module_of(header) → string, or nil for a header no module owns.
func makeModuleOfFn(q *libdep.QueryBuilder) *object.Builtin {
	return object.NewBuiltin("module_of", func(ctx context.Context, args ...object.Object) object.Object {
		h, errObj := stringArg("module_of", args)
		if errObj != nil {
			return errObj
		}
		m, ok := q.Registry().ModuleOf(h)
		if !ok {
			return object.Nil
		}
		return object.NewString(m)
	})
}

// cycles() → [][]string
func makeCyclesFn(q *libdep.QueryBuilder) *object.Builtin {
	return object.NewBuiltin("cycles", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 0 {
			return object.NewArgsError("cycles", 0, len(args))
		}
		sccs := q.Cycles()
		out := make([]object.Object, len(sccs))
		for i, scc := range sccs {
			out[i] = stringList(scc)
		}
		return object.NewList(out)
	})
}

// logObject provides log.Debug/Info/Warn/Error methods for Risor scripts.
type logObject struct {
	logger *log.Logger
}

func (l *logObject) Debug(msg string) { l.logger.Debug(msg) }
func (l *logObject) Info(msg string)  { l.logger.Info(msg) }
func (l *logObject) Warn(msg string)  { l.logger.Warn(msg) }
func (l *logObject) Error(msg string) { l.logger.Error(msg) }
