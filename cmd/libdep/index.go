package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jward/libdep/internal/runtime"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Scan the collection, filling the scan cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "index", func(ctx context.Context, s *session) (CLIResult, error) {
			s.logger.Debug("indexing", "root", s.engine.Root())
			stats, err := s.engine.Index(ctx)
			if err != nil {
				return CLIResult{}, err
			}
			return CLIResult{Results: stats}, nil
		})
	},
}

var scriptCmd = &cobra.Command{
	Use:   "script <file>",
	Short: "Run a Risor script against the dependency graph",
	Long: "Runs a Risor script with the graph bound to host functions such as\n" +
		"modules(), primary(m), secondary(m), level(m) and weight(m).\n" +
		"Relative imports resolve against the script's directory.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "script", func(ctx context.Context, s *session) (CLIResult, error) {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return CLIResult{}, fmt.Errorf("resolving %s: %w", args[0], err)
			}
			rt := runtime.NewRuntime(s.engine.Query(ctx), filepath.Dir(path),
				runtime.WithRuntimeLogger(s.logger))
			v, err := rt.RunScript(ctx, path, nil)
			if err != nil {
				return CLIResult{}, err
			}
			out := CLIScriptResult{Script: args[0]}
			if v != nil {
				out.Value = v.Inspect()
			}
			return CLIResult{Results: out}, nil
		})
	},
}
