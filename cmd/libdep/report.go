package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Print every module with its primary dependencies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "overview", func(ctx context.Context, s *session) (CLIResult, error) {
			lines := s.engine.Query(ctx).Overview()
			return CLIResult{Results: overview(lines), TotalCount: intPtr(len(lines))}, nil
		})
	},
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Group modules by level",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "levels", func(ctx context.Context, s *session) (CLIResult, error) {
			return CLIResult{Results: s.engine.Query(ctx).Levels()}, nil
		})
	},
}

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Group modules by weight",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "weights", func(ctx context.Context, s *session) (CLIResult, error) {
			return CLIResult{Results: s.engine.Query(ctx).Weights()}, nil
		})
	},
}

var primaryCmd = &cobra.Command{
	Use:   "primary <module>",
	Short: "Print the headers a module includes, grouped by owning module",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "primary", func(ctx context.Context, s *session) (CLIResult, error) {
			d, err := s.engine.Primary(ctx, args[0], s.engine.Policy())
			if err != nil {
				return CLIResult{}, err
			}
			return CLIResult{Results: d.Report(false)}, nil
		})
	},
}

var secondaryCmd = &cobra.Command{
	Use:   "secondary <module>",
	Short: "Print the modules a module reaches only transitively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "secondary", func(ctx context.Context, s *session) (CLIResult, error) {
			c, err := s.engine.Query(ctx).Secondary(args[0])
			if err != nil {
				return CLIResult{}, err
			}
			return CLIResult{Results: c}, nil
		})
	},
}

var reverseCmd = &cobra.Command{
	Use:   "reverse <module>",
	Short: "Print the files of other modules that include a module's headers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "reverse", func(ctx context.Context, s *session) (CLIResult, error) {
			r, err := s.engine.Query(ctx).ReverseDependencies(args[0])
			if err != nil {
				return CLIResult{}, err
			}
			return CLIResult{Results: r}, nil
		})
	},
}

var headerCmd = &cobra.Command{
	Use:   "header <header>",
	Short: "Print the files that include a header, grouped by module",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "header", func(ctx context.Context, s *session) (CLIResult, error) {
			r, err := s.engine.Query(ctx).HeaderInclusion(args[0])
			if err != nil {
				return CLIResult{}, err
			}
			return CLIResult{Results: r}, nil
		})
	},
}

var subsetCmd = &cobra.Command{
	Use:   "subset <module>",
	Short: "Print the shortest include chains from a module to each header it needs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "subset", func(ctx context.Context, s *session) (CLIResult, error) {
			r, err := s.engine.ModuleSubset(ctx, args[0])
			if err != nil {
				return CLIResult{}, err
			}
			return CLIResult{Results: r}, nil
		})
	},
}

var subsetForCmd = &cobra.Command{
	Use:   "subset-for <dir>",
	Short: "Print the subset report for the files of a directory outside the collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "subset-for", func(ctx context.Context, s *session) (CLIResult, error) {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return CLIResult{}, fmt.Errorf("resolving %s: %w", args[0], err)
			}
			info, err := os.Stat(dir)
			if err != nil {
				return CLIResult{}, err
			}
			if !info.IsDir() {
				return CLIResult{}, fmt.Errorf("%s: not a directory", args[0])
			}
			r, err := s.engine.DirectorySubset(ctx, filepath.Base(dir), os.DirFS(dir))
			if err != nil {
				return CLIResult{}, err
			}
			return CLIResult{Results: r}, nil
		})
	},
}
