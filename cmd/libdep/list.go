package main

import (
	"context"

	"github.com/spf13/cobra"
)

var listModulesCmd = &cobra.Command{
	Use:   "list-modules",
	Short: "List every module of the collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "list-modules", func(_ context.Context, s *session) (CLIResult, error) {
			mods := s.engine.Registry().Modules()
			return CLIResult{Results: moduleList(mods), TotalCount: intPtr(len(mods))}, nil
		})
	},
}

var listBuildableCmd = &cobra.Command{
	Use:   "list-buildable",
	Short: "List the modules that have both build and source directories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "list-buildable", func(_ context.Context, s *session) (CLIResult, error) {
			mods := s.engine.Registry().Buildable()
			return CLIResult{Results: moduleList(mods), TotalCount: intPtr(len(mods))}, nil
		})
	},
}

var listDependenciesCmd = &cobra.Command{
	Use:   "list-dependencies",
	Short: "List the primary dependencies of every module, one line each",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "list-dependencies", func(ctx context.Context, s *session) (CLIResult, error) {
			lines := s.engine.Query(ctx).Overview()
			return CLIResult{Results: dependencyList(lines), TotalCount: intPtr(len(lines))}, nil
		})
	},
}

var listExceptionsCmd = &cobra.Command{
	Use:   "list-exceptions",
	Short: "List headers that live outside their module's directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "list-exceptions", func(ctx context.Context, s *session) (CLIResult, error) {
			groups := s.engine.Query(ctx).Exceptions()
			return CLIResult{Results: groups, TotalCount: intPtr(len(groups))}, nil
		})
	},
}

var listMissingHeadersCmd = &cobra.Command{
	Use:   "list-missing-headers",
	Short: "List references to headers that no module provides",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "list-missing-headers", func(ctx context.Context, s *session) (CLIResult, error) {
			missing := s.engine.MissingHeaders(ctx)
			return CLIResult{Results: missing, TotalCount: intPtr(len(missing))}, nil
		})
	},
}
