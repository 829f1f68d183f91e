package main

import (
	"context"

	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test <module>",
	Short: "Print the modules a module's tests need",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "test", func(ctx context.Context, s *session) (CLIResult, error) {
			r, err := s.engine.TestDependencies(ctx, args[0])
			if err != nil {
				return CLIResult{}, err
			}
			return CLIResult{Results: r}, nil
		})
	},
}

var cmakeCmd = &cobra.Command{
	Use:   "cmake <module>",
	Short: "Print build-system link declarations for a module",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "cmake", func(ctx context.Context, s *session) (CLIResult, error) {
			r, err := s.engine.BuildDeclarations(ctx, args[0])
			if err != nil {
				return CLIResult{}, err
			}
			return CLIResult{Results: r}, nil
		})
	},
}

var pkgconfigCmd = &cobra.Command{
	Use:   "pkgconfig <module> <version> [var=value...]",
	Short: "Print a pkg-config file for a module",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, "pkgconfig", func(ctx context.Context, s *session) (CLIResult, error) {
			r, err := s.engine.PkgConfig(ctx, args[0], args[1], args[2:])
			if err != nil {
				return CLIResult{}, err
			}
			return CLIResult{Results: r}, nil
		})
	},
}
