package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jward/libdep"
	"github.com/jward/libdep/internal/config"
	"github.com/jward/libdep/internal/cparse"
)

var (
	flagConfig string
	flagFormat string
)

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status: 2 when the collection
// root could not be found, 1 otherwise.
func exitCode(err error) int {
	if errors.Is(err, libdep.ErrRootNotFound) {
		return 2
	}
	return 1
}

var rootCmd = &cobra.Command{
	Use:   "libdep [module|header]...",
	Short: "Report include dependencies between the modules of a C++ library collection",
	Long: "libdep scans the headers of every module under libs/ and reports primary, secondary and\n" +
		"reverse dependencies, module levels and weights, and build metadata.\n" +
		"Bare arguments print the primary report of a module or the inclusion report of a header.",
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
	RunE: runDefault,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default: ./.libdep.yaml if present)")
	pf.StringVar(&flagFormat, "format", "text", "output format: text|html|json")
	pf.String("root", "", "directory to start the search for the collection root (default: cwd)")
	pf.Bool("track-sources", false, "scan src/ trees in addition to include trees")
	pf.Bool("track-tests", false, "scan test/ trees in addition to include trees")
	pf.String("extractor", "", "include extractor: lexical|tree-sitter")
	pf.String("cache", "", "scan cache database path, relative to the root (empty disables)")
	pf.Int("jobs", 1, "modules scanned at once; 0 uses one per CPU")
	pf.String("log-level", "", "log level: debug|info|warn|error")
	pf.String("html-title", "", "HTML page title")
	pf.String("html-footer", "", "HTML page footer")
	pf.String("html-stylesheet", "", "HTML stylesheet URL")
	pf.String("html-prefix", "", "HTML emitted at the top of the page body")

	rootCmd.AddCommand(listModulesCmd, listBuildableCmd, listDependenciesCmd, listExceptionsCmd, listMissingHeadersCmd)
	rootCmd.AddCommand(overviewCmd, levelsCmd, weightsCmd)
	rootCmd.AddCommand(primaryCmd, secondaryCmd, reverseCmd, subsetCmd, subsetForCmd, headerCmd)
	rootCmd.AddCommand(testCmd, cmakeCmd, pkgconfigCmd)
	rootCmd.AddCommand(indexCmd, scriptCmd)
}

// session is an open collection with the configuration it was opened with.
type session struct {
	cfg    *config.Config
	engine *libdep.Engine
	logger *log.Logger
}

func (s *session) Close() error { return s.engine.Close() }

// openSession loads configuration, locates the collection root and opens
// an Engine over it.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(flagConfig, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "libdep"})
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(lvl)
	}
	for _, w := range cfg.Validate() {
		logger.Warn(w)
	}

	start := cfg.Root
	if start == "" {
		if start, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("getting cwd: %w", err)
		}
	}
	layout := cfg.Layout.Layout()
	root, err := libdep.FindRoot(start, layout.RootMarker)
	if err != nil {
		return nil, err
	}

	opts := []libdep.Option{
		libdep.WithLayout(layout),
		libdep.WithPolicy(cfg.Policy()),
		libdep.WithLogger(logger),
		libdep.WithWorkers(cfg.Jobs),
	}
	if cfg.Extractor == config.ExtractorTreeSitter {
		opts = append(opts, libdep.WithExtractor(cparse.New()))
	}
	if cfg.Cache != "" {
		opts = append(opts, libdep.WithCache(resolveCachePath(root, cfg.Cache)))
	}

	e, err := libdep.Open(root, opts...)
	if err != nil {
		return nil, fmt.Errorf("opening collection: %w", err)
	}
	logger.Debug("collection opened", "root", root, "modules", len(e.Registry().Modules()))
	return &session{cfg: cfg, engine: e, logger: logger}, nil
}

// resolveCachePath makes a relative cache path relative to the root and
// creates its parent directory.
func resolveCachePath(root, path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	return path
}

// withSession opens a session for the duration of fn. Failures from either
// step are reported under command.
func withSession(cmd *cobra.Command, command string, fn func(ctx context.Context, s *session) (CLIResult, error)) error {
	s, err := openSession(cmd)
	if err != nil {
		return outputError(cmd, command, err)
	}
	defer s.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := fn(ctx, s)
	if err != nil {
		return outputError(cmd, command, err)
	}
	result.Command = command
	if err := outputResult(cmd, s, result); err != nil {
		return outputError(cmd, command, err)
	}
	return nil
}

// runDefault treats each argument as a module, printing its primary
// report, or as a header, printing its inclusion report.
func runDefault(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	return withSession(cmd, "libdep", func(ctx context.Context, s *session) (CLIResult, error) {
		reg := s.engine.Registry()
		var reports reportList
		for _, arg := range args {
			switch {
			case reg.HasModule(libdep.NormalizeModule(arg)):
				d, err := s.engine.Primary(ctx, arg, s.engine.Policy())
				if err != nil {
					return CLIResult{}, err
				}
				reports = append(reports, d.Report(false))
			case reg.HasHeader(arg):
				rep, err := s.engine.Query(ctx).HeaderInclusion(arg)
				if err != nil {
					return CLIResult{}, err
				}
				reports = append(reports, rep)
			default:
				return CLIResult{}, fmt.Errorf("'%s': not an option, module or header", arg)
			}
		}
		return CLIResult{Results: reports}, nil
	})
}
