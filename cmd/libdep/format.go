package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jward/libdep"
	"github.com/jward/libdep/internal/render"
)

// outputResult writes a CLIResult to the command's output in the selected
// format. JSON wraps the result in the envelope; text and html render it.
func outputResult(cmd *cobra.Command, s *session, result CLIResult) error {
	w := cmd.OutOrStdout()
	if flagFormat == render.FormatText || flagFormat == render.FormatHTML {
		return outputResultRendered(w, s, result)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate it to Cobra. In JSON mode the error is written to stdout as a
// CLIResult envelope. Otherwise it goes to stderr.
func outputError(cmd *cobra.Command, command string, err error) error {
	errorHandled = true
	if flagFormat != "json" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err)
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	_ = enc.Encode(CLIResult{Command: command, Error: err.Error()})
	return err
}

// page returns the HTML page settings of the session's configuration.
func (s *session) page() render.Page {
	h := s.cfg.HTML
	return render.Page{Title: h.Title, Footer: h.Footer, Stylesheet: h.Stylesheet, Prefix: h.Prefix}
}

// outputResultRendered dispatches to the list writers or to a Renderer
// based on the result type. List-shaped results have a text form only.
func outputResultRendered(w io.Writer, s *session, result CLIResult) error {
	if write, ok := textWriter(w, result.Results); ok {
		if flagFormat == render.FormatHTML {
			return fmt.Errorf("%s: html output is not supported", result.Command)
		}
		return write()
	}

	r, err := render.New(flagFormat, w, s.page())
	if err != nil {
		return err
	}
	if err := renderReport(r, result.Results); err != nil {
		return err
	}
	return r.Close()
}

// textWriter returns the plain-text writer for list-shaped results.
func textWriter(w io.Writer, v any) (func() error, bool) {
	switch v := v.(type) {
	case moduleList:
		return func() error { return render.WriteModules(w, v) }, true
	case dependencyList:
		return func() error { return render.WriteDependencies(w, v) }, true
	case []libdep.ExceptionGroup:
		return func() error { return render.WriteExceptions(w, v) }, true
	case []libdep.MissingHeaders:
		return func() error { return render.WriteMissingHeaders(w, v) }, true
	case *libdep.TestReport:
		return func() error { return render.WriteTestReport(w, v) }, true
	case *libdep.BuildDeclarations:
		return func() error { return render.WriteBuildDeclarations(w, v) }, true
	case *libdep.PkgConfig:
		return func() error { return render.WritePkgConfig(w, v) }, true
	case *libdep.IndexStats:
		return func() error { return formatIndexStatsText(w, v) }, true
	case CLIScriptResult:
		return func() error { return formatScriptText(w, v) }, true
	}
	return nil, false
}

// renderReport sends one report, or each report of a reportList, to r.
func renderReport(r render.Renderer, v any) error {
	switch v := v.(type) {
	case *libdep.PrimaryReport:
		r.Primary(v)
	case *libdep.ReverseReport:
		r.Reverse(v)
	case *libdep.Closure:
		r.Secondary(v)
	case *libdep.HeaderReport:
		r.Header(v)
	case *libdep.SubsetReport:
		r.Subset(v)
	case *libdep.LevelReport:
		r.Levels(v)
	case *libdep.WeightReport:
		r.Weights(v)
	case overview:
		r.Overview(v)
	case reportList:
		for _, item := range v {
			if err := renderReport(r, item); err != nil {
				return err
			}
		}
	case nil:
	default:
		return fmt.Errorf("unsupported result type for %s format: %T", flagFormat, v)
	}
	return nil
}

// formatIndexStatsText formats IndexStats as aligned columns.
func formatIndexStatsText(w io.Writer, st *libdep.IndexStats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODULES\tHEADERS\tEDGES\tCACHED FILES")
	fmt.Fprintf(tw, "%d\t%d\t%d\t%d\n", st.Modules, st.Headers, st.Edges, st.CachedFiles)
	return tw.Flush()
}

func formatScriptText(w io.Writer, r CLIScriptResult) error {
	if r.Value == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, r.Value)
	return err
}

// validFormats lists accepted values for --format.
var validFormats = []string{render.FormatText, render.FormatHTML, "json"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, ", "))
}
