package main

import "github.com/jward/libdep"

// CLIResult is the top-level JSON envelope for all commands.
type CLIResult struct {
	Command    string `json:"command"`
	Results    any    `json:"results"`
	TotalCount *int   `json:"total_count,omitempty"`
	Error      string `json:"error,omitempty"`
}

// moduleList is a plain list of module names.
type moduleList []string

// dependencyList is the list-dependencies result: one line per module.
type dependencyList []libdep.ModuleDependencies

// overview is the overview report. It carries the same data as
// dependencyList but renders as a report.
type overview []libdep.ModuleDependencies

// reportList holds the reports produced by bare module and header
// arguments, in argument order.
type reportList []any

// CLIScriptResult is the value returned by a script.
type CLIScriptResult struct {
	Script string `json:"script"`
	Value  string `json:"value"`
}

func intPtr(n int) *int { return &n }
