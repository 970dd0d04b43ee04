package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

// tracer traces with key 'tinyq.cmd'.
func tracer() tracing.Trace {
	return tracing.Select("tinyq.cmd")
}

type rootOptions struct {
	trace string
}

var traceLevels = []string{"Error", "Info", "Debug"}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "tinyq",
		Short: "Query HTML documents and render templates",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupTracing(opts.trace)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.trace, "trace", "Error", "trace level (Error|Info|Debug)")
	cmd.AddCommand(newQueryCommand())
	cmd.AddCommand(newRenderCommand())
	cmd.AddCommand(newExpandCommand())
	return cmd
}

// setupTracing installs a Go logger based tracer for all trace keys.
func setupTracing(level string) error {
	valid := false
	for _, l := range traceLevels {
		if strings.EqualFold(l, level) {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("invalid trace level %q: must be one of %v", level, traceLevels)
	}
	t := gologadapter.New()
	t.SetOutput(os.Stderr)
	t.SetTraceLevel(tracing.TraceLevelFromString(level))
	tracing.SetTraceSelector(tracing.SelectorForAdapter(func() tracing.Trace { return t }))
	return nil
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", path, err)
	}
	return string(b), nil
}
