package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsdfat8/kitcheck/internal/kitfile"
	"github.com/hsdfat8/kitcheck/internal/observability"
	"github.com/hsdfat8/kitcheck/pkg/repository"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func newRootCommand() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "kitctl",
		Short:         "Camera kit compatibility checks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetLevel(logLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newSuggestCommand())
	rootCmd.AddCommand(newAdaptersCommand())

	return rootCmd
}

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported format %q (use %s or %s)", format, formatTable, formatJSON)
	}
}

// loadRegistry returns the built-in adapter table, extended by path when set
func loadRegistry(path string) (*repository.InMemoryAdapterRegistry, error) {
	registry := repository.NewDefaultAdapterRegistry()
	if path == "" {
		return registry, nil
	}
	adapters, err := kitfile.LoadAdapters(path)
	if err != nil {
		return nil, err
	}
	for _, a := range adapters {
		if err := registry.Add(a); err != nil {
			return nil, fmt.Errorf("%s: adapter %s %s: %w", path, a.Brand, a.Model, err)
		}
	}
	return registry, nil
}
