package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/neurhq/neur"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the site from the source tree",
	Long: `Walk the source directory and write the generated site into the
output directory. Stylesheets are reprinted, markup files render through
the template engine, documents render to HTML inside the nearest layout,
and every other file is copied unchanged.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func runBuild(_ *cobra.Command, _ []string) error {
	quiet := getBoolWithFallback("quiet", false)
	setupLogging(getBoolWithFallback("verbose", false), quiet)

	config := buildConfig()
	if err := config.Validate(); err != nil {
		return fmt.Errorf("while loading the configuration: %w", err)
	}

	result, err := neur.BuildWithLogger(config, slog.Default())
	if err != nil {
		return fmt.Errorf("while generating the site: %w", err)
	}

	if !quiet {
		printBuildSummary(config, result)
	}
	return nil
}

func printBuildSummary(config neur.Config, result *neur.Result) {
	useColors := neur.ShouldUseColors(getBoolWithFallback("color", false))
	fmt.Printf("%s %s -> %s\n",
		neur.RenderStyle(neur.StyleSuccess, "site generated:", useColors),
		config.Source, config.Output)
	fmt.Printf("  Pages rendered:        %d\n", result.Pages)
	fmt.Printf("  Documents rendered:    %d\n", result.Documents)
	fmt.Printf("  Stylesheets rewritten: %d\n", result.Stylesheets)
	fmt.Printf("  Files copied:          %d\n", result.Copied)
	if result.Skipped > 0 {
		fmt.Printf("  Files ignored:         %d\n", result.Skipped)
	}
}

// setupLogging configures the process-wide logger. The pipeline logs
// through slog, so verbosity here controls how chatty a build is.
func setupLogging(verbose, quiet bool) {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
