package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neurhq/neur"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the source tree without writing output",
	Long: `Parse every stylesheet, template, and document in the source tree
and report problems without generating the site. Unlike build, check does
not stop at the first failure; it collects every issue it finds. The exit
code is 1 when any error-severity issue is reported.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("output-format", "", "Output format: issues, json")
}

func runCheck(_ *cobra.Command, _ []string) error {
	quiet := getBoolWithFallback("quiet", false)
	setupLogging(getBoolWithFallback("verbose", false), quiet)

	config := buildConfig()
	if err := config.Validate(); err != nil {
		return fmt.Errorf("while loading the configuration: %w", err)
	}

	result, err := neur.Check(config)
	if err != nil {
		return fmt.Errorf("while checking the site: %w", err)
	}

	if !quiet {
		format := neur.DetermineOutputFormat(k.String("output-format"))
		useColors := neur.ShouldUseColors(getBoolWithFallback("color", false))
		if err := neur.WriteOutput(os.Stdout, result, format, useColors); err != nil {
			return fmt.Errorf("writing check results: %w", err)
		}
	}

	if result.ErrorCount > 0 {
		os.Exit(1)
	}
	return nil
}
