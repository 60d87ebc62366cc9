package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "neur",
	Short: "A minimal static site generator",
	Long: `neur mirrors a source tree into an output tree: stylesheets are
cleaned up and reprinted, markup renders through the template engine,
documents render to HTML inside the nearest layout, and everything else
is copied byte for byte.`,
	// Default behavior: run build when no subcommand is given. We must
	// call loadConfig here because PreRunE of buildCmd is not triggered
	// when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runBuild(buildCmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().StringP("source", "s", "src", "Source directory")
	rootCmd.PersistentFlags().StringP("output", "o", "dist", "Output directory")
	rootCmd.PersistentFlags().BoolP("minify", "m", false, "Compact CSS and HTML output")
	rootCmd.PersistentFlags().Int("workers", 0, "Render concurrency (0 = one worker per CPU)")
	rootCmd.PersistentFlags().StringP("config", "c", "neur.toml", "Config file path")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
