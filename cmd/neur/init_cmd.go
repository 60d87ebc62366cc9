package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default neur.toml config file",
	Long: `Create a neur.toml configuration file in the current directory with
sensible defaults. With --scaffold, also create a starter source tree
containing a layout, an index document, and a stylesheet.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		scaffold, _ := cmd.Flags().GetBool("scaffold")

		if _, err := os.Stat("neur.toml"); err == nil && !force {
			return fmt.Errorf("neur.toml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile("neur.toml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}
		fmt.Println("Created neur.toml")

		if scaffold {
			if err := writeScaffold("src", force); err != nil {
				return err
			}
		}
		return nil
	},
}

const defaultConfig = `# neur configuration

# Directory layout
source = "src"
output = "dist"

# Compact CSS and HTML output
minify = false

# Render concurrency (0 = one worker per CPU)
workers = 0
`

const scaffoldLayout = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.title}}</title>
  <link rel="stylesheet" href="/style.css">
</head>
<body>
  <main>{{.content}}</main>
</body>
</html>
`

const scaffoldIndex = `---
title: Home
---

# Welcome

Edit ` + "`src/index.md`" + ` and run ` + "`neur`" + ` to regenerate the site.
`

const scaffoldStyles = `body {
  font-family: system-ui, sans-serif;
  max-width: 42rem;
  margin: 0 auto;
  padding: 1rem;
}
`

func writeScaffold(sourceDir string, force bool) error {
	if err := os.MkdirAll(sourceDir, 0755); err != nil {
		return fmt.Errorf("creating source directory: %w", err)
	}

	files := []struct {
		name    string
		content string
	}{
		{"_template.html", scaffoldLayout},
		{"index.md", scaffoldIndex},
		{"style.css", scaffoldStyles},
	}
	for _, f := range files {
		path := filepath.Join(sourceDir, f.name)
		if _, err := os.Stat(path); err == nil && !force {
			fmt.Printf("Skipped %s (already exists)\n", path)
			continue
		}
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("Created %s\n", path)
	}
	return nil
}

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing files")
	initCmd.Flags().Bool("scaffold", false, "Also create a starter source tree")
}
