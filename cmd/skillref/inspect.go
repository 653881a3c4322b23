package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jingkaihe/skillref/pkg/plugins"
	"github.com/jingkaihe/skillref/pkg/presenter"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [root]",
	Short: "Show the plugin manifest of a root",
	Long: `Show the plugin manifest (<root>/.claude-plugin/plugin.json) of a root,
defaulting to the workspace root. Unlike slug, a missing or malformed manifest
is reported as an error.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := runtimeConfig.WorkspaceRoot
		if len(args) > 0 {
			root = args[0]
		}
		format, _ := cmd.Flags().GetString("format")

		if err := runInspect(root, format, os.Stdout); err != nil {
			presenter.Error(err, "Failed to inspect plugin manifest")
			os.Exit(1)
		}
	},
}

func init() {
	inspectCmd.Flags().StringP("format", "f", presenter.FormatText, "Output format (text, json, yaml)")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(root, format string, w io.Writer) error {
	manifest, err := plugins.ReadManifest(root)
	if err != nil {
		return err
	}

	if format != presenter.FormatText {
		return presenter.NewWithOptions(w, io.Discard, presenter.ColorNever).Render(format, manifest)
	}

	fmt.Fprintf(w, "Name:        %s\n", manifest.Name)
	if manifest.Version != "" {
		fmt.Fprintf(w, "Version:     %s\n", manifest.Version)
	}
	if manifest.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", manifest.Description)
	}
	_, err = fmt.Fprintf(w, "Manifest:    %s\n", manifest.Path)
	return err
}
