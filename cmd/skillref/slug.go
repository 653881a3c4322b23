package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jingkaihe/skillref/pkg/plugins"
	"github.com/jingkaihe/skillref/pkg/presenter"
	"github.com/jingkaihe/skillref/pkg/workspace"
	"github.com/spf13/cobra"
)

type slugOutput struct {
	Root     string `json:"root" yaml:"root"`
	Slug     string `json:"slug" yaml:"slug"`
	Declared bool   `json:"declared" yaml:"declared"`
}

var slugCmd = &cobra.Command{
	Use:   "slug [root]",
	Short: "Print the workspace slug derived from a root",
	Long: `Print the slug used to qualify workspace skills. The slug is the name
declared in <root>/.claude-plugin/plugin.json, else the last path segment of
root, else the fallback identifier.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := runtimeConfig.WorkspaceRoot
		if len(args) > 0 {
			root = args[0]
		}
		format, _ := cmd.Flags().GetString("format")

		if err := runSlug(root, runtimeConfig.FallbackID, format, os.Stdout); err != nil {
			presenter.Error(err, "Failed to derive workspace slug")
			os.Exit(1)
		}
	},
}

func init() {
	slugCmd.Flags().StringP("format", "f", presenter.FormatText, "Output format (text, json, yaml)")
	rootCmd.AddCommand(slugCmd)
}

func runSlug(root, fallback, format string, w io.Writer) error {
	_, declared := plugins.ReadPluginName(root)
	out := slugOutput{
		Root:     root,
		Slug:     workspace.ExtractSlug(root, fallback),
		Declared: declared,
	}

	if format == presenter.FormatText {
		_, err := fmt.Fprintln(w, out.Slug)
		return err
	}
	return presenter.NewWithOptions(w, io.Discard, presenter.ColorNever).Render(format, out)
}
