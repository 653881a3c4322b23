package main

import (
	"io"
	"os"

	"github.com/jingkaihe/skillref/pkg/presenter"
	"github.com/jingkaihe/skillref/pkg/skills"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of a skill tool input",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		format, _ := cmd.Flags().GetString("format")
		if err := runSchema(format, os.Stdout); err != nil {
			presenter.Error(err, "Failed to render schema")
			os.Exit(1)
		}
	},
}

func init() {
	schemaCmd.Flags().StringP("format", "f", presenter.FormatJSON, "Output format (json, yaml)")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(format string, w io.Writer) error {
	return presenter.NewWithOptions(w, io.Discard, presenter.ColorNever).Render(format, skills.InputSchema())
}
