package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/jingkaihe/skillref/pkg/presenter"
	"github.com/jingkaihe/skillref/pkg/skills"
	"github.com/spf13/cobra"
)

type ListConfig struct {
	Match  string
	Format string
}

func NewListConfig() *ListConfig {
	return &ListConfig{
		Match:  "",
		Format: presenter.FormatText,
	}
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the skills visible from both tiers",
	Long: `List every skill found in the project and workspace tiers with its
qualified name. A project skill hides a workspace skill of the same name.

Examples:
  skillref list -w ~/ws -p .
  skillref list --match 'git-*' --format json`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getListConfigFromFlags(cmd)
		resolver := newResolver(cmd.Context())

		if err := runList(resolver, config, os.Stdout); err != nil {
			presenter.Error(err, "Failed to list skills")
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewListConfig()
	listCmd.Flags().StringP("match", "m", defaults.Match, "Only list skills whose name matches this glob")
	listCmd.Flags().StringP("format", "f", defaults.Format, "Output format (text, json, yaml)")
	rootCmd.AddCommand(listCmd)
}

func getListConfigFromFlags(cmd *cobra.Command) *ListConfig {
	config := NewListConfig()
	if match, err := cmd.Flags().GetString("match"); err == nil {
		config.Match = match
	}
	if format, err := cmd.Flags().GetString("format"); err == nil {
		config.Format = format
	}
	return config
}

func runList(r *skills.Resolver, config *ListConfig, w io.Writer) error {
	found, err := r.ListSkills(config.Match)
	if err != nil {
		return err
	}

	if config.Format != presenter.FormatText {
		if found == nil {
			found = []skills.Skill{}
		}
		return presenter.NewWithOptions(w, io.Discard, presenter.ColorNever).Render(config.Format, found)
	}

	if len(found) == 0 {
		presenter.Info("No skills found")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "QUALIFIED NAME\tTIER\tDIRECTORY")
	for _, skill := range found {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", skill.QualifiedName, skill.Tier, skill.Directory)
	}
	return tw.Flush()
}
