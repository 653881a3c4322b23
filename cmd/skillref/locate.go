package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jingkaihe/skillref/pkg/presenter"
	"github.com/jingkaihe/skillref/pkg/skills"
	"github.com/spf13/cobra"
)

type locateOutput struct {
	Name      string      `json:"name" yaml:"name"`
	Tier      skills.Tier `json:"tier" yaml:"tier"`
	Directory string      `json:"directory,omitempty" yaml:"directory,omitempty"`
}

var locateCmd = &cobra.Command{
	Use:   "locate <skill>",
	Short: "Show which tier provides a skill",
	Long: `Show the tier and directory a skill name resolves to. The project tier
wins when both tiers provide the skill. A qualified reference is located by
its name part.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		resolver := newResolver(cmd.Context())

		if err := runLocate(resolver, args[0], format, os.Stdout); err != nil {
			presenter.Error(err, "Failed to locate skill")
			os.Exit(1)
		}
	},
}

func init() {
	locateCmd.Flags().StringP("format", "f", presenter.FormatText, "Output format (text, json, yaml)")
	rootCmd.AddCommand(locateCmd)
}

func locateSkill(r *skills.Resolver, skill string) locateOutput {
	out := locateOutput{Name: skill, Tier: skills.TierNone}

	ref, ok := skills.ParseReference(skill)
	if !ok {
		return out
	}
	out.Name = ref.Name

	if source, found := skills.Locate(ref.Name, r.Sources()); found {
		out.Tier = source.Tier
		out.Directory = source.SkillDir(ref.Name)
	}
	return out
}

func runLocate(r *skills.Resolver, skill, format string, w io.Writer) error {
	out := locateSkill(r, skill)
	if format != presenter.FormatText {
		return presenter.NewWithOptions(w, io.Discard, presenter.ColorNever).Render(format, out)
	}

	if out.Tier == skills.TierNone {
		_, err := fmt.Fprintln(w, out.Tier)
		return err
	}
	_, err := fmt.Fprintf(w, "%s\t%s\n", out.Tier, out.Directory)
	return err
}
