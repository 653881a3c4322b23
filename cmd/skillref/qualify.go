package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jingkaihe/skillref/pkg/presenter"
	"github.com/jingkaihe/skillref/pkg/skills"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type QualifyConfig struct {
	Input  string
	Format string
}

func NewQualifyConfig() *QualifyConfig {
	return &QualifyConfig{
		Input:  "",
		Format: presenter.FormatText,
	}
}

type qualifyOutput struct {
	Skill     string `json:"skill" yaml:"skill"`
	Qualified string `json:"qualified" yaml:"qualified"`
	Tier      string `json:"tier" yaml:"tier"`
	Modified  bool   `json:"modified" yaml:"modified"`
}

type qualifyInputOutput struct {
	Input    any  `json:"input" yaml:"input"`
	Modified bool `json:"modified" yaml:"modified"`
}

var qualifyCmd = &cobra.Command{
	Use:   "qualify [skill]",
	Short: "Qualify a skill reference",
	Long: `Qualify a bare or qualified skill reference against the project and
workspace tiers.

With --input the argument is a whole skill tool input (a JSON object with a
"skill" member, or "-" to read it from stdin). Only the skill member is
rewritten; every other member is passed through byte for byte.

Examples:
  skillref qualify commit -w ~/ws -p .
  skillref qualify other-ws:commit --format json
  skillref qualify --input '{"skill":"commit","args":"-m fix"}'`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getQualifyConfigFromFlags(cmd)
		resolver := newResolver(cmd.Context())

		var err error
		if config.Input != "" {
			err = runQualifyInput(cmd.Context(), resolver, config, os.Stdin, os.Stdout)
		} else {
			if len(args) == 0 {
				presenter.Error(errors.New("missing skill reference"), "Pass a skill or use --input")
				os.Exit(1)
			}
			err = runQualify(cmd.Context(), resolver, args[0], config, os.Stdout)
		}
		if err != nil {
			presenter.Error(err, "Failed to qualify skill")
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewQualifyConfig()
	qualifyCmd.Flags().StringP("input", "i", defaults.Input, "Skill tool input as a JSON object, or - to read it from stdin")
	qualifyCmd.Flags().StringP("format", "f", defaults.Format, "Output format (text, json, yaml)")

	rootCmd.AddCommand(qualifyCmd)
}

func getQualifyConfigFromFlags(cmd *cobra.Command) *QualifyConfig {
	config := NewQualifyConfig()
	if input, err := cmd.Flags().GetString("input"); err == nil {
		config.Input = input
	}
	if format, err := cmd.Flags().GetString("format"); err == nil {
		config.Format = format
	}
	return config
}

func buildQualifyOutput(ctx context.Context, r *skills.Resolver, skill string) qualifyOutput {
	qualified, modified := r.QualifyName(ctx, skill)
	out := qualifyOutput{
		Skill:     skill,
		Qualified: qualified,
		Tier:      skills.TierNone.String(),
		Modified:  modified,
	}
	if ref, ok := skills.ParseReference(qualified); ok {
		_, tier := r.ExpectedPrefix(ref.Name)
		out.Tier = tier.String()
	}
	return out
}

func runQualify(ctx context.Context, r *skills.Resolver, skill string, config *QualifyConfig, w io.Writer) error {
	out := buildQualifyOutput(ctx, r, skill)
	if config.Format == presenter.FormatText {
		_, err := fmt.Fprintln(w, out.Qualified)
		return err
	}
	return presenter.NewWithOptions(w, io.Discard, presenter.ColorNever).Render(config.Format, out)
}

func readQualifyInput(input string, stdin io.Reader) ([]byte, error) {
	if input != "-" {
		return []byte(input), nil
	}
	raw, err := io.ReadAll(stdin)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill input from stdin")
	}
	return []byte(strings.TrimSpace(string(raw))), nil
}

func runQualifyInput(ctx context.Context, r *skills.Resolver, config *QualifyConfig, stdin io.Reader, w io.Writer) error {
	raw, err := readQualifyInput(config.Input, stdin)
	if err != nil {
		return err
	}
	if !json.Valid(raw) {
		return errors.New("skill input is not valid JSON")
	}

	out, modified := r.QualifyJSON(ctx, raw)
	if config.Format == presenter.FormatText {
		_, err := fmt.Fprintln(w, string(out))
		return err
	}

	var decoded any
	if err := json.Unmarshal(out, &decoded); err != nil {
		return errors.Wrap(err, "failed to decode qualified skill input")
	}
	return presenter.NewWithOptions(w, io.Discard, presenter.ColorNever).Render(config.Format, qualifyInputOutput{
		Input:    decoded,
		Modified: modified,
	})
}
