package main

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/jingkaihe/skillref/pkg/logger"
	"github.com/jingkaihe/skillref/pkg/presenter"
	"github.com/jingkaihe/skillref/pkg/skills"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const maxBatchLineSize = 4 * 1024 * 1024

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Qualify a stream of skill tool inputs",
	Long: `Read skill tool inputs from stdin, one JSON object per line, and write
each qualified input to stdout in the same order. Lines that are not valid
JSON are copied through unchanged and reported in the log. Blank lines are
preserved.

Example:
  cat calls.jsonl | skillref batch -w ~/ws -p . --concurrency 16`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		if concurrency <= 0 {
			concurrency = runtimeConfig.Concurrency
		}
		resolver := newResolver(cmd.Context())

		if err := runBatch(cmd.Context(), resolver, concurrency, os.Stdin, os.Stdout); err != nil {
			presenter.Error(err, "Failed to qualify batch")
			os.Exit(1)
		}
	},
}

func init() {
	batchCmd.Flags().IntP("concurrency", "c", 0, "Inputs qualified in parallel (defaults to the configured concurrency)")
	rootCmd.AddCommand(batchCmd)
}

func readBatchLines(r io.Reader) ([][]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxBatchLineSize)

	var lines [][]byte
	for scanner.Scan() {
		line := make([]byte, len(scanner.Bytes()))
		copy(line, scanner.Bytes())
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read batch input")
	}
	return lines, nil
}

func runBatch(ctx context.Context, r *skills.Resolver, concurrency int, in io.Reader, out io.Writer) error {
	lines, err := readBatchLines(in)
	if err != nil {
		return err
	}

	// Blank lines are echoed as is rather than reported as invalid JSON
	var (
		inputs  [][]byte
		indexes []int
	)
	for i, line := range lines {
		if len(line) == 0 {
			continue
		}
		inputs = append(inputs, line)
		indexes = append(indexes, i)
	}

	results, err := r.QualifyBatch(ctx, inputs, concurrency)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		logger.G(ctx).WithError(err).Warn("some batch inputs were passed through unchanged")
	}

	outputs := lines
	modified := 0
	for i, result := range results {
		outputs[indexes[i]] = result.Output
		if result.Modified {
			modified++
		}
	}

	w := bufio.NewWriter(out)
	for _, line := range outputs {
		w.Write(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "failed to write batch output")
	}

	logger.G(ctx).WithField("inputs", len(inputs)).WithField("modified", modified).Debug("batch qualified")
	return nil
}
