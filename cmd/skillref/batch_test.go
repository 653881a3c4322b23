package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBatchLines(t *testing.T) {
	lines, err := readBatchLines(strings.NewReader("{\"skill\":\"a\"}\n\n{\"skill\":\"b\"}"))
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, `{"skill":"a"}`, string(lines[0]))
	assert.Empty(t, lines[1])
	assert.Equal(t, `{"skill":"b"}`, string(lines[2]))
}

func TestRunBatch(t *testing.T) {
	r := newTierFixture(t).resolver()

	in := strings.Join([]string{
		`{"skill":"proj-only","args":"1"}`,
		``,
		`not json`,
		`{"skill":"other-ws:commit"}`,
		`{"skill":"my-workspace:shared"}`,
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, runBatch(context.Background(), r, 2, strings.NewReader(in), &out))

	assert.Equal(t, strings.Join([]string{
		`{"skill":".agents:proj-only","args":"1"}`,
		``,
		`not json`,
		`{"skill":"other-ws:commit"}`,
		`{"skill":".agents:shared"}`,
	}, "\n")+"\n", out.String())
}

func TestRunBatchEmptyInput(t *testing.T) {
	r := newTierFixture(t).resolver()

	var out bytes.Buffer
	require.NoError(t, runBatch(context.Background(), r, 0, strings.NewReader(""), &out))
	assert.Empty(t, out.String())
}

func TestRunBatchCancelled(t *testing.T) {
	r := newTierFixture(t).resolver()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := runBatch(ctx, r, 1, strings.NewReader(`{"skill":"a"}`), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skill batch interrupted")
	assert.Empty(t, out.String())
}
