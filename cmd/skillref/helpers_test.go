package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jingkaihe/skillref/pkg/skills"
	"github.com/stretchr/testify/require"
)

type tierFixture struct {
	workspaceRoot string
	projectRoot   string
}

// newTierFixture creates a workspace with "ws-only" and "shared" skills and a
// project with "proj-only" and "shared" skills
func newTierFixture(t *testing.T) *tierFixture {
	t.Helper()
	base := t.TempDir()
	f := &tierFixture{
		workspaceRoot: filepath.Join(base, "my-workspace"),
		projectRoot:   filepath.Join(base, "project"),
	}

	mkdir(t, filepath.Join(f.workspaceRoot, "skills", "ws-only"))
	mkdir(t, filepath.Join(f.workspaceRoot, "skills", "shared"))
	mkdir(t, filepath.Join(f.projectRoot, ".agents", "skills", "proj-only"))
	mkdir(t, filepath.Join(f.projectRoot, ".agents", "skills", "shared"))
	return f
}

func (f *tierFixture) resolver() *skills.Resolver {
	return skills.NewResolver("my-workspace",
		skills.WithWorkspaceRoot(f.workspaceRoot),
		skills.WithProjectRoot(f.projectRoot),
	)
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	mkdir(t, filepath.Dir(path))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
