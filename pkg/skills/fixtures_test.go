package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testWorkspaceSlug = "my-workspace"

type tierFixture struct {
	workspaceRoot string
	projectRoot   string
}

// newTierFixture lays out:
//
//	my-workspace/skills/{ws-only,shared-skill}
//	my-project/.agents/skills/{proj-only,shared-skill}
func newTierFixture(t *testing.T) tierFixture {
	t.Helper()
	base := t.TempDir()
	f := tierFixture{
		workspaceRoot: filepath.Join(base, "my-workspace"),
		projectRoot:   filepath.Join(base, "my-project"),
	}

	addSkill(t, filepath.Join(f.workspaceRoot, "skills"), "ws-only")
	addSkill(t, filepath.Join(f.workspaceRoot, "skills"), "shared-skill")
	addSkill(t, filepath.Join(f.projectRoot, ".agents", "skills"), "proj-only")
	addSkill(t, filepath.Join(f.projectRoot, ".agents", "skills"), "shared-skill")

	return f
}

func addSkill(t *testing.T, skillsDir, name string) string {
	t.Helper()
	dir := filepath.Join(skillsDir, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := "---\nname: " + name + "\ndescription: test\n---\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0o644))
	return dir
}

func (f tierFixture) resolver(opts ...Option) *Resolver {
	opts = append([]Option{WithWorkspaceRoot(f.workspaceRoot), WithProjectRoot(f.projectRoot)}, opts...)
	return NewResolver(testWorkspaceSlug, opts...)
}
