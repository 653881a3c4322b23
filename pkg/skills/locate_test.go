package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSources(t *testing.T) {
	t.Run("both tiers in priority order", func(t *testing.T) {
		sources := Sources("/ws", "/proj")
		require.Len(t, sources, 2)

		assert.Equal(t, TierProject, sources[0].Tier)
		assert.Equal(t, filepath.Join("/proj", ".agents", "skills"), sources[0].Dir())
		assert.Equal(t, filepath.Join("/proj", ".agents", "skills", "commit"), sources[0].SkillDir("commit"))

		assert.Equal(t, TierWorkspace, sources[1].Tier)
		assert.Equal(t, filepath.Join("/ws", "skills"), sources[1].Dir())
	})

	t.Run("workspace only", func(t *testing.T) {
		sources := Sources("/ws", "")
		require.Len(t, sources, 1)
		assert.Equal(t, TierWorkspace, sources[0].Tier)
	})

	t.Run("project only", func(t *testing.T) {
		sources := Sources("", "/proj")
		require.Len(t, sources, 1)
		assert.Equal(t, TierProject, sources[0].Tier)
	})

	t.Run("no roots", func(t *testing.T) {
		assert.Empty(t, Sources("", ""))
	})
}

func TestLocateTier(t *testing.T) {
	f := newTierFixture(t)

	tests := []struct {
		name        string
		skill       string
		projectRoot string
		expected    Tier
	}{
		{"workspace only skill", "ws-only", f.projectRoot, TierWorkspace},
		{"project only skill", "proj-only", f.projectRoot, TierProject},
		{"project wins ties", "shared-skill", f.projectRoot, TierProject},
		{"shared skill without project root", "shared-skill", "", TierWorkspace},
		{"project skill without project root", "proj-only", "", TierNone},
		{"unknown skill", "nonexistent", f.projectRoot, TierNone},
		{"empty name", "", f.projectRoot, TierNone},
		{"qualified name", "my-workspace:ws-only", f.projectRoot, TierNone},
		{"path traversal", "../skills/ws-only", f.projectRoot, TierNone},
		{"dot", ".", f.projectRoot, TierNone},
		{"dot dot", "..", f.projectRoot, TierNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LocateTier(tt.skill, f.workspaceRoot, tt.projectRoot))
		})
	}
}

func TestLocateTierIgnoresFiles(t *testing.T) {
	root := t.TempDir()
	skillsDir := filepath.Join(root, "skills")
	require.NoError(t, os.MkdirAll(skillsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(skillsDir, "not-a-dir"), []byte("x"), 0o644))

	assert.Equal(t, TierNone, LocateTier("not-a-dir", root, ""))
}

func TestLocateTierFollowsSymlinks(t *testing.T) {
	root := t.TempDir()
	actual := addSkill(t, filepath.Join(root, "elsewhere"), "linked")
	skillsDir := filepath.Join(root, "skills")
	require.NoError(t, os.MkdirAll(skillsDir, 0o755))
	require.NoError(t, os.Symlink(actual, filepath.Join(skillsDir, "linked")))

	assert.Equal(t, TierWorkspace, LocateTier("linked", root, ""))
}

func TestLocateReturnsSource(t *testing.T) {
	f := newTierFixture(t)

	source, ok := Locate("shared-skill", Sources(f.workspaceRoot, f.projectRoot))
	require.True(t, ok)
	assert.Equal(t, TierProject, source.Tier)
	assert.Equal(t, f.projectRoot, source.Root)

	_, ok = Locate("nonexistent", Sources(f.workspaceRoot, f.projectRoot))
	assert.False(t, ok)
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "project", TierProject.String())
	assert.Equal(t, "workspace", TierWorkspace.String())
	assert.Equal(t, "none", TierNone.String())

	text, err := TierProject.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "project", string(text))
}
