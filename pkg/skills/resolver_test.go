package skills

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/jingkaihe/skillref/pkg/config"
	"github.com/jingkaihe/skillref/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverExpectedPrefix(t *testing.T) {
	f := newTierFixture(t)
	r := f.resolver()

	prefix, tier := r.ExpectedPrefix("shared-skill")
	assert.Equal(t, ProjectPluginName, prefix)
	assert.Equal(t, TierProject, tier)

	prefix, tier = r.ExpectedPrefix("ws-only")
	assert.Equal(t, testWorkspaceSlug, prefix)
	assert.Equal(t, TierWorkspace, tier)

	prefix, tier = r.ExpectedPrefix("nonexistent")
	assert.Equal(t, testWorkspaceSlug, prefix)
	assert.Equal(t, TierNone, tier)

	prefix, tier = NewResolver(testWorkspaceSlug).ExpectedPrefix("shared-skill")
	assert.Equal(t, testWorkspaceSlug, prefix)
	assert.Equal(t, TierNone, tier)
}

func TestResolverQualifyJSON(t *testing.T) {
	f := newTierFixture(t)
	r := f.resolver()
	ctx := context.Background()

	tests := []struct {
		name     string
		raw      string
		expected string
		modified bool
	}{
		{
			name:     "bare skill with siblings",
			raw:      `{"args":  "-m \"fix\"", "skill": "ws-only", "n": 1.50}`,
			expected: `{"args":  "-m \"fix\"", "skill": "my-workspace:ws-only", "n": 1.50}`,
			modified: true,
		},
		{
			name:     "requalified project skill",
			raw:      `{"skill":"my-workspace:proj-only"}`,
			expected: `{"skill":".agents:proj-only"}`,
			modified: true,
		},
		{
			name:     "already qualified",
			raw:      `{"skill":"my-workspace:ws-only"}`,
			expected: `{"skill":"my-workspace:ws-only"}`,
		},
		{
			name:     "no skill",
			raw:      `{"args":"x"}`,
			expected: `{"args":"x"}`,
		},
		{
			name:     "numeric skill",
			raw:      `{"skill":3}`,
			expected: `{"skill":3}`,
		},
		{
			name:     "array",
			raw:      `["ws-only"]`,
			expected: `["ws-only"]`,
		},
		{
			name:     "invalid json",
			raw:      `{"skill":`,
			expected: `{"skill":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, modified := r.QualifyJSON(ctx, []byte(tt.raw))
			assert.Equal(t, tt.modified, modified)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestResolverQualifyMatchesFunction(t *testing.T) {
	f := newTierFixture(t)
	r := f.resolver()

	for _, skill := range []string{"ws-only", "proj-only", "shared-skill", "x:y", "trailing:"} {
		viaResolver := r.Qualify(context.Background(), skillInput(skill))
		viaFunc := QualifySkillName(skillInput(skill), testWorkspaceSlug, f.workspaceRoot, f.projectRoot, nil)
		assert.Equal(t, viaFunc, viaResolver, skill)
	}
}

func TestInitialize(t *testing.T) {
	f := newTierFixture(t)

	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.DebugLevel)
	ctx := logger.WithLogger(context.Background(), logrus.NewEntry(l))

	t.Run("slug derived from workspace root", func(t *testing.T) {
		r := Initialize(ctx, config.Config{
			WorkspaceRoot: f.workspaceRoot,
			ProjectRoot:   f.projectRoot,
			FallbackID:    "fallback",
		})
		assert.Equal(t, "my-workspace", r.WorkspaceSlug())

		result := r.Qualify(ctx, skillInput("proj-only"))
		assert.Equal(t, ProjectPluginName+":proj-only", result.Input.SkillName())
		assert.Contains(t, buf.String(), "qualified skill")
	})

	t.Run("explicit slug wins", func(t *testing.T) {
		r := Initialize(ctx, config.Config{
			WorkspaceRoot: f.workspaceRoot,
			WorkspaceSlug: "team",
		})
		assert.Equal(t, "team", r.WorkspaceSlug())
	})

	t.Run("fallback without roots", func(t *testing.T) {
		r := Initialize(ctx, config.Config{FallbackID: "fallback"})
		assert.Equal(t, "fallback", r.WorkspaceSlug())
		assert.Empty(t, r.Sources())
	})

	t.Run("sources follow config", func(t *testing.T) {
		r := Initialize(ctx, config.Config{WorkspaceRoot: f.workspaceRoot})
		require.Len(t, r.Sources(), 1)
		assert.Equal(t, filepath.Join(f.workspaceRoot, "skills"), r.Sources()[0].Dir())
	})
}
