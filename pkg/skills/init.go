package skills

import (
	"context"

	"github.com/jingkaihe/skillref/pkg/config"
	"github.com/jingkaihe/skillref/pkg/logger"
	"github.com/jingkaihe/skillref/pkg/workspace"
	"github.com/sirupsen/logrus"
)

// Initialize builds the resolver for the configured workspace context. An
// explicit workspace_slug wins; otherwise the slug is derived from the
// workspace root. Rewrite notes go to the context logger at debug level.
func Initialize(ctx context.Context, cfg config.Config) *Resolver {
	slug := cfg.WorkspaceSlug
	if slug == "" {
		slug = workspace.ExtractSlug(cfg.WorkspaceRoot, cfg.FallbackID)
	}

	fields := logrus.Fields{
		"workspace_slug": slug,
		"workspace_root": cfg.WorkspaceRoot,
		"project_root":   cfg.ProjectRoot,
	}
	logger.G(ctx).WithFields(fields).Debug("initialized skill resolver")

	return NewResolver(slug,
		WithWorkspaceRoot(cfg.WorkspaceRoot),
		WithProjectRoot(cfg.ProjectRoot),
		WithDebug(logger.DebugSink(ctx, logrus.Fields{"component": "skills"})),
	)
}
