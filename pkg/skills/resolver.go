package skills

import (
	"context"
	"fmt"

	"github.com/jingkaihe/skillref/pkg/logger"
	"github.com/jingkaihe/skillref/pkg/telemetry"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.opentelemetry.io/otel/attribute"
)

// Resolver qualifies skill references for one workspace context. It holds
// no mutable state, so a single Resolver may be shared between goroutines;
// every call re-reads the filesystem.
type Resolver struct {
	workspaceSlug string
	workspaceRoot string
	projectRoot   string
	debug         DebugFunc
}

// Option configures a Resolver
type Option func(*Resolver)

// WithWorkspaceRoot sets the root of the workspace tier
func WithWorkspaceRoot(root string) Option {
	return func(r *Resolver) {
		r.workspaceRoot = root
	}
}

// WithProjectRoot sets the root of the project tier
func WithProjectRoot(root string) Option {
	return func(r *Resolver) {
		r.projectRoot = root
	}
}

// WithDebug sets the callback notified about rewritten references
func WithDebug(fn DebugFunc) Option {
	return func(r *Resolver) {
		r.debug = fn
	}
}

// NewResolver creates a resolver qualifying workspace skills with workspaceSlug
func NewResolver(workspaceSlug string, opts ...Option) *Resolver {
	r := &Resolver{workspaceSlug: workspaceSlug}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WorkspaceSlug returns the prefix used for workspace tier skills
func (r *Resolver) WorkspaceSlug() string {
	return r.workspaceSlug
}

// Sources returns the resolver's tier registries in priority order
func (r *Resolver) Sources() []Source {
	return Sources(r.workspaceRoot, r.projectRoot)
}

func (r *Resolver) hasRoots() bool {
	return r.workspaceRoot != "" || r.projectRoot != ""
}

func (r *Resolver) prefixFor(tier Tier) string {
	if tier == TierProject {
		return ProjectPluginName
	}
	return r.workspaceSlug
}

// ExpectedPrefix returns the plugin prefix a bare skill name should carry and
// the tier it was found in. Names found nowhere, or looked up without any
// roots, belong to the workspace.
func (r *Resolver) ExpectedPrefix(name string) (string, Tier) {
	tier := TierNone
	if r.hasRoots() {
		tier = LocateTier(name, r.workspaceRoot, r.projectRoot)
	}
	return r.prefixFor(tier), tier
}

// QualifyName qualifies a single skill reference. It returns the reference
// to use and whether it differs from skill.
//
// Bare names are always qualified. A qualified reference is rewritten only
// when the name was found in a tier whose prefix differs; otherwise it may
// point at a plugin this resolver cannot see and is left alone.
func (r *Resolver) QualifyName(ctx context.Context, skill string) (string, bool) {
	ctx, span := telemetry.StartSpan(ctx, "skills.qualify", attribute.String("skill.reference", skill))
	defer span.End()

	qualified, tier, modified := r.qualifyName(skill)

	telemetry.SetAttributes(ctx,
		attribute.String("skill.tier", tier.String()),
		attribute.String("skill.qualified", qualified),
		attribute.Bool("skill.modified", modified),
	)

	return qualified, modified
}

func (r *Resolver) qualifyName(skill string) (string, Tier, bool) {
	ref, ok := ParseReference(skill)
	if !ok {
		return skill, TierNone, false
	}

	expected, tier := r.ExpectedPrefix(ref.Name)
	target := Reference{Prefix: expected, Name: ref.Name, Qualified: true}.String()

	switch {
	case !ref.Qualified:
		r.emit(fmt.Sprintf("qualified skill '%s' -> '%s' (tier: %s)", skill, target, tier))
		return target, tier, true
	case ref.Prefix == expected, tier == TierNone:
		return skill, tier, false
	default:
		r.emit(fmt.Sprintf("re-qualified skill '%s' -> '%s' (tier: %s)", skill, target, tier))
		return target, tier, true
	}
}

func (r *Resolver) emit(msg string) {
	if r.debug != nil {
		r.debug(msg)
	}
}

// Qualify qualifies the skill of input. Inputs without a string skill are
// returned unchanged. The result never shares its field map with input.
func (r *Resolver) Qualify(ctx context.Context, input Input) Result {
	if input.Skill == nil {
		return Result{Input: input.Clone()}
	}

	qualified, modified := r.QualifyName(ctx, *input.Skill)
	if !modified {
		return Result{Input: input.Clone()}
	}

	return Result{Input: input.withSkill(qualified), Modified: true}
}

// QualifyJSON qualifies the "skill" member of a raw JSON object in place of
// decoding it, so every sibling member keeps its exact bytes. Input that is
// not a JSON object with a string skill is returned as is.
func (r *Resolver) QualifyJSON(ctx context.Context, raw []byte) ([]byte, bool) {
	if !gjson.ValidBytes(raw) {
		return raw, false
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return raw, false
	}

	skill := doc.Get(skillField)
	if skill.Type != gjson.String {
		return raw, false
	}

	qualified, modified := r.QualifyName(ctx, skill.Str)
	if !modified {
		return raw, false
	}

	out, err := sjson.SetBytes(raw, skillField, qualified)
	if err != nil {
		logger.G(ctx).WithError(err).WithField("skill", skill.Str).Debug("failed to rewrite skill input")
		return raw, false
	}

	return out, true
}
