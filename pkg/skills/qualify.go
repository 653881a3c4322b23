package skills

import (
	"context"
	"strings"
)

// ProjectPluginName is the plugin prefix of every skill resolved to the
// project tier. The project root's own plugin manifest does not change it.
const ProjectPluginName = ".agents"

// DebugFunc receives a human readable note when a reference is rewritten
type DebugFunc func(msg string)

// Reference is a parsed skill reference, either bare ("commit") or
// qualified ("my-workspace:commit").
type Reference struct {
	Prefix    string
	Name      string
	Qualified bool
}

// ParseReference splits a skill reference on its first colon. It reports
// false for references that can never resolve: the empty string and a
// qualified reference with an empty name such as "workspace:".
func ParseReference(s string) (Reference, bool) {
	if s == "" {
		return Reference{}, false
	}

	prefix, name, found := strings.Cut(s, ":")
	if !found {
		return Reference{Name: s}, true
	}
	if name == "" {
		return Reference{}, false
	}

	return Reference{Prefix: prefix, Name: name, Qualified: true}, true
}

// String formats the reference back into its textual form
func (r Reference) String() string {
	if !r.Qualified {
		return r.Name
	}
	return r.Prefix + ":" + r.Name
}

// QualifySkillName qualifies the skill of input against the given context.
// Empty roots mean the tier is not available; with neither root the bare
// name is qualified with workspaceSlug. debug may be nil. The returned input
// is a copy of input differing at most in its skill.
func QualifySkillName(input Input, workspaceSlug, workspaceRoot, projectRoot string, debug DebugFunc) Result {
	r := NewResolver(workspaceSlug,
		WithWorkspaceRoot(workspaceRoot),
		WithProjectRoot(projectRoot),
		WithDebug(debug),
	)
	return r.Qualify(context.Background(), input)
}
