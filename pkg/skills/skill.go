// Package skills resolves skill references against tiered on-disk skill
// registries. A skill lives either in the project tier
// (<project>/.agents/skills/<name>) or in the workspace tier
// (<workspace>/skills/<name>); the project tier always wins. Resolution
// rewrites bare or stale references into their fully qualified
// <plugin>:<skill> form.
package skills

// Tier identifies the registry a skill was found in
type Tier int

// Tiers in ascending priority
const (
	TierNone Tier = iota
	TierWorkspace
	TierProject
)

// String returns the tier name
func (t Tier) String() string {
	switch t {
	case TierWorkspace:
		return "workspace"
	case TierProject:
		return "project"
	default:
		return "none"
	}
}

// MarshalText renders the tier by name in JSON and YAML output
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Skill represents a skill directory found in one of the tiers
type Skill struct {
	Name          string `json:"name" yaml:"name"`                     // Directory name, the bare reference
	QualifiedName string `json:"qualified_name" yaml:"qualified_name"` // <plugin>:<name>
	Directory     string `json:"directory" yaml:"directory"`           // Full path to the skill directory
	Tier          Tier   `json:"tier" yaml:"tier"`
}
