package skills

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	workspaceSkillsSubdir = "skills"
	projectAgentsDir      = ".agents"
)

// Source is one tier's skill registry: the skills of a tier live in
// <Root>/<Subdir>/<name>.
type Source struct {
	Tier   Tier
	Root   string
	Subdir string
}

// Dir returns the directory holding the tier's skills
func (s Source) Dir() string {
	return filepath.Join(s.Root, s.Subdir)
}

// SkillDir returns the directory a skill named name would occupy
func (s Source) SkillDir(name string) string {
	return filepath.Join(s.Dir(), name)
}

// Sources returns the tier registries in priority order. An empty root
// means the tier is not available and it is left out.
func Sources(workspaceRoot, projectRoot string) []Source {
	var sources []Source

	if projectRoot != "" {
		sources = append(sources, Source{
			Tier:   TierProject,
			Root:   projectRoot,
			Subdir: filepath.Join(projectAgentsDir, workspaceSkillsSubdir),
		})
	}

	if workspaceRoot != "" {
		sources = append(sources, Source{
			Tier:   TierWorkspace,
			Root:   workspaceRoot,
			Subdir: workspaceSkillsSubdir,
		})
	}

	return sources
}

// Locate returns the first source, in the given order, that contains a
// skill directory named name.
func Locate(name string, sources []Source) (Source, bool) {
	if !isBareName(name) {
		return Source{}, false
	}

	for _, source := range sources {
		if isDir(source.SkillDir(name)) {
			return source, true
		}
	}

	return Source{}, false
}

// LocateTier reports which tier a bare skill name resolves to. The project
// tier wins whenever it has the skill, even if the workspace has it too.
func LocateTier(name, workspaceRoot, projectRoot string) Tier {
	source, ok := Locate(name, Sources(workspaceRoot, projectRoot))
	if !ok {
		return TierNone
	}
	return source.Tier
}

// isBareName rejects names that cannot be a single skill directory
func isBareName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `:/\`)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
