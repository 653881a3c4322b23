package skills

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// ListSkills returns the skills visible to the resolver, sorted by name. A
// project skill shadows a workspace skill of the same name. When pattern is
// non-empty only names matching the glob are returned.
func (r *Resolver) ListSkills(pattern string) ([]Skill, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, errors.Errorf("invalid skill pattern '%s'", pattern)
	}

	seen := make(map[string]bool)
	var found []Skill

	for _, source := range r.Sources() {
		entries, err := os.ReadDir(source.Dir())
		if err != nil {
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if seen[name] || strings.HasPrefix(name, ".") {
				continue
			}

			// Stat follows symlinked skill directories
			skillDir := source.SkillDir(name)
			if !isDir(skillDir) {
				continue
			}

			if pattern != "" {
				if matched, _ := doublestar.Match(pattern, name); !matched {
					continue
				}
			}

			seen[name] = true
			found = append(found, Skill{
				Name:          name,
				QualifiedName: Reference{Prefix: r.prefixFor(source.Tier), Name: name, Qualified: true}.String(),
				Directory:     filepath.Clean(skillDir),
				Tier:          source.Tier,
			})
		}
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Name < found[j].Name
	})

	return found, nil
}
