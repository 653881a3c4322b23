// Package workspace derives the textual identity of a workspace directory,
// which becomes the plugin prefix of skills found in the workspace tier.
package workspace

import (
	"strings"

	"github.com/jingkaihe/skillref/pkg/plugins"
)

// ExtractSlug returns the slug for a workspace root. A plugin name declared
// in the root's manifest wins; otherwise the last non-empty path segment is
// used, splitting on both '/' and '\'. When root has no segments at all
// (empty, "/", or only separators) fallback is returned unchanged.
func ExtractSlug(root, fallback string) string {
	if name, ok := plugins.ReadPluginName(root); ok {
		return name
	}

	if base := lastSegment(root); base != "" {
		return base
	}

	return fallback
}

func lastSegment(path string) string {
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}
