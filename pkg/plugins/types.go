// Package plugins reads plugin identity from the manifest a skill tier root
// may carry at .claude-plugin/plugin.json. Only the declared name takes part
// in skill qualification; the rest of the manifest is informational.
package plugins

// Manifest location relative to a tier root
const (
	ManifestDir  = ".claude-plugin"
	ManifestFile = "plugin.json"
)

// Manifest is the subset of plugin.json this package understands
type Manifest struct {
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Path        string `json:"path" yaml:"path"`
}
