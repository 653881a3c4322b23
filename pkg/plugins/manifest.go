package plugins

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ManifestPath returns the plugin manifest path for a tier root
func ManifestPath(root string) string {
	return filepath.Join(root, ManifestDir, ManifestFile)
}

// ReadPluginName returns the plugin name declared by the manifest under root.
// The second return value is false when the identity is undeclared: the
// manifest is missing or unreadable, is not a JSON object, or has no
// non-empty string name. The name is returned verbatim.
func ReadPluginName(root string) (string, bool) {
	content, err := os.ReadFile(ManifestPath(root))
	if err != nil {
		return "", false
	}

	return pluginNameFromJSON(content)
}

func pluginNameFromJSON(content []byte) (string, bool) {
	if !gjson.ValidBytes(content) {
		return "", false
	}

	doc := gjson.ParseBytes(content)
	if !doc.IsObject() {
		return "", false
	}

	name := doc.Get("name")
	if name.Type != gjson.String || name.Str == "" {
		return "", false
	}

	return name.Str, true
}

// ReadManifest loads the manifest under root. Unlike ReadPluginName it
// reports why a manifest could not be used.
func ReadManifest(root string) (*Manifest, error) {
	path := ManifestPath(root)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read plugin manifest %s", path)
	}

	if !gjson.ValidBytes(content) {
		return nil, errors.Errorf("plugin manifest %s is not valid JSON", path)
	}

	doc := gjson.ParseBytes(content)
	if !doc.IsObject() {
		return nil, errors.Errorf("plugin manifest %s is not a JSON object", path)
	}

	name, ok := pluginNameFromJSON(content)
	if !ok {
		return nil, errors.Errorf("plugin manifest %s does not declare a name", path)
	}

	return &Manifest{
		Name:        name,
		Version:     doc.Get("version").String(),
		Description: doc.Get("description").String(),
		Path:        path,
	}, nil
}
