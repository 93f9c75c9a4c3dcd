package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yaptide/geomc/geometry"
)

// LoadGeometry reads a geometry definition document, in YAML or JSON
// depending on the file extension, and builds the geometry.
func LoadGeometry(path string) (*geometry.Geometry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		raw, err = yamlToJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	geo, err := geometry.New(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return geo, nil
}

// yamlToJSON re-encodes a YAML document as JSON, so a single definition
// decoder serves both formats.
func yamlToJSON(raw []byte) ([]byte, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
