package fetcher

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/comparison-cli/internal/model"
)

// LoadFile reads a snapshot from a .json, .yaml or .yml file.
func LoadFile(path string) (*model.ViewModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: read %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, eris.Wrapf(err, "fetcher: parse %s", path)
		}
	default:
		return nil, eris.Errorf("fetcher: unsupported snapshot extension %q", ext)
	}

	var vm model.ViewModel
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&vm); err != nil {
		return nil, eris.Wrapf(err, "fetcher: decode %s", path)
	}
	return &vm, nil
}

// yamlToJSON lets YAML snapshots reuse the JSON field names and decoders.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
