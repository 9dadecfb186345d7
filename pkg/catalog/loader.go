package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

type documentFile struct {
	Fields  []model.FieldTemplate  `json:"fields" yaml:"fields"`
	Actions []model.ActionTemplate `json:"actions" yaml:"actions"`
}

// LoadFS walks fsys and parses every JSON/YAML catalog file it finds. Files
// are applied in lexical path order, each one merged over the previous result
// with Catalog.Merge. A nil filesystem yields an empty catalog.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	out := &Catalog{}
	if fsys == nil {
		return out, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}
		parsed, err := Parse(data, path)
		if err != nil {
			return err
		}
		out = out.Merge(parsed)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadFile parses a single catalog file from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a catalog document. JSON is attempted first, then YAML.
func Parse(data []byte, source string) (*Catalog, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("catalog: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if yerr := yaml.Unmarshal(data, &doc); yerr != nil {
			return nil, fmt.Errorf("catalog: parse %s: invalid JSON or YAML", source)
		}
	}

	c, err := New(doc.Fields, doc.Actions)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, source)
	}
	return c, nil
}

// Marshal encodes the catalog as YAML, or JSON when format is "json".
func Marshal(c *Catalog, format string) ([]byte, error) {
	doc := documentFile{
		Fields:  c.Fields(),
		Actions: c.Actions(),
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return json.MarshalIndent(doc, "", "  ")
	case "", "yaml", "yml":
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("catalog: unsupported format %q", format)
	}
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
