package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-clientform/pkg/form"
)

type documentFile struct {
	Forms map[string]form.Definition `json:"forms" yaml:"forms"`
}

// LoadFS walks fsys and adds every form declared in .json/.yaml/.yml files
// to c. Each file holds a top-level "forms" map keyed by form id.
func (c *Catalog) LoadFS(fsys fs.FS) error {
	if fsys == nil {
		return nil
	}
	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}
		return c.addDocument(data, path)
	})
}

// LoadFile adds the forms declared in a single definition file.
func (c *Catalog) LoadFile(path string) error {
	if !isDefinitionFile(path) {
		return fmt.Errorf("schema: %s is not a .json, .yaml or .yml file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("schema: read %s: %w", path, err)
	}
	return c.addDocument(data, path)
}

func (c *Catalog) addDocument(data []byte, path string) error {
	doc, err := parseDocument(data, path)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(doc.Forms))
	for key := range doc.Forms {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		def := doc.Forms[key]
		id := strings.TrimSpace(key)
		if id == "" {
			errs = append(errs, fmt.Errorf("schema: file %s defines a form with an empty id", path))
			continue
		}
		if def.ID != "" && strings.TrimSpace(def.ID) != id {
			errs = append(errs, fmt.Errorf("schema: file %s form %q declares mismatching id %q", path, id, def.ID))
			continue
		}
		def.ID = id
		if err := c.add(def, path); err != nil {
			errs = append(errs, fmt.Errorf("schema: file %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

// LoadFS builds a catalog holding the built-in definitions plus every
// definition found in fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog, err := NewCatalog(nil, form.ClientDefinition(), form.JobDefinition())
	if err != nil {
		return nil, err
	}
	if err := catalog.LoadFS(fsys); err != nil {
		return nil, err
	}
	return catalog, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if strings.TrimSpace(string(data)) == "" {
		return documentFile{}, fmt.Errorf("schema: file %s is empty", source)
	}
	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("schema: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("schema: parse %s: %w", source, err)
	}
	return doc, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
