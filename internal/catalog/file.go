package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BiiZti/5GRecommendationTool/pkg/models"
)

// Compile-time interface guard.
var _ Provider = (*FileProvider)(nil)

// fileDocument is the on-disk catalog schema. A file may also hold a bare
// plan array instead of the document form.
type fileDocument struct {
	Carrier string        `json:"carrier" yaml:"carrier"`
	Plans   []models.Plan `json:"plans" yaml:"plans"`
}

// FileProvider loads plans from a JSON or YAML file, chosen by extension.
// The file is re-read on every Plans call, so edits show up without a
// restart. Records missing a carrier inherit the document's carrier, then
// the provider's; records missing an ID get a slug derived from carrier
// and name.
type FileProvider struct {
	path    string
	carrier string
}

// NewFileProvider creates a provider for the given file. carrier is the
// fallback for records that do not name one; it may be empty.
func NewFileProvider(path, carrier string) *FileProvider {
	return &FileProvider{path: path, carrier: carrier}
}

// Name implements Provider.
func (f *FileProvider) Name() string {
	return "file:" + filepath.Base(f.path)
}

// Plans implements Provider.
func (f *FileProvider) Plans(_ context.Context) ([]models.Plan, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var doc fileDocument
	switch ext := strings.ToLower(filepath.Ext(f.path)); ext {
	case ".json":
		if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
			err = json.Unmarshal(data, &doc.Plans)
		} else {
			err = json.Unmarshal(data, &doc)
		}
	case ".yaml", ".yml":
		err = decodeYAML(data, &doc)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q (want .json, .yaml, or .yml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(f.path), err)
	}

	fallback := doc.Carrier
	if fallback == "" {
		fallback = f.carrier
	}
	for i := range doc.Plans {
		if doc.Plans[i].Carrier == "" {
			doc.Plans[i].Carrier = fallback
		}
		if doc.Plans[i].ID == "" {
			doc.Plans[i].ID = derivePlanID(doc.Plans[i].Carrier, doc.Plans[i].Name, i)
		}
	}
	return doc.Plans, nil
}

// decodeYAML accepts both the document form and a bare plan sequence.
func decodeYAML(data []byte, doc *fileDocument) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return err
	}
	if len(root.Content) == 0 {
		return nil
	}
	body := root.Content[0]
	if body.Kind == yaml.SequenceNode {
		return body.Decode(&doc.Plans)
	}
	return body.Decode(doc)
}

// derivePlanID builds a stable identifier for records loaded without one.
func derivePlanID(carrier, name string, index int) string {
	id := strings.Trim(slug(carrier)+"-"+slug(name), "-")
	if id == "" {
		return fmt.Sprintf("plan-%d", index+1)
	}
	return id
}

// slug lowercases and squeezes everything outside [a-z0-9] into single
// dashes.
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
