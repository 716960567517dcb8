package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/mcpgate/pkg/domain"
)

// File is the on-disk shape of a catalog source.
//
//	operations:
//	  - name: get_post
//	    base_url: https://jsonplaceholder.typicode.com
//	    path: /posts/{id}
//	    method: GET
//	    required: [id]
type File struct {
	Operations []domain.OperationDescriptor `json:"operations" yaml:"operations"`
}

// LoadFile reads descriptors from a YAML (.yaml, .yml) or JSON (.json) file.
// Unknown fields are rejected so that a typo never silently drops a parameter.
func LoadFile(path string) ([]domain.OperationDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.Wrap(domain.KindConfigurationError, domain.ReasonInvalidCatalog, err,
			fmt.Sprintf("failed to read catalog file %s", path))
	}

	descriptors, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, domain.Wrap(domain.KindConfigurationError, domain.ReasonInvalidCatalog, err,
			fmt.Sprintf("failed to parse catalog file %s", path))
	}
	return descriptors, nil
}

// Parse decodes catalog source data. ext selects the format; anything but .json is YAML.
func Parse(data []byte, ext string) ([]domain.OperationDescriptor, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	}
	if len(f.Operations) == 0 {
		return nil, fmt.Errorf("no operations declared")
	}
	return f.Operations, nil
}

// Marshal renders descriptors in the catalog file format (YAML).
func Marshal(descriptors []domain.OperationDescriptor) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(File{Operations: descriptors}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
