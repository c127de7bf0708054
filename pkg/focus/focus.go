// Package focus loads, validates and derives Focus documents.
package focus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/younsl/awsinspector/internal/models"
	"gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parse decodes a Focus from JSON or YAML and validates it. Input that
// starts with "{" is read as JSON, anything else as YAML.
func Parse(data []byte) (*models.Focus, error) {
	var f models.Focus
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("{")) {
		if err := json.Unmarshal(trimmed, &f); err != nil {
			return nil, fmt.Errorf("failed to decode focus JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(trimmed, &f); err != nil {
			return nil, fmt.Errorf("failed to decode focus YAML: %w", err)
		}
	}
	if err := Validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads and validates a Focus file. The .yaml and .yml extensions
// force YAML decoding.
func LoadFile(path string) (*models.Focus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read focus file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var f models.Focus
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to decode focus YAML %s: %w", path, err)
		}
		if err := Validate(&f); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &f, nil
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Validate checks the document shape: the supported version and non-empty
// ids at every level
func Validate(f *models.Focus) error {
	if f == nil {
		return fmt.Errorf("invalid focus: empty document")
	}
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("invalid focus: %w", err)
	}
	return nil
}

// Marshal encodes a Focus as indented JSON, the persisted layout
func Marshal(f *models.Focus) ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}
