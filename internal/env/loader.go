package env

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedValue indicates a YAML entry that is not a scalar.
var ErrUnsupportedValue = errors.New("environment values must be scalars")

// ParseDotenv parses a dotenv document, such as one injected with
// -ldflags "-X main.buildEnv=...". An empty document yields an empty source.
//
// Unquoted and double-quoted values expand ${NAME} and $NAME against entries
// defined earlier in the same document, as Vite's dotenv-expand does.
// Unknown names expand to "" and the process environment is never consulted.
// Single-quoted values and \$ are kept literally.
func ParseDotenv(doc string) (MapSource, error) {
	if strings.TrimSpace(doc) == "" {
		return NewMapSource(nil), nil
	}

	values, err := godotenv.Unmarshal(doc)
	if err != nil {
		return MapSource{}, fmt.Errorf("parse dotenv: %w", err)
	}
	return MapSource{values: values}, nil
}

// LoadFile reads a build environment file. Files ending in .yaml or .yml are
// parsed as a flat YAML mapping with no expansion; anything else is parsed as
// dotenv with the same expansion rules as ParseDotenv.
func LoadFile(path string) (MapSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		values, err := godotenv.Read(path)
		if err != nil {
			return MapSource{}, fmt.Errorf("read dotenv file: %w", err)
		}
		return MapSource{values: values}, nil
	}
}

func loadYAML(path string) (MapSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MapSource{}, fmt.Errorf("read file: %w", err)
	}

	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return MapSource{}, fmt.Errorf("parse YAML: %w", err)
	}

	values := make(map[string]string, len(doc))
	for key, node := range doc {
		if node.Kind != yaml.ScalarNode {
			return MapSource{}, fmt.Errorf("key %q: %w", key, ErrUnsupportedValue)
		}
		// Keep the literal text so "true" and "08" survive unchanged.
		if node.Tag == "!!null" {
			values[key] = ""
			continue
		}
		values[key] = node.Value
	}
	return MapSource{values: values}, nil
}
