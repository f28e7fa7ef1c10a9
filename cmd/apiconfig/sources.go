package main

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/apiconfig/internal/config"
	"github.com/eugenenazirov/apiconfig/internal/env"
)

// newResolver assembles the two sources. The link-time document and the
// optional file together form the build-injected environment, with the file
// layered on top.
func newResolver(linked, envFile string, processAvailable bool, logger *zap.Logger) (*env.Resolver, error) {
	build, err := env.ParseDotenv(linked)
	if err != nil {
		return nil, fmt.Errorf("linked build environment: %w", err)
	}

	if envFile != "" {
		fromFile, err := env.LoadFile(envFile)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
		build = env.Merge(build, fromFile)
	}

	var process, buildSource env.Source
	if processAvailable {
		process = env.ProcessSource{}
	}
	if build.Len() > 0 {
		buildSource = build
	}
	logger.Debug("environment sources assembled",
		zap.Bool("process", processAvailable),
		zap.Strings("build_keys", build.Keys()),
	)
	return env.NewResolver(process, buildSource), nil
}

func writeSettings(w io.Writer, settings config.Settings, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(settings); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(settings); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
