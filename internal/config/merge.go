package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyAPI     = "api"
	keyOutput  = "output"
	keyLogging = "logging"
	keyCache   = "cache"
)

// ShallowMergeYAML loads a YAML file and overlays its top-level sections onto
// the target Config. Fields present in a section replace the target's values;
// fields and sections absent from the file are left unchanged. Unknown keys
// are ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = decodeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// decodeSection decodes one section on top of the target's current value.
func decodeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyAPI:
		v := target.API
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.API = v
	case keyOutput:
		v := target.Output
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	case keyLogging:
		v := target.Logging
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keyCache:
		v := target.Cache
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Cache = v
	}
	return nil
}
