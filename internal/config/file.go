package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the parsed shape of an optional .pyrrust.yaml project config.
type File struct {
	// CrossModuleResolution enables resolving the return type of a
	// `module.function(...)` call against the sibling Source file
	// module.py next to the translated file, instead of treating every
	// such call as Unknown.
	CrossModuleResolution bool `yaml:"cross_module_resolution"`

	// TypeOverrides maps an annotation name (e.g. a type alias) to a
	// Target rendering. It is parsed and stored; the annotation mapper
	// (typesystem.MapAnnotation) does not consult it.
	TypeOverrides map[string]string `yaml:"type_overrides"`

	// DiagnosticVerbosity is "quiet", "normal", or "verbose". It is parsed
	// and stored; the CLI prints every diagnostic whatever its value.
	DiagnosticVerbosity string `yaml:"diagnostic_verbosity"`
}

// DefaultFile is the configuration used when no .pyrrust.yaml is found.
func DefaultFile() *File {
	return &File{
		CrossModuleResolution: false,
		TypeOverrides:         map[string]string{},
		DiagnosticVerbosity:   "normal",
	}
}

// Load reads and parses a .pyrrust.yaml file at path. A missing file is not
// an error: Load returns DefaultFile().
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultFile(), nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	f := DefaultFile()
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return f, nil
}
