package config

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Loader loads configuration from the filesystem.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the config file at path. The format is selected by
// extension: .toml is parsed as TOML, everything else as YAML. Defaults are
// applied to unset optional fields; the result is parsed but not validated.
func (l *Loader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigNotFoundError(path)
		}
		return nil, err
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, NewParseError(path, err)
	}
	return cfg, nil
}

// Parse decodes config data in the format implied by ext.
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config
	var err error

	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}
