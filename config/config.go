package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyProjectRoot  = "project.root"
	KeyRDataBinding = "load.rdata_binding"
	KeyDelimiter    = "load.delimiter"
	KeyExportFormat = "export.format"
)

type Config struct {
	Project ProjectConfig `mapstructure:"project"`
	Load    LoadConfig    `mapstructure:"load"`
	Export  ExportConfig  `mapstructure:"export"`
}

type ProjectConfig struct {
	// Root anchors relative dataset paths. Empty means the process
	// working directory.
	Root string `mapstructure:"root" validate:"omitempty,dir"`
}

type LoadConfig struct {
	RDataBinding string `mapstructure:"rdata_binding"`
	Delimiter    string `mapstructure:"delimiter" validate:"omitempty,len=1"`
}

type ExportConfig struct {
	Format string `mapstructure:"format" validate:"omitempty,oneof=csv excel xlsx"`
}

// ResolveDataPath anchors a relative dataset path at the project root.
// Absolute paths pass through cleaned.
func (c *Config) ResolveDataPath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	root := strings.TrimSpace(c.Project.Root)
	if root == "" {
		return filepath.Abs(path)
	}
	return filepath.Abs(filepath.Join(root, path))
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyProjectRoot, "")
	v.SetDefault(KeyRDataBinding, "dta")
	v.SetDefault(KeyExportFormat, "csv")
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# tabload configuration
project:
  # Anchor for relative dataset paths; empty uses the working directory.
  root: ""

load:
  # Binding returned from RData files when no binding option is given.
  rdata_binding: "dta"
  # Field separator override for delimited text files; empty keeps the
  # per-format default (comma for csv, tab for txt/text/tsv).
  delimiter: ""

export:
  # Default output format for the export command: csv, excel, or xlsx.
  format: "csv"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
