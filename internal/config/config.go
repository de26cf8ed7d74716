package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pkgdata/pkg/pkgdata"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variables that override the config file.
const (
	EnvFormat = "PKGDATA_FORMAT"
	EnvMarker = "PKGDATA_MARKER"
)

type PackageDataConfig struct {
	Root               string   `yaml:"root,omitempty"`
	Package            string   `yaml:"package,omitempty"`
	Marker             string   `yaml:"marker,omitempty"`
	Exclude            []string `yaml:"exclude,omitempty"`
	ExcludeDirectories []string `yaml:"exclude_directories,omitempty"`
	OnlyInPackages     *bool    `yaml:"only_in_packages,omitempty"`
	ShowIgnored        bool     `yaml:"show_ignored,omitempty"`
	Manifest           string   `yaml:"manifest,omitempty"`
}

type PackagesConfig struct {
	Exclude []string `yaml:"exclude,omitempty"`
}

type BootstrapConfig struct {
	ScriptName  string   `yaml:"script_name,omitempty"`
	Python      string   `yaml:"python,omitempty"`
	EnvDir      string   `yaml:"env_dir,omitempty"`
	Packages    []string `yaml:"packages,omitempty"`
	InstallSelf bool     `yaml:"install_self,omitempty"`
	CommandLine string   `yaml:"command_line,omitempty"`
	EnvFile     string   `yaml:"env_file,omitempty"`
}

type ProjectConfig struct {
	Format      string            `yaml:"format,omitempty"`
	PackageData PackageDataConfig `yaml:"package_data,omitempty"`
	Packages    PackagesConfig    `yaml:"packages,omitempty"`
	Bootstrap   BootstrapConfig   `yaml:"bootstrap,omitempty"`
}

const ConfigFileName = "pkgdata.yaml"

func Load(sourcePath string) (*ProjectConfig, error) {
	configPath := filepath.Join(sourcePath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", configPath, pkgdata.ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// Save writes cfg to the config file in sourcePath, replacing any existing one.
func Save(sourcePath string, cfg *ProjectConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", ConfigFileName, err)
	}
	configPath := filepath.Join(sourcePath, ConfigFileName)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", pkgdata.ErrOutputFailed, configPath, err)
	}
	return nil
}

// LoadDotEnv loads a .env file from sourcePath into the process environment.
// Variables already set are left untouched. A missing file is not an error.
func LoadDotEnv(sourcePath string) error {
	envPath := filepath.Join(sourcePath, ".env")
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(envPath); err != nil {
		return fmt.Errorf("failed to load %s: %w", envPath, err)
	}
	return nil
}

// ApplyEnv overrides config values with PKGDATA_* variables found by lookup.
func (c *ProjectConfig) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvFormat); ok && strings.TrimSpace(v) != "" {
		c.Format = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvMarker); ok && strings.TrimSpace(v) != "" {
		c.PackageData.Marker = strings.TrimSpace(v)
	}
}

// ScanOptions merges the package_data section over the defaults.
// A configured exclude list replaces the standard one.
func (c *ProjectConfig) ScanOptions() pkgdata.ScanOptions {
	opts := pkgdata.DefaultScanOptions()
	pd := c.PackageData

	opts.Package = pd.Package
	opts.ShowIgnored = pd.ShowIgnored
	if pd.Marker != "" {
		opts.Marker = pd.Marker
	}
	if pd.Exclude != nil {
		opts.Exclude = append([]string(nil), pd.Exclude...)
	}
	if pd.ExcludeDirectories != nil {
		opts.ExcludeDirectories = append([]string(nil), pd.ExcludeDirectories...)
	}
	if pd.OnlyInPackages != nil {
		opts.OnlyInPackages = *pd.OnlyInPackages
	}
	return opts
}

// PackageOptions returns the options for package discovery.
func (c *ProjectConfig) PackageOptions() pkgdata.PackageOptions {
	opts := pkgdata.DefaultPackageOptions()
	if c.PackageData.Marker != "" {
		opts.Marker = c.PackageData.Marker
	}
	opts.Exclude = append([]string(nil), c.Packages.Exclude...)
	return opts
}

// Root returns the configured scan root, or the default.
func (c *ProjectConfig) Root() string {
	if c.PackageData.Root != "" {
		return c.PackageData.Root
	}
	return pkgdata.DefaultRoot
}
