// Package settings provides loading and parsing of reportforge.yaml
// settings files. Settings hold the model credential, planner defaults,
// and the print preset used by the PDF-oriented HTML target.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvAPIKey, when set, overrides the api_key value from the file so
// credentials can stay out of checked-in settings.
const EnvAPIKey = "REPORTFORGE_API_KEY"

// Settings represents a reportforge.yaml settings file.
type Settings struct {
	// APIKey is the model provider credential. Prefer the environment
	// variable over storing it here.
	APIKey string `yaml:"api_key,omitempty"`

	// Model is the model name used for test-plan generation.
	Model string `yaml:"model,omitempty"`

	// DefaultIntensity seeds new generator nodes: "focused" or
	// "comprehensive".
	DefaultIntensity string `yaml:"default_intensity,omitempty"`

	// PageSize is the print preset for the HTML document: "A4" or
	// "Letter".
	PageSize string `yaml:"page_size,omitempty"`
}

// Default returns the settings used when no file is present.
func Default() *Settings {
	return &Settings{
		DefaultIntensity: "focused",
		PageSize:         "A4",
	}
}

// Load reads and parses a settings file from the given path. If the
// path is a directory, it looks for reportforge.yaml or reportforge.yml
// in that directory. A missing file yields the defaults rather than an
// error; a malformed file does not.
func Load(path string) (*Settings, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	settingsPath := path
	if info.IsDir() {
		yamlPath := filepath.Join(path, "reportforge.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			settingsPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "reportforge.yml")
			if _, err := os.Stat(ymlPath); err != nil {
				return Default(), nil
			}
			settingsPath = ymlPath
		}
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	s.applyDefaults()
	return s, nil
}

// Validate checks field values. A missing credential is not a
// validation error; generation checks for it at call time.
func (s *Settings) Validate() error {
	switch s.DefaultIntensity {
	case "focused", "comprehensive":
	default:
		return fmt.Errorf("invalid default_intensity: %q", s.DefaultIntensity)
	}
	switch s.PageSize {
	case "A4", "Letter":
	default:
		return fmt.Errorf("invalid page_size: %q", s.PageSize)
	}
	return nil
}

// Credential returns the API key, preferring the environment variable
// over the file value. Empty means no credential is configured.
func (s *Settings) Credential() string {
	if v := os.Getenv(EnvAPIKey); v != "" {
		return v
	}
	return s.APIKey
}

func (s *Settings) applyDefaults() {
	if s.DefaultIntensity == "" {
		s.DefaultIntensity = "focused"
	}
	if s.PageSize == "" {
		s.PageSize = "A4"
	}
}
