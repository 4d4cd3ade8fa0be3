package yamlconfig

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings are the tunable defaults of the tool: which external binaries to
// drive and how long to pause between categories in a run-all sweep. The
// shipped values are configurable defaults, not constants anything depends on.
type Settings struct {
	ScannerBinary string        `yaml:"scanner_binary"`
	ClientBinary  string        `yaml:"client_binary"`
	CloudBinary   string        `yaml:"cloud_binary"`
	InterTestGap  time.Duration `yaml:"inter_test_gap"`
}

// DefaultSettings returns the shipped defaults.
func DefaultSettings() Settings {
	return Settings{
		ScannerBinary: "nmap",
		ClientBinary:  "mysql",
		CloudBinary:   "az",
		InterTestGap:  30 * time.Second,
	}
}

// LoadSettings reads a settings file, filling unset fields from the defaults.
// A missing file yields the defaults without error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings file: %w", err)
	}

	defaults := DefaultSettings()
	if s.ScannerBinary == "" {
		s.ScannerBinary = defaults.ScannerBinary
	}
	if s.ClientBinary == "" {
		s.ClientBinary = defaults.ClientBinary
	}
	if s.CloudBinary == "" {
		s.CloudBinary = defaults.CloudBinary
	}
	if s.InterTestGap <= 0 {
		s.InterTestGap = defaults.InterTestGap
	}
	return s, nil
}
