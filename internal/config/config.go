package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/tkhrsasaki/shiftsense/pkg/core/diagnosis"
)

// ThresholdsConfig overrides the diagnosis detection thresholds. Zero
// fields fall back to the built-in defaults.
type ThresholdsConfig struct {
	SevereShortageRatio     float64 `yaml:"severeShortageRatio,omitempty" validate:"omitempty,gt=0,lte=1"`
	SlotMaterialityRatio    float64 `yaml:"slotMaterialityRatio,omitempty" validate:"omitempty,gt=0,lte=1"`
	LeaveConcentrationRatio float64 `yaml:"leaveConcentrationRatio,omitempty" validate:"omitempty,gt=0,lte=1"`
}

// Config represents the application configuration.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string for run history.
	// Optional: without it, diagnosis and evaluation still work but
	// --save and the history command are unavailable.
	DatabaseURL string `yaml:"databaseURL,omitempty"`

	Thresholds ThresholdsConfig `yaml:"thresholds,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from
// shiftsense_config.yaml, searched for in the current directory first,
// then the user's home directory. A missing file yields an all-default
// configuration.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return &Config{}, nil
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific
// path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the configuration struct.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// DiagnosisThresholds converts the configured overrides into the
// diagnosis package's threshold set.
func (c *Config) DiagnosisThresholds() diagnosis.Thresholds {
	defaults := diagnosis.DefaultThresholds()
	t := diagnosis.Thresholds{
		SevereShortageRatio:     c.Thresholds.SevereShortageRatio,
		SlotMaterialityRatio:    c.Thresholds.SlotMaterialityRatio,
		LeaveConcentrationRatio: c.Thresholds.LeaveConcentrationRatio,
	}
	if t.SevereShortageRatio == 0 {
		t.SevereShortageRatio = defaults.SevereShortageRatio
	}
	if t.SlotMaterialityRatio == 0 {
		t.SlotMaterialityRatio = defaults.SlotMaterialityRatio
	}
	if t.LeaveConcentrationRatio == 0 {
		t.LeaveConcentrationRatio = defaults.LeaveConcentrationRatio
	}
	return t
}

// findConfigFile searches for shiftsense_config.yaml in the current
// directory and home directory.
func findConfigFile() (string, error) {
	configFileName := "shiftsense_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
