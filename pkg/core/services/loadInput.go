package services

import (
	"encoding/json"
	"os"

	"github.com/tkhrsasaki/shiftsense/pkg/core/model"
)

// LoadFacilityConfig reads a facility configuration from a JSON file
// and validates it. Malformed JSON is an InputError; a structurally
// broken configuration is a ConfigurationError.
func LoadFacilityConfig(path string) (*model.FacilityConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.NewInputError("failed to read facility config %s: %v", path, err)
	}

	var cfg model.FacilityConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, model.NewInputError("failed to parse facility config %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadSchedule reads a generated schedule from a JSON file. Only shape
// is checked here; referential integrity against the configuration is
// the evaluator's job.
func LoadSchedule(path string) (*model.Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.NewInputError("failed to read schedule %s: %v", path, err)
	}

	var schedule model.Schedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		return nil, model.NewInputError("failed to parse schedule %s: %v", path, err)
	}
	if _, err := model.ParseMonth(schedule.TargetMonth); err != nil {
		return nil, err
	}
	return &schedule, nil
}
