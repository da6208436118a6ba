// Package config loads quality threshold configuration. A deployment
// picks one of the built-in profiles (laboratory, field, recon) and may
// override individual metric ladders from a JSON file with the shape
//
//	{"pss": {"g": 1.5, "w": 2.0}, "acc": {"g": 95, "u": 55}}
//
// Metrics omitted from the override file keep the profile values, so
// partial configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/geodesy-data/gravity.report/internal/quality"
	"github.com/geodesy-data/gravity.report/internal/units"
)

var severityCodes = map[string]bool{"g": true, "w": true, "p": true, "b": true, "u": true}

// LoadThresholds returns the named profile with the optional override
// file applied. overridePath may be empty.
func LoadThresholds(profile, overridePath string) (quality.Thresholds, error) {
	base, err := quality.ProfileByName(profile)
	if err != nil {
		return nil, err
	}

	// Copy so overrides never mutate the shared profile tables.
	thresholds := make(quality.Thresholds, len(base))
	for metric, ladder := range base {
		copied := make(quality.Ladder, len(ladder))
		for code, limit := range ladder {
			copied[code] = limit
		}
		thresholds[metric] = copied
	}

	if overridePath == "" {
		return thresholds, nil
	}

	overrides, err := loadOverrideFile(overridePath)
	if err != nil {
		return nil, err
	}
	for metric, ladder := range overrides {
		thresholds[metric] = ladder
	}
	return thresholds, nil
}

// loadOverrideFile reads and validates a threshold override file.
func loadOverrideFile(path string) (quality.Thresholds, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("thresholds file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat thresholds file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("thresholds file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read thresholds file: %w", err)
	}

	var overrides quality.Thresholds
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse thresholds file: %w", err)
	}

	for metric, ladder := range overrides {
		if !units.IsValid(metric) {
			return nil, fmt.Errorf("unknown metric %q in thresholds file (want one of %v)", metric, units.ValidMetrics)
		}
		for code := range ladder {
			if !severityCodes[code] {
				return nil, fmt.Errorf("unknown severity code %q for metric %q (want g, w, p, b or u)", code, metric)
			}
		}
	}
	return overrides, nil
}
