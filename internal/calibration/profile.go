// Package calibration benchmarks worker counts for the parallel reduction
// strategies and caches the result in a JSON profile, so that subsequent
// runs can skip the benchmark when the hardware has not changed.
package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/agbru/parsum/internal/config"
)

// CurrentProfileVersion is bumped whenever the profile format or the
// calibration methodology changes, invalidating older cached profiles.
const CurrentProfileVersion = 1

// DefaultProfileFileName is the profile file created in the home directory.
const DefaultProfileFileName = ".parsum_calibration.json"

// CalibrationProfile stores the outcome of a calibration run together with
// the hardware fingerprint it was measured on.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	// Hardware fingerprint. A profile is only valid on matching hardware.
	NumCPU    int    `json:"num_cpu"`
	GOARCH    string `json:"goarch"`
	GOOS      string `json:"goos"`
	GoVersion string `json:"go_version"`
	WordSize  int    `json:"word_size"`

	// Calibration results.
	OptimalWorkers       int    `json:"optimal_workers"`
	CalibrationInputSize int    `json:"calibration_input_size"`
	CalibrationTime      string `json:"calibration_time"`
}

// NewProfile creates a profile stamped with the current hardware fingerprint.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		CalibratedAt:   time.Now(),
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
	}
}

// SaveProfile writes the profile as indented JSON to the given path,
// creating parent directories as needed.
func (p *CalibrationProfile) SaveProfile(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create profile directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// loadProfile reads and decodes a profile from disk.
func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path, or creates a fresh one when
// the file does not exist or cannot be parsed. The second return value
// reports whether an existing profile was loaded.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	if p, err := loadProfile(path); err == nil {
		return p, true
	}
	return NewProfile(), false
}

// IsValid reports whether the profile was measured on the current hardware
// with the current profile format.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.GOOS == runtime.GOOS &&
		p.WordSize == 32<<(^uint(0)>>63)
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// String returns a human-readable summary of the profile.
func (p *CalibrationProfile) String() string {
	return fmt.Sprintf("calibration profile v%d: workers=%d (measured on %d CPUs, %s/%s, %s at %s)",
		p.ProfileVersion, p.OptimalWorkers, p.NumCPU, p.GOOS, p.GOARCH,
		p.GoVersion, p.CalibratedAt.Format(time.RFC3339))
}

// GetDefaultProfilePath returns the default profile location in the user's
// home directory, falling back to the working directory when the home
// directory cannot be determined.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

// LoadCachedCalibration applies a cached calibration profile to the
// configuration. The profile only fills in the worker count when the user
// did not set one explicitly and the profile is valid for this hardware.
//
// Returns the (possibly updated) configuration and whether the profile was
// applied.
func LoadCachedCalibration(cfg config.AppConfig, path string) (config.AppConfig, bool) {
	if cfg.Workers != 0 {
		return cfg, false
	}
	if path == "" {
		path = GetDefaultProfilePath()
	}
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() || p.OptimalWorkers < 1 {
		return cfg, false
	}
	cfg.Workers = p.OptimalWorkers
	return cfg, true
}
