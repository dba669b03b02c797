// Package config defines the application configuration and its resolution
// chain: command-line flags take priority over environment variables, which
// take priority over built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	apperrors "github.com/agbru/parsum/internal/errors"
)

// EnvPrefix is the prefix applied to all environment variable overrides.
const EnvPrefix = "PARSUM_"

// Default configuration values.
const (
	DefaultN       = 100
	DefaultAlgo    = "all"
	DefaultTimeout = 1 * time.Minute
)

// AppConfig holds the complete runtime configuration of the application.
type AppConfig struct {
	// Input selection. InputFile wins over DataSpec, which wins over N.
	N         uint64 // generate the sequence 1..N
	DataSpec  string // inline comma or space separated values
	InputFile string // path to a whitespace separated values file

	// Execution parameters.
	Workers int // worker count per reduction, 0 selects an adaptive value
	Algo    string
	Timeout time.Duration

	// Output control.
	Verbose    bool
	Details    bool
	Quiet      bool
	OutputFile string

	// Calibration.
	Calibrate          bool
	AutoCalibrate      bool
	CalibrationProfile string

	// Modes.
	Demo bool // run the shared counter demonstration and exit
	TUI  bool
}

// ParseConfig parses command-line arguments into an AppConfig, applies
// environment variable overrides for flags left unset and validates the
// result.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The command-line arguments, without the program name.
//   - errWriter: Destination for usage and parse error output.
//   - availableAlgos: The strategy names accepted by --algo, besides "all".
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when --help was requested, a ConfigError for
//     invalid values, or the underlying parse error.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	cfg := AppConfig{
		N:       DefaultN,
		Algo:    DefaultAlgo,
		Timeout: DefaultTimeout,
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.Uint64Var(&cfg.N, "n", cfg.N, "upper bound of the generated sequence 1..N")
	fs.StringVar(&cfg.DataSpec, "data", "", "inline data values, comma or space separated")
	fs.StringVar(&cfg.InputFile, "input", "", "path to a file of whitespace separated values")
	fs.IntVar(&cfg.Workers, "workers", 0, "worker count per reduction (0 = adaptive)")
	fs.StringVar(&cfg.Algo, "algo", cfg.Algo, "reduction strategy to run, or 'all' to cross-check every strategy")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "global execution timeout")

	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "enable verbose output (shorthand)")
	fs.BoolVar(&cfg.Details, "details", false, "show per-strategy timing details")
	fs.BoolVar(&cfg.Details, "d", false, "show per-strategy timing details (shorthand)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "print only the result")
	fs.BoolVar(&cfg.Quiet, "q", false, "print only the result (shorthand)")
	fs.StringVar(&cfg.OutputFile, "output", "", "write the result to a file")
	fs.StringVar(&cfg.OutputFile, "o", "", "write the result to a file (shorthand)")

	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "run the worker count calibration benchmark and exit")
	fs.BoolVar(&cfg.AutoCalibrate, "auto-calibrate", false, "run a quick calibration before the reduction")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", "", "path to the calibration profile file")

	fs.BoolVar(&cfg.Demo, "demo", false, "run the shared counter demonstration and exit")
	fs.BoolVar(&cfg.TUI, "tui", false, "run with the interactive dashboard")

	fs.Usage = func() { printUsage(fs, programName, availableAlgos) }

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := validateConfig(cfg, availableAlgos); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// validateConfig checks the resolved configuration for inconsistencies.
func validateConfig(cfg AppConfig, availableAlgos []string) error {
	if cfg.Workers < 0 {
		return apperrors.NewConfigError("workers must be >= 0, got %d", cfg.Workers)
	}
	if cfg.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %v", cfg.Timeout)
	}
	if cfg.DataSpec != "" && cfg.InputFile != "" {
		return apperrors.NewConfigError("--data and --input are mutually exclusive")
	}
	if cfg.Quiet && cfg.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	if !isValidAlgo(cfg.Algo, availableAlgos) {
		return apperrors.NewConfigError(
			"unknown strategy %q (available: %s, all)", cfg.Algo, strings.Join(sortedCopy(availableAlgos), ", "))
	}
	return nil
}

// isValidAlgo reports whether the algo value names a known strategy or "all".
func isValidAlgo(algo string, availableAlgos []string) bool {
	if algo == "all" {
		return true
	}
	for _, a := range availableAlgos {
		if a == algo {
			return true
		}
	}
	return false
}

func sortedCopy(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	sort.Strings(out)
	return out
}

// printUsage writes the full usage message, including the environment
// variable override table.
func printUsage(fs *flag.FlagSet, programName string, availableAlgos []string) {
	out := fs.Output()
	fmt.Fprintf(out, "Usage: %s [options]\n\n", programName)
	fmt.Fprintf(out, "Parallel integer reduction calculator.\n\n")
	fmt.Fprintf(out, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(out, "\nStrategies: %s, all\n", strings.Join(sortedCopy(availableAlgos), ", "))
	fmt.Fprintf(out, "\nEnvironment variables (overridden by flags):\n")
	fmt.Fprintf(out, "  %sN, %sDATA, %sINPUT, %sWORKERS, %sALGO, %sTIMEOUT,\n",
		EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix)
	fmt.Fprintf(out, "  %sVERBOSE, %sDETAILS, %sQUIET, %sOUTPUT,\n",
		EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix)
	fmt.Fprintf(out, "  %sCALIBRATE, %sAUTO_CALIBRATE, %sCALIBRATION_PROFILE, %sTUI\n",
		EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix)
}
