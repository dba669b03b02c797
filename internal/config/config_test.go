package config

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/parsum/internal/errors"
)

var testAlgos = []string{"chunked", "strided", "sequential"}

func TestParseConfigDefaults(t *testing.T) {
	var buf bytes.Buffer
	cfg, err := ParseConfig("parsum", nil, &buf, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.N != DefaultN {
		t.Errorf("N = %d, want %d", cfg.N, DefaultN)
	}
	if cfg.Algo != DefaultAlgo {
		t.Errorf("Algo = %q, want %q", cfg.Algo, DefaultAlgo)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want 0 (adaptive)", cfg.Workers)
	}
}

func TestParseConfigFlags(t *testing.T) {
	var buf bytes.Buffer
	args := []string{
		"-n", "1000",
		"--workers", "8",
		"--algo", "chunked",
		"--timeout", "30s",
		"-v",
		"-o", "result.txt",
	}
	cfg, err := ParseConfig("parsum", args, &buf, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.N != 1000 {
		t.Errorf("N = %d, want 1000", cfg.N)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.Algo != "chunked" {
		t.Errorf("Algo = %q, want chunked", cfg.Algo)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if !cfg.Verbose {
		t.Error("Verbose should be true")
	}
	if cfg.OutputFile != "result.txt" {
		t.Errorf("OutputFile = %q, want result.txt", cfg.OutputFile)
	}
}

func TestParseConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"negative workers", []string{"--workers", "-1"}, "workers must be >= 0, got -1"},
		{"unknown algo", []string{"--algo", "bogus"}, `unknown strategy "bogus"`},
		{"zero timeout", []string{"--timeout", "0s"}, "timeout must be positive, got 0s"},
		{"data and input", []string{"--data", "1,2", "--input", "values.txt"}, "mutually exclusive"},
		{"quiet and verbose", []string{"-q", "-v"}, "mutually exclusive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := ParseConfig("parsum", tt.args, &buf, testAlgos)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("ParseConfig(%v) error = %v, want ConfigError", tt.args, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseConfigHelp(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseConfig("parsum", []string{"--help"}, &buf, testAlgos)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("ParseConfig(--help) error = %v, want flag.ErrHelp", err)
	}
	if buf.Len() == 0 {
		t.Error("expected usage output")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"N", "500")
	t.Setenv(EnvPrefix+"ALGO", "strided")
	t.Setenv(EnvPrefix+"WORKERS", "4")
	t.Setenv(EnvPrefix+"QUIET", "yes")

	var buf bytes.Buffer
	cfg, err := ParseConfig("parsum", nil, &buf, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.N != 500 {
		t.Errorf("N = %d, want 500 from env", cfg.N)
	}
	if cfg.Algo != "strided" {
		t.Errorf("Algo = %q, want strided from env", cfg.Algo)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4 from env", cfg.Workers)
	}
	if !cfg.Quiet {
		t.Error("Quiet should be true from env")
	}
}

func TestEnvOverridesFlagPriority(t *testing.T) {
	t.Setenv(EnvPrefix+"N", "500")
	t.Setenv(EnvPrefix+"WORKERS", "4")

	var buf bytes.Buffer
	cfg, err := ParseConfig("parsum", []string{"-n", "42", "--workers", "2"}, &buf, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.N != 42 {
		t.Errorf("N = %d, want 42 (flag wins over env)", cfg.N)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2 (flag wins over env)", cfg.Workers)
	}
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		val        string
		defaultVal bool
		want       bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"garbage", true, true},
		{"garbage", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.val, tt.defaultVal); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.val, tt.defaultVal, got, tt.want)
		}
	}
}

func TestApplyAdaptiveWorkers(t *testing.T) {
	cfg := AppConfig{Workers: 0}
	cfg = ApplyAdaptiveWorkers(cfg)
	if cfg.Workers < 1 {
		t.Errorf("adaptive Workers = %d, want >= 1", cfg.Workers)
	}

	cfg = AppConfig{Workers: 3}
	cfg = ApplyAdaptiveWorkers(cfg)
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3 (explicit value preserved)", cfg.Workers)
	}
}
