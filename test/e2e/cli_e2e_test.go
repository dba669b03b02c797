package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds the real binary and exercises the main flag scenarios
// end to end.
func TestCLI_E2E(t *testing.T) {
	tmpDir := t.TempDir()
	binName := "parsum"
	if runtime.GOOS == "windows" {
		binName = "parsum.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs with the package directory as CWD; build from the
	// module root two levels up.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/parsum")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build parsum: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Basic Reduction",
			args:     []string{"-n", "100"},
			wantOut:  "5,050",
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "All Strategies Comparison",
			args:     []string{"-n", "1000", "--algo", "all"},
			wantOut:  "500,500",
			wantCode: 0,
		},
		{
			name:     "Single Strategy",
			args:     []string{"-n", "10", "--algo", "sequential", "--quiet"},
			wantOut:  "55",
			wantCode: 0,
		},
		{
			name:     "Quiet Mode",
			args:     []string{"-n", "10", "--quiet"},
			wantOut:  "55",
			wantCode: 0,
		},
		{
			name:     "Inline Data",
			args:     []string{"--data", "10,-3,5", "--quiet"},
			wantOut:  "12",
			wantCode: 0,
		},
		{
			name:     "Counter Demo",
			args:     []string{"--demo", "--quiet"},
			wantOut:  "5",
			wantCode: 0,
		},
		{
			name:     "Unknown Strategy",
			args:     []string{"--algo", "bogus"},
			wantOut:  "",
			wantCode: 4,
		},
		{
			name:     "Invalid Timeout",
			args:     []string{"--timeout", "-1s"},
			wantOut:  "",
			wantCode: 4,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "parsum",
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()

			outStr := string(output)

			if tt.wantCode == 0 {
				if err != nil {
					t.Errorf("Command failed unexpectedly: %v\nOutput: %s", err, outStr)
				}
			} else {
				if err == nil {
					t.Errorf("Expected non-zero exit code, but command succeeded.\nOutput: %s", outStr)
				} else if exitErr, ok := err.(*exec.ExitError); ok {
					if exitErr.ExitCode() != tt.wantCode {
						t.Errorf("Exit code mismatch: got %d, want %d\nOutput: %s",
							exitErr.ExitCode(), tt.wantCode, outStr)
					}
				}
			}

			if tt.wantOut != "" {
				if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
					t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
				}
			}
		})
	}
}
