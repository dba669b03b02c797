package app

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/parsum/internal/errors"
)

func newTestApp(t *testing.T, args ...string) *Application {
	t.Helper()
	var errBuf bytes.Buffer
	a, err := New(append([]string{"parsum"}, args...), &errBuf)
	if err != nil {
		t.Fatalf("New(%v) failed: %v\nstderr: %s", args, err, errBuf.String())
	}
	return a
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)

	if a.Config.N != 100 {
		t.Errorf("default N = %d, want 100", a.Config.N)
	}
	if a.Config.Algo != "all" {
		t.Errorf("default algo = %q, want all", a.Config.Algo)
	}
	if a.Config.Workers < 1 {
		t.Errorf("adaptive workers = %d, want >= 1", a.Config.Workers)
	}
	if a.Factory == nil {
		t.Error("expected a default factory")
	}
	if a.Metrics == nil {
		t.Error("expected a default telemetry registry")
	}
}

func TestNew_HelpError(t *testing.T) {
	t.Parallel()
	var errBuf bytes.Buffer
	_, err := New([]string{"parsum", "--help"}, &errBuf)
	if err == nil {
		t.Fatal("expected error for --help")
	}
	if !IsHelpError(err) {
		t.Errorf("IsHelpError(%v) = false, want true", err)
	}
}

func TestNew_ConfigError(t *testing.T) {
	t.Parallel()
	var errBuf bytes.Buffer
	_, err := New([]string{"parsum", "--algo", "bogus"}, &errBuf)
	if err == nil {
		t.Fatal("expected error for unknown strategy")
	}
	if IsHelpError(err) {
		t.Error("config error misclassified as help")
	}
	if StartupExitCode(err) != apperrors.ExitErrorConfig {
		t.Errorf("StartupExitCode = %d, want %d", StartupExitCode(err), apperrors.ExitErrorConfig)
	}
}

func TestStartupExitCode_Generic(t *testing.T) {
	t.Parallel()
	var errBuf bytes.Buffer
	_, err := New([]string{"parsum", "--workers", "notanumber"}, &errBuf)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if code := StartupExitCode(err); code != apperrors.ExitErrorGeneric {
		t.Errorf("StartupExitCode = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
}

func TestRun_Reduce(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, "-n", "100", "--workers", "2")

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d\noutput: %s", code, apperrors.ExitSuccess, out.String())
	}
	if !strings.Contains(out.String(), "5,050") {
		t.Errorf("expected formatted sum 5,050 in output, got:\n%s", out.String())
	}
}

func TestRun_Reduce_Quiet(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, "-n", "10", "--workers", "2", "-q")

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if strings.TrimSpace(out.String()) != "55" {
		t.Errorf("quiet output = %q, want \"55\"", strings.TrimSpace(out.String()))
	}
}

func TestRun_Reduce_DataSpec(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, "--data", "10,-3,5", "--workers", "1", "-q")

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if strings.TrimSpace(out.String()) != "12" {
		t.Errorf("quiet output = %q, want \"12\"", strings.TrimSpace(out.String()))
	}
}

func TestRun_Reduce_SingleStrategy(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, "-n", "50", "--workers", "2", "--algo", "sequential", "-q")

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if strings.TrimSpace(out.String()) != "1275" {
		t.Errorf("quiet output = %q, want \"1275\"", strings.TrimSpace(out.String()))
	}
}

func TestRun_Reduce_OutputFile(t *testing.T) {
	t.Parallel()
	outFile := filepath.Join(t.TempDir(), "result.txt")
	a := newTestApp(t, "-n", "100", "--workers", "2", "-o", outFile)

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if !strings.Contains(out.String(), "Result saved to:") {
		t.Errorf("expected save confirmation in output, got:\n%s", out.String())
	}
}

func TestRun_Reduce_InputFileError(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, "--input", "/nonexistent/data.txt")

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)

	if code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
}

func TestRun_Demo(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, "--demo")

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if !strings.Contains(out.String(), "Final counter value: 5") {
		t.Errorf("expected final counter value in output, got:\n%s", out.String())
	}
}

func TestRun_Demo_Quiet(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, "--demo", "-q")

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if strings.TrimSpace(out.String()) != "5" {
		t.Errorf("quiet demo output = %q, want \"5\"", strings.TrimSpace(out.String()))
	}
}

func TestRun_Timeout(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, "-n", "100", "--workers", "2", "-q")
	a.Config.Timeout = time.Nanosecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	code := a.Run(ctx, &out)

	if code == apperrors.ExitSuccess {
		t.Error("expected failure with cancelled context")
	}
}

func TestRun_Verbose_IncludesTelemetry(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, "-n", "100", "--workers", "2", "-v")

	var out bytes.Buffer
	code := a.Run(context.Background(), &out)

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if !strings.Contains(out.String(), "parsum_reductions_total") {
		t.Errorf("expected telemetry dump in verbose output, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Memory Stats") {
		t.Errorf("expected memory stats in verbose output, got:\n%s", out.String())
	}
}

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-version"}, true},
		{[]string{"-V"}, true},
		{[]string{"-n", "10"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	PrintVersion(&out)
	if !strings.Contains(out.String(), "parsum") {
		t.Errorf("expected version banner to mention parsum, got %q", out.String())
	}
}
