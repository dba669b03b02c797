// Package app wires configuration, calibration, orchestration and
// presentation into the parsum application. It owns mode dispatch and the
// process exit codes; main stays a thin shell around it.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/parsum/internal/calibration"
	"github.com/agbru/parsum/internal/config"
	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/logging"
	"github.com/agbru/parsum/internal/reduce"
	"github.com/agbru/parsum/internal/telemetry"
	"github.com/agbru/parsum/internal/tui"
	"github.com/agbru/parsum/internal/ui"
)

// Application represents the parsum application instance.
type Application struct {
	Config    config.AppConfig
	Factory   *reduce.Factory
	Metrics   *telemetry.Metrics
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom reducer factory for the application.
func WithFactory(f *reduce.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithMetrics sets a custom telemetry registry for the application.
func WithMetrics(m *telemetry.Metrics) AppOption {
	return func(a *Application) { a.Metrics = m }
}

// WithLogger sets a custom logger for the application.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = reduce.NewDefaultFactory()
	}
	if app.Metrics == nil {
		app.Metrics = telemetry.NewMetrics()
	}
	if app.Logger == nil {
		app.Logger = logging.NewLogger(errWriter, "app")
	}

	availableAlgos := app.Factory.List()

	programName := "parsum"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableAlgos)
	if err != nil {
		return nil, err
	}

	if cfgWithProfile, loaded := calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile); loaded {
		cfg = cfgWithProfile
	} else {
		cfg = config.ApplyAdaptiveWorkers(cfg)
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(false)

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}

	a.Config = a.runAutoCalibrationIfEnabled(ctx, out)

	if a.Config.Demo {
		return a.runDemo(ctx, out)
	}

	if a.Config.TUI {
		return a.runTUI(ctx, out)
	}

	return a.runReduce(ctx, out)
}

// calibrationReducer is the strategy benchmarked by both calibration modes.
// The chunked reduction is the one whose optimum depends on worker count,
// so it drives the profile.
func (a *Application) calibrationReducer() reduce.Reducer {
	if r, err := a.Factory.Get("chunked"); err == nil {
		return r
	}
	return a.Factory.GetAll()[0]
}

// runCalibration runs the full calibration mode.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	return calibration.RunCalibration(ctx, out, a.calibrationReducer(), a.Config.CalibrationProfile)
}

// runAutoCalibrationIfEnabled runs auto-calibration if enabled.
func (a *Application) runAutoCalibrationIfEnabled(ctx context.Context, out io.Writer) config.AppConfig {
	if a.Config.AutoCalibrate {
		if updated, ok := calibration.AutoCalibrate(ctx, a.Config, out, a.calibrationReducer()); ok {
			return updated
		}
	}
	return a.Config
}

// runTUI launches the interactive TUI dashboard.
func (a *Application) runTUI(ctx context.Context, out io.Writer) int {
	data, err := a.resolveInput()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	reducersToRun := a.reducersToRun()
	return tui.Run(ctx, reducersToRun, data, a.Config, Version)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// StartupExitCode maps a New error to the process exit code.
func StartupExitCode(err error) int {
	var cfgErr apperrors.ConfigError
	if errors.As(err, &cfgErr) {
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitErrorGeneric
}
