package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/parsum/internal/config"
	"github.com/agbru/parsum/internal/format"
	"github.com/agbru/parsum/internal/reduce"
	"github.com/agbru/parsum/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the
// user. It shows the input size, worker count, timeout and environment
// details.
//
// Parameters:
//   - cfg: The application configuration.
//   - inputSize: The number of elements in the resolved input.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, inputSize int, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Summing %s%s%s elements with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), format.FormatNumberString(fmt.Sprintf("%d", inputSize)), ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Workers per strategy: %s%d%s.\n",
		ui.ColorCyan(), cfg.Workers, ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single strategy vs
// comparison).
//
// Parameters:
//   - reducers: The slice of strategies that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(reducers []reduce.Reducer, out io.Writer) {
	var modeDesc string
	if len(reducers) > 1 {
		modeDesc = "Parallel comparison of all strategies"
	} else {
		modeDesc = fmt.Sprintf("Single reduction with the %s%s%s strategy",
			ui.ColorGreen(), reducers[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
