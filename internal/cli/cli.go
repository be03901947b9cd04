// Package cli parses command-line arguments, validates user input, and
// translates flags and environment variables into the application's
// configuration. Process-level concerns like exit codes live here too.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/meshkit/meshd/internal/app"
)

// ExitError carries a specific process exit code alongside its message.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// Parse processes command-line arguments into an app.Config. The boolean
// result reports a clean early exit (help requested).
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("meshd", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
meshd - graph composition and execution service

Usage:
  meshd [options]              start the HTTP server
  meshd [options] -graph PATH  execute one description and exit

Options:
`)
		flagSet.PrintDefaults()
	}

	listenFlag := flagSet.String("listen", "", "HTTP listen address (default :8000).")
	dataFlag := flagSet.String("data-path", "", "Base directory for data storage (default ./data).")
	graphFlag := flagSet.String("graph", "", "Path to a .json or .hcl graph description for one-shot execution.")
	inputsFlag := flagSet.String("inputs", "", "Path to a JSON file of external inputs (one-shot mode).")
	envFlag := flagSet.String("env-file", "", "Path to a .env file to load before reading MESHD_* variables.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format: 'text' or 'json' (default json).")
	logLevelFlag := flagSet.String("log-level", "", "Logging level: 'debug', 'info', 'warn', or 'error' (default info).")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if err := loadEnv(*envFlag); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	config, err := app.NewConfig(app.Config{
		ListenAddr: firstNonEmpty(*listenFlag, os.Getenv("MESHD_LISTEN_ADDR")),
		DataPath:   firstNonEmpty(*dataFlag, os.Getenv("MESHD_DATA_PATH")),
		LogFormat:  firstNonEmpty(*logFormatFlag, os.Getenv("MESHD_LOG_FORMAT")),
		LogLevel:   firstNonEmpty(*logLevelFlag, os.Getenv("MESHD_LOG_LEVEL")),
		GraphPath:  *graphFlag,
		InputsPath: *inputsFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}

// loadEnv loads a .env file. An explicit path must exist; the implicit
// default is best-effort.
func loadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading env file %s: %w", path, err)
		}
		return nil
	}
	_ = godotenv.Load()
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
