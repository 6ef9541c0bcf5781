// Package run executes the lifecycle of a command: configuration, logging,
// signal handling and exit codes.
package run

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/safing/cfrand/config"
	"github.com/safing/cfrand/log"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// CfgLogLevelKey is the configuration key of the log level.
const CfgLogLevelKey = "log/level"

// ErrUsage is wrapped by errors caused by invalid command line arguments.
var ErrUsage = errors.New("invalid usage")

var (
	printStackOnExit bool
	dotEnvFile       string
	logLevelFlag     string

	logLevel config.StringOption
)

func init() {
	flag.BoolVar(&printStackOnExit, "print-stack-on-exit", false, "prints the stack when interrupted")
	flag.StringVar(&dotEnvFile, "env", "", "load configuration from this .env file instead of ./.env or ../.env")
	flag.StringVar(&logLevelFlag, "log", "", "set log level to [trace|debug|info|warning|error|critical]")

	if err := config.Register(&config.Option{
		Name:            "Log Level",
		Key:             CfgLogLevelKey,
		Description:     "Minimum severity of log lines to write.",
		OptType:         config.OptTypeString,
		DefaultValue:    "info",
		ValidationRegex: "^(trace|debug|info|warning|error|critical)$",
		EnvVar:          "CFRAND_LOG_LEVEL",
	}); err != nil {
		panic(err)
	}
	logLevel = config.GetAsString(CfgLogLevelKey, "info")
}

// Run loads the configuration, starts logging and calls fn with a context
// that is canceled when the program is interrupted. It returns the exit code.
// Call it after flag.Parse and pass the result to os.Exit.
func Run(fn func(ctx context.Context) error) int {
	return run(fn, os.Stderr)
}

func run(fn func(ctx context.Context) error, stderr io.Writer) int {
	// configuration
	files := config.DotEnvCandidates()
	if dotEnvFile != "" {
		files = []string{dotEnvFile}
	}
	if err := config.LoadEnvironment(files...); err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %s\n", err)
		return ExitUsage
	}

	// logging
	level := logLevel()
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	severity := log.ParseLevel(level)
	if severity == 0 {
		fmt.Fprintf(stderr, "invalid log level %q\n", level)
		return ExitUsage
	}
	log.SetLogLevel(severity)
	if err := log.Start(); err != nil && !errors.Is(err, log.ErrAlreadyStarted) {
		fmt.Fprintf(stderr, "failed to start logging: %s\n", err)
		return ExitError
	}
	defer log.Shutdown()

	// catch interrupt for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalCh)
	go func() {
		select {
		case <-signalCh:
			fmt.Fprintln(stderr, " <INTERRUPT>")
			log.Warning("run: program was interrupted, shutting down.")
			if printStackOnExit {
				printStackTo(stderr)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	err := fn(ctx)
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(stderr, "%s\n", err)
		return ExitUsage
	default:
		fmt.Fprintf(stderr, "error: %s\n", err)
		return ExitError
	}
}

func printStackTo(writer io.Writer) {
	fmt.Fprintln(writer, "=== PRINTING TRACES ===")
	fmt.Fprintln(writer, "=== GOROUTINES ===")
	_ = pprof.Lookup("goroutine").WriteTo(writer, 1)
	fmt.Fprintln(writer, "=== BLOCKING ===")
	_ = pprof.Lookup("block").WriteTo(writer, 1)
	fmt.Fprintln(writer, "=== MUTEXES ===")
	_ = pprof.Lookup("mutex").WriteTo(writer, 1)
	fmt.Fprintln(writer, "=== END TRACES ===")
}
