// Command cfrand prints random values mixed from local entropy and a remote seed.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/safing/cfrand/config"
	"github.com/safing/cfrand/entropy"
	"github.com/safing/cfrand/info"
	"github.com/safing/cfrand/metrics"
	"github.com/safing/cfrand/random"
	"github.com/safing/cfrand/run"
	"github.com/safing/cfrand/seed"
)

var (
	seedURL        string
	timeoutSeconds int
	localSource    string
	printMetrics   bool
	printVersion   bool
)

func init() {
	flag.StringVar(&seedURL, "url", "", "seed source URL, overrides CFRAND_URL")
	flag.IntVar(&timeoutSeconds, "timeout", 0, "seed request timeout in seconds, overrides CFRAND_TIMEOUT_SECONDS")
	flag.StringVar(&localSource, "local", "", `local entropy source, "os" or "fortuna", overrides CFRAND_LOCAL_SOURCE`)
	flag.BoolVar(&printMetrics, "metrics", false, "print metrics to stderr before exiting")
	flag.BoolVar(&printVersion, "version", false, "print version information and exit")
	flag.Usage = usage
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, `Usage: %s [flags] <command> [args]

Commands:
  random                          float in [0, 1)
  uniform A B                     float between A and B
  randint A B                     integer in [A, B]
  randrange [START] STOP [STEP]   element of range(START, STOP, STEP)
  choice ITEM...                  one of the items
  shuffle ITEM...                 the items in random order
  bytes N                         N random bytes, hex encoded
  dump N                          N raw random bytes

Flags:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	info.Set("cfrand", "0.1.0")
	flag.Parse()

	if printVersion {
		fmt.Println(info.FullVersion())
		return
	}

	os.Exit(run.Run(func(ctx context.Context) error {
		err := execute(ctx, os.Stdout, flag.Args())
		if printMetrics {
			metrics.WritePrometheus(os.Stderr, false)
		}
		return err
	}))
}

// applyFlags writes the flags that were set into the configuration.
func applyFlags() error {
	if seedURL != "" {
		if err := config.SetConfigOption(seed.CfgURLKey, seedURL); err != nil {
			return fmt.Errorf("%w: -url: %w", run.ErrUsage, err)
		}
	}
	if timeoutSeconds != 0 {
		if err := config.SetConfigOption(seed.CfgTimeoutSecondsKey, timeoutSeconds); err != nil {
			return fmt.Errorf("%w: -timeout: %w", run.ErrUsage, err)
		}
	}
	if localSource != "" {
		if err := config.SetConfigOption(entropy.CfgLocalSourceKey, localSource); err != nil {
			return fmt.Errorf("%w: -local: %w", run.ErrUsage, err)
		}
	}
	return nil
}

func execute(ctx context.Context, out io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command, see -help", run.ErrUsage)
	}
	cmd, args := args[0], args[1:]
	if _, ok := commands[cmd]; !ok {
		return fmt.Errorf("%w: unknown command %q", run.ErrUsage, cmd)
	}

	if err := applyFlags(); err != nil {
		return err
	}

	g, err := random.NewFromConfig(ctx)
	if err != nil {
		return err
	}
	defer g.Close() //nolint:errcheck // nothing to recover

	return commands[cmd](g, out, args)
}

var commands = map[string]func(g *random.Generator, out io.Writer, args []string) error{
	"random":    cmdRandom,
	"uniform":   cmdUniform,
	"randint":   cmdRandInt,
	"randrange": cmdRandRange,
	"choice":    cmdChoice,
	"shuffle":   cmdShuffle,
	"bytes":     cmdBytes,
	"dump":      cmdDump,
}

func cmdRandom(g *random.Generator, out io.Writer, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: random takes no arguments", run.ErrUsage)
	}

	f, err := g.Random()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, formatFloat(f))
	return err
}

func cmdUniform(g *random.Generator, out io.Writer, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: uniform takes 2 arguments", run.ErrUsage)
	}
	a, err := parseFloat(args[0])
	if err != nil {
		return err
	}
	b, err := parseFloat(args[1])
	if err != nil {
		return err
	}

	f, err := g.Uniform(a, b)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, formatFloat(f))
	return err
}

func cmdRandInt(g *random.Generator, out io.Writer, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: randint takes 2 arguments", run.ErrUsage)
	}
	ints, err := parseInts(args)
	if err != nil {
		return err
	}

	v, err := g.RandInt(ints[0], ints[1])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, v)
	return err
}

func cmdRandRange(g *random.Generator, out io.Writer, args []string) error {
	ints, err := parseInts(args)
	if err != nil {
		return err
	}

	var v int64
	switch len(ints) {
	case 1:
		v, err = g.RandRangeN(ints[0])
	case 2:
		v, err = g.RandRange(ints[0], ints[1], 1)
	case 3:
		v, err = g.RandRange(ints[0], ints[1], ints[2])
	default:
		return fmt.Errorf("%w: randrange takes 1 to 3 arguments", run.ErrUsage)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, v)
	return err
}

func cmdChoice(g *random.Generator, out io.Writer, args []string) error {
	item, err := random.ChoiceWith(g, args)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, item)
	return err
}

func cmdShuffle(g *random.Generator, out io.Writer, args []string) error {
	items := append([]string(nil), args...)
	if err := random.ShuffleWith(g, items); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, strings.Join(items, " "))
	return err
}

func cmdBytes(g *random.Generator, out io.Writer, args []string) error {
	n, err := parseLength(args)
	if err != nil {
		return err
	}

	data, err := g.RandomBytes(n)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hex.EncodeToString(data))
	return err
}

func cmdDump(g *random.Generator, out io.Writer, args []string) error {
	n, err := parseLength(args)
	if err != nil {
		return err
	}

	_, err = io.CopyN(out, g, int64(n))
	return err
}

func parseInts(args []string) ([]int64, error) {
	ints := make([]int64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", run.ErrUsage, arg)
		}
		ints = append(ints, v)
	}
	return ints, nil
}

func parseFloat(arg string) (float64, error) {
	f, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", run.ErrUsage, arg)
	}
	return f, nil
}

func parseLength(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: expected a single length", run.ErrUsage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q is not a valid length", run.ErrUsage, args[0])
	}
	return n, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
