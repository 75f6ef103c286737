// Command randengine generates random numbers and strings, shuffles its
// arguments, or serves the same operations over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/gpahal/randengine/api"
	"github.com/gpahal/randengine/config"
	"github.com/gpahal/randengine/http/server"
	"github.com/gpahal/randengine/log"
	"github.com/gpahal/randengine/random"
)

const usage = `usage: randengine <command> [flags]

commands:
  number   -min N -max N                      print one integer in [min, max]
  numbers  -count N -min N -max N [-shuffle]  print count integers in [min, max]
  char     -classes lower,upper,digit,special print one character
  string   -classes ... -length N             print a string
  shuffle  [items...]                         print the items in random order
  serve    -port N                            serve the generators over HTTP

every command accepts -config path/to/config.json`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type flags struct {
	fs         *flag.FlagSet
	configPath string
	min, max   int
	count      int
	length     int
	port       int
	shuffle    bool
	classes    string
}

func (f *flags) isSet(name string) bool {
	set := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

func (f *flags) intOr(name string, v, def int) int {
	if f.isSet(name) {
		return v
	}
	return def
}

func (f *flags) stringOr(name, v, def string) string {
	if f.isSet(name) {
		return v
	}
	return def
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	cmd := args[0]
	f := &flags{fs: flag.NewFlagSet(cmd, flag.ContinueOnError)}
	f.fs.SetOutput(stderr)
	f.fs.StringVar(&f.configPath, "config", "", "path to a JSON config file")
	switch cmd {
	case "number":
		f.fs.IntVar(&f.min, "min", 0, "lower bound, inclusive")
		f.fs.IntVar(&f.max, "max", 0, "upper bound, inclusive")
	case "numbers":
		f.fs.IntVar(&f.count, "count", 0, "number of integers")
		f.fs.IntVar(&f.min, "min", 0, "lower bound, inclusive")
		f.fs.IntVar(&f.max, "max", 0, "upper bound, inclusive")
		f.fs.BoolVar(&f.shuffle, "shuffle", false, "shuffle the result")
	case "char":
		f.fs.StringVar(&f.classes, "classes", "", "comma separated character classes")
	case "string":
		f.fs.StringVar(&f.classes, "classes", "", "comma separated character classes")
		f.fs.IntVar(&f.length, "length", 0, "string length")
	case "shuffle":
	case "serve":
		f.fs.IntVar(&f.port, "port", 0, "listen port")
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s\n", cmd, usage)
		return 2
	}
	if err := f.fs.Parse(args[1:]); err != nil {
		return 2
	}

	cfg, err := config.Read(f.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}
	logger, err := log.WithLevel(log.New(cfg.Log.Mode, stderr), cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(stderr, "log level: %v\n", err)
		return 1
	}

	if err := execute(ctx, cmd, f, cfg, logger, stdout, stderr); err != nil {
		logger.Error().Err(err).Str("command", cmd).Msg("command failed")
		return 1
	}
	return 0
}

func execute(ctx context.Context, cmd string, f *flags, cfg *config.Config, logger zerolog.Logger, stdout, stderr io.Writer) error {
	min := f.intOr("min", f.min, cfg.Numbers.Min)
	max := f.intOr("max", f.max, cfg.Numbers.Max)

	switch cmd {
	case "number":
		n, err := random.GenerateNumber(min, max)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, n)
		return err

	case "numbers":
		count := f.intOr("count", f.count, cfg.Numbers.Count)
		numbers, err := random.GenerateNumbers(count, min, max, f.shuffle)
		if err != nil {
			return err
		}
		fields := make([]string, len(numbers))
		for i, n := range numbers {
			fields[i] = strconv.Itoa(n)
		}
		_, err = fmt.Fprintln(stdout, strings.Join(fields, " "))
		return err

	case "char":
		classes, err := random.ParseClasses(f.stringOr("classes", f.classes, cfg.Strings.Classes))
		if err != nil {
			return err
		}
		ch, err := random.GenerateChar(classes)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(ch))
		return err

	case "string":
		classes, err := random.ParseClasses(f.stringOr("classes", f.classes, cfg.Strings.Classes))
		if err != nil {
			return err
		}
		s, err := random.GenerateString(classes, f.intOr("length", f.length, cfg.Strings.Length))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, s)
		return err

	case "shuffle":
		_, err := fmt.Fprintln(stdout, strings.Join(random.Shuffle(f.fs.Args()), " "))
		return err

	case "serve":
		return serve(ctx, cfg, f.intOr("port", f.port, cfg.Server.Port), logger, stderr)
	}

	return errors.Errorf("unknown command %q", cmd)
}

func serve(ctx context.Context, cfg *config.Config, port int, logger zerolog.Logger, w io.Writer) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	e := server.NewWithOptions(server.Options{
		Config:       cfg,
		LoggerWriter: w,
		Logger:       &logger,
		Registry:     reg,
	})
	if err := api.Register(e, api.Options{Numbers: cfg.Numbers, Strings: cfg.Strings, Registry: reg}); err != nil {
		return err
	}

	return server.StartWithOptions(ctx, e, port, server.StartOptions{
		GracefulShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
}
