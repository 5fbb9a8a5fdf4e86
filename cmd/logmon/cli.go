package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"logmon/internal/config"
)

type cliOptions struct {
	configPath string
	overrides  config.Overrides
	help       bool
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("logmon", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.String("file", config.DefaultFilePath, "Log file to scan")
	fs.Int("failed", config.DefaultFailedThreshold, "Alert when failed logins in a run exceed this")
	fs.Bool("no-color", false, "Disable ANSI colors")
	fs.String("config", "", "Optional YAML config file")
	fs.Bool("follow", false, "Keep scanning lines appended to the file")
	fs.Duration("interval", config.DefaultFollowInterval, "Batch interval in follow mode")
	fs.String("state", "", "SQLite file for cumulative counters and the follow cursor")
	fs.Bool("help", false, "Show usage")
	return fs
}

// parseArgs reads the command line. Unknown arguments are dropped rather than
// rejected; a malformed value for a known flag is an error.
func parseArgs(args []string) (cliOptions, error) {
	var opts cliOptions

	fs := newFlagSet()
	if err := fs.Parse(knownArgs(fs, args)); err != nil {
		return opts, fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}

	fs.Visit(func(f *flag.Flag) {
		getter := f.Value.(flag.Getter)
		switch f.Name {
		case "file":
			v := getter.Get().(string)
			opts.overrides.FilePath = &v
		case "failed":
			v := getter.Get().(int)
			opts.overrides.FailedThreshold = &v
		case "no-color":
			opts.overrides.NoColor = getter.Get().(bool)
		case "config":
			opts.configPath = getter.Get().(string)
		case "follow":
			opts.overrides.Follow = getter.Get().(bool)
		case "interval":
			v := getter.Get().(time.Duration)
			opts.overrides.Interval = &v
		case "state":
			v := getter.Get().(string)
			opts.overrides.DBPath = &v
		case "help":
			opts.help = getter.Get().(bool)
		}
	})

	return opts, nil
}

type boolFlag interface {
	IsBoolFlag() bool
}

// knownArgs walks args in order and keeps only exact "--name" tokens for flags
// defined on fs, with their values. Single-dash and "--name=value" forms are
// ignored, as is a value flag given last without its value. Nothing after
// --help is kept, so help wins over any later malformed value.
func knownArgs(fs *flag.FlagSet, args []string) []string {
	var kept []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") || strings.Contains(arg, "=") {
			continue
		}

		f := fs.Lookup(strings.TrimPrefix(arg, "--"))
		if f == nil {
			continue
		}

		if bf, ok := f.Value.(boolFlag); ok && bf.IsBoolFlag() {
			kept = append(kept, arg)
			if f.Name == "help" {
				return kept
			}
			continue
		}
		if i+1 < len(args) {
			kept = append(kept, arg, args[i+1])
			i++
		}
	}
	return kept
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  logmon [--file system.log] [--failed 3] [--no-color]")
	fmt.Fprintln(w, "         [--config logmon.yml] [--follow] [--interval 5s] [--state logmon.db]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	newFlagSet().VisitAll(func(f *flag.Flag) {
		fmt.Fprintf(w, "  --%-10s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
	})
}
