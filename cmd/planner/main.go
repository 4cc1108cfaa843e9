package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"planner/internal/config"
	"planner/internal/export"
	"planner/internal/logging"
	"planner/internal/planner"
	"planner/internal/storage"
	"planner/internal/ui"
)

// options is the parsed command line: an optional subcommand plus the
// config path, which may be given before or after the subcommand.
type options struct {
	command    string
	configPath string
}

func parseArgs(args []string, output io.Writer) (options, error) {
	opts := options{configPath: config.ResolveConfigPath()}

	fs := newFlagSet("planner", &opts, output)
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return opts, nil
	}

	opts.command = rest[0]
	switch opts.command {
	case "export":
	default:
		fs.Usage()
		return opts, fmt.Errorf("unknown command %q", opts.command)
	}

	sub := newFlagSet("planner "+opts.command, &opts, output)
	if err := sub.Parse(rest[1:]); err != nil {
		return opts, err
	}
	if sub.NArg() > 0 {
		sub.Usage()
		return opts, fmt.Errorf("unexpected arguments: %v", sub.Args())
	}
	return opts, nil
}

func newFlagSet(name string, opts *options, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: planner [-config path] [export [-config path]]\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.configPath, "config", opts.configPath, "path to config.toml")
	return fs
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(2)
	}

	cfg, err := config.LoadOrCreate(opts.configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.Options{Path: cfg.LogPath, Level: cfg.LogLevel})
	if err != nil {
		fmt.Printf("failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	slot, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.NewStore(slot, logger.Logger)
	if err != nil {
		slot.Close()
		fmt.Printf("failed to prepare store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	data := store.Load(context.Background())

	if opts.command == "export" {
		if err := export.WriteYAML(os.Stdout, data); err != nil {
			fmt.Printf("export failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	session := planner.New(data, store, planner.WithLogger(logger.Logger))
	if err := ui.Run(session, cfg, logger.Logger); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}
