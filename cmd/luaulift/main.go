package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	luaulift "github.com/wippyai/luau-lift"
	"github.com/wippyai/luau-lift/lift"
)

type options struct {
	file        string
	config      string
	fn          int
	list        bool
	lift        bool
	validate    bool
	layout      bool
	branches    bool
	verbose     bool
	interactive bool
}

func main() {
	var opts options
	flag.StringVar(&opts.file, "file", "", "Path to Luau bytecode file")
	flag.StringVar(&opts.config, "config", "", "Path to config file (default ./"+configName+")")
	flag.IntVar(&opts.fn, "func", -1, "Function index to list (default entry)")
	flag.BoolVar(&opts.list, "list", false, "List functions and exit")
	flag.BoolVar(&opts.lift, "lift", false, "List every function")
	flag.BoolVar(&opts.validate, "validate", false, "Check cross references")
	flag.BoolVar(&opts.layout, "layout", false, "Print the address-space layout")
	flag.BoolVar(&opts.branches, "branches", false, "Print control-flow edges")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	flag.BoolVar(&opts.interactive, "i", false, "Interactive mode with TUI")
	flag.Parse()

	if opts.file == "" {
		fmt.Fprintln(os.Stderr, "Usage: luaulift -file <file.luauc> [-func N] [-branches] [-config luaulift.toml]")
		fmt.Fprintln(os.Stderr, "       luaulift -file <file.luauc> -list | -lift | -validate | -layout")
		fmt.Fprintln(os.Stderr, "       luaulift -file <file.luauc> -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, stdout *os.File) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}
	cfg, err := loadConfig(opts.config, wd)
	if err != nil {
		return err
	}
	if opts.branches {
		cfg.Output.Branches = true
	}

	logger, err := newLogger(cfg.Log.Level, opts.verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()
	lift.SetLogger(logger.Named("lift"))
	if cfg.Path != "" {
		logger.Debug("config loaded", zap.String("path", cfg.Path))
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	prog := luaulift.NewProgram(lift.Config{StrictFloat: cfg.Lift.StrictFloat})
	if _, err := prog.Load(data); err != nil {
		return err
	}

	if opts.interactive {
		return runInteractive(opts.file, prog)
	}

	p := &printer{
		w:        stdout,
		prog:     prog,
		st:       newStyles(colorEnabled(cfg.Output.Color, stdout)),
		ir:       cfg.ShowIR(),
		branches: cfg.Output.Branches,
	}
	return report(p, opts)
}

// report prints the views selected by opts.
func report(p *printer, opts options) error {
	m := p.prog.Module()
	p.summary(opts.file)

	if opts.validate {
		if err := validate(p.w, p.prog); err != nil {
			return err
		}
	}
	if opts.layout {
		p.layout()
	}
	if opts.list {
		p.functions()
		return nil
	}

	if opts.lift {
		for i := range m.Functions {
			if err := p.function(i); err != nil {
				return err
			}
		}
		return nil
	}

	index := opts.fn
	if index < 0 {
		index = m.Entry
	}
	return p.function(index)
}

func validate(w io.Writer, prog *luaulift.Program) error {
	err := prog.Module().Validate()
	if err == nil {
		fmt.Fprintln(w, "Validation: ok")
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		fmt.Fprintf(w, "Validation: %d problem(s)\n", len(merr.Errors))
		for _, e := range merr.Errors {
			fmt.Fprintf(w, "  %v\n", e)
		}
		return fmt.Errorf("validation failed")
	}
	return err
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	if verbose || level == "debug" {
		return zap.NewDevelopment()
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
