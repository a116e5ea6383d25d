// Package main is the entry point for the richedit developer tool.
//
// The tool runs the editor's output pipeline over HTML files:
//
//	richedit clean page.html      # strip editing decoration
//	richedit format page.html     # indent for the code view
//	richedit markdown page.html   # export as Markdown
//	richedit watch page.html      # re-clean whenever the file changes
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/dshills/richedit/internal/config"
	"github.com/dshills/richedit/internal/engine/sanitize"
	"github.com/dshills/richedit/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	configPath  string
	logLevel    string
	showVersion bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("richedit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.Usage = func() { usage(fs, stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "richedit %s (commit: %s, built: %s)\n", version, commit, date)
		return exitOK
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		printError(stderr, err)
		return exitError
	}
	log := logging.New(withOutput(cfg.Logging(), stderr)).WithComponent("cli")

	cmd, file := fs.Arg(0), fs.Arg(1)
	if fs.NArg() != 2 {
		fs.Usage()
		return exitUsage
	}

	switch cmd {
	case "clean", "format", "markdown":
		out, err := convertFile(cmd, file)
		if err != nil {
			printError(stderr, err)
			return exitError
		}
		fmt.Fprintln(stdout, out)
		return exitOK
	case "watch":
		if err := watch(ctx, file, stdout, stderr, log); err != nil {
			printError(stderr, err)
			return exitError
		}
		return exitOK
	default:
		printError(stderr, fmt.Errorf("%w: unknown command %q", errUsage, cmd))
		fs.Usage()
		return exitUsage
	}
}

func loadConfig(opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(config.EnvPrefix); err != nil {
		return cfg, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	return cfg, nil
}

func withOutput(lc logging.Config, w io.Writer) logging.Config {
	lc.Output = w
	return lc
}

// convertFile reads file and runs the named output stage over it.
func convertFile(cmd, file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", file, err)
	}
	return convert(cmd, string(data))
}

func convert(cmd, src string) (string, error) {
	switch cmd {
	case "clean":
		return sanitize.CleanString(src), nil
	case "format":
		return sanitize.FormatHTML(sanitize.CleanString(src)), nil
	case "markdown":
		return sanitize.ToMarkdown(sanitize.CleanString(src))
	default:
		return "", fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func printError(w io.Writer, err error) {
	color.New(color.FgRed).Fprintf(w, "Error: %v\n", err)
}

func usage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `richedit - rich-text editor output tools

Usage:
  richedit [options] clean FILE
  richedit [options] format FILE
  richedit [options] markdown FILE
  richedit [options] watch FILE

Options:
`)
	fs.PrintDefaults()
	fmt.Fprintf(w, `
Environment:
  %sLOG_LEVEL and friends override the configuration file.
`, config.EnvPrefix)
}
