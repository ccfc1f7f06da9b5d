package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/rsskit/pkg/config"
	"github.com/umputun/rsskit/pkg/feed"
	"github.com/umputun/rsskit/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"config file, defaults are used if not set"`

	Check   CheckCmd   `command:"check" description:"validate feeds from urls, files or stdin"`
	Convert ConvertCmd `command:"convert" description:"re-emit a feed as canonical rss"`
	Serve   ServeCmd   `command:"serve" description:"run http server"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

// CheckCmd validates many sources concurrently
type CheckCmd struct {
	Jobs int `short:"j" long:"jobs" default:"4" description:"max concurrent checks"`
	Args struct {
		Sources []string `positional-arg-name:"source" required:"1"`
	} `positional-args:"yes" required:"yes"`
}

// ConvertCmd reads one source and writes it back in canonical form
type ConvertCmd struct {
	Output   string `short:"o" long:"output" description:"output file, stdout if not set"`
	Sanitize bool   `long:"sanitize" description:"sanitize html in titles and descriptions"`
	Args     struct {
		Source string `positional-arg-name:"source"`
	} `positional-args:"yes" required:"yes"`
}

// ServeCmd runs the http server
type ServeCmd struct {
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if parser.Active == nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, parser.Active.Name, os.Stdin, os.Stdout)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %s failed: %v", parser.Active.Name, err)
		os.Exit(1)
	}
}

// app holds dependencies shared by commands
type app struct {
	cfg     *config.Config
	fetcher feed.Fetcher
	stdin   io.Reader
	stdout  io.Writer
}

func run(ctx context.Context, opts Opts, command string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a := &app{
		cfg: cfg,
		fetcher: feed.NewHTTPFetcher(feed.FetcherConfig{
			Timeout:    cfg.Fetch.Timeout,
			UserAgent:  cfg.Fetch.UserAgent,
			Retries:    *cfg.Fetch.Retries,
			RetryDelay: cfg.Fetch.RetryDelay,
			MaxSize:    cfg.Fetch.MaxSize,
		}),
		stdin:  stdin,
		stdout: stdout,
	}

	switch command {
	case "check":
		return a.check(ctx, opts.Check)
	case "convert":
		return a.convert(ctx, opts.Convert)
	case "serve":
		return a.serve(ctx, opts.Serve, opts.Debug)
	}
	return fmt.Errorf("unknown command %q", command)
}

type checkResult struct {
	source string
	title  string
	items  int
	err    error
}

// check parses all sources concurrently and prints one line per source in the given order
func (a *app) check(ctx context.Context, cmd CheckCmd) error {
	results := make([]checkResult, len(cmd.Args.Sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cmd.Jobs, 1))
	for i, src := range cmd.Args.Sources {
		g.Go(func() error {
			res := checkResult{source: src}
			f, err := a.load(gctx, src, false)
			if err != nil {
				res.err = err
			} else {
				ch := f.Channel()
				res.title, res.items = ch.Title, len(ch.Items)
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait() // per-source errors are collected in results

	ok, fail := color.New(color.FgGreen), color.New(color.FgRed)
	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
			fail.Fprint(a.stdout, "FAIL") //nolint:errcheck // output to stdout
			fmt.Fprintf(a.stdout, " %s: %v\n", res.source, res.err)
			continue
		}
		ok.Fprint(a.stdout, "OK") //nolint:errcheck // output to stdout
		fmt.Fprintf(a.stdout, "   %s: %q, %d items\n", res.source, res.title, res.items)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d sources failed", failed, len(results))
	}
	return nil
}

// convert writes the canonical form of a single source to the output file or stdout
func (a *app) convert(ctx context.Context, cmd ConvertCmd) error {
	f, err := a.load(ctx, cmd.Args.Source, cmd.Sanitize || a.cfg.Sanitize.Enabled)
	if err != nil {
		return err
	}

	out, err := f.ToXML()
	if err != nil {
		return fmt.Errorf("render %s: %w", cmd.Args.Source, err)
	}

	if cmd.Output == "" {
		if _, err := io.WriteString(a.stdout, out+"\n"); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(cmd.Output, []byte(out+"\n"), 0o600); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Printf("[INFO] converted %s to %s", cmd.Args.Source, cmd.Output)
	return nil
}

func (a *app) serve(ctx context.Context, cmd ServeCmd, debug bool) error {
	srvCfg := a.cfg.Server
	if cmd.Listen != "" {
		srvCfg.Listen = cmd.Listen
	}
	params := server.Params{Config: srvCfg, Fetcher: a.fetcher, Version: revision, Debug: debug}
	if a.cfg.Sanitize.Enabled {
		params.Sanitizer = feed.NewSanitizer()
	}
	log.Printf("[INFO] starting rsskit version %s", revision)
	if err := server.New(params).Run(ctx); err != nil {
		return err
	}
	log.Print("[INFO] shutdown complete")
	return nil
}

// load reads a source: "-" is stdin, http(s) urls are fetched, anything else is a file path
func (a *app) load(ctx context.Context, src string, sanitize bool) (*feed.Feed, error) {
	opts := []feed.Option{feed.WithFetcher(a.fetcher)}
	if sanitize {
		opts = append(opts, feed.WithSanitizer(feed.NewSanitizer()))
	}
	b := feed.NewBuilder(opts...)

	switch {
	case src == "-":
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		b.ReadFromString(string(data))
	case isRemote(src):
		b.ReadFromURL(ctx, src)
	default:
		b.ReadFromFile(src)
	}

	return b.Finalize()
}

func isRemote(src string) bool {
	u, err := url.Parse(src)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
