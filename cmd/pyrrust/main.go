// Command pyrrust translates the restricted Python subset into the
// restricted Rust subset, either as a single-file translation, a
// directory batch, or a supervisable `serve` daemon. A switch on
// os.Args[1] dispatches to runTranslate, runServe, or the usage text.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"github.com/funvibe/pyrrust/internal/cache"
	"github.com/funvibe/pyrrust/internal/config"
	"github.com/funvibe/pyrrust/internal/diagnostics"
	"github.com/funvibe/pyrrust/internal/driver"
	"github.com/funvibe/pyrrust/internal/rpcserver"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			os.Exit(1)
		}
	}()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load(".pyrrust.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "translate":
		runTranslate(os.Args[2:], cfg)
	case "serve":
		runServe(os.Args[2:])
	case "-help", "--help", "help":
		usage()
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: pyrrust translate <file-or-dir> [--cache path]")
	fmt.Fprintln(os.Stderr, "       pyrrust serve --addr :9090 [--cache path]")
}

// runID identifies one CLI invocation in diagnostic output: never reaches
// emitted Target code, only correlates diagnostics across a batch.
func runID() string {
	return fmt.Sprintf("run-%s", uuid.NewString())
}

func runTranslate(args []string, cfg *config.File) {
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}
	target, cachePath := parseTranslateArgs(args)

	var c *cache.Cache
	if cachePath != "" {
		var err error
		c, err = cache.Open(cachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		defer c.Close()
	}

	id := runID()
	info, err := os.Stat(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[%s] Error: %s\n", id, err)
		os.Exit(1)
	}

	start := time.Now()
	var files []string
	if info.IsDir() {
		config.IsBatchMode = true
		err := filepath.Walk(target, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fi.IsDir() && config.HasSourceExt(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "[%s] Error walking %s: %s\n", id, target, err)
			os.Exit(1)
		}
	} else {
		files = []string{target}
	}

	results := make([]*translateResult, len(files))
	if config.IsBatchMode {
		// Each file gets its own sequentially-run pipeline instance (spec
		// §5's per-function state is already discarded at function
		// boundaries); errgroup only parallelizes across wholly
		// independent files.
		g, ctx := errgroup.WithContext(context.Background())
		for i, f := range files {
			i, f := i, f
			g.Go(func() error {
				results[i] = translateOne(ctx, f, cfg, c, id)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, f := range files {
			results[i] = translateOne(context.Background(), f, cfg, c, id)
		}
	}

	hadErrors := false
	var totalBytes uint64
	for _, r := range results {
		if r == nil {
			continue
		}
		if r.err != nil {
			hadErrors = true
			fmt.Fprintf(os.Stderr, "[%s] Error translating %s: %s\n", id, r.file, r.err)
			continue
		}
		printDiagnostics(id, r.diags)
		if r.hasFatal || r.hasErrors {
			hadErrors = true
			continue
		}
		outPath := config.TrimSourceExt(r.file) + config.TargetFileExt
		if err := os.WriteFile(outPath, []byte(r.output), 0o644); err != nil {
			hadErrors = true
			fmt.Fprintf(os.Stderr, "[%s] Error writing %s: %s\n", id, outPath, err)
			continue
		}
		totalBytes += uint64(len(r.output))
	}

	if config.IsBatchMode {
		fmt.Printf("[%s] translated %d files (%s) in %s\n",
			id, len(files), humanize.Bytes(totalBytes), time.Since(start).Round(time.Millisecond))
	}

	if hadErrors {
		os.Exit(1)
	}
}

type translateResult struct {
	file     string
	output   string
	diags    []*diagnostics.DiagnosticError
	hasFatal bool
	hasErrors bool
	err      error
}

func translateOne(_ context.Context, file string, cfg *config.File, c *cache.Cache, id string) *translateResult {
	source, err := os.ReadFile(file)
	if err != nil {
		return &translateResult{file: file, err: err}
	}

	hash := cache.ContentHash(string(source))
	if c != nil {
		if output, _, ok, _ := c.Lookup(context.Background(), file, hash); ok {
			return &translateResult{file: file, output: output}
		}
	}

	ctx := driver.Translate(file, string(source), cfg)
	res := &translateResult{
		file:      file,
		output:    ctx.Output,
		diags:     ctx.Collector.All(),
		hasFatal:  ctx.Collector.HasFatal(),
		hasErrors: ctx.Collector.HasErrors(),
	}

	if c != nil && !res.hasFatal && !res.hasErrors {
		diagText := renderDiagnostics(res.diags)
		if err := c.Store(context.Background(), file, hash, res.output, diagText); err != nil {
			fmt.Fprintf(os.Stderr, "[%s] Warning: caching %s: %s\n", id, file, err)
		}
	}

	return res
}

func parseTranslateArgs(args []string) (target, cachePath string) {
	for i := 0; i < len(args); i++ {
		if args[i] == "--cache" && i+1 < len(args) {
			cachePath = args[i+1]
			i++
			continue
		}
		if !strings.HasPrefix(args[i], "-") && target == "" {
			target = args[i]
		}
	}
	return target, cachePath
}

func printDiagnostics(id string, diags []*diagnostics.DiagnosticError) {
	for _, d := range diags {
		line := fmt.Sprintf("[%s] %s\n", id, d.Error())
		if colorEnabled() {
			line = colorize(d.Severity, line)
		}
		fmt.Fprint(os.Stderr, line)
	}
}

func renderDiagnostics(diags []*diagnostics.DiagnosticError) string {
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(d.Error())
		b.WriteString("\n")
	}
	return b.String()
}

// colorEnabled reports whether stderr is a real terminal.
func colorEnabled() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func colorize(sev diagnostics.Severity, line string) string {
	const (
		yellow = "\x1b[33m"
		red    = "\x1b[31m"
		reset  = "\x1b[0m"
	)
	if sev == diagnostics.SeverityWarning {
		return yellow + line + reset
	}
	return red + line + reset
}

func runServe(args []string) {
	addr := ":9090"
	cachePath := ""
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--addr":
			if i+1 < len(args) {
				addr = args[i+1]
				i++
			}
		case "--cache":
			if i+1 < len(args) {
				cachePath = args[i+1]
				i++
			}
		}
	}

	var c *cache.Cache
	if cachePath != "" {
		var err error
		c, err = cache.Open(cachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
	}

	srv := rpcserver.New(c)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	id := runID()
	fmt.Printf("[%s] serving gRPC health checks on %s\n", id, addr)

	var wg sync.WaitGroup
	wg.Add(1)
	var serveErr error
	go func() {
		defer wg.Done()
		serveErr = srv.Serve(ctx, addr)
	}()
	wg.Wait()

	if serveErr != nil {
		fmt.Fprintf(os.Stderr, "[%s] Error: %s\n", id, serveErr)
		os.Exit(1)
	}
}
