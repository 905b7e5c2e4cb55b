package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"scribble/internal/server"
	"scribble/internal/session"
	"scribble/internal/store"
	"scribble/internal/telemetry"
)

// config holds the parsed CLI configuration for an editor session.
type config struct {
	datapath string
	listen   string
	verbose  bool
}

func parseFlags() config {
	var cfg config

	flag.StringVar(&cfg.datapath, "datapath", "images", "root directory containing images/ (sources) and alpha/ (masks)")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (default \":8675\", or SCRIBBLE_PORT)")
	flag.BoolVar(&cfg.verbose, "verbose", false, "enable detailed logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: scribble [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Scribble serves a browser-based editor for annotating a folder of\n")
		fmt.Fprintf(os.Stderr, "images with binary scribble masks. Masks are written as PNGs to the\n")
		fmt.Fprintf(os.Stderr, "alpha/ directory next to the sources.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return cfg
}

func run(cfg config) error {
	root, err := filepath.Abs(cfg.datapath)
	if err != nil {
		return fmt.Errorf("datapath %q: %w", cfg.datapath, err)
	}

	images := store.NewImageStore(filepath.Join(root, "images"))
	names, err := images.List()
	if err != nil {
		// Covers both a missing images/ directory and one with no
		// supported files; either way the editor refuses to start.
		return err
	}
	masks := store.NewMaskStore(filepath.Join(root, "alpha"))
	maskCount, err := masks.Count()
	if err != nil {
		return err
	}

	if cfg.verbose {
		log.Printf("config: datapath=%s images=%d masks=%d", root, len(names), maskCount)
	}

	ctx := context.Background()
	shutdownTelemetry, err := telemetry.Init(ctx)
	if err != nil {
		log.Printf("telemetry disabled: %v", err)
		shutdownTelemetry = func(context.Context) error { return nil }
	}

	srv := server.New(server.Config{
		Images:      images,
		Masks:       masks,
		Cursor:      session.New(names),
		ProjectPath: root,
		Addr:        cfg.listen,
		Verbose:     cfg.verbose,
	})

	printBanner(root, len(names), maskCount, listenURL(srv.Addr()))
	if err := srv.Start(); err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil && cfg.verbose {
		log.Printf("telemetry shutdown: %v", err)
	}
	return nil
}

// listenURL turns a listen address into something clickable.
func listenURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

func main() {
	cfg := parseFlags()
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "scribble: %v\n", err)
		os.Exit(1)
	}
}
