//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Command treqa generates question-answer pairs for a parallel corpus and
// scores machine translation output with them.
//
//	treqa [-config file] [-log-level level] [-otlp-endpoint host:port] <command> [flags]
//
// Commands are generate, evaluate and serve.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"trpc.group/trpc-go/trpc-treqa-go/config"
	"trpc.group/trpc-go/trpc-treqa-go/generation"
	"trpc.group/trpc-go/trpc-treqa-go/log"
	ametric "trpc.group/trpc-go/trpc-treqa-go/telemetry/metric"
	atrace "trpc.group/trpc-go/trpc-treqa-go/telemetry/trace"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("treqa: %v", err)
	}
}

// errUsage marks errors already reported with the usage text.
var errUsage = errors.New("invalid usage")

// newGenerator builds the generator of a resolved backend. Tests replace it.
var newGenerator = func(ctx context.Context, b config.Backend) (generation.Generator, error) {
	return b.NewGenerator(ctx)
}

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"generate": {"generate question-answer pairs for a corpus", runGenerate},
	"evaluate": {"score translations", runEvaluate},
	"serve":    {"serve the single-passage evaluation endpoint", runServe},
}

// app carries what every command shares.
type app struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer

	mu   sync.Mutex
	gens map[string]generation.Generator
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("treqa", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	logLevel := fs.String("log-level", "", "debug, info, warn, error or fatal (overrides the config)")
	otlpEndpoint := fs.String("otlp-endpoint", "", "export traces and metrics to this OTLP collector")
	otlpProtocol := fs.String("otlp-protocol", "", "grpc or http")
	fs.Usage = func() { usage(fs) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errUsage
	}
	rest := fs.Args()
	if len(rest) == 0 {
		usage(fs)
		return errUsage
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		usage(fs)
		return fmt.Errorf("%w: unknown command %q", errUsage, rest[0])
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *otlpEndpoint != "" {
		cfg.Telemetry.Endpoint = *otlpEndpoint
	}
	if *otlpProtocol != "" {
		cfg.Telemetry.Protocol = *otlpProtocol
	}
	log.SetLevel(cfg.LogLevel)
	if err := cfg.LoadEnv(); err != nil {
		return err
	}
	shutdown, err := startTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer shutdown()

	a := &app{cfg: cfg, stdout: stdout, stderr: stderr, gens: map[string]generation.Generator{}}
	if err := cmd.run(ctx, a, rest[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%s: %w", rest[0], err)
	}
	return nil
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintln(w, "Usage: treqa [global flags] <command> [flags]")
	fmt.Fprintln(w, "\nCommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-9s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w, "\nGlobal flags:")
	fs.PrintDefaults()
}

// startTelemetry installs OTLP exporters when an endpoint is configured.
// The returned function flushes and stops them.
func startTelemetry(ctx context.Context, t config.Telemetry) (func(), error) {
	if t.Endpoint == "" {
		return func() {}, nil
	}
	opts := []atrace.Option{atrace.WithEndpoint(t.Endpoint), atrace.WithProtocol(t.Protocol)}
	if t.ServiceName != "" {
		opts = append(opts, atrace.WithServiceName(t.ServiceName))
	}
	cleanTrace, err := atrace.Start(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("start tracing: %w", err)
	}
	mopts := []ametric.Option{ametric.WithEndpoint(t.Endpoint), ametric.WithProtocol(t.Protocol)}
	if t.ServiceName != "" {
		mopts = append(mopts, ametric.WithServiceName(t.ServiceName))
	}
	mp, err := ametric.NewMeterProvider(ctx, mopts...)
	if err != nil {
		_ = cleanTrace()
		return nil, fmt.Errorf("start metrics: %w", err)
	}
	if err := ametric.InitMeterProvider(mp); err != nil {
		_ = cleanTrace()
		return nil, fmt.Errorf("start metrics: %w", err)
	}
	log.Infof("telemetry: exporting to %s over %s", t.Endpoint, t.Protocol)
	return func() {
		if err := cleanTrace(); err != nil {
			log.Warnf("telemetry: stop tracing: %v", err)
		}
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Warnf("telemetry: stop metrics: %v", err)
		}
	}, nil
}

// generator returns the generator of the named backend, building it once.
// An empty name selects the configured default backend.
func (a *app) generator(ctx context.Context, name string) (generation.Generator, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if g, ok := a.gens[name]; ok {
		return g, nil
	}
	b, err := a.cfg.Backend(name)
	if err != nil {
		return nil, err
	}
	g, err := newGenerator(ctx, b)
	if err != nil {
		return nil, err
	}
	a.gens[name] = g
	return g, nil
}

// lazyGenerator resolves the backend on first use so components that never
// prompt a model need no backend configuration.
func (a *app) lazyGenerator(name string) generation.Generator {
	return generation.GeneratorFunc(func(ctx context.Context, chats []generation.Chat, dedup bool) ([]string, error) {
		g, err := a.generator(ctx, name)
		if err != nil {
			return nil, err
		}
		return g.Generate(ctx, chats, dedup)
	})
}
