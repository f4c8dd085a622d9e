package main

import (
	"context"
	"fmt"
	"os"

	"github.com/natserract/sfchatter/pkg/config"
	"github.com/natserract/sfchatter/pkg/salesforce"
	"github.com/natserract/sfchatter/pkg/salesforce/chatter"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const maxConcurrentCalls = 4

func main() {
	calls, err := parseCalls(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n%s", err, usage())
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	client := salesforce.NewClientWithLogger(cfg, logger)
	defer client.Close()

	ctx := context.Background()
	if _, err := client.Authenticate(ctx); err != nil {
		logger.Error("Failed to authenticate", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to authenticate: %v\n", err)
		os.Exit(1)
	}

	if _, err := chatter.RegisterWithLogger(client, cfg.PluginName, logger); err != nil {
		logger.Error("Failed to register plugin", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to register plugin: %v\n", err)
		os.Exit(1)
	}

	results := make([]*salesforce.Response, len(calls))
	p := pool.New().WithMaxGoroutines(maxConcurrentCalls).WithErrors()
	for i, c := range calls {
		p.Go(func() error {
			pending, err := client.Call(ctx, cfg.PluginName, c.operation, c.args, nil)
			if err != nil {
				return fmt.Errorf("%s: %w", c.operation, err)
			}
			resp, err := pending.Wait(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", c.operation, err)
			}
			results[i] = resp
			return nil
		})
	}
	callErr := p.Wait()

	for i, resp := range results {
		if resp == nil {
			continue
		}
		fmt.Printf("# %s (%d)\n%s\n", calls[i].operation, resp.StatusCode, string(resp.Body))
	}

	if callErr != nil {
		logger.Error("One or more operations failed", zap.Error(callErr))
		fmt.Fprintf(os.Stderr, "Error: %v\n", callErr)
		client.Close()
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = atomicLevel
	return zcfg.Build()
}
