package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/SanteonNL/welfare/cmd/welfare/client"
	"github.com/SanteonNL/welfare/cmd/welfare/config"
	"github.com/SanteonNL/welfare/cmd/welfare/logger"
	"github.com/SanteonNL/welfare/cmd/welfare/session"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// newFetcher builds the fetcher used by serve and search. Tests swap it for a fake.
var newFetcher = func(cfg *config.Config, log zerolog.Logger) (session.Fetcher, error) {
	return client.NewWelfareClient(client.Options{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		MaxRPS:  cfg.MaxRPS,
		Log:     log,
	})
}

// environment is what a command needs once configuration has been resolved.
type environment struct {
	cfg     *config.Config
	log     zerolog.Logger
	fetcher session.Fetcher
	close   func() error
}

// setup loads .env and the environment, then builds the logger and fetcher.
// Logs go to logOut so that command output stays clean.
func setup(logOut io.Writer) (*environment, error) {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, closeLog, err := logger.New(logger.Options{
		Level:    cfg.LogLevel,
		FilePath: cfg.LogFile,
		Out:      logOut,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	fetcher, err := newFetcher(cfg, log)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &environment{cfg: cfg, log: log, fetcher: fetcher, close: closeLog}, nil
}

// NewRootCmd assembles the welfare command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "welfare",
		Short:         "welfare looks up welfare services by category.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newServeCmd(), newSearchCmd(), newCodesCmd())
	return rootCmd
}

func ExecuteContext(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
