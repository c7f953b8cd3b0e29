package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/SanteonNL/welfare/cmd/welfare/api"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [--addr <host:port>]",
		Short: "Serves the search form over HTTP.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer env.close()

			if addr == "" {
				addr = env.cfg.ListenAddr
			}

			router, err := api.NewWelfareRouter(env.fetcher, env.log)
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           router.SetupRoutes(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return runServer(cmd.Context(), server, env)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides WELFARE_LISTEN_ADDR.")
	return cmd
}

// runServer serves until ctx is cancelled, then shuts the server down gracefully.
func runServer(ctx context.Context, server *http.Server, env *environment) error {
	errCh := make(chan error, 1)
	go func() {
		env.log.Info().Str("addr", server.Addr).Msg("Starting welfare web form")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	env.log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
