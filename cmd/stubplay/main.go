package main

import (
	"fmt"
	"net/http"
	"os"
	"rpg/internal/stubplay"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var (
		addr    string
		gistTTL time.Duration
	)

	cmd := &cobra.Command{
		Use:   "stubplay",
		Short: "Serve a fake Rust Playground for offline use of rpg",
		Long: `Serves /execute and /meta/gist/ locally. Nothing is compiled: execute
echoes the code back on stdout. Point rpg at it with
  rpg --playground-url http://localhost:8080 run main.rs`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Sync()

			stub := stubplay.New(logger)

			if gistTTL <= 0 {
				return fmt.Errorf("--gist-ttl must be positive")
			}

			// Drop old gists periodically
			go func() {
				for {
					time.Sleep(gistTTL)
					if n := stub.Store.Prune(gistTTL); n > 0 {
						logger.Info("pruned gists", zap.Int("count", n))
					}
				}
			}()

			logger.Info("stub playground starting", zap.String("addr", addr))
			return http.ListenAndServe(addr, stub.Handler())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&gistTTL, "gist-ttl", 30*time.Minute, "how long gists are kept")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
