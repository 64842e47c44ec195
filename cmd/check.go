package cmd

import (
	"context"
	"log"

	"auction-courier/core/config"
	"auction-courier/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd constructs every client from configuration and exits. It verifies
// the initialization contract (credentials, reachable feed database) without
// consuming anything.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify configuration and client connectivity, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		if _, err := buildWorker(context.Background(), cfg, logg); err != nil {
			return err
		}
		logg.Info("Clients check passed", zap.String("feed", cfg.Feed.URL))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
