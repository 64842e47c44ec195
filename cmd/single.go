package cmd

import (
	"context"
	"log"

	"auction-courier/core/config"
	"auction-courier/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var singleAuctionID string

// singleCmd processes one auction by id and exits.
var singleCmd = &cobra.Command{
	Use:   "single",
	Short: "Process a single auction and exit",
	Long: `Fetches one auction by id and runs it through the dispatch pipeline once.
Useful for replaying an auction the feed already delivered.`,
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

		ctx := context.Background()
		w, err := buildWorker(ctx, cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize worker", zap.Error(err))
		}

		return w.ProcessSingle(ctx, singleAuctionID)
	},
}

func init() {
	singleCmd.Flags().StringVar(&singleAuctionID, "auction", "", "Id of the auction to process")
	_ = singleCmd.MarkFlagRequired("auction")
	RootCmd.AddCommand(singleCmd)
}
