package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"auction-courier/core/config"
	"auction-courier/core/logger"
	"auction-courier/core/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the courier worker",
	Long:  `Starts the changes-feed consumer and the document transfer bridge and runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Graceful shutdown context. An in-flight event runs to
		// completion; only the whole-event and sleep boundaries observe it.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// 4. Build the pipeline. Initialization failures are fatal here,
		// never mid-loop.
		w, err := buildWorker(ctx, cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize worker", zap.Error(err))
		}

		// 5. Status endpoint
		var app = server.New(w)
		if cfg.Server.Enabled {
			server.Listen(app, cfg.Server, logg)
		}

		// 6. Run until interrupted
		logg.Info("Starting courier worker")
		err = w.Run(ctx)

		logg.Info("Shutting down worker...")
		_ = app.Shutdown()
		return err
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
