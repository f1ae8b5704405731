// pkg/cli/root.go
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bstardust/opencamera-meta-export/internal/config"
	"github.com/bstardust/opencamera-meta-export/internal/logger"
)

func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interruption signals
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalCh
		logger.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	cfg := config.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "opencam-export",
		Short: "Extract OpenCamera geotagging metadata to CSV tables",
		Long: `A tool for extracting the GPS and orientation metadata the OpenCamera app
embeds in photo EXIF blocks and in the subtitle-style logs written next to
video recordings, and exporting it as CSV tables.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(cfgFile, cmd.Flags()); err != nil {
				return err
			}
			logger.SetLevel(cfg.LogLevel)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a config file (default ./opencam-export.yaml)")

	// Add commands
	rootCmd.AddCommand(newImageCommand(ctx, cfg))
	rootCmd.AddCommand(newVideoCommand(ctx, cfg))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("Error executing command: %v", err)
		os.Exit(1)
	}
}
