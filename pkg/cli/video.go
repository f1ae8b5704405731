package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bstardust/opencamera-meta-export/internal/config"
	"github.com/bstardust/opencamera-meta-export/internal/logger"
	"github.com/bstardust/opencamera-meta-export/internal/srtlog"
)

func newVideoCommand(ctx context.Context, cfg *config.Config) *cobra.Command {
	var writeCSV bool

	cmd := &cobra.Command{
		Use:   "video [flags] <log.srt>",
		Short: "Extract geotag metadata from a video recording log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVideo(cmd.Context(), cfg, args[0], writeCSV)
		},
	}

	cmd.Flags().BoolVar(&writeCSV, "csv", false, "Write the extracted records to a CSV table")
	cmd.Flags().StringVar(&cfg.Export.Dir, "output-dir", cfg.Export.Dir, "Directory for the written table (default: working directory)")
	addUploadFlags(cmd, cfg)

	return cmd
}

func runVideo(ctx context.Context, cfg *config.Config, path string, writeCSV bool) error {
	records, err := srtlog.Extract(path, false)
	if err != nil {
		return err
	}

	if !writeCSV {
		for _, rec := range records {
			printRecord(srtlog.Columns, rec.Values())
		}
		return nil
	}

	table, err := srtlog.WriteTable(records, path, cfg.Export.Dir)
	if err != nil {
		return err
	}
	logger.Info("CSV saved as %s", table)

	if cfg.Export.Upload {
		return uploadTable(ctx, cfg, table)
	}
	return nil
}
