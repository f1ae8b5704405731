package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bstardust/opencamera-meta-export/internal/config"
	"github.com/bstardust/opencamera-meta-export/internal/exifmeta"
	"github.com/bstardust/opencamera-meta-export/internal/fshelper"
	"github.com/bstardust/opencamera-meta-export/internal/logger"
)

func newImageCommand(ctx context.Context, cfg *config.Config) *cobra.Command {
	var writeCSV bool

	cmd := &cobra.Command{
		Use:   "image [flags] <file|dir|glob>...",
		Short: "Extract geotag metadata from camera images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage(cmd.Context(), cfg, args, writeCSV)
		},
	}

	cmd.Flags().BoolVar(&writeCSV, "csv", false, "Write the extracted records to a CSV table")
	cmd.Flags().StringVar(&cfg.Export.Dir, "output-dir", cfg.Export.Dir, "Directory for the written table (default: working directory)")
	addUploadFlags(cmd, cfg)

	return cmd
}

func runImage(ctx context.Context, cfg *config.Config, args []string, writeCSV bool) error {
	paths, err := fshelper.CollectImages(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no images found under %v", args)
	}

	records, err := exifmeta.ExtractBatch(paths, false)
	if err != nil {
		return err
	}

	if !writeCSV {
		for _, rec := range records {
			printRecord(exifmeta.Columns, rec.Values())
		}
		return nil
	}

	table, err := exifmeta.WriteTable(records, cfg.Export.Dir)
	if err != nil {
		return err
	}
	logger.Info("CSV saved as %s", table)

	if cfg.Export.Upload {
		return uploadTable(ctx, cfg, table)
	}
	return nil
}

// printRecord prints the record fields in column order, skipping absent ones.
func printRecord(columns []string, values map[string]string) {
	for _, col := range columns {
		if v, ok := values[col]; ok {
			fmt.Printf("%-12s %s\n", col, v)
		}
	}
	fmt.Println()
}
