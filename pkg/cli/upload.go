package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bstardust/opencamera-meta-export/internal/config"
	"github.com/bstardust/opencamera-meta-export/internal/logger"
	"github.com/bstardust/opencamera-meta-export/pkg/s3client"
)

// addUploadFlags wires the S3 connection flags shared by both extractors.
func addUploadFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().BoolVar(&cfg.Export.Upload, "upload", cfg.Export.Upload, "Upload the written table to S3-compatible storage")
	cmd.Flags().StringVar(&cfg.S3.Endpoint, "endpoint", cfg.S3.Endpoint, "S3 endpoint URL")
	cmd.Flags().StringVar(&cfg.S3.Region, "region", cfg.S3.Region, "S3 region")
	cmd.Flags().StringVar(&cfg.S3.Bucket, "bucket", cfg.S3.Bucket, "S3 bucket name")
	cmd.Flags().StringVar(&cfg.S3.AccessKey, "access-key", cfg.S3.AccessKey, "S3 access key")
	cmd.Flags().StringVar(&cfg.S3.SecretKey, "secret-key", cfg.S3.SecretKey, "S3 secret key")
	cmd.Flags().BoolVar(&cfg.S3.UseSSL, "use-ssl", cfg.S3.UseSSL, "Use SSL for S3 connection")
	cmd.Flags().StringVar(&cfg.S3.Prefix, "prefix", cfg.S3.Prefix, "Prefix for S3 object keys")
}

// uploadTable pushes a freshly written table to the configured bucket.
func uploadTable(ctx context.Context, cfg *config.Config, path string) error {
	client, err := s3client.New(ctx, s3client.Config{
		Endpoint:  cfg.S3.Endpoint,
		Region:    cfg.S3.Region,
		Bucket:    cfg.S3.Bucket,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
		Prefix:    cfg.S3.Prefix,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open table %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat table %s: %w", path, err)
	}

	key := filepath.Base(path)
	if err := client.UploadFile(ctx, f, key, info.Size(), s3client.DetectContentType(path)); err != nil {
		return fmt.Errorf("upload table: %s", s3client.FormatError(err))
	}

	logger.Info("Uploaded %s to bucket %s", key, client.GetBucketName())
	return nil
}
