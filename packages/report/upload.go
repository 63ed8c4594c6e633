package report

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/0xliangjiang/irys-nft-mint/packages/config"
)

// Uploader ships written report files to an S3 compatible bucket. Upload
// failures are reported to the caller but never affect the batch outcome.
type Uploader struct {
	client *minio.Client
	bucket string
	log    log.Logger
}

// NewUploader builds a client for the configured object store.
func NewUploader(cfg config.UploadConfig, logger log.Logger) (*Uploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object store client: %w", err)
	}
	return &Uploader{
		client: client,
		bucket: cfg.Bucket,
		log:    logger,
	}, nil
}

// Upload stores the report file under its base name. The bucket must already
// exist.
func (u *Uploader) Upload(ctx context.Context, path string) error {
	name := filepath.Base(path)
	info, err := u.client.FPutObject(ctx, u.bucket, name, path, minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload report %s: %w", name, err)
	}
	u.log.Info("report uploaded", "bucket", u.bucket, "object", name, "size", info.Size)
	return nil
}
