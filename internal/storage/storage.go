package storage

import (
	"context"
	"fmt"
	"log/slog"

	cfg "github.com/mementoapp/memento/internal/config"
	"github.com/mementoapp/memento/internal/model"
)

const (
	ResourceImage = "image"
	ResourceRaw   = "raw"
)

// Signer issues short-lived credentials that let a client upload one file
// straight to the media host.
type Signer interface {
	Sign(ctx context.Context, folder, resourceType string) (*model.UploadSignature, error)
}

// New creates the signer for the configured upload provider.
func New(ctx context.Context, c *cfg.Config) (Signer, error) {
	switch c.UploadProvider {
	case cfg.UploadProviderCloudinary:
		slog.Info("initializing cloudinary upload signer", "cloud_name", c.CloudinaryCloudName)
		return NewCloudinarySigner(CloudinaryConfig{
			CloudName: c.CloudinaryCloudName,
			APIKey:    c.CloudinaryAPIKey,
			APISecret: c.CloudinaryAPISecret,
		}), nil
	case cfg.UploadProviderS3:
		slog.Info("initializing S3 upload signer",
			"bucket", c.S3Bucket,
			"region", c.S3Region,
			"endpoint", c.S3Endpoint,
		)
		return NewS3Signer(ctx, S3Config{
			Region:        c.S3Region,
			Bucket:        c.S3Bucket,
			AccessKey:     c.S3AccessKey,
			SecretKey:     c.S3SecretKey,
			Endpoint:      c.S3Endpoint,
			PresignExpiry: c.S3PresignExpiry,
		})
	default:
		return nil, fmt.Errorf("unknown upload provider %q", c.UploadProvider)
	}
}
