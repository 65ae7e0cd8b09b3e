package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/mementoapp/memento/internal/model"
)

// S3Signer hands out presigned PUT URLs for S3-compatible storage.
// Works with AWS S3, MinIO, DigitalOcean Spaces, Cloudflare R2, etc.
type S3Signer struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	presignExpiry time.Duration
	now           func() time.Time
}

// S3Config holds configuration for S3 uploads
type S3Config struct {
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	Endpoint      string // Optional: for S3-compatible services
	PresignExpiry time.Duration
}

// NewS3Signer creates the signer and makes sure the bucket exists.
func NewS3Signer(ctx context.Context, cfg S3Config) (*S3Signer, error) {
	signer, err := newS3Signer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Auto-create bucket if it doesn't exist
	if err := signer.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return signer, nil
}

func newS3Signer(ctx context.Context, cfg S3Config) (*S3Signer, error) {
	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(cfg.Region))

	// Add static credentials if provided
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Create S3 client with optional custom endpoint
	var client *s3.Client
	if cfg.Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // Required for MinIO and some S3-compatible services
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	return &S3Signer{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		presignExpiry: expiry,
		now:           time.Now,
	}, nil
}

// ensureBucket checks if bucket exists, creates it if not
func (s *S3Signer) ensureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %q does not exist and could not be created: %w", s.bucket, err)
	}

	slog.Info("created S3 bucket", "bucket", s.bucket)
	return nil
}

// Sign presigns a PUT for <folder>/<public_id>. The bucket is reported as the
// cloud name and the SigV4 signature is lifted from the presigned URL.
// resourceType does not change the request for S3.
func (s *S3Signer) Sign(ctx context.Context, folder, resourceType string) (*model.UploadSignature, error) {
	publicID := uuid.New().String()
	key := path.Join(folder, publicID)

	presignedReq, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.presignExpiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	parsed, err := url.Parse(presignedReq.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse presigned URL: %w", err)
	}

	return &model.UploadSignature{
		UploadURL: presignedReq.URL,
		CloudName: s.bucket,
		Timestamp: s.now().Unix(),
		Signature: parsed.Query().Get("X-Amz-Signature"),
		Folder:    folder,
		PublicID:  publicID,
	}, nil
}
