package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mementoapp/memento/internal/model"
)

const cloudinaryUploadURL = "https://api.cloudinary.com/v1_1/%s/%s/upload"

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// CloudinarySigner produces signed upload parameters for Cloudinary's
// upload API. Nothing is sent to Cloudinary.
type CloudinarySigner struct {
	cloudName string
	apiKey    string
	apiSecret string
	now       func() time.Time
}

func NewCloudinarySigner(cfg CloudinaryConfig) *CloudinarySigner {
	return &CloudinarySigner{
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		now:       time.Now,
	}
}

func (s *CloudinarySigner) Sign(ctx context.Context, folder, resourceType string) (*model.UploadSignature, error) {
	if s.apiSecret == "" {
		return nil, fmt.Errorf("cloudinary api secret is not configured")
	}

	timestamp := s.now().Unix()
	// public_id makes two signatures issued in the same second differ
	publicID := uuid.New().String()

	signature := s.signParams(map[string]string{
		"folder":    folder,
		"public_id": publicID,
		"timestamp": strconv.FormatInt(timestamp, 10),
	})

	return &model.UploadSignature{
		UploadURL: fmt.Sprintf(cloudinaryUploadURL, s.cloudName, resourceType),
		CloudName: s.cloudName,
		APIKey:    s.apiKey,
		Timestamp: timestamp,
		Signature: signature,
		Folder:    folder,
		PublicID:  publicID,
	}, nil
}

// signParams implements Cloudinary's signing scheme: key=value pairs sorted
// by key, joined with '&', followed by the API secret, SHA-1 hex encoded.
func (s *CloudinarySigner) signParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + s.apiSecret))
	return hex.EncodeToString(sum[:])
}
