package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestCloudinarySignerSign(t *testing.T) {
	signer := NewCloudinarySigner(CloudinaryConfig{CloudName: "demo", APIKey: "123456", APISecret: "shh"})
	fixed := time.Unix(1700000000, 0)
	signer.now = func() time.Time { return fixed }

	sig, err := signer.Sign(context.Background(), "memento/user_42/images", ResourceImage)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	if sig.UploadURL != "https://api.cloudinary.com/v1_1/demo/image/upload" {
		t.Errorf("UploadURL = %q", sig.UploadURL)
	}
	if sig.CloudName != "demo" || sig.APIKey != "123456" {
		t.Errorf("CloudName/APIKey = %q/%q", sig.CloudName, sig.APIKey)
	}
	if sig.Timestamp != fixed.Unix() {
		t.Errorf("Timestamp = %d, want %d", sig.Timestamp, fixed.Unix())
	}
	if sig.Folder != "memento/user_42/images" {
		t.Errorf("Folder = %q", sig.Folder)
	}

	payload := "folder=memento/user_42/images&public_id=" + sig.PublicID + "&timestamp=" + strconv.FormatInt(fixed.Unix(), 10) + "shh"
	sum := sha1.Sum([]byte(payload))
	if want := hex.EncodeToString(sum[:]); sig.Signature != want {
		t.Errorf("Signature = %q, want %q", sig.Signature, want)
	}
}

func TestCloudinarySignerDistinctWithinSameSecond(t *testing.T) {
	signer := NewCloudinarySigner(CloudinaryConfig{CloudName: "demo", APIKey: "k", APISecret: "s"})
	fixed := time.Unix(1700000000, 0)
	signer.now = func() time.Time { return fixed }

	first, err := signer.Sign(context.Background(), "memento/user_1/audio", ResourceRaw)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	second, err := signer.Sign(context.Background(), "memento/user_1/audio", ResourceRaw)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	if first.Signature == second.Signature {
		t.Error("signatures issued in the same second must differ")
	}
	if !strings.HasSuffix(first.UploadURL, "/raw/upload") {
		t.Errorf("UploadURL = %q, want raw resource", first.UploadURL)
	}
}

func TestCloudinarySignerRequiresSecret(t *testing.T) {
	signer := NewCloudinarySigner(CloudinaryConfig{CloudName: "demo"})

	_, err := signer.Sign(context.Background(), "memento/user_1/images", ResourceImage)
	if err == nil {
		t.Fatal("Sign() without secret should fail")
	}
}

func TestS3SignerSign(t *testing.T) {
	signer, err := newS3Signer(context.Background(), S3Config{
		Region:        "us-east-1",
		Bucket:        "memento-uploads",
		AccessKey:     "minioadmin",
		SecretKey:     "minioadmin",
		Endpoint:      "http://localhost:9000",
		PresignExpiry: 5 * time.Minute,
	})
	if err != nil {
		t.Fatalf("newS3Signer() error = %v", err)
	}

	sig, err := signer.Sign(context.Background(), "memento/user_7/images", ResourceImage)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	wantPrefix := "http://localhost:9000/memento-uploads/memento/user_7/images/" + sig.PublicID
	if !strings.HasPrefix(sig.UploadURL, wantPrefix) {
		t.Errorf("UploadURL = %q, want prefix %q", sig.UploadURL, wantPrefix)
	}
	if sig.Signature == "" {
		t.Error("Signature is empty")
	}
	if sig.CloudName != "memento-uploads" {
		t.Errorf("CloudName = %q", sig.CloudName)
	}
}
