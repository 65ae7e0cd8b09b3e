package service

import (
	"context"
	"fmt"
	"path"

	"github.com/mementoapp/memento/internal/apperr"
	"github.com/mementoapp/memento/internal/model"
	"github.com/mementoapp/memento/internal/storage"
)

type UploadService struct {
	signer     storage.Signer
	rootFolder string
}

func NewUploadService(signer storage.Signer, rootFolder string) *UploadService {
	return &UploadService{
		signer:     signer,
		rootFolder: rootFolder,
	}
}

// Folder returns the per-user destination for a kind of upload,
// e.g. memento/user_<id>/images.
func (s *UploadService) Folder(userID, kind string) (string, error) {
	switch kind {
	case model.UploadKindImage:
		return path.Join(s.rootFolder, "user_"+userID, "images"), nil
	case model.UploadKindAudio:
		return path.Join(s.rootFolder, "user_"+userID, "audio"), nil
	default:
		return "", apperr.Invalid(fmt.Sprintf("Unsupported upload kind %q", kind))
	}
}

func (s *UploadService) Signature(ctx context.Context, userID, kind string) (*model.UploadSignature, error) {
	folder, err := s.Folder(userID, kind)
	if err != nil {
		return nil, err
	}

	// Audio goes up as a raw asset so the host does not transcode it
	resourceType := storage.ResourceImage
	if kind == model.UploadKindAudio {
		resourceType = storage.ResourceRaw
	}

	signature, err := s.signer.Sign(ctx, folder, resourceType)
	if err != nil {
		return nil, apperr.Internal("Failed to generate upload signature", err)
	}

	return signature, nil
}
