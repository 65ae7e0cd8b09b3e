package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mementoapp/memento/internal/access"
	"github.com/mementoapp/memento/internal/apperr"
	"github.com/mementoapp/memento/internal/model"
	"github.com/mementoapp/memento/internal/repository"
)

type ImageService struct {
	imageRepository       repository.ImageRepository
	albumRepository       repository.AlbumRepository
	albumMemberRepository repository.AlbumMemberRepository
}

func NewImageService(
	imageRepository repository.ImageRepository,
	albumRepository repository.AlbumRepository,
	albumMemberRepository repository.AlbumMemberRepository,
) *ImageService {
	return &ImageService{
		imageRepository:       imageRepository,
		albumRepository:       albumRepository,
		albumMemberRepository: albumMemberRepository,
	}
}

type NewImage struct {
	AlbumID   string
	ImageURL  string
	Caption   *string
	Latitude  *float64
	Longitude *float64
}

func loadImage(ctx context.Context, images repository.ImageRepository, imageID, notFound string) (*model.Image, error) {
	image, err := images.ByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return nil, apperr.NotFound(notFound)
		}
		return nil, apperr.Internal("Failed to load image", fmt.Errorf("failed to get image: %w", err))
	}
	return image, nil
}

func (s *ImageService) Create(ctx context.Context, userID string, input NewImage) (*model.Image, error) {
	_, facts, err := loadAlbum(ctx, s.albumRepository, s.albumMemberRepository, input.AlbumID, userID)
	if err != nil {
		return nil, err
	}

	err = access.Image(userID, access.OpCreate, access.ImageFacts{CreatorID: userID, Album: facts})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	image := &model.Image{
		ID:        uuid.New().String(),
		AlbumID:   input.AlbumID,
		UserID:    userID,
		Caption:   input.Caption,
		ImageURL:  input.ImageURL,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		DateAdded: now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.imageRepository.Create(ctx, image)
	if err != nil {
		return nil, apperr.Internal("Failed to create image", fmt.Errorf("failed to insert image: %w", err))
	}

	return image, nil
}

func (s *ImageService) Image(ctx context.Context, userID, imageID string) (*model.Image, error) {
	image, err := loadImage(ctx, s.imageRepository, imageID, "Image not found")
	if err != nil {
		return nil, err
	}

	_, facts, err := loadAlbum(ctx, s.albumRepository, s.albumMemberRepository, image.AlbumID, userID)
	if err != nil {
		return nil, err
	}

	err = access.Image(userID, access.OpRead, access.ImageFacts{CreatorID: image.UserID, Album: facts})
	if err != nil {
		return nil, err
	}

	return image, nil
}

// Update applies the non-nil fields of patch. Only the creator may update,
// whatever their standing in the album.
func (s *ImageService) Update(ctx context.Context, userID, imageID string, patch model.ImagePatch) (*model.Image, error) {
	image, err := loadImage(ctx, s.imageRepository, imageID, "Image not found")
	if err != nil {
		return nil, err
	}

	err = access.Image(userID, access.OpUpdate, access.ImageFacts{CreatorID: image.UserID})
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return image, nil
	}

	if patch.Caption != nil {
		image.Caption = patch.Caption
	}
	if patch.ImageURL != nil {
		image.ImageURL = *patch.ImageURL
	}
	if patch.Latitude != nil {
		image.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		image.Longitude = patch.Longitude
	}
	image.UpdatedAt = time.Now().UTC()

	err = s.imageRepository.Update(ctx, image)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return nil, apperr.NotFound("Image not found")
		}
		return nil, apperr.Internal("Failed to update image", fmt.Errorf("failed to update image: %w", err))
	}

	return image, nil
}

func (s *ImageService) Delete(ctx context.Context, userID, imageID string) error {
	image, err := loadImage(ctx, s.imageRepository, imageID, "Image not found")
	if err != nil {
		return err
	}

	err = access.Image(userID, access.OpDelete, access.ImageFacts{CreatorID: image.UserID})
	if err != nil {
		return err
	}

	err = s.imageRepository.Delete(ctx, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return apperr.NotFound("Image not found")
		}
		return apperr.Internal("Failed to delete image", fmt.Errorf("failed to delete image: %w", err))
	}

	return nil
}

// AlbumImages lists an album's images, most recently added first.
func (s *ImageService) AlbumImages(ctx context.Context, userID, albumID string) ([]*model.Image, error) {
	_, facts, err := loadAlbum(ctx, s.albumRepository, s.albumMemberRepository, albumID, userID)
	if err != nil {
		return nil, err
	}

	err = access.ListImages(userID, facts)
	if err != nil {
		return nil, err
	}

	images, err := s.imageRepository.ForAlbum(ctx, albumID)
	if err != nil {
		return nil, apperr.Internal("Failed to list images", fmt.Errorf("failed to list images: %w", err))
	}

	return images, nil
}
