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

const audioExistsMessage = "Audio already exists for this image. Use update endpoint to modify it."

type AudioService struct {
	audioRepository       repository.AudioRepository
	imageRepository       repository.ImageRepository
	albumRepository       repository.AlbumRepository
	albumMemberRepository repository.AlbumMemberRepository
}

func NewAudioService(
	audioRepository repository.AudioRepository,
	imageRepository repository.ImageRepository,
	albumRepository repository.AlbumRepository,
	albumMemberRepository repository.AlbumMemberRepository,
) *AudioService {
	return &AudioService{
		audioRepository:       audioRepository,
		imageRepository:       imageRepository,
		albumRepository:       albumRepository,
		albumMemberRepository: albumMemberRepository,
	}
}

func (s *AudioService) loadAudio(ctx context.Context, audioID string) (*model.Audio, error) {
	audio, err := s.audioRepository.ByID(ctx, audioID)
	if err != nil {
		if errors.Is(err, repository.ErrAudioNotFound) {
			return nil, apperr.NotFound("Audio not found")
		}
		return nil, apperr.Internal("Failed to load audio", fmt.Errorf("failed to get audio: %w", err))
	}
	return audio, nil
}

// readFacts loads what a read decision on the image's audio needs.
func (s *AudioService) readFacts(ctx context.Context, userID string, image *model.Image) (access.ImageFacts, error) {
	_, facts, err := loadAlbum(ctx, s.albumRepository, s.albumMemberRepository, image.AlbumID, userID)
	if err != nil {
		return access.ImageFacts{}, err
	}
	return access.ImageFacts{CreatorID: image.UserID, Album: facts}, nil
}

func (s *AudioService) Create(ctx context.Context, userID, imageID, url string) (*model.Audio, error) {
	image, err := loadImage(ctx, s.imageRepository, imageID, "Image not found")
	if err != nil {
		return nil, err
	}

	exists := true
	_, err = s.audioRepository.ByImageID(ctx, imageID)
	if errors.Is(err, repository.ErrAudioNotFound) {
		exists = false
	} else if err != nil {
		return nil, apperr.Internal("Failed to create audio", fmt.Errorf("failed to check audio: %w", err))
	}

	err = access.Audio(userID, access.OpCreate, access.ImageFacts{CreatorID: image.UserID}, exists)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audio := &model.Audio{
		ID:        uuid.New().String(),
		ImageID:   imageID,
		URL:       url,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.audioRepository.Create(ctx, audio)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateAudio) {
			return nil, apperr.Conflict(audioExistsMessage)
		}
		return nil, apperr.Internal("Failed to create audio", fmt.Errorf("failed to insert audio: %w", err))
	}

	return audio, nil
}

func (s *AudioService) Audio(ctx context.Context, userID, audioID string) (*model.Audio, error) {
	audio, err := s.loadAudio(ctx, audioID)
	if err != nil {
		return nil, err
	}

	image, err := loadImage(ctx, s.imageRepository, audio.ImageID, "Associated image not found")
	if err != nil {
		return nil, err
	}

	facts, err := s.readFacts(ctx, userID, image)
	if err != nil {
		return nil, err
	}

	err = access.Audio(userID, access.OpRead, facts, true)
	if err != nil {
		return nil, err
	}

	return audio, nil
}

// AudioByImage returns the audio attached to an image.
func (s *AudioService) AudioByImage(ctx context.Context, userID, imageID string) (*model.Audio, error) {
	image, err := loadImage(ctx, s.imageRepository, imageID, "Image not found")
	if err != nil {
		return nil, err
	}

	facts, err := s.readFacts(ctx, userID, image)
	if err != nil {
		return nil, err
	}

	err = access.Audio(userID, access.OpRead, facts, true)
	if err != nil {
		return nil, err
	}

	audio, err := s.audioRepository.ByImageID(ctx, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrAudioNotFound) {
			return nil, apperr.NotFound("No audio found for this image")
		}
		return nil, apperr.Internal("Failed to load audio", fmt.Errorf("failed to get audio: %w", err))
	}

	return audio, nil
}

// Update replaces the audio URL. A nil url leaves the record untouched.
func (s *AudioService) Update(ctx context.Context, userID, audioID string, url *string) (*model.Audio, error) {
	audio, err := s.loadAudio(ctx, audioID)
	if err != nil {
		return nil, err
	}

	image, err := loadImage(ctx, s.imageRepository, audio.ImageID, "Associated image not found")
	if err != nil {
		return nil, err
	}

	err = access.Audio(userID, access.OpUpdate, access.ImageFacts{CreatorID: image.UserID}, true)
	if err != nil {
		return nil, err
	}

	if url == nil {
		return audio, nil
	}

	audio.URL = *url
	audio.UpdatedAt = time.Now().UTC()

	err = s.audioRepository.Update(ctx, audio)
	if err != nil {
		if errors.Is(err, repository.ErrAudioNotFound) {
			return nil, apperr.NotFound("Audio not found")
		}
		return nil, apperr.Internal("Failed to update audio", fmt.Errorf("failed to update audio: %w", err))
	}

	return audio, nil
}

func (s *AudioService) Delete(ctx context.Context, userID, audioID string) error {
	audio, err := s.loadAudio(ctx, audioID)
	if err != nil {
		return err
	}

	image, err := loadImage(ctx, s.imageRepository, audio.ImageID, "Associated image not found")
	if err != nil {
		return err
	}

	err = access.Audio(userID, access.OpDelete, access.ImageFacts{CreatorID: image.UserID}, true)
	if err != nil {
		return err
	}

	err = s.audioRepository.Delete(ctx, audioID)
	if err != nil {
		if errors.Is(err, repository.ErrAudioNotFound) {
			return apperr.NotFound("Audio not found")
		}
		return apperr.Internal("Failed to delete audio", fmt.Errorf("failed to delete audio: %w", err))
	}

	return nil
}
