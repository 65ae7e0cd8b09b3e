package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mementoapp/memento/internal/access"
	"github.com/mementoapp/memento/internal/apperr"
	"github.com/mementoapp/memento/internal/model"
	"github.com/mementoapp/memento/internal/repository"
)

type AlbumService struct {
	albumRepository       repository.AlbumRepository
	albumMemberRepository repository.AlbumMemberRepository
	userService           *UserService
}

func NewAlbumService(
	albumRepository repository.AlbumRepository,
	albumMemberRepository repository.AlbumMemberRepository,
	userService *UserService,
) *AlbumService {
	return &AlbumService{
		albumRepository:       albumRepository,
		albumMemberRepository: albumMemberRepository,
		userService:           userService,
	}
}

// loadAlbum fetches an album and the principal's standing in it.
func loadAlbum(
	ctx context.Context,
	albums repository.AlbumRepository,
	members repository.AlbumMemberRepository,
	albumID, principal string,
) (*model.Album, access.AlbumFacts, error) {
	album, err := albums.ByID(ctx, albumID)
	if err != nil {
		if errors.Is(err, repository.ErrAlbumNotFound) {
			return nil, access.AlbumFacts{}, apperr.NotFound("Album not found")
		}
		return nil, access.AlbumFacts{}, apperr.Internal("Failed to load album", fmt.Errorf("failed to get album: %w", err))
	}

	facts := access.AlbumFacts{OwnerID: album.OwnerID}
	if principal != album.OwnerID {
		facts.IsMember, err = members.IsMember(ctx, albumID, principal)
		if err != nil {
			return nil, access.AlbumFacts{}, apperr.Internal("Failed to load album", fmt.Errorf("failed to check membership: %w", err))
		}
	}

	return album, facts, nil
}

func (s *AlbumService) Create(ctx context.Context, userID, name string) (*model.Album, error) {
	now := time.Now().UTC()
	album := &model.Album{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		OwnerID:   userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.albumRepository.Create(ctx, album)
	if err != nil {
		return nil, apperr.Internal("Failed to create album", fmt.Errorf("failed to insert album: %w", err))
	}

	slog.Info("album created", "album_id", album.ID, "owner_id", userID)

	return album, nil
}

func (s *AlbumService) Album(ctx context.Context, userID, albumID string) (*model.Album, error) {
	album, facts, err := loadAlbum(ctx, s.albumRepository, s.albumMemberRepository, albumID, userID)
	if err != nil {
		return nil, err
	}

	err = access.Album(userID, access.OpRead, facts)
	if err != nil {
		return nil, err
	}

	return album, nil
}

// Albums lists albums the user owns or belongs to, newest first.
func (s *AlbumService) Albums(ctx context.Context, userID string) ([]*model.Album, error) {
	albums, err := s.albumRepository.ForUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("Failed to list albums", fmt.Errorf("failed to list albums: %w", err))
	}
	return albums, nil
}

// Update renames the album. A nil name leaves the album untouched.
func (s *AlbumService) Update(ctx context.Context, userID, albumID string, name *string) (*model.Album, error) {
	album, facts, err := loadAlbum(ctx, s.albumRepository, s.albumMemberRepository, albumID, userID)
	if err != nil {
		return nil, err
	}

	err = access.Album(userID, access.OpUpdate, facts)
	if err != nil {
		return nil, err
	}

	if name == nil {
		return album, nil
	}

	album.Name = strings.TrimSpace(*name)
	album.UpdatedAt = time.Now().UTC()

	err = s.albumRepository.Update(ctx, album)
	if err != nil {
		if errors.Is(err, repository.ErrAlbumNotFound) {
			return nil, apperr.NotFound("Album not found")
		}
		return nil, apperr.Internal("Failed to update album", fmt.Errorf("failed to update album: %w", err))
	}

	return album, nil
}

func (s *AlbumService) Delete(ctx context.Context, userID, albumID string) error {
	_, facts, err := loadAlbum(ctx, s.albumRepository, s.albumMemberRepository, albumID, userID)
	if err != nil {
		return err
	}

	err = access.Album(userID, access.OpDelete, facts)
	if err != nil {
		return err
	}

	err = s.albumRepository.Delete(ctx, albumID)
	if err != nil {
		if errors.Is(err, repository.ErrAlbumNotFound) {
			return apperr.NotFound("Album not found")
		}
		return apperr.Internal("Failed to delete album", fmt.Errorf("failed to delete album: %w", err))
	}

	slog.Info("album deleted", "album_id", albumID, "owner_id", userID)

	return nil
}

func (s *AlbumService) Members(ctx context.Context, userID, albumID string) ([]*model.AlbumMember, error) {
	_, facts, err := loadAlbum(ctx, s.albumRepository, s.albumMemberRepository, albumID, userID)
	if err != nil {
		return nil, err
	}

	err = access.ListMembers(userID, facts)
	if err != nil {
		return nil, err
	}

	members, err := s.albumMemberRepository.Members(ctx, albumID)
	if err != nil {
		return nil, apperr.Internal("Failed to list members", fmt.Errorf("failed to list members: %w", err))
	}

	return members, nil
}

func (s *AlbumService) AddMember(ctx context.Context, userID, albumID, targetID string) (*model.AlbumMember, error) {
	_, facts, err := loadAlbum(ctx, s.albumRepository, s.albumMemberRepository, albumID, userID)
	if err != nil {
		return nil, err
	}

	// Non-owners are rejected before the target user is looked up.
	err = access.AddMember(userID, facts, targetID, false)
	if err != nil {
		return nil, err
	}

	_, err = s.userService.ByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	isMember, err := s.albumMemberRepository.IsMember(ctx, albumID, targetID)
	if err != nil {
		return nil, apperr.Internal("Failed to add member", fmt.Errorf("failed to check membership: %w", err))
	}

	err = access.AddMember(userID, facts, targetID, isMember)
	if err != nil {
		return nil, err
	}

	member := &model.AlbumMember{
		ID:        uuid.New().String(),
		AlbumID:   albumID,
		UserID:    targetID,
		CreatedAt: time.Now().UTC(),
	}

	err = s.albumMemberRepository.Add(ctx, member)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateMember) {
			return nil, apperr.Conflict("User is already a member of this album")
		}
		return nil, apperr.Internal("Failed to add member", fmt.Errorf("failed to insert member: %w", err))
	}

	slog.Info("album member added", "album_id", albumID, "user_id", targetID)

	return member, nil
}

func (s *AlbumService) RemoveMember(ctx context.Context, userID, albumID, targetID string) error {
	_, facts, err := loadAlbum(ctx, s.albumRepository, s.albumMemberRepository, albumID, userID)
	if err != nil {
		return err
	}

	isMember := false
	if targetID != facts.OwnerID {
		isMember, err = s.albumMemberRepository.IsMember(ctx, albumID, targetID)
		if err != nil {
			return apperr.Internal("Failed to remove member", fmt.Errorf("failed to check membership: %w", err))
		}
	}

	err = access.RemoveMember(userID, facts, targetID, isMember)
	if err != nil {
		return err
	}

	err = s.albumMemberRepository.Remove(ctx, albumID, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return apperr.NotFound("Member not found in album")
		}
		return apperr.Internal("Failed to remove member", fmt.Errorf("failed to delete member: %w", err))
	}

	slog.Info("album member removed", "album_id", albumID, "user_id", targetID)

	return nil
}
