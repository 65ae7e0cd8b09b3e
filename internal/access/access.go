// Package access decides whether a user may act on an album, image or audio
// record. Every function is pure: callers load the ownership and membership
// facts first, and must report a missing resource as not found before asking
// for a decision.
//
// A nil error means ALLOW. A non-nil error is an *apperr.Error whose kind is
// what the caller should surface.
package access

import (
	"github.com/mementoapp/memento/internal/apperr"
)

type Operation int

const (
	OpRead Operation = iota
	OpCreate
	OpUpdate
	OpDelete
)

// AlbumFacts describes an album from the point of view of one principal.
type AlbumFacts struct {
	OwnerID string
	// IsMember reports whether the principal has an explicit membership row.
	IsMember bool
}

// ImageFacts describes an image and the album it belongs to.
type ImageFacts struct {
	CreatorID string
	Album     AlbumFacts
}

// IsAlbumOwner reports whether principal owns the album.
func IsAlbumOwner(principal string, album AlbumFacts) bool {
	return principal != "" && principal == album.OwnerID
}

// CanAccessAlbum is the single "owner OR member" predicate shared by every
// read-level check on albums, images and audio.
func CanAccessAlbum(principal string, album AlbumFacts) bool {
	return IsAlbumOwner(principal, album) || album.IsMember
}

// IsAuthor reports whether principal created the image.
func IsAuthor(principal string, image ImageFacts) bool {
	return principal != "" && principal == image.CreatorID
}

// Album decides read, update and delete on an album.
func Album(principal string, op Operation, album AlbumFacts) error {
	switch op {
	case OpRead:
		if !CanAccessAlbum(principal, album) {
			return apperr.Forbidden("You don't have access to this album")
		}
	case OpUpdate:
		if !IsAlbumOwner(principal, album) {
			return apperr.Forbidden("Only the album owner can update the album")
		}
	case OpDelete:
		if !IsAlbumOwner(principal, album) {
			return apperr.Forbidden("Only the album owner can delete the album")
		}
	default:
		return apperr.Forbidden("Operation not permitted on album")
	}
	return nil
}

// AddMember decides whether principal may add target to the album.
// Re-adding an existing member is an error, not a no-op.
func AddMember(principal string, album AlbumFacts, target string, targetIsMember bool) error {
	if !IsAlbumOwner(principal, album) {
		return apperr.Forbidden("Only the album owner can add members")
	}
	if target == album.OwnerID {
		return apperr.Conflict("Album owner is already a member")
	}
	if targetIsMember {
		return apperr.Conflict("User is already a member of this album")
	}
	return nil
}

// RemoveMember decides whether principal may remove target from the album.
// A target without a membership row is reported as not found even though
// the album exists.
func RemoveMember(principal string, album AlbumFacts, target string, targetIsMember bool) error {
	if !IsAlbumOwner(principal, album) {
		return apperr.Forbidden("Only the album owner can remove members")
	}
	if target == album.OwnerID {
		return apperr.Conflict("Cannot remove the album owner")
	}
	if !targetIsMember {
		return apperr.NotFound("Member not found in album")
	}
	return nil
}

// ListMembers requires the same access as reading the album.
func ListMembers(principal string, album AlbumFacts) error {
	return Album(principal, OpRead, album)
}

// Image decides operations on an image. Creating and reading need album
// access; update and delete are reserved for the image's author, whatever
// the caller's standing in the album.
func Image(principal string, op Operation, image ImageFacts) error {
	switch op {
	case OpCreate:
		if !CanAccessAlbum(principal, image.Album) {
			return apperr.Forbidden("You don't have access to this album")
		}
	case OpRead:
		if !CanAccessAlbum(principal, image.Album) {
			return apperr.Forbidden("You don't have access to this image")
		}
	case OpUpdate:
		if !IsAuthor(principal, image) {
			return apperr.Forbidden("Only the image creator can update the image")
		}
	case OpDelete:
		if !IsAuthor(principal, image) {
			return apperr.Forbidden("Only the image creator can delete the image")
		}
	default:
		return apperr.Forbidden("Operation not permitted on image")
	}
	return nil
}

// ListImages requires album access.
func ListImages(principal string, album AlbumFacts) error {
	if !CanAccessAlbum(principal, album) {
		return apperr.Forbidden("You don't have access to this album")
	}
	return nil
}

// Audio decides operations on the audio attached to image. Reading follows
// the image read rule; everything else is reserved for the image's author.
// audioExists is only consulted for OpCreate, where an image may carry at
// most one audio record.
func Audio(principal string, op Operation, image ImageFacts, audioExists bool) error {
	switch op {
	case OpRead:
		if !CanAccessAlbum(principal, image.Album) {
			return apperr.Forbidden("You don't have access to this audio")
		}
	case OpCreate:
		if !IsAuthor(principal, image) {
			return apperr.Forbidden("Only the image creator can add audio")
		}
		if audioExists {
			return apperr.Conflict("Audio already exists for this image. Use update endpoint to modify it.")
		}
	case OpUpdate:
		if !IsAuthor(principal, image) {
			return apperr.Forbidden("Only the image creator can update the audio")
		}
	case OpDelete:
		if !IsAuthor(principal, image) {
			return apperr.Forbidden("Only the image creator can delete the audio")
		}
	default:
		return apperr.Forbidden("Operation not permitted on audio")
	}
	return nil
}
