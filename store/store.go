// Package store defines the persistence ports for the noteful backend.
// Ownership scoping is part of every signature: reads and writes that take
// a userID only ever touch that user's documents.
package store

import (
	"context"

	"github.com/thinkful-ei22/dan-noteful-4/domain"
)

// ListFilter narrows a note listing. Zero values mean "no constraint".
type ListFilter struct {
	FolderID   string
	TagID      string
	SearchTerm string
}

type Store interface {
	// EnsureSchema defines the store-level uniqueness constraints:
	// username globally, folder and tag names per user.
	EnsureSchema(ctx context.Context) error

	CreateUser(ctx context.Context, u *domain.User) (*domain.User, error)
	UserByUsername(ctx context.Context, username string) (*domain.User, error)

	Folders(ctx context.Context, userID string) ([]domain.Folder, error)
	FolderByID(ctx context.Context, id, userID string) (*domain.Folder, error)
	CreateFolder(ctx context.Context, f *domain.Folder) (*domain.Folder, error)
	UpdateFolder(ctx context.Context, id, userID, name string) (*domain.Folder, error)
	// DeleteFolder removes the folder and clears folderId on the owner's
	// notes that referenced it. Idempotent.
	DeleteFolder(ctx context.Context, id, userID string) error
	CountFolders(ctx context.Context, id, userID string) (int, error)

	Tags(ctx context.Context, userID string) ([]domain.Tag, error)
	TagByID(ctx context.Context, id, userID string) (*domain.Tag, error)
	CreateTag(ctx context.Context, t *domain.Tag) (*domain.Tag, error)
	UpdateTag(ctx context.Context, id, userID, name string) (*domain.Tag, error)
	// DeleteTag removes the tag and pulls its id from the owner's notes'
	// tag sets. Idempotent.
	DeleteTag(ctx context.Context, id, userID string) error
	// CountTags reports how many of ids exist and belong to userID.
	CountTags(ctx context.Context, ids []string, userID string) (int, error)

	Notes(ctx context.Context, userID string, filter ListFilter) ([]domain.PopulatedNote, error)
	NoteByID(ctx context.Context, id, userID string) (*domain.PopulatedNote, error)
	CreateNote(ctx context.Context, n *domain.Note) (*domain.Note, error)
	// ReplaceNote performs a full-document replace scoped to (id, userID).
	ReplaceNote(ctx context.Context, id, userID string, n *domain.Note) (*domain.Note, error)
	DeleteNote(ctx context.Context, id, userID string) error
	// CountNotes counts by id alone; ownership is the replace's concern.
	CountNotes(ctx context.Context, id string) (int, error)

	Close() error
}
