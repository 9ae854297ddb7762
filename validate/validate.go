// Package validate is the referential-integrity gate run before any note
// mutation. All checks are read-only; callers mutate only after every
// applicable check has passed.
package validate

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/thinkful-ei22/dan-noteful-4/domain"
	"github.com/thinkful-ei22/dan-noteful-4/store"
)

// ValidID reports whether id conforms to the record identifier format.
// Identifiers are UUID strings; anything else is rejected before lookup.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

type Validator struct {
	store store.Store
}

func New(s store.Store) *Validator {
	return &Validator{store: s}
}

// FolderRef checks that folderID, when present, names a folder owned by
// userID. An empty folderID passes trivially.
func (v *Validator) FolderRef(ctx context.Context, folderID, userID string) error {
	if folderID == "" {
		return nil
	}
	if !ValidID(folderID) {
		return domain.InvalidReference("The `folderId` is not valid")
	}

	count, err := v.store.CountFolders(ctx, folderID, userID)
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.InvalidReference("The `folderId` is not valid")
	}
	return nil
}

// TagRefs checks that every id in tagIDs names a tag owned by userID. The
// match count must equal len(tagIDs): duplicates and foreign ids both
// fail, nothing is silently dropped. A nil slice passes trivially.
func (v *Validator) TagRefs(ctx context.Context, tagIDs []string, userID string) error {
	if tagIDs == nil {
		return nil
	}
	for _, id := range tagIDs {
		if !ValidID(id) {
			return domain.InvalidReference("The `tags` array contains an invalid id")
		}
	}
	if len(tagIDs) == 0 {
		return nil
	}

	count, err := v.store.CountTags(ctx, tagIDs, userID)
	if err != nil {
		return err
	}
	if count != len(tagIDs) {
		return domain.InvalidReference("The `tags` array contains an invalid id")
	}
	return nil
}

// NoteExists checks the note id resolves at all. Ownership is not checked
// here; the scoped replace enforces it.
func (v *Validator) NoteExists(ctx context.Context, noteID string) error {
	count, err := v.store.CountNotes(ctx, noteID)
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.NotFound("The `noteId` doesn't exist")
	}
	return nil
}

// NoteRefs runs the folder and tag reference checks, plus the existence
// check when noteID is non-empty, concurrently. The first failure wins and
// the caller performs no mutation.
func (v *Validator) NoteRefs(ctx context.Context, noteID, folderID string, tagIDs []string, userID string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return v.FolderRef(ctx, folderID, userID) })
	g.Go(func() error { return v.TagRefs(ctx, tagIDs, userID) })
	if noteID != "" {
		g.Go(func() error { return v.NoteExists(ctx, noteID) })
	}

	return g.Wait()
}
