package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkful-ei22/dan-noteful-4/domain"
	"github.com/thinkful-ei22/dan-noteful-4/store"
)

func TestCreateUserDuplicateUsername(t *testing.T) {
	st := New()
	ctx := context.Background()

	first, err := st.CreateUser(ctx, &domain.User{Username: "alice", Password: "x"})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	_, err = st.CreateUser(ctx, &domain.User{Username: "alice", Password: "y"})
	require.Error(t, err)
	assert.Equal(t, domain.CodeConflict, domain.CodeOf(err))
}

func TestFolderNameUniquePerUser(t *testing.T) {
	st := New()
	ctx := context.Background()

	_, err := st.CreateFolder(ctx, &domain.Folder{UserID: "u1", Name: "work"})
	require.NoError(t, err)

	_, err = st.CreateFolder(ctx, &domain.Folder{UserID: "u1", Name: "work"})
	assert.Equal(t, domain.CodeConflict, domain.CodeOf(err))

	// Same name under a different owner is fine.
	_, err = st.CreateFolder(ctx, &domain.Folder{UserID: "u2", Name: "work"})
	assert.NoError(t, err)
}

func TestDeleteFolderClearsNoteReferences(t *testing.T) {
	st := New()
	ctx := context.Background()

	folder, err := st.CreateFolder(ctx, &domain.Folder{UserID: "u1", Name: "work"})
	require.NoError(t, err)
	note, err := st.CreateNote(ctx, &domain.Note{UserID: "u1", Title: "t", FolderID: folder.ID})
	require.NoError(t, err)

	require.NoError(t, st.DeleteFolder(ctx, folder.ID, "u1"))

	got, err := st.NoteByID(ctx, note.ID, "u1")
	require.NoError(t, err)
	assert.Empty(t, got.FolderID)

	// Idempotent.
	assert.NoError(t, st.DeleteFolder(ctx, folder.ID, "u1"))
}

func TestDeleteTagPullsFromNotes(t *testing.T) {
	st := New()
	ctx := context.Background()

	keep, err := st.CreateTag(ctx, &domain.Tag{UserID: "u1", Name: "keep"})
	require.NoError(t, err)
	drop, err := st.CreateTag(ctx, &domain.Tag{UserID: "u1", Name: "drop"})
	require.NoError(t, err)
	note, err := st.CreateNote(ctx, &domain.Note{
		UserID: "u1", Title: "t", Tags: []string{keep.ID, drop.ID},
	})
	require.NoError(t, err)

	require.NoError(t, st.DeleteTag(ctx, drop.ID, "u1"))

	got, err := st.NoteByID(ctx, note.ID, "u1")
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, keep.ID, got.Tags[0].ID)
}

func TestCountTagsScopedAndDeduplicated(t *testing.T) {
	st := New()
	ctx := context.Background()

	mine, err := st.CreateTag(ctx, &domain.Tag{UserID: "u1", Name: "go"})
	require.NoError(t, err)
	theirs, err := st.CreateTag(ctx, &domain.Tag{UserID: "u2", Name: "go"})
	require.NoError(t, err)

	count, err := st.CountTags(ctx, []string{mine.ID, theirs.ID}, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = st.CountTags(ctx, []string{mine.ID, mine.ID}, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNotesSearchAndFilters(t *testing.T) {
	st := New()
	ctx := context.Background()

	folder, err := st.CreateFolder(ctx, &domain.Folder{UserID: "u1", Name: "work"})
	require.NoError(t, err)
	tag, err := st.CreateTag(ctx, &domain.Tag{UserID: "u1", Name: "go"})
	require.NoError(t, err)

	_, err = st.CreateNote(ctx, &domain.Note{UserID: "u1", Title: "Foobar plans"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = st.CreateNote(ctx, &domain.Note{
		UserID: "u1", Title: "other", Content: "contains FOO somewhere",
		FolderID: folder.ID, Tags: []string{tag.ID},
	})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = st.CreateNote(ctx, &domain.Note{UserID: "u1", Title: "unrelated"})
	require.NoError(t, err)
	_, err = st.CreateNote(ctx, &domain.Note{UserID: "u2", Title: "foo for someone else"})
	require.NoError(t, err)

	// Case-insensitive substring over title OR content, owner-scoped.
	notes, err := st.Notes(ctx, "u1", store.ListFilter{SearchTerm: "foo"})
	require.NoError(t, err)
	require.Len(t, notes, 2)

	// Newest update first.
	assert.True(t, !notes[0].UpdatedAt.Before(notes[1].UpdatedAt))

	notes, err = st.Notes(ctx, "u1", store.ListFilter{FolderID: folder.ID})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "other", notes[0].Title)

	notes, err = st.Notes(ctx, "u1", store.ListFilter{TagID: tag.ID})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Len(t, notes[0].Tags, 1)
	assert.Equal(t, "go", notes[0].Tags[0].Name)
}

func TestReplaceNoteScopedToOwner(t *testing.T) {
	st := New()
	ctx := context.Background()

	note, err := st.CreateNote(ctx, &domain.Note{UserID: "u1", Title: "before"})
	require.NoError(t, err)

	_, err = st.ReplaceNote(ctx, note.ID, "u2", &domain.Note{Title: "hijacked"})
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))

	got, err := st.NoteByID(ctx, note.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "before", got.Title)

	updated, err := st.ReplaceNote(ctx, note.ID, "u1", &domain.Note{Title: "after"})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, note.ID, updated.ID)
}

func TestDeleteNoteIdempotentAndScoped(t *testing.T) {
	st := New()
	ctx := context.Background()

	note, err := st.CreateNote(ctx, &domain.Note{UserID: "u1", Title: "t"})
	require.NoError(t, err)

	// Foreign owner cannot delete, and the call still succeeds quietly.
	require.NoError(t, st.DeleteNote(ctx, note.ID, "u2"))
	count, err := st.CountNotes(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, st.DeleteNote(ctx, note.ID, "u1"))
	require.NoError(t, st.DeleteNote(ctx, note.ID, "u1"))
	count, err = st.CountNotes(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
