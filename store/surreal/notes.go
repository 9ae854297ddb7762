package surreal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/thinkful-ei22/dan-noteful-4/domain"
	"github.com/thinkful-ei22/dan-noteful-4/store"
)

func (s *Store) Notes(ctx context.Context, userID string, filter store.ListFilter) ([]domain.PopulatedNote, error) {
	var sql strings.Builder
	sql.WriteString("SELECT * FROM note WHERE user = $user")
	vars := map[string]any{"user": userRID(userID)}

	if filter.FolderID != "" {
		sql.WriteString(" AND folder = $folder")
		vars["folder"] = folderRID(filter.FolderID)
	}
	if filter.TagID != "" {
		sql.WriteString(" AND tags CONTAINS $tag")
		vars["tag"] = tagRID(filter.TagID)
	}
	if filter.SearchTerm != "" {
		sql.WriteString(" AND (string::contains(string::lowercase(title), $term)")
		sql.WriteString(" OR string::contains(string::lowercase(content ?? ''), $term))")
		vars["term"] = strings.ToLower(filter.SearchTerm)
	}
	sql.WriteString(" ORDER BY updated_at DESC FETCH tags")

	rows, err := queryRows[fetchedNoteRecord](ctx, s, sql.String(), vars)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	notes := make([]domain.PopulatedNote, 0, len(rows))
	for i := range rows {
		notes = append(notes, rows[i].toDomain())
	}
	return notes, nil
}

func (s *Store) NoteByID(ctx context.Context, id, userID string) (*domain.PopulatedNote, error) {
	rows, err := queryRows[fetchedNoteRecord](ctx, s,
		"SELECT * FROM note WHERE id = $id AND user = $user FETCH tags",
		map[string]any{"id": noteRID(id), "user": userRID(userID)})
	if err != nil {
		return nil, fmt.Errorf("find note: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.NotFound("Note not found")
	}
	note := rows[0].toDomain()
	return &note, nil
}

func (s *Store) CreateNote(ctx context.Context, n *domain.Note) (*domain.Note, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	now := time.Now()

	rec := noteRecord{
		User:      userRID(n.UserID),
		Title:     n.Title,
		Content:   n.Content,
		Tags:      tagRIDs(n.Tags),
		CreatedAt: models.CustomDateTime{Time: now},
		UpdatedAt: models.CustomDateTime{Time: now},
	}
	if n.FolderID != "" {
		rid := folderRID(n.FolderID)
		rec.Folder = &rid
	}

	created, err := surrealdb.Create[noteRecord](ctx, s.db, noteRID(n.ID), rec)
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return created.toDomain(), nil
}

// ReplaceNote writes the validated fields over the stored document. The
// WHERE clause scopes the write to the owner; a miss means the note exists
// but belongs to someone else, or vanished since validation.
func (s *Store) ReplaceNote(ctx context.Context, id, userID string, n *domain.Note) (*domain.Note, error) {
	vars := map[string]any{
		"id":      noteRID(id),
		"user":    userRID(userID),
		"title":   n.Title,
		"content": n.Content,
		"tags":    tagRIDs(n.Tags),
		"now":     models.CustomDateTime{Time: time.Now()},
	}
	if n.FolderID != "" {
		vars["folder"] = folderRID(n.FolderID)
	} else {
		vars["folder"] = nil
	}

	rows, err := queryRows[noteRecord](ctx, s,
		`UPDATE note SET title = $title, content = $content, folder = $folder,
			tags = $tags, updated_at = $now
		 WHERE id = $id AND user = $user RETURN AFTER`,
		vars)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.NotFound("Note not found")
	}
	return rows[0].toDomain(), nil
}

func (s *Store) DeleteNote(ctx context.Context, id, userID string) error {
	_, err := surrealdb.Query[any](ctx, s.db,
		"DELETE note WHERE id = $id AND user = $user",
		map[string]any{"id": noteRID(id), "user": userRID(userID)})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func (s *Store) CountNotes(ctx context.Context, id string) (int, error) {
	return s.count(ctx,
		"SELECT count() AS count FROM note WHERE id = $id GROUP ALL",
		map[string]any{"id": noteRID(id)})
}
