package surreal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/thinkful-ei22/dan-noteful-4/domain"
)

func (s *Store) Tags(ctx context.Context, userID string) ([]domain.Tag, error) {
	rows, err := queryRows[tagRecord](ctx, s,
		"SELECT * FROM tag WHERE user = $user ORDER BY name ASC",
		map[string]any{"user": userRID(userID)})
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	tags := make([]domain.Tag, 0, len(rows))
	for i := range rows {
		tags = append(tags, rows[i].toDomain())
	}
	return tags, nil
}

func (s *Store) TagByID(ctx context.Context, id, userID string) (*domain.Tag, error) {
	rows, err := queryRows[tagRecord](ctx, s,
		"SELECT * FROM tag WHERE id = $id AND user = $user",
		map[string]any{"id": tagRID(id), "user": userRID(userID)})
	if err != nil {
		return nil, fmt.Errorf("find tag: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.NotFound("Tag not found")
	}
	tag := rows[0].toDomain()
	return &tag, nil
}

func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) (*domain.Tag, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now()

	rec := tagRecord{
		User:      userRID(t.UserID),
		Name:      t.Name,
		CreatedAt: models.CustomDateTime{Time: now},
		UpdatedAt: models.CustomDateTime{Time: now},
	}

	created, err := surrealdb.Create[tagRecord](ctx, s.db, tagRID(t.ID), rec)
	if err != nil {
		if isDuplicate(err) {
			return nil, domain.Conflict("Tag name already exists")
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}
	tag := created.toDomain()
	return &tag, nil
}

func (s *Store) UpdateTag(ctx context.Context, id, userID, name string) (*domain.Tag, error) {
	rows, err := queryRows[tagRecord](ctx, s,
		"UPDATE tag SET name = $name, updated_at = $now WHERE id = $id AND user = $user RETURN AFTER",
		map[string]any{
			"id":   tagRID(id),
			"user": userRID(userID),
			"name": name,
			"now":  models.CustomDateTime{Time: time.Now()},
		})
	if err != nil {
		if isDuplicate(err) {
			return nil, domain.Conflict("Tag name already exists")
		}
		return nil, fmt.Errorf("update tag: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.NotFound("Tag not found")
	}
	tag := rows[0].toDomain()
	return &tag, nil
}

// DeleteTag removes the tag and pulls its id out of the owner's notes' tag
// sets in the same request.
func (s *Store) DeleteTag(ctx context.Context, id, userID string) error {
	const sql = `
		UPDATE note SET tags -= $id WHERE user = $user AND tags CONTAINS $id;
		DELETE tag WHERE id = $id AND user = $user;
	`
	_, err := surrealdb.Query[any](ctx, s.db, sql, map[string]any{
		"id":   tagRID(id),
		"user": userRID(userID),
	})
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

func (s *Store) CountTags(ctx context.Context, ids []string, userID string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.count(ctx,
		"SELECT count() AS count FROM tag WHERE user = $user AND id IN $ids GROUP ALL",
		map[string]any{"ids": tagRIDs(ids), "user": userRID(userID)})
}
