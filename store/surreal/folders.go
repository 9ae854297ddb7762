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

func (s *Store) Folders(ctx context.Context, userID string) ([]domain.Folder, error) {
	rows, err := queryRows[folderRecord](ctx, s,
		"SELECT * FROM folder WHERE user = $user ORDER BY name ASC",
		map[string]any{"user": userRID(userID)})
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	folders := make([]domain.Folder, 0, len(rows))
	for i := range rows {
		folders = append(folders, rows[i].toDomain())
	}
	return folders, nil
}

func (s *Store) FolderByID(ctx context.Context, id, userID string) (*domain.Folder, error) {
	rows, err := queryRows[folderRecord](ctx, s,
		"SELECT * FROM folder WHERE id = $id AND user = $user",
		map[string]any{"id": folderRID(id), "user": userRID(userID)})
	if err != nil {
		return nil, fmt.Errorf("find folder: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.NotFound("Folder not found")
	}
	folder := rows[0].toDomain()
	return &folder, nil
}

func (s *Store) CreateFolder(ctx context.Context, f *domain.Folder) (*domain.Folder, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	now := time.Now()

	rec := folderRecord{
		User:      userRID(f.UserID),
		Name:      f.Name,
		CreatedAt: models.CustomDateTime{Time: now},
		UpdatedAt: models.CustomDateTime{Time: now},
	}

	created, err := surrealdb.Create[folderRecord](ctx, s.db, folderRID(f.ID), rec)
	if err != nil {
		if isDuplicate(err) {
			return nil, domain.Conflict("Folder name already exists")
		}
		return nil, fmt.Errorf("create folder: %w", err)
	}
	folder := created.toDomain()
	return &folder, nil
}

func (s *Store) UpdateFolder(ctx context.Context, id, userID, name string) (*domain.Folder, error) {
	rows, err := queryRows[folderRecord](ctx, s,
		"UPDATE folder SET name = $name, updated_at = $now WHERE id = $id AND user = $user RETURN AFTER",
		map[string]any{
			"id":   folderRID(id),
			"user": userRID(userID),
			"name": name,
			"now":  models.CustomDateTime{Time: time.Now()},
		})
	if err != nil {
		if isDuplicate(err) {
			return nil, domain.Conflict("Folder name already exists")
		}
		return nil, fmt.Errorf("update folder: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.NotFound("Folder not found")
	}
	folder := rows[0].toDomain()
	return &folder, nil
}

// DeleteFolder removes the folder and unsets the reference on any of the
// owner's notes, in a single request so no note keeps a dangling folder.
func (s *Store) DeleteFolder(ctx context.Context, id, userID string) error {
	const sql = `
		UPDATE note SET folder = NONE WHERE user = $user AND folder = $id;
		DELETE folder WHERE id = $id AND user = $user;
	`
	_, err := surrealdb.Query[any](ctx, s.db, sql, map[string]any{
		"id":   folderRID(id),
		"user": userRID(userID),
	})
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	return nil
}

func (s *Store) CountFolders(ctx context.Context, id, userID string) (int, error) {
	return s.count(ctx,
		"SELECT count() AS count FROM folder WHERE id = $id AND user = $user GROUP ALL",
		map[string]any{"id": folderRID(id), "user": userRID(userID)})
}
