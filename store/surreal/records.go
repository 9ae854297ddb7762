package surreal

import (
	"fmt"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/thinkful-ei22/dan-noteful-4/domain"
)

// Record shapes mirror the stored documents. Timestamps use
// models.CustomDateTime so they round-trip through SurrealDB's native
// datetime type; references are RecordIDs.

type userRecord struct {
	ID       *models.RecordID `json:"id,omitempty"`
	Username string           `json:"username"`
	Password string           `json:"password"`
	Fullname string           `json:"fullname,omitempty"`
}

type folderRecord struct {
	ID        *models.RecordID      `json:"id,omitempty"`
	User      models.RecordID       `json:"user"`
	Name      string                `json:"name"`
	CreatedAt models.CustomDateTime `json:"created_at"`
	UpdatedAt models.CustomDateTime `json:"updated_at"`
}

type tagRecord struct {
	ID        *models.RecordID      `json:"id,omitempty"`
	User      models.RecordID       `json:"user"`
	Name      string                `json:"name"`
	CreatedAt models.CustomDateTime `json:"created_at"`
	UpdatedAt models.CustomDateTime `json:"updated_at"`
}

type noteRecord struct {
	ID        *models.RecordID      `json:"id,omitempty"`
	User      models.RecordID       `json:"user"`
	Title     string                `json:"title"`
	Content   string                `json:"content,omitempty"`
	Folder    *models.RecordID      `json:"folder,omitempty"`
	Tags      []models.RecordID     `json:"tags"`
	CreatedAt models.CustomDateTime `json:"created_at"`
	UpdatedAt models.CustomDateTime `json:"updated_at"`
}

// fetchedNoteRecord is the FETCH tags projection: tag references come back
// as full tag records.
type fetchedNoteRecord struct {
	ID        *models.RecordID      `json:"id,omitempty"`
	User      models.RecordID       `json:"user"`
	Title     string                `json:"title"`
	Content   string                `json:"content,omitempty"`
	Folder    *models.RecordID      `json:"folder,omitempty"`
	Tags      []tagRecord           `json:"tags"`
	CreatedAt models.CustomDateTime `json:"created_at"`
	UpdatedAt models.CustomDateTime `json:"updated_at"`
}

func ridString(rid *models.RecordID) string {
	if rid == nil {
		return ""
	}
	return fmt.Sprint(rid.ID)
}

func userRID(id string) models.RecordID   { return models.NewRecordID("user", id) }
func folderRID(id string) models.RecordID { return models.NewRecordID("folder", id) }
func tagRID(id string) models.RecordID    { return models.NewRecordID("tag", id) }
func noteRID(id string) models.RecordID   { return models.NewRecordID("note", id) }

func tagRIDs(ids []string) []models.RecordID {
	rids := make([]models.RecordID, 0, len(ids))
	for _, id := range ids {
		rids = append(rids, tagRID(id))
	}
	return rids
}

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:       ridString(r.ID),
		Username: r.Username,
		Password: r.Password,
		Fullname: r.Fullname,
	}
}

func (r *folderRecord) toDomain() domain.Folder {
	return domain.Folder{
		ID:        ridString(r.ID),
		UserID:    ridString(&r.User),
		Name:      r.Name,
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
}

func (r *tagRecord) toDomain() domain.Tag {
	return domain.Tag{
		ID:        ridString(r.ID),
		UserID:    ridString(&r.User),
		Name:      r.Name,
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
}

func (r *noteRecord) toDomain() *domain.Note {
	n := &domain.Note{
		ID:        ridString(r.ID),
		UserID:    ridString(&r.User),
		Title:     r.Title,
		Content:   r.Content,
		FolderID:  ridString(r.Folder),
		Tags:      make([]string, 0, len(r.Tags)),
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
	for i := range r.Tags {
		n.Tags = append(n.Tags, ridString(&r.Tags[i]))
	}
	return n
}

func (r *fetchedNoteRecord) toDomain() domain.PopulatedNote {
	n := domain.PopulatedNote{
		ID:        ridString(r.ID),
		UserID:    ridString(&r.User),
		Title:     r.Title,
		Content:   r.Content,
		FolderID:  ridString(r.Folder),
		Tags:      make([]domain.Tag, 0, len(r.Tags)),
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
	for i := range r.Tags {
		n.Tags = append(n.Tags, r.Tags[i].toDomain())
	}
	return n
}
