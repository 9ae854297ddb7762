// Package memory provides an in-memory store.Store used by tests. It
// mirrors the SurrealDB implementation's semantics: ownership scoping,
// unique name constraints, idempotent deletes and reference clearing.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thinkful-ei22/dan-noteful-4/domain"
	"github.com/thinkful-ei22/dan-noteful-4/store"
)

type Store struct {
	mu      sync.RWMutex
	users   map[string]domain.User
	folders map[string]domain.Folder
	tags    map[string]domain.Tag
	notes   map[string]domain.Note
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:   make(map[string]domain.User),
		folders: make(map[string]domain.Folder),
		tags:    make(map[string]domain.Tag),
		notes:   make(map[string]domain.Note),
	}
}

func (s *Store) EnsureSchema(ctx context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return nil, domain.Conflict("The username already exists")
		}
	}

	created := *u
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	s.users[created.ID] = created
	return &created, nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, domain.NotFound("User not found")
}

func (s *Store) Folders(ctx context.Context, userID string) ([]domain.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	folders := make([]domain.Folder, 0)
	for _, f := range s.folders {
		if f.UserID == userID {
			folders = append(folders, f)
		}
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i].Name < folders[j].Name })
	return folders, nil
}

func (s *Store) FolderByID(ctx context.Context, id, userID string) (*domain.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.folders[id]
	if !ok || f.UserID != userID {
		return nil, domain.NotFound("Folder not found")
	}
	return &f, nil
}

func (s *Store) CreateFolder(ctx context.Context, f *domain.Folder) (*domain.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.folders {
		if existing.UserID == f.UserID && existing.Name == f.Name {
			return nil, domain.Conflict("Folder name already exists")
		}
	}

	created := *f
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	now := time.Now()
	created.CreatedAt = now
	created.UpdatedAt = now
	s.folders[created.ID] = created
	return &created, nil
}

func (s *Store) UpdateFolder(ctx context.Context, id, userID, name string) (*domain.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.folders[id]
	if !ok || f.UserID != userID {
		return nil, domain.NotFound("Folder not found")
	}
	for _, existing := range s.folders {
		if existing.ID != id && existing.UserID == userID && existing.Name == name {
			return nil, domain.Conflict("Folder name already exists")
		}
	}

	f.Name = name
	f.UpdatedAt = time.Now()
	s.folders[id] = f
	return &f, nil
}

func (s *Store) DeleteFolder(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.folders[id]
	if !ok || f.UserID != userID {
		return nil
	}
	delete(s.folders, id)

	for nid, n := range s.notes {
		if n.UserID == userID && n.FolderID == id {
			n.FolderID = ""
			s.notes[nid] = n
		}
	}
	return nil
}

func (s *Store) CountFolders(ctx context.Context, id, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if f, ok := s.folders[id]; ok && f.UserID == userID {
		return 1, nil
	}
	return 0, nil
}

func (s *Store) Tags(ctx context.Context, userID string) ([]domain.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tags := make([]domain.Tag, 0)
	for _, t := range s.tags {
		if t.UserID == userID {
			tags = append(tags, t)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func (s *Store) TagByID(ctx context.Context, id, userID string) (*domain.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tags[id]
	if !ok || t.UserID != userID {
		return nil, domain.NotFound("Tag not found")
	}
	return &t, nil
}

func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) (*domain.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.tags {
		if existing.UserID == t.UserID && existing.Name == t.Name {
			return nil, domain.Conflict("Tag name already exists")
		}
	}

	created := *t
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	now := time.Now()
	created.CreatedAt = now
	created.UpdatedAt = now
	s.tags[created.ID] = created
	return &created, nil
}

func (s *Store) UpdateTag(ctx context.Context, id, userID, name string) (*domain.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tags[id]
	if !ok || t.UserID != userID {
		return nil, domain.NotFound("Tag not found")
	}
	for _, existing := range s.tags {
		if existing.ID != id && existing.UserID == userID && existing.Name == name {
			return nil, domain.Conflict("Tag name already exists")
		}
	}

	t.Name = name
	t.UpdatedAt = time.Now()
	s.tags[id] = t
	return &t, nil
}

func (s *Store) DeleteTag(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tags[id]
	if !ok || t.UserID != userID {
		return nil
	}
	delete(s.tags, id)

	for nid, n := range s.notes {
		if n.UserID != userID {
			continue
		}
		kept := n.Tags[:0:0]
		for _, tid := range n.Tags {
			if tid != id {
				kept = append(kept, tid)
			}
		}
		if len(kept) != len(n.Tags) {
			n.Tags = kept
			s.notes[nid] = n
		}
	}
	return nil
}

func (s *Store) CountTags(ctx context.Context, ids []string, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool, len(ids))
	count := 0
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if t, ok := s.tags[id]; ok && t.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s *Store) Notes(ctx context.Context, userID string, filter store.ListFilter) ([]domain.PopulatedNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]domain.PopulatedNote, 0)
	term := strings.ToLower(filter.SearchTerm)
	for _, n := range s.notes {
		if n.UserID != userID {
			continue
		}
		if filter.FolderID != "" && n.FolderID != filter.FolderID {
			continue
		}
		if filter.TagID != "" && !contains(n.Tags, filter.TagID) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(n.Title), term) &&
			!strings.Contains(strings.ToLower(n.Content), term) {
			continue
		}
		notes = append(notes, s.populate(n))
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
	return notes, nil
}

func (s *Store) NoteByID(ctx context.Context, id, userID string) (*domain.PopulatedNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok || n.UserID != userID {
		return nil, domain.NotFound("Note not found")
	}
	populated := s.populate(n)
	return &populated, nil
}

func (s *Store) CreateNote(ctx context.Context, n *domain.Note) (*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := *n
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if created.Tags == nil {
		created.Tags = []string{}
	}
	now := time.Now()
	created.CreatedAt = now
	created.UpdatedAt = now
	s.notes[created.ID] = created
	return &created, nil
}

func (s *Store) ReplaceNote(ctx context.Context, id, userID string, n *domain.Note) (*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.notes[id]
	if !ok || existing.UserID != userID {
		return nil, domain.NotFound("Note not found")
	}

	replaced := *n
	replaced.ID = id
	replaced.UserID = userID
	if replaced.Tags == nil {
		replaced.Tags = []string{}
	}
	replaced.CreatedAt = existing.CreatedAt
	replaced.UpdatedAt = time.Now()
	s.notes[id] = replaced
	return &replaced, nil
}

func (s *Store) DeleteNote(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n, ok := s.notes[id]; ok && n.UserID == userID {
		delete(s.notes, id)
	}
	return nil
}

func (s *Store) CountNotes(ctx context.Context, id string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.notes[id]; ok {
		return 1, nil
	}
	return 0, nil
}

func (s *Store) populate(n domain.Note) domain.PopulatedNote {
	populated := domain.PopulatedNote{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		FolderID:  n.FolderID,
		Tags:      make([]domain.Tag, 0, len(n.Tags)),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	for _, tid := range n.Tags {
		if t, ok := s.tags[tid]; ok {
			populated.Tags = append(populated.Tags, t)
		}
	}
	return populated
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
