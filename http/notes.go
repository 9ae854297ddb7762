package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/thinkful-ei22/dan-noteful-4/auth"
	"github.com/thinkful-ei22/dan-noteful-4/domain"
	"github.com/thinkful-ei22/dan-noteful-4/store"
	"github.com/thinkful-ei22/dan-noteful-4/validate"
	"github.com/thinkful-ei22/dan-noteful-4/ws"
)

func (s *Server) handleListNotes(c *fiber.Ctx) error {
	user := auth.UserFrom(c)

	notes, err := s.store.Notes(c.Context(), user.ID, store.ListFilter{
		FolderID:   c.Query("folderId"),
		TagID:      c.Query("tagId"),
		SearchTerm: c.Query("searchTerm"),
	})
	if err != nil {
		return err
	}
	return c.JSON(notes)
}

func (s *Server) handleGetNote(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validate.ValidID(id) {
		return domain.InvalidInput("The `id` is not valid")
	}

	user := auth.UserFrom(c)
	note, err := s.store.NoteByID(c.Context(), id, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(note)
}

type createNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	FolderID string   `json:"folderId"`
	Tags     []string `json:"tags"`
}

func (s *Server) handleCreateNote(c *fiber.Ctx) error {
	var req createNoteRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user := auth.UserFrom(c)

	if req.Title == "" {
		return domain.InvalidInput("Missing `title` in request body")
	}
	if req.FolderID != "" && !validate.ValidID(req.FolderID) {
		return domain.InvalidInput("The `folderId` is not valid")
	}
	for _, tagID := range req.Tags {
		if !validate.ValidID(tagID) {
			return domain.InvalidInput("The tags `id` is not valid")
		}
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	if err := s.validate.NoteRefs(c.Context(), "", req.FolderID, tags, user.ID); err != nil {
		return err
	}

	note := &domain.Note{
		UserID:  user.ID,
		Title:   req.Title,
		Content: req.Content,
		Tags:    tags,
	}
	// Only a well-formed folderId makes it onto the document; an absent
	// one leaves the field unset.
	if validate.ValidID(req.FolderID) {
		note.FolderID = req.FolderID
	}

	created, err := s.store.CreateNote(c.Context(), note)
	if err != nil {
		return err
	}

	s.hub.Broadcast(user.ID, ws.Event{Type: "note_created", Note: created})

	c.Location(fmt.Sprintf("/notes/%s", created.ID))
	return c.Status(fiber.StatusCreated).JSON(created)
}

type updateNoteRequest struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	FolderID *string  `json:"folderId"`
	Tags     []string `json:"tags"`
}

// handleUpdateNote replaces the stored document with the validated merge
// of the request over the current note. Omitted fields keep their stored
// values; a present-but-empty title is rejected.
func (s *Server) handleUpdateNote(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validate.ValidID(id) {
		return domain.InvalidInput("The `id` is not valid")
	}

	var req updateNoteRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user := auth.UserFrom(c)

	if req.Title != nil && *req.Title == "" {
		return domain.InvalidInput("Missing `title` in request body")
	}

	folderID := ""
	if req.FolderID != nil {
		folderID = *req.FolderID
	}
	if folderID != "" && !validate.ValidID(folderID) {
		return domain.InvalidInput("The `folderId` is not valid")
	}
	for _, tagID := range req.Tags {
		if !validate.ValidID(tagID) {
			return domain.InvalidInput("The tags `id` is not valid")
		}
	}

	// Folder, tags and note existence are checked concurrently; any
	// failure aborts before the write.
	if err := s.validate.NoteRefs(c.Context(), id, folderID, req.Tags, user.ID); err != nil {
		return err
	}

	current, err := s.store.NoteByID(c.Context(), id, user.ID)
	if err != nil {
		return err
	}

	note := &domain.Note{
		UserID:   user.ID,
		Title:    current.Title,
		Content:  current.Content,
		FolderID: current.FolderID,
		Tags:     tagIDsOf(current.Tags),
	}
	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.FolderID != nil {
		// Explicit empty string clears the folder reference.
		note.FolderID = folderID
	}
	if req.Tags != nil {
		note.Tags = req.Tags
	}

	updated, err := s.store.ReplaceNote(c.Context(), id, user.ID, note)
	if err != nil {
		return err
	}

	s.hub.Broadcast(user.ID, ws.Event{Type: "note_updated", Note: updated})

	c.Location(fmt.Sprintf("/notes/%s", updated.ID))
	return c.JSON(updated)
}

func (s *Server) handleDeleteNote(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validate.ValidID(id) {
		return domain.InvalidInput("The `id` is not valid")
	}

	user := auth.UserFrom(c)
	if err := s.store.DeleteNote(c.Context(), id, user.ID); err != nil {
		return err
	}

	s.hub.Broadcast(user.ID, ws.Event{Type: "note_deleted", ID: id})

	return c.SendStatus(fiber.StatusNoContent)
}

func tagIDsOf(tags []domain.Tag) []string {
	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}
