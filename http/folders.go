package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/thinkful-ei22/dan-noteful-4/auth"
	"github.com/thinkful-ei22/dan-noteful-4/domain"
	"github.com/thinkful-ei22/dan-noteful-4/validate"
)

type folderRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListFolders(c *fiber.Ctx) error {
	user := auth.UserFrom(c)
	folders, err := s.store.Folders(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(folders)
}

func (s *Server) handleGetFolder(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validate.ValidID(id) {
		return domain.InvalidInput("The `id` is not valid")
	}

	user := auth.UserFrom(c)
	folder, err := s.store.FolderByID(c.Context(), id, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(folder)
}

func (s *Server) handleCreateFolder(c *fiber.Ctx) error {
	var req folderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Name == "" {
		return domain.InvalidInput("Missing `name` in request body")
	}

	user := auth.UserFrom(c)
	folder, err := s.store.CreateFolder(c.Context(), &domain.Folder{
		UserID: user.ID,
		Name:   req.Name,
	})
	if err != nil {
		return err
	}

	c.Location(fmt.Sprintf("/folders/%s", folder.ID))
	return c.Status(fiber.StatusCreated).JSON(folder)
}

func (s *Server) handleUpdateFolder(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validate.ValidID(id) {
		return domain.InvalidInput("The `id` is not valid")
	}

	var req folderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Name == "" {
		return domain.InvalidInput("Missing `name` in request body")
	}

	user := auth.UserFrom(c)
	folder, err := s.store.UpdateFolder(c.Context(), id, user.ID, req.Name)
	if err != nil {
		return err
	}

	c.Location(fmt.Sprintf("/folders/%s", folder.ID))
	return c.JSON(folder)
}

func (s *Server) handleDeleteFolder(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validate.ValidID(id) {
		return domain.InvalidInput("The `id` is not valid")
	}

	user := auth.UserFrom(c)
	if err := s.store.DeleteFolder(c.Context(), id, user.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
