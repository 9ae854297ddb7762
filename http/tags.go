package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/thinkful-ei22/dan-noteful-4/auth"
	"github.com/thinkful-ei22/dan-noteful-4/domain"
	"github.com/thinkful-ei22/dan-noteful-4/validate"
)

type tagRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListTags(c *fiber.Ctx) error {
	user := auth.UserFrom(c)
	tags, err := s.store.Tags(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(tags)
}

func (s *Server) handleGetTag(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validate.ValidID(id) {
		return domain.InvalidInput("The `id` is not valid")
	}

	user := auth.UserFrom(c)
	tag, err := s.store.TagByID(c.Context(), id, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(tag)
}

func (s *Server) handleCreateTag(c *fiber.Ctx) error {
	var req tagRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Name == "" {
		return domain.InvalidInput("Missing `name` in request body")
	}

	user := auth.UserFrom(c)
	tag, err := s.store.CreateTag(c.Context(), &domain.Tag{
		UserID: user.ID,
		Name:   req.Name,
	})
	if err != nil {
		return err
	}

	c.Location(fmt.Sprintf("/tags/%s", tag.ID))
	return c.Status(fiber.StatusCreated).JSON(tag)
}

func (s *Server) handleUpdateTag(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validate.ValidID(id) {
		return domain.InvalidInput("The `id` is not valid")
	}

	var req tagRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Name == "" {
		return domain.InvalidInput("Missing `name` in request body")
	}

	user := auth.UserFrom(c)
	tag, err := s.store.UpdateTag(c.Context(), id, user.ID, req.Name)
	if err != nil {
		return err
	}

	c.Location(fmt.Sprintf("/tags/%s", tag.ID))
	return c.JSON(tag)
}

func (s *Server) handleDeleteTag(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validate.ValidID(id) {
		return domain.InvalidInput("The `id` is not valid")
	}

	user := auth.UserFrom(c)
	if err := s.store.DeleteTag(c.Context(), id, user.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
