package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thinkful-ei22/dan-noteful-4/auth"
	"github.com/thinkful-ei22/dan-noteful-4/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Username == "" || req.Password == "" {
		return domain.Unauthorized("Incorrect username or password")
	}

	token, err := s.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"authToken": token})
}

// handleRefresh reissues a token with a fresh expiry for the profile the
// middleware already verified. Same subject, new window.
func (s *Server) handleRefresh(c *fiber.Ctx) error {
	token, err := s.auth.TokenFor(auth.UserFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"authToken": token})
}
