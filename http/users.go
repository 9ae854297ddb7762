package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/thinkful-ei22/dan-noteful-4/domain"
)

type registerRequest struct {
	Fullname *string `json:"fullname"`
	Username *string `json:"username"`
	Password *string `json:"password"`
}

const (
	usernameMin = 1
	passwordMin = 8
	passwordMax = 72
)

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := parseBody(c, &req); err != nil {
		return asUnprocessable(err)
	}

	if req.Username == nil {
		return domain.Unprocessable("Missing 'username' in request body")
	}

	username := *req.Username
	password := ""
	if req.Password != nil {
		password = *req.Password
	}
	fullname := ""
	if req.Fullname != nil {
		fullname = *req.Fullname
	}

	if strings.TrimSpace(username) != username {
		return domain.Unprocessable("'username' cannot start or end with whitespace")
	}
	if strings.TrimSpace(password) != password {
		return domain.Unprocessable("'password' cannot start or end with whitespace")
	}
	if len(username) < usernameMin {
		return domain.Unprocessable(fmt.Sprintf("'username' must be at least %d characters long", usernameMin))
	}
	if len(password) < passwordMin {
		return domain.Unprocessable(fmt.Sprintf("'password' must be at least %d characters long", passwordMin))
	}
	if len(password) > passwordMax {
		return domain.Unprocessable(fmt.Sprintf("'password' must be at most %d characters long", passwordMax))
	}

	digest, err := s.auth.HashPassword(password)
	if err != nil {
		return err
	}

	user, err := s.store.CreateUser(c.Context(), &domain.User{
		Username: username,
		Password: digest,
		Fullname: fullname,
	})
	if err != nil {
		return err
	}

	c.Location(fmt.Sprintf("/users/%s", user.ID))
	return c.Status(fiber.StatusCreated).JSON(user.View())
}
