package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/thinkful-ei22/dan-noteful-4/domain"
)

// parseBody decodes the request body into dst, rejecting unknown fields
// and reporting mistyped fields by name.
func parseBody(c *fiber.Ctx, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return domain.InvalidInput(fmt.Sprintf(
				"'%s': Incorrect field type: expected %s", typeErr.Field, typeErr.Type))
		}
		return domain.InvalidInput("Invalid JSON body")
	}
	return nil
}

// asUnprocessable rewrites invalid-input decode errors to the 422 class
// used by registration field validation.
func asUnprocessable(err error) error {
	var derr *domain.Error
	if errors.As(err, &derr) && derr.Code == domain.CodeInvalidInput {
		return domain.Unprocessable(derr.Message)
	}
	return err
}
