package beacon

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-hrops/beacon/lifecycle"
	"github.com/go-hrops/beacon/storage/model"
)

// APIError is the JSON error payload returned by all endpoints.
type APIError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// ErrorInvalidRequest returns an APIError for malformed or incomplete
// requests.
func ErrorInvalidRequest(description string) APIError {
	return APIError{
		Error:            "invalid_request",
		ErrorDescription: description,
	}
}

// ErrorNotFound returns an APIError for missing records.
func ErrorNotFound(description string) APIError {
	return APIError{
		Error:            "not_found",
		ErrorDescription: description,
	}
}

// ErrorServerError returns an APIError for internal failures.
func ErrorServerError(description string) APIError {
	return APIError{
		Error:            "server_error",
		ErrorDescription: description,
	}
}

// handleError is the fiber error handler; it maps known error types to
// their status codes and everything else to a 500.
func handleError(ctx *fiber.Ctx, err error) error {
	switch e := err.(type) {
	case *fiber.Error:
		return ctx.Status(e.Code).JSON(ErrorServerError(e.Message))
	case model.NotFoundError:
		return ctx.Status(fiber.StatusNotFound).JSON(ErrorNotFound(e.Error()))
	case model.InvalidRequestError, lifecycle.MissingDateError:
		return ctx.Status(fiber.StatusBadRequest).JSON(ErrorInvalidRequest(err.Error()))
	case model.AlreadyExistsError:
		return ctx.Status(fiber.StatusConflict).JSON(ErrorInvalidRequest(e.Error()))
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorServerError(err.Error()))
	}
}
