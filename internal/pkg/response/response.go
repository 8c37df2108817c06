package response

import "github.com/gofiber/fiber/v3"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

const (
	MessageBadRequest          = "Bad Request"
	MessageUnauthorized        = "Unauthorized"
	MessageForbidden           = "Forbidden"
	MessageNotFound            = "Not Found"
	MessageConflict            = "Conflict"
	MessageUnprocessableEntity = "Unprocessable Entity"
	MessageInternalServerError = "Internal Server Error"
	MessageError               = "Error"
)

func JSON(c fiber.Ctx, status int, body any) error {
	return c.Status(normalizeStatus(status)).JSON(body)
}

func Error(c fiber.Ctx, status int, message string, details any) error {
	st := normalizeStatus(status)
	if message == "" {
		message = DefaultMessageForStatus(st)
	}
	return c.Status(st).JSON(ErrorResponse{Error: message, Details: details})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func DefaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusUnprocessableEntity:
		return MessageUnprocessableEntity
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
