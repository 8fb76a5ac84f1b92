package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

var errorCodes = map[int]string{
	fiber.StatusBadRequest:            "BAD_REQUEST",
	fiber.StatusUnauthorized:          "UNAUTHORIZED",
	fiber.StatusForbidden:             "FORBIDDEN",
	fiber.StatusNotFound:              "NOT_FOUND",
	fiber.StatusMethodNotAllowed:      "METHOD_NOT_ALLOWED",
	fiber.StatusConflict:              "CONFLICT",
	fiber.StatusRequestEntityTooLarge: "PAYLOAD_TOO_LARGE",
	fiber.StatusUnprocessableEntity:   "VALIDATION_ERROR",
}

const internalMessage = "Internal server error"

// ErrorHandler renders every error as ErrorResponse. Only *fiber.Error messages
// below 500 reach the client; anything else is logged under the trace id.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := internalMessage

	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		if status < fiber.StatusInternalServerError {
			message = fe.Message
		}
	}

	code, ok := errorCodes[status]
	if !ok {
		code = "INTERNAL_ERROR"
		if status < fiber.StatusInternalServerError {
			code = "REQUEST_ERROR"
		}
	}

	traceID := c.Get(fiber.HeaderXRequestID)
	if traceID == "" {
		traceID = uuid.NewString()[:8]
	}

	if status >= fiber.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"trace_id": traceID,
			"method":   c.Method(),
			"path":     c.Path(),
		}).Error("request failed")
	}

	return c.Status(status).JSON(ErrorResponse{
		Error:   true,
		Code:    code,
		Message: message,
		TraceID: traceID,
	})
}

func NewError(code int, message string) *fiber.Error {
	return fiber.NewError(code, message)
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}

func PayloadTooLarge(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusRequestEntityTooLarge, message)
}
