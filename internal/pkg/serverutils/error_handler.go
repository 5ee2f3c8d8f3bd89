package serverutils

import (
	"errors"
	"log"

	"template-builder-be/internal/service"
	"template-builder-be/pkg/block"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into the JSON envelope
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		status, body := ErrorBody(err)
		return ctx.Status(status).JSON(body)
	}
}

// ErrorBody maps an error to its HTTP status and response envelope
func ErrorBody(err error) (int, *BaseResponse[any]) {
	var fiberErr *fiber.Error
	var validationErr *ValidationError
	var payloadErr *block.InvalidPayloadError
	var unresolvedErr *service.UnresolvedVariablesError

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code, ErrorResponse(fiberErr.Code, fiberErr.Message)
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, ErrorResponseWithDetails(fiber.StatusBadRequest, "Invalid request", validationErr.Fields)
	case errors.As(err, &payloadErr):
		return fiber.StatusUnprocessableEntity, ErrorResponseWithDetails(fiber.StatusUnprocessableEntity, payloadErr.Error(), payloadErr.Fields)
	case errors.As(err, &unresolvedErr):
		return fiber.StatusUnprocessableEntity, ErrorResponseWithDetails(fiber.StatusUnprocessableEntity, err.Error(), unresolvedErr.Warnings)
	case errors.Is(err, block.ErrInvalidPayload):
		return fiber.StatusUnprocessableEntity, ErrorResponse(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, block.ErrDuplicateID):
		return fiber.StatusConflict, ErrorResponse(fiber.StatusConflict, err.Error())
	case errors.Is(err, block.ErrNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		return fiber.StatusNotFound, ErrorResponse(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrMailerUnavailable):
		return fiber.StatusServiceUnavailable, ErrorResponse(fiber.StatusServiceUnavailable, err.Error())
	}

	log.Printf("[ERROR] unhandled request error: %v", err)
	return fiber.StatusInternalServerError, ErrorResponse(fiber.StatusInternalServerError, "Internal server error")
}
