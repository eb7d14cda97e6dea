package response

import (
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
)

func TestDefaultMessage_CoversEmittedStatuses(t *testing.T) {
	cases := map[int]string{
		fiber.StatusOK:                  MessageOK,
		fiber.StatusCreated:             MessageCreated,
		fiber.StatusBadRequest:          MessageBadRequest,
		fiber.StatusNotFound:            MessageNotFound,
		fiber.StatusConflict:            MessageConflict,
		fiber.StatusUnprocessableEntity: MessageUnprocessableEntity,
		fiber.StatusServiceUnavailable:  MessageServiceUnavailable,
		fiber.StatusInternalServerError: MessageInternalServerError,
		fiber.StatusBadGateway:          MessageInternalServerError,
		fiber.StatusTeapot:              MessageError,
	}
	for status, want := range cases {
		assert.Equal(t, want, DefaultMessage(status), "status %d", status)
	}
}
