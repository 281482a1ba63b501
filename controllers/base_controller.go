package controllers

import (
	"maintenance-backend/models"
	apimodels "maintenance-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("failed to parse request body")
		return errors.New("failed to read request data")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetParam(ctx, "id")
}

func (c *BaseAPIController) GetParam(ctx *fiber.Ctx, name string) (string, error) {
	value := ctx.Params(name)
	if value == "" {
		return "", errors.Errorf("parameter %v is required", name)
	}
	return value, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

// statusFor maps the transition error taxonomy onto HTTP. Anything outside
// the taxonomy is an infrastructure failure.
func statusFor(kind models.TransitionErrorKind) int {
	switch kind {
	case models.ErrKindForbidden:
		return fiber.StatusForbidden
	case models.ErrKindConflict:
		return fiber.StatusConflict
	case models.ErrKindReferentialIntegrity:
		return fiber.StatusNotFound
	case models.ErrKindInvalidTransition,
		models.ErrKindPreconditionFailed,
		models.ErrKindTerminalState,
		models.ErrKindNoEligibleTechnician:
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, hMsg string) error {
	if kind, ok := models.KindOf(err); ok {
		return ctx.Status(statusFor(kind)).JSON(apimodels.NewErrorWithCode(string(kind), err.Error()))
	}
	logger.WithError(err).Error(hMsg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(hMsg))
}
