package apiv1

import (
	"maintenance-backend/controllers"
	materialshandler "maintenance-backend/lib/materials"
	"maintenance-backend/middleware"
	apimodels "maintenance-backend/models/api"
	requestapimodels "maintenance-backend/models/api/request"

	"github.com/gofiber/fiber/v2"
)

type materialsApiController struct {
	controllers.BaseAPIController
}

// InitMaterialsApiRouters registers the material routes on the requests
// sub-app.
func InitMaterialsApiRouters(app *fiber.App) {
	controller := materialsApiController{}
	app.Route("", func(router fiber.Router) {
		router.Use(middleware.RbacMiddleware())
		router.Get(":id/materials", controller.view)
		router.Post(":id/materials/consume", controller.consume)
	})
}

// @Summary Material ledgers
// @Tags Materials
// @Description Proposed (plan) and consumed (execution) material lines of a request
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"request id"
// @Success 200 {object} apimodels.Response{data=materialsapimodels.MaterialsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/materials [get]
func (c *materialsApiController) view(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := materialshandler.Instance.View(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get material ledgers")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Record consumption
// @Tags Materials
// @Description Append consumed material lines to the running execution
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"request id"
// @Param	body body	 []requestapimodels.MaterialLineData	true	"request body"
// @Success 200 {object} apimodels.Response{data=materialsapimodels.MaterialsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/materials/consume [post]
func (c *materialsApiController) consume(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var lines []requestapimodels.MaterialLineData
	if err := c.BodyParser(ctx, &lines); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := materialshandler.Instance.Consume(id, middleware.GetUserID(ctx), middleware.GetUserRole(ctx), lines)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to record material consumption")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
