package dict

import (
	"maintenance-backend/controllers"
	rejectreasonhandler "maintenance-backend/lib/dicts/reject-reason"
	"maintenance-backend/middleware"
	"maintenance-backend/models"
	apimodels "maintenance-backend/models/api"
	dictapimodels "maintenance-backend/models/api/dict"

	"github.com/gofiber/fiber/v2"
)

type rejectReasonDictApiController struct {
	controllers.BaseAPIController
}

func InitRejectReasonDictApiRouters(app *fiber.App) {
	controller := rejectReasonDictApiController{}
	app.Route("reject_reasons", func(router fiber.Router) {
		router.Use(middleware.RbacMiddleware())
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Reject reason list
// @Tags Dictionaries. Reject reasons
// @Description Reject reasons, optionally narrowed to one gate
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   gate        		query   string	false	"PLAN_APPROVAL or ACCEPTANCE"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.RejectReasonView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/reject_reasons [get]
func (c *rejectReasonDictApiController) list(ctx *fiber.Ctx) error {
	gate := models.RejectionGate(ctx.Query("gate"))

	list, err := rejectreasonhandler.Instance.List(gate)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list reject reasons")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Create reject reason
// @Tags Dictionaries. Reject reasons
// @Description Add a reject reason to a gate
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.RejectReasonData	true	"request body"
// @Success 200 {object} apimodels.Response{data=dictapimodels.RejectReasonView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/reject_reasons [post]
func (c *rejectReasonDictApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.RejectReasonData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := rejectreasonhandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create reject reason")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Delete reject reason
// @Tags Dictionaries. Reject reasons
// @Description Delete a reject reason. Ledger entries keep the reason snapshot.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"reject reason id"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/reject_reasons/{id} [delete]
func (c *rejectReasonDictApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := rejectreasonhandler.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete reject reason")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
