package apiv1

import (
	"time"

	"maintenance-backend/controllers"
	"maintenance-backend/lib/lifecycle"
	"maintenance-backend/lib/matcher"
	rejectionhandler "maintenance-backend/lib/rejection"
	reporthandler "maintenance-backend/lib/report"
	requesthandler "maintenance-backend/lib/request"
	"maintenance-backend/middleware"
	"maintenance-backend/models"
	apimodels "maintenance-backend/models/api"
	requestapimodels "maintenance-backend/models/api/request"

	"github.com/gofiber/fiber/v2"
)

type requestApiController struct {
	controllers.BaseAPIController
}

func InitRequestApiRouters(app *fiber.App) {
	controller := requestApiController{}
	app.Route("", func(router fiber.Router) {
		router.Use(middleware.RbacMiddleware())
		router.Post("list", controller.list)
		router.Post("auto_assign_all", controller.autoAssignAll)
		router.Post("export", controller.export)
		router.Post("", controller.create)
		router.Get(":id", controller.get)
		router.Get(":id/rejections", controller.rejections)
		router.Get(":id/acceptance_report", controller.acceptanceReport)
		router.Put(":id/transition/:event", controller.transition)
		router.Post(":id/auto_assign", controller.autoAssign)
	})
}

// @Summary Request list
// @Tags Maintenance requests
// @Description Filtered, paged list of maintenance requests
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 requestapimodels.RequestListFilter	false	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/list [post]
func (c *requestApiController) list(ctx *fiber.Ctx) error {
	var filter requestapimodels.RequestListFilter
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	// customers only see their own requests
	if middleware.GetUserRole(ctx) == models.CustomerRole {
		filter.CreatorID = middleware.GetUserID(ctx)
	}
	list, rowCount, err := requesthandler.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list maintenance requests")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Create request
// @Tags Maintenance requests
// @Description Register a new maintenance request
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 requestapimodels.RequestCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests [post]
func (c *requestApiController) create(ctx *fiber.Ctx) error {
	var payload requestapimodels.RequestCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := requesthandler.Instance.Create(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create maintenance request")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Request card
// @Tags Maintenance requests
// @Description Maintenance request by id
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"request id"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id} [get]
func (c *requestApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := requesthandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get maintenance request")
	}
	if view == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("request not found"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Rejection history
// @Tags Maintenance requests
// @Description Rejection ledger of a request, newest last
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"request id"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.RejectionLogView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/rejections [get]
func (c *requestApiController) rejections(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, err := rejectionhandler.Instance.History(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get rejection history")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Lifecycle transition
// @Tags Maintenance requests
// @Description Apply a lifecycle event to a request. The event-specific payload member is required for assign, technician_reject, submit_survey, submit_plan, resubmit_plan, reject_plan, approve_acceptance and reject_acceptance.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"request id"
// @Param   event          		path    string	true	"transition event"
// @Param	body body	 requestapimodels.TransitionPayload	false	"request body"
// @Success 200 {object} apimodels.Response{data=requestapimodels.TransitionResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/transition/{event} [put]
func (c *requestApiController) transition(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	eventParam, err := c.GetParam(ctx, "event")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	event := models.TransitionEvent(eventParam)
	if !event.IsKnown() {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("unknown transition event"))
	}

	var payload requestapimodels.TransitionPayload
	if len(ctx.Body()) > 0 {
		if err := c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}

	actor := lifecycle.Actor{
		ID:   middleware.GetUserID(ctx),
		Role: middleware.GetUserRole(ctx),
	}
	result, err := lifecycle.Instance.Transition(ctx.UserContext(), id, event, actor, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to apply transition")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Auto-assign one request
// @Tags Maintenance requests
// @Description Pick a technician for an awaiting request by skill, shift and load
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"request id"
// @Success 200 {object} apimodels.Response{data=technicianapimodels.AssignmentResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/auto_assign [post]
func (c *requestApiController) autoAssign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	result, err := matcher.Instance.AutoAssign(ctx.UserContext(), id, time.Now())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to auto-assign request")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Auto-assign the backlog
// @Tags Maintenance requests
// @Description Walk every awaiting request by priority then age and assign where possible
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]technicianapimodels.AssignmentResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/auto_assign_all [post]
func (c *requestApiController) autoAssignAll(ctx *fiber.Ctx) error {
	results, err := matcher.Instance.AutoAssignAll(ctx.UserContext(), time.Now())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to auto-assign backlog")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(results))
}

// @Summary Export request register
// @Tags Maintenance requests
// @Description Filtered request list as an xlsx workbook
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 requestapimodels.RequestListFilter	false	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/export [post]
func (c *requestApiController) export(ctx *fiber.Ctx) error {
	var filter requestapimodels.RequestListFilter
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	data, err := reporthandler.Instance.RequestRegister(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export request register")
	}
	fileName := "requests-" + time.Now().Format("20060102-150405") + ".xlsx"
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Acceptance report
// @Tags Maintenance requests
// @Description Acceptance protocol of a completed request as pdf
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"request id"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/acceptance_report [get]
func (c *requestApiController) acceptanceReport(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	fileName, body, err := reporthandler.Instance.AcceptanceReport(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to build acceptance report")
	}
	ctx.Set("Content-Type", "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(body)
}
