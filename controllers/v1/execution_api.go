package apiv1

import (
	"maintenance-backend/controllers"
	executionhandler "maintenance-backend/lib/execution"
	"maintenance-backend/middleware"
	apimodels "maintenance-backend/models/api"
	executionapimodels "maintenance-backend/models/api/execution"

	"github.com/gofiber/fiber/v2"
)

type executionApiController struct {
	controllers.BaseAPIController
}

// InitExecutionApiRouters registers the task routes on the requests sub-app.
func InitExecutionApiRouters(app *fiber.App) {
	controller := executionApiController{}
	app.Route("", func(router fiber.Router) {
		router.Use(middleware.RbacMiddleware())
		router.Get(":id/tasks", controller.tasks)
		router.Post(":id/tasks", controller.addTask)
		router.Put(":id/tasks/:taskId/done", controller.markTaskDone)
		router.Get(":id/progress", controller.progress)
		router.Post(":id/support", controller.createSupportRequest)
	})
}

// InitSupportApiRouters registers the admin resolution routes on the support
// sub-app.
func InitSupportApiRouters(app *fiber.App) {
	controller := executionApiController{}
	app.Route("", func(router fiber.Router) {
		router.Use(middleware.RbacMiddleware())
		router.Put(":id/approve", controller.approveSupportRequest)
		router.Put(":id/reject", controller.rejectSupportRequest)
	})
}

// @Summary Task list
// @Tags Execution
// @Description Task checklist of the running execution
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"request id"
// @Success 200 {object} apimodels.Response{data=[]executionapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/tasks [get]
func (c *executionApiController) tasks(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, err := executionhandler.Instance.Tasks(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list tasks")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Add task
// @Tags Execution
// @Description Add a checklist task to the running execution
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"request id"
// @Param	body body	 executionapimodels.TaskCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=executionapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/tasks [post]
func (c *executionApiController) addTask(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload executionapimodels.TaskCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := executionhandler.Instance.AddTask(id, middleware.GetUserID(ctx), middleware.GetUserRole(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to add task")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Mark task done
// @Tags Execution
// @Description Mark a checklist task done with evidence. Repeating the call on a finished task is a no-op.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"request id"
// @Param   taskId          	path    string	true	"task id"
// @Param	body body	 executionapimodels.TaskEvidence	false	"request body"
// @Success 200 {object} apimodels.Response{data=executionapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/tasks/{taskId}/done [put]
func (c *executionApiController) markTaskDone(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	taskID, err := c.GetParam(ctx, "taskId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var evidence executionapimodels.TaskEvidence
	if len(ctx.Body()) > 0 {
		if err := c.BodyParser(ctx, &evidence); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}

	view, err := executionhandler.Instance.MarkTaskDone(id, taskID, middleware.GetUserID(ctx), middleware.GetUserRole(ctx), evidence)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to mark task done")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Execution progress
// @Tags Execution
// @Description Done/total task counters of the running execution
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"request id"
// @Success 200 {object} apimodels.Response{data=executionapimodels.ProgressView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/progress [get]
func (c *executionApiController) progress(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := executionhandler.Instance.Progress(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get execution progress")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Request support
// @Tags Execution
// @Description The main technician asks for a helper on the running execution
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"request id"
// @Param	body body	 executionapimodels.SupportRequestData	true	"request body"
// @Success 200 {object} apimodels.Response{data=executionapimodels.SupportRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/support [post]
func (c *executionApiController) createSupportRequest(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload executionapimodels.SupportRequestData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := executionhandler.Instance.CreateSupportRequest(id, middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create support request")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Approve support request
// @Tags Execution
// @Description Approve a pending support request
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"support request id"
// @Success 200 {object} apimodels.Response{data=executionapimodels.SupportRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/support/{id}/approve [put]
func (c *executionApiController) approveSupportRequest(ctx *fiber.Ctx) error {
	return c.resolveSupportRequest(ctx, true)
}

// @Summary Reject support request
// @Tags Execution
// @Description Reject a pending support request
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"support request id"
// @Success 200 {object} apimodels.Response{data=executionapimodels.SupportRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/support/{id}/reject [put]
func (c *executionApiController) rejectSupportRequest(ctx *fiber.Ctx) error {
	return c.resolveSupportRequest(ctx, false)
}

func (c *executionApiController) resolveSupportRequest(ctx *fiber.Ctx, approve bool) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := executionhandler.Instance.ResolveSupportRequest(id, middleware.GetUserID(ctx), approve)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to resolve support request")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
