package dict

import (
	"maintenance-backend/controllers"
	issuehandler "maintenance-backend/lib/dicts/issue"
	"maintenance-backend/middleware"
	apimodels "maintenance-backend/models/api"
	dictapimodels "maintenance-backend/models/api/dict"

	"github.com/gofiber/fiber/v2"
)

type issueTypeDictApiController struct {
	controllers.BaseAPIController
}

func InitIssueTypeDictApiRouters(app *fiber.App) {
	controller := issueTypeDictApiController{}
	app.Route("issue_types", func(router fiber.Router) {
		router.Use(middleware.RbacMiddleware())
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Put(":id", controller.update)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Issue type list
// @Tags Dictionaries. Issue types
// @Description All issue types with their required skill
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.IssueTypeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/issue_types [get]
func (c *issueTypeDictApiController) list(ctx *fiber.Ctx) error {
	list, err := issuehandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list issue types")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Create issue type
// @Tags Dictionaries. Issue types
// @Description Add an issue type
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.IssueTypeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=dictapimodels.IssueTypeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/issue_types [post]
func (c *issueTypeDictApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.IssueTypeData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := issuehandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create issue type")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Update issue type
// @Tags Dictionaries. Issue types
// @Description Update an issue type
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"issue type id"
// @Param	body body	 dictapimodels.IssueTypeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=dictapimodels.IssueTypeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/issue_types/{id} [put]
func (c *issueTypeDictApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload dictapimodels.IssueTypeData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := issuehandler.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update issue type")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Delete issue type
// @Tags Dictionaries. Issue types
// @Description Delete an issue type
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"issue type id"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/issue_types/{id} [delete]
func (c *issueTypeDictApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := issuehandler.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete issue type")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
