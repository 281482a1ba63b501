package apiv1

import (
	"time"

	"maintenance-backend/controllers"
	technicianhandler "maintenance-backend/lib/technician"
	"maintenance-backend/middleware"
	apimodels "maintenance-backend/models/api"
	technicianapimodels "maintenance-backend/models/api/technician"

	"github.com/gofiber/fiber/v2"
)

type technicianApiController struct {
	controllers.BaseAPIController
}

func InitTechnicianApiRouters(app *fiber.App) {
	controller := technicianApiController{}
	app.Route("", func(router fiber.Router) {
		router.Use(middleware.RbacMiddleware())
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Get(":id", controller.get)
		router.Put(":id", controller.update)
		router.Get(":id/shifts", controller.shifts)
		router.Post(":id/shifts", controller.addShift)
	})
}

// @Summary Technician list
// @Tags Technicians
// @Description Paged technician list with a name/phone search
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 technicianapimodels.TechnicianFind	false	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]technicianapimodels.TechnicianView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/technicians/list [post]
func (c *technicianApiController) list(ctx *fiber.Ctx) error {
	var find technicianapimodels.TechnicianFind
	if err := c.BodyParser(ctx, &find); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, rowCount, err := technicianhandler.Instance.List(find.Pagination, find.Search)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list technicians")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Create technician
// @Tags Technicians
// @Description Register a technician profile
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 technicianapimodels.TechnicianData	true	"request body"
// @Success 200 {object} apimodels.Response{data=technicianapimodels.TechnicianView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/technicians [post]
func (c *technicianApiController) create(ctx *fiber.Ctx) error {
	var payload technicianapimodels.TechnicianData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := technicianhandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create technician")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Technician card
// @Tags Technicians
// @Description Technician profile by id
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"technician id"
// @Success 200 {object} apimodels.Response{data=technicianapimodels.TechnicianView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/technicians/{id} [get]
func (c *technicianApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := technicianhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get technician")
	}
	if view == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("technician not found"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Update technician
// @Tags Technicians
// @Description Update a technician profile
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"technician id"
// @Param	body body	 technicianapimodels.TechnicianData	true	"request body"
// @Success 200 {object} apimodels.Response{data=technicianapimodels.TechnicianView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/technicians/{id} [put]
func (c *technicianApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload technicianapimodels.TechnicianData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := technicianhandler.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update technician")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Shift list
// @Tags Technicians
// @Description Shifts of a technician overlapping the given window. Defaults to the week ahead.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"technician id"
// @Param   from        		query   string	false	"window start (RFC3339)"
// @Param   to          		query   string	false	"window end (RFC3339)"
// @Success 200 {object} apimodels.Response{data=[]technicianapimodels.ShiftView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/technicians/{id}/shifts [get]
func (c *technicianApiController) shifts(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	from := time.Now()
	to := from.AddDate(0, 0, 7)
	if v := ctx.Query("from"); v != "" {
		from, err = time.Parse(time.RFC3339, v)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("from must be RFC3339"))
		}
	}
	if v := ctx.Query("to"); v != "" {
		to, err = time.Parse(time.RFC3339, v)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("to must be RFC3339"))
		}
	}

	list, err := technicianhandler.Instance.Shifts(id, from, to)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list shifts")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Add shift
// @Tags Technicians
// @Description Add a shift to a technician calendar
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"technician id"
// @Param	body body	 technicianapimodels.ShiftData	true	"request body"
// @Success 200 {object} apimodels.Response{data=technicianapimodels.ShiftView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/technicians/{id}/shifts [post]
func (c *technicianApiController) addShift(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload technicianapimodels.ShiftData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := technicianhandler.Instance.AddShift(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to add shift")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
