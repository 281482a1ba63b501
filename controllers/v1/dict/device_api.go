package dict

import (
	"maintenance-backend/controllers"
	devicehandler "maintenance-backend/lib/dicts/device"
	"maintenance-backend/middleware"
	apimodels "maintenance-backend/models/api"
	dictapimodels "maintenance-backend/models/api/dict"

	"github.com/gofiber/fiber/v2"
)

type deviceDictApiController struct {
	controllers.BaseAPIController
}

func InitDeviceDictApiRouters(app *fiber.App) {
	controller := deviceDictApiController{}
	app.Route("devices", func(router fiber.Router) {
		router.Use(middleware.RbacMiddleware())
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Get(":id", controller.get)
		router.Put(":id", controller.update)
	})
}

type deviceFindRequest struct {
	apimodels.Pagination
	dictapimodels.DeviceFind
}

// @Summary Device list
// @Tags Dictionaries. Devices
// @Description Paged device list with search and company/department filters
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dict.deviceFindRequest	false	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]dictapimodels.DeviceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/devices/list [post]
func (c *deviceDictApiController) list(ctx *fiber.Ctx) error {
	var payload deviceFindRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, rowCount, err := devicehandler.Instance.List(payload.Pagination, payload.DeviceFind)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list devices")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Create device
// @Tags Dictionaries. Devices
// @Description Register a device
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.DeviceData	true	"request body"
// @Success 200 {object} apimodels.Response{data=dictapimodels.DeviceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/devices [post]
func (c *deviceDictApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.DeviceData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := devicehandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create device")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Device card
// @Tags Dictionaries. Devices
// @Description Device by id
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"device id"
// @Success 200 {object} apimodels.Response{data=dictapimodels.DeviceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/devices/{id} [get]
func (c *deviceDictApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := devicehandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get device")
	}
	if view == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("device not found"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Update device
// @Tags Dictionaries. Devices
// @Description Update a device
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"device id"
// @Param	body body	 dictapimodels.DeviceData	true	"request body"
// @Success 200 {object} apimodels.Response{data=dictapimodels.DeviceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/devices/{id} [put]
func (c *deviceDictApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload dictapimodels.DeviceData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := devicehandler.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update device")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
