package apiv1

import (
	"io"

	"maintenance-backend/controllers"
	filestorage "maintenance-backend/lib/file-storage"
	"maintenance-backend/middleware"
	apimodels "maintenance-backend/models/api"
	dbmodels "maintenance-backend/models/db"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type fileApiController struct {
	controllers.BaseAPIController
}

// InitRequestFileApiRouters registers the upload route on the requests
// sub-app, so the path stays under /api/v1/requests/{id}.
func InitRequestFileApiRouters(app *fiber.App) {
	controller := fileApiController{}
	app.Route("", func(router fiber.Router) {
		router.Use(middleware.RbacMiddleware())
		router.Post(":id/files/:type", controller.upload)
	})
}

func InitFileApiRouters(app *fiber.App) {
	controller := fileApiController{}
	app.Route("", func(router fiber.Router) {
		router.Use(middleware.RbacMiddleware())
		router.Get(":id", controller.download)
	})
}

func knownFileType(t dbmodels.FileType) bool {
	switch t {
	case dbmodels.RequestPhoto, dbmodels.SurveyPhoto, dbmodels.TaskEvidenceImage,
		dbmodels.TaskEvidenceVideo, dbmodels.AcceptanceReport:
		return true
	}
	return false
}

// @Summary Upload attachment
// @Tags Files
// @Description Attach a file to a maintenance request. Photo slots are capped per request, task video is capped at one.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"request id"
// @Param   type          		path    string	true	"file type (request_photo, survey_photo, task_evidence_image, task_evidence_video)"
// @Param   file		formData	file 	true 	"file to upload"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requests/{id}/files/{type} [post]
func (c *fileApiController) upload(ctx *fiber.Ctx) error {
	requestID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileType := dbmodels.FileType(ctx.Params("type"))
	if !knownFileType(fileType) {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("unknown file type"))
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buffer, err := file.Open()
	if err != nil {
		log.WithError(err).Error("failed to open the uploaded file")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	defer buffer.Close()
	fileBody, err := io.ReadAll(buffer)
	if err != nil {
		log.WithError(err).Error("failed to read the uploaded file")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	info := dbmodels.UploadFileInfo{
		RequestID:   requestID,
		FileName:    file.Filename,
		FileType:    fileType,
		ContentType: file.Header.Get("Content-Type"),
	}
	fileID, err := filestorage.Instance.Upload(ctx.UserContext(), info, fileBody)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to upload the file")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(fileID))
}

// @Summary Download attachment
// @Tags Files
// @Description Download an attachment by id
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"file id"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/files/{id} [get]
func (c *fileApiController) download(ctx *fiber.Ctx) error {
	fileID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	rec, body, err := filestorage.Instance.GetFile(ctx.UserContext(), fileID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to download the file")
	}
	if rec == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("file not found"))
	}
	if rec.ContentType != "" {
		ctx.Set("Content-Type", rec.ContentType)
	}
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+rec.Name+`"`)
	return ctx.Send(body)
}
