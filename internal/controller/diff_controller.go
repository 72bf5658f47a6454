package controller

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"followdiff-be/internal/dto"
	"followdiff-be/internal/pkg/serverutils"
	"followdiff-be/internal/service"
	"followdiff-be/pkg/extract"
	"followdiff-be/pkg/report"
)

type IDiffController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	UploadArchive(ctx *fiber.Ctx) error
	SubmitText(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
	ListsOverview(ctx *fiber.Ctx) error
	ListPage(ctx *fiber.Ctx) error
	DownloadReport(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Wipe(ctx *fiber.Ctx) error
}

type diffController struct {
	ingestService service.IIngestService
	reportService service.IReportService
}

func NewDiffController(ingestService service.IIngestService, reportService service.IReportService) IDiffController {
	return &diffController{
		ingestService: ingestService,
		reportService: reportService,
	}
}

func (c *diffController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/diff/v1")
	h.Use(authMiddleware)
	h.Post("/archive", c.UploadArchive)
	h.Post("/text", c.SubmitText)
	h.Post("/reset", c.Reset)
	h.Get("/lists", c.ListsOverview)
	h.Get("/lists/:name", c.ListPage)
	h.Get("/report", c.DownloadReport)
	h.Get("/stats", c.Stats)
	h.Delete("/history", c.Wipe)
}

func userIdFromLocals(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func (c *diffController) UploadArchive(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)

	fileHeader, err := ctx.FormFile("archive")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Archive file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()
	payload, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	res, err := c.ingestService.SubmitArchive(ctx.Context(), userId, payload)
	if err != nil {
		if errors.Is(err, extract.ErrNoData) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(
				serverutils.ErrorResponse(422, "No follower lists found in archive; make sure it is a platform data export (JSON preferred)"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Diff completed", res))
}

func (c *diffController) SubmitText(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)

	// An uploaded text/csv document takes priority over the JSON body.
	if fileHeader, err := ctx.FormFile("document"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return err
		}
		defer file.Close()
		payload, err := io.ReadAll(file)
		if err != nil {
			return err
		}
		res, err := c.ingestService.SubmitRaw(ctx.Context(), userId, fileHeader.Filename, payload)
		if err != nil {
			if errors.Is(err, extract.ErrNoData) {
				return ctx.Status(fiber.StatusUnprocessableEntity).JSON(
					serverutils.ErrorResponse(422, "No follower lists found in archive"))
			}
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Submission accepted", res))
	}

	var req dto.SubmitTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ingestService.SubmitText(ctx.Context(), userId, req.Text)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Submission accepted", res))
}

func (c *diffController) Reset(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	c.ingestService.Reset(userId)
	return ctx.JSON(serverutils.SuccessResponse[any]("Pending upload discarded", nil))
}

func (c *diffController) ListsOverview(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)

	res, err := c.reportService.Overview(userId)
	if err != nil {
		if errors.Is(err, service.ErrNoResult) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "No diff computed yet; submit an archive or two lists first"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get lists overview", res))
}

func (c *diffController) ListPage(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)
	name := ctx.Params("name")
	offset, _ := strconv.Atoi(ctx.Query("offset", "0"))

	res, err := c.reportService.Page(userId, name, offset)
	if err != nil {
		if errors.Is(err, service.ErrUnknownList) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Unknown list name"))
		}
		if errors.Is(err, service.ErrNoResult) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "No diff computed yet"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get list page", res))
}

func (c *diffController) DownloadReport(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)

	bundle, err := c.reportService.Export(userId)
	if err != nil {
		if errors.Is(err, service.ErrNoResult) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "No diff computed yet"))
		}
		return err
	}

	ctx.Set(fiber.HeaderContentType, "application/zip")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+report.FileName+`"`)
	return ctx.Send(bundle)
}

func (c *diffController) Stats(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)

	res, err := c.reportService.Stats(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get stats", res))
}

func (c *diffController) Wipe(ctx *fiber.Ctx) error {
	userId := userIdFromLocals(ctx)

	if err := c.reportService.Wipe(ctx.Context(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("History wiped", nil))
}
