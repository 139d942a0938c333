package controller

import (
	"rag-docsync-be/internal/dto"
	"rag-docsync-be/internal/pkg/serverutils"
	"rag-docsync-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetChunks(ctx *fiber.Ctx) error
	Retry(ctx *fiber.Ctx) error
	Reparse(ctx *fiber.Ctx) error
	StopParsing(ctx *fiber.Ctx) error
	RefreshStatus(ctx *fiber.Ctx) error
	BatchDelete(ctx *fiber.Ctx) error
}

type documentController struct {
	service       service.IDocumentService
	retryService  service.IDocumentRetryService
	statusService service.IDocumentStatusService
	batchService  service.IDocumentBatchService
}

func NewDocumentController(
	service service.IDocumentService,
	retryService service.IDocumentRetryService,
	statusService service.IDocumentStatusService,
	batchService service.IDocumentBatchService,
) IDocumentController {
	return &documentController{
		service:       service,
		retryService:  retryService,
		statusService: statusService,
		batchService:  batchService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dataset/v1/:datasetId/document")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Post("batch-delete", c.BatchDelete)
	h.Get(":id", c.Show)
	h.Get(":id/chunks", c.GetChunks)
	h.Post(":id/retry", c.Retry)
	h.Post(":id/reparse", c.Reparse)
	h.Post(":id/stop-parsing", c.StopParsing)
	h.Post(":id/refresh-status", c.RefreshStatus)
}

func (c *documentController) parseIds(ctx *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	datasetId, err := uuid.Parse(ctx.Params("datasetId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid dataset id")
	}
	documentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}
	return datasetId, documentId, nil
}

func (c *documentController) GetAll(ctx *fiber.Ctx) error {
	datasetId, err := uuid.Parse(ctx.Params("datasetId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid dataset id")
	}

	res, err := c.service.GetAllByDataset(ctx.Context(), datasetId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all document", res))
}

func (c *documentController) Create(ctx *fiber.Ctx) error {
	datasetId, err := uuid.Parse(ctx.Params("datasetId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid dataset id")
	}

	var req dto.CreateDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), datasetId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create document", res))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	datasetId, documentId, err := c.parseIds(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.Context(), datasetId, documentId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "document not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show document", res))
}

func (c *documentController) GetChunks(ctx *fiber.Ctx) error {
	datasetId, documentId, err := c.parseIds(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetChunks(ctx.Context(), datasetId, documentId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get document chunks", res))
}

func (c *documentController) Retry(ctx *fiber.Ctx) error {
	datasetId, documentId, err := c.parseIds(ctx)
	if err != nil {
		return err
	}

	res, err := c.retryService.Retry(ctx.Context(), datasetId, documentId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Retry finished", res))
}

func (c *documentController) Reparse(ctx *fiber.Ctx) error {
	datasetId, documentId, err := c.parseIds(ctx)
	if err != nil {
		return err
	}

	res, err := c.statusService.Reparse(ctx.Context(), datasetId, documentId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Reparse finished", res))
}

func (c *documentController) StopParsing(ctx *fiber.Ctx) error {
	datasetId, documentId, err := c.parseIds(ctx)
	if err != nil {
		return err
	}

	res, err := c.statusService.StopParsing(ctx.Context(), datasetId, documentId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Stop parsing finished", res))
}

func (c *documentController) RefreshStatus(ctx *fiber.Ctx) error {
	_, documentId, err := c.parseIds(ctx)
	if err != nil {
		return err
	}

	// The refresh swallows its own failures, so this always answers 200.
	c.statusService.RefreshFromRemote(ctx.Context(), documentId)

	return ctx.JSON(serverutils.SuccessResponse[any]("Status refresh requested", nil))
}

func (c *documentController) BatchDelete(ctx *fiber.Ctx) error {
	datasetId, err := uuid.Parse(ctx.Params("datasetId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid dataset id")
	}

	var req dto.BatchDeleteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.batchService.BatchDelete(ctx.Context(), datasetId, req.DocumentIds)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Batch delete finished", res))
}
