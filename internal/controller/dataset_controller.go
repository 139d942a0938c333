package controller

import (
	"rag-docsync-be/internal/dto"
	"rag-docsync-be/internal/pkg/serverutils"
	"rag-docsync-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDatasetController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	RetryAllFailed(ctx *fiber.Ctx) error
	SyncAllChunks(ctx *fiber.Ctx) error
}

type datasetController struct {
	service             service.IDatasetService
	orchestratorService service.ISyncOrchestratorService
}

func NewDatasetController(
	service service.IDatasetService,
	orchestratorService service.ISyncOrchestratorService,
) IDatasetController {
	return &datasetController{
		service:             service,
		orchestratorService: orchestratorService,
	}
}

func (c *datasetController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dataset/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Post(":id/retry-all", c.RetryAllFailed)
	h.Post(":id/sync-chunks", c.SyncAllChunks)
}

func (c *datasetController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all dataset", res))
}

func (c *datasetController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateDatasetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create dataset", res))
}

func (c *datasetController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid dataset id")
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "dataset not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show dataset", res))
}

func (c *datasetController) RetryAllFailed(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid dataset id")
	}

	res, err := c.orchestratorService.RetryAllFailed(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success retry failed documents", res))
}

func (c *datasetController) SyncAllChunks(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid dataset id")
	}

	res, err := c.orchestratorService.SyncAllChunks(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success sync dataset chunks", res))
}
