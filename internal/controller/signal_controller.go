package controller

import (
	"sales-intel-be/internal/dto"
	"sales-intel-be/internal/pkg/serverutils"
	"sales-intel-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISignalController interface {
	RegisterRoutes(r fiber.Router)
	Catalog(ctx *fiber.Ctx) error
	Filter(ctx *fiber.Ctx) error
	Ingest(ctx *fiber.Ctx) error
}

type signalController struct {
	signalService service.ISignalService
}

func NewSignalController(signalService service.ISignalService) ISignalController {
	return &signalController{
		signalService: signalService,
	}
}

func (c *signalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/signals/v1")
	h.Get("catalog", c.Catalog)
	h.Use(serverutils.JwtMiddleware)
	h.Post("filter", c.Filter)
	h.Post("ingest", c.Ingest)
}

func (c *signalController) Catalog(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get signal catalog", c.signalService.Catalog()))
}

func (c *signalController) Filter(ctx *fiber.Ctx) error {
	var req dto.FilterSignalsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.signalService.Filter(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success filter signals", res))
}

func (c *signalController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestSignalsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.signalService.Ingest(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Signal batch accepted", res))
}
