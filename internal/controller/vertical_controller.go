package controller

import (
	"sales-intel-be/internal/dto"
	"sales-intel-be/internal/pkg/serverutils"
	"sales-intel-be/internal/service"
	"sales-intel-be/pkg/verticals"

	"github.com/gofiber/fiber/v2"
)

type IVerticalController interface {
	RegisterRoutes(r fiber.Router)
	Upsert(ctx *fiber.Ctx) error
}

type verticalController struct {
	verticalService service.IVerticalService
}

func NewVerticalController(verticalService service.IVerticalService) IVerticalController {
	return &verticalController{
		verticalService: verticalService,
	}
}

func (c *verticalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/verticals/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Put("config", c.Upsert)
}

func (c *verticalController) Upsert(ctx *fiber.Ctx) error {
	var req dto.UpsertVerticalConfigRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	key := verticals.Key{
		Vertical:    req.Vertical,
		SubVertical: req.SubVertical,
		Region:      req.Region,
	}
	if err := c.verticalService.Upsert(ctx.Context(), key, req.Config); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upsert vertical config", &dto.UpsertVerticalConfigResponse{
		Key: key.String(),
	}))
}
