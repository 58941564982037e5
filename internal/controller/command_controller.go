package controller

import (
	"errors"

	"sales-intel-be/internal/dto"
	"sales-intel-be/internal/pkg/serverutils"
	"sales-intel-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICommandController interface {
	RegisterRoutes(r fiber.Router)
	Resolve(ctx *fiber.Ctx) error
}

type commandController struct {
	commandService service.ICommandService
}

func NewCommandController(commandService service.ICommandService) ICommandController {
	return &commandController{
		commandService: commandService,
	}
}

func (c *commandController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/command/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("resolve", c.Resolve)
}

func (c *commandController) Resolve(ctx *fiber.Ctx) error {
	var req dto.ResolveCommandRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.commandService.Resolve(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrWorkspaceNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Command resolved", res))
}
