package controller

import (
	"errors"

	"sales-intel-be/internal/dto"
	"sales-intel-be/internal/pkg/serverutils"
	"sales-intel-be/internal/service"
	"sales-intel-be/pkg/cards"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFeedController interface {
	RegisterRoutes(r fiber.Router)
	CreateWorkspace(ctx *fiber.Ctx) error
	GetFeed(ctx *fiber.Ctx) error
	ApplyAction(ctx *fiber.Ctx) error
	ClearFeed(ctx *fiber.Ctx) error
}

type feedController struct {
	cardService service.ICardService
}

func NewFeedController(cardService service.ICardService) IFeedController {
	return &feedController{
		cardService: cardService,
	}
}

func (c *feedController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/feed/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("workspace", c.CreateWorkspace)
	h.Get(":workspaceId", c.GetFeed)
	h.Post("card/:id/action", c.ApplyAction)
	h.Delete(":workspaceId", c.ClearFeed)
}

func (c *feedController) CreateWorkspace(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(string)

	var req dto.CreateWorkspaceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.cardService.CreateWorkspace(ctx.Context(), userID, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create workspace", res))
}

func (c *feedController) GetFeed(ctx *fiber.Ctx) error {
	workspaceID := ctx.Params("workspaceId")

	res, err := c.cardService.GetFeed(ctx.Context(), workspaceID)
	if err != nil {
		return mapFeedError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get feed", res))
}

func (c *feedController) ApplyAction(ctx *fiber.Ctx) error {
	cardID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid card id")
	}

	var req dto.CardActionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.cardService.ApplyAction(ctx.Context(), req.WorkspaceID, cardID, req.ActionID)
	if err != nil {
		return mapFeedError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success apply card action", res))
}

func (c *feedController) ClearFeed(ctx *fiber.Ctx) error {
	workspaceID := ctx.Params("workspaceId")

	res, err := c.cardService.ClearFeed(ctx.Context(), workspaceID)
	if err != nil {
		return mapFeedError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success clear feed", res))
}

func mapFeedError(err error) error {
	switch {
	case errors.Is(err, service.ErrWorkspaceNotFound), errors.Is(err, cards.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, cards.ErrInvalidAction):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return err
	}
}
