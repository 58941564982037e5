package controller

import (
	"strconv"

	"sales-intel-be/internal/dto"
	"sales-intel-be/internal/pkg/serverutils"
	"sales-intel-be/internal/repository/memory"
	"sales-intel-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IScoreController interface {
	RegisterRoutes(r fiber.Router)
	Score(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	DiscoveryReport(ctx *fiber.Ctx) error
}

type scoreController struct {
	scoringService service.IScoringService
	feedRepo       *memory.FeedRepository
}

func NewScoreController(scoringService service.IScoringService, feedRepo *memory.FeedRepository) IScoreController {
	return &scoreController{
		scoringService: scoringService,
		feedRepo:       feedRepo,
	}
}

func (c *scoreController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/score/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Score)
	h.Get("history/:entityId", c.History)
	h.Get("report/:workspaceId", c.DiscoveryReport)
}

func (c *scoreController) Score(ctx *fiber.Ctx) error {
	var req dto.ScoreEntityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.scoringService.ScoreEntity(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success score entity", res))
}

func (c *scoreController) History(ctx *fiber.Ctx) error {
	entityID := ctx.Params("entityId")
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))

	res, err := c.scoringService.History(ctx.Context(), entityID, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get decision history", res))
}

func (c *scoreController) DiscoveryReport(ctx *fiber.Ctx) error {
	workspaceID := ctx.Params("workspaceId")
	session, found := c.feedRepo.Get(workspaceID)
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "workspace not found")
	}

	res, err := c.scoringService.DiscoveryReport(ctx.Context(), session.Workspace)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate discovery report", res))
}
