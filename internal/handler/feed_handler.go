package handler

import (
	"os"

	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/memory"
	internalWS "sales-intel-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
)

// FeedHandler upgrades clients onto the live feed stream of one workspace.
type FeedHandler struct {
	feedRepo *memory.FeedRepository
	hub      *internalWS.Hub
	logger   logger.ILogger
}

func NewFeedHandler(feedRepo *memory.FeedRepository, hub *internalWS.Hub, log logger.ILogger) *FeedHandler {
	return &FeedHandler{
		feedRepo: feedRepo,
		hub:      hub,
		logger:   log,
	}
}

func (h *FeedHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/feed/v1/:workspaceId/subscribe", h.ServeWs)
}

// ServeWs handles websocket requests from the peer.
func (h *FeedHandler) ServeWs(c *fiber.Ctx) error {
	// 1. Get Token source
	// Priority 1: Query Param (Browser standard)
	tokenStr := c.Query("token")

	// Priority 2: Authorization Header (Tooling/Non-browser standard)
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	// 2. Parse JWT with the same secret the HTTP middleware uses
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("FeedHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	// 3. The workspace must exist before anyone can subscribe to it
	workspaceID := c.Params("workspaceId")
	if _, found := h.feedRepo.Get(workspaceID); !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workspace not found"})
	}

	// Upgrade via Fiber WebSocket Middleware
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("FeedHandler", "Starting WebSocket session", map[string]interface{}{"workspace_id": workspaceID})
			internalWS.ServeWs(h.hub, conn, workspaceID)
			h.logger.Info("FeedHandler", "WebSocket session ended", map[string]interface{}{"workspace_id": workspaceID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
