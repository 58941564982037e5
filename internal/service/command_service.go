package service

import (
	"context"
	"time"

	"sales-intel-be/internal/dto"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/memory"
	"sales-intel-be/pkg/cards"
	"sales-intel-be/pkg/command"
)

type ICommandService interface {
	Resolve(ctx context.Context, req *dto.ResolveCommandRequest) (*dto.ResolveCommandResponse, error)
}

type commandService struct {
	resolver    *command.Resolver
	feedRepo    *memory.FeedRepository
	cardService ICardService
	logger      logger.ILogger
}

func NewCommandService(
	resolver *command.Resolver,
	feedRepo *memory.FeedRepository,
	cardService ICardService,
	log logger.ILogger,
) ICommandService {
	return &commandService{
		resolver:    resolver,
		feedRepo:    feedRepo,
		cardService: cardService,
		logger:      log,
	}
}

func (s *commandService) Resolve(ctx context.Context, req *dto.ResolveCommandRequest) (*dto.ResolveCommandResponse, error) {
	session, found := s.feedRepo.Get(req.WorkspaceID)
	if !found {
		return nil, ErrWorkspaceNotFound
	}

	result := s.resolver.ResolveCommand(ctx, session.Workspace, session.Cards, req.Query)

	if result.Err != nil {
		// A failed command produces exactly one system card so the feed
		// explains what went wrong.
		card := cards.New(cards.TypeSystem, "Command failed", result.Err.Message, time.Now())
		s.cardService.PushCard(req.WorkspaceID, session, card)
		return &dto.ResolveCommandResponse{
			Success:        false,
			Classification: result.Classification,
			Cards:          dto.NewCardResponses([]cards.Card{card}),
			Error:          result.Err,
		}, nil
	}

	for _, card := range result.Cards {
		// Cards the resolver read back from the feed are already stored.
		if _, exists := session.Cards.Get(card.ID); exists {
			continue
		}
		s.cardService.PushCard(req.WorkspaceID, session, card)
	}

	// Keep the session fresh while the user is talking to it.
	s.feedRepo.Save(session)

	return &dto.ResolveCommandResponse{
		Success:        result.Success,
		Classification: result.Classification,
		Cards:          dto.NewCardResponses(result.Cards),
	}, nil
}
