package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/alumninet/alumninet/internal/entity"
	connDto "github.com/alumninet/alumninet/internal/modules/connection/dto"
	connRepo "github.com/alumninet/alumninet/internal/modules/connection/repository"
	notifService "github.com/alumninet/alumninet/internal/modules/notification/service"
	userRepo "github.com/alumninet/alumninet/internal/modules/user/repository"
	"github.com/alumninet/alumninet/internal/ranking"
	"github.com/alumninet/alumninet/pkg/apperror"
	commonDto "github.com/alumninet/alumninet/pkg/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// suggestionOverfetch controls how many candidates are pulled per requested
// suggestion so the ranking strategy has something to choose from.
const suggestionOverfetch = 3

type ConnectionService interface {
	SendRequest(ctx context.Context, actor entity.Actor, toUserID uuid.UUID) (*entity.ConnectionRequest, error)
	AcceptRequest(ctx context.Context, actor entity.Actor, requestID uuid.UUID) error
	RejectRequest(ctx context.Context, actor entity.Actor, requestID uuid.UUID) error
	RemoveConnection(ctx context.Context, actor entity.Actor, otherUserID uuid.UUID) error
	CheckStatus(ctx context.Context, actor entity.Actor, otherUserID uuid.UUID) (*connDto.StatusResponse, error)
	ListConnections(ctx context.Context, actor entity.Actor, query connDto.ListConnectionsQuery) (*connDto.PaginatedConnectionsResponse, error)
	ListRequests(ctx context.Context, actor entity.Actor, direction string) ([]connDto.RequestResponse, error)
	Suggestions(ctx context.Context, actor entity.Actor, limit int) ([]connDto.UserCard, error)
}

type connectionService struct {
	repo     connRepo.ConnectionRepository
	users    userRepo.UserRepository
	notifier notifService.NotificationService
	ranker   ranking.Strategy
}

func NewConnectionService(repo connRepo.ConnectionRepository, users userRepo.UserRepository, notifier notifService.NotificationService, ranker ranking.Strategy) ConnectionService {
	return &connectionService{
		repo:     repo,
		users:    users,
		notifier: notifier,
		ranker:   ranker,
	}
}

// SendRequest creates a pending request towards another user of the same
// university. The repository re-runs the duplicate checks inside the
// insert transaction, so two concurrent senders cannot both succeed.
func (s *connectionService) SendRequest(ctx context.Context, actor entity.Actor, toUserID uuid.UUID) (*entity.ConnectionRequest, error) {
	if actor.ID == toUserID {
		return nil, apperror.New(http.StatusBadRequest, "cannot send a connection request to yourself", apperror.ErrInvalidOperation)
	}

	target, err := s.users.FindByID(ctx, toUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "user not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	if !target.IsActive() {
		return nil, apperror.New(http.StatusNotFound, "user not found", apperror.ErrNotFound)
	}

	if !actor.IsSuperadmin() && !actor.SameTenant(target) {
		return nil, apperror.New(http.StatusForbidden, "connections are limited to your university", apperror.ErrForbidden)
	}

	// Pre-checks for friendly messages; the transaction re-checks both.
	existing, err := s.repo.FindConnectionByPair(ctx, actor.ID, toUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.New(http.StatusConflict, "users are already connected", apperror.ErrConflict)
	}

	prior, err := s.repo.FindRequestByPair(ctx, actor.ID, toUserID)
	if err != nil {
		return nil, err
	}
	if prior != nil {
		return nil, apperror.New(http.StatusConflict, "a connection request already exists between these users", apperror.ErrConflict)
	}

	request := &entity.ConnectionRequest{
		ID:         uuid.New(),
		FromUserID: actor.ID,
		ToUserID:   toUserID,
		Status:     entity.RequestStatusPending,
	}

	actorID := actor.ID
	notification := &entity.Notification{
		UserID:    toUserID,
		ActorID:   &actorID,
		Type:      entity.NotificationConnectionRequest,
		Title:     "New connection request",
		Message:   fmt.Sprintf("%s wants to connect with you", actor.Name),
		RelatedID: &request.ID,
	}

	if err := s.repo.CreateRequest(ctx, request, notification); err != nil {
		if errors.Is(err, apperror.ErrConflict) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(http.StatusConflict, "a connection request already exists between these users", apperror.ErrConflict)
		}
		return nil, err
	}

	s.notifier.Publish(ctx, notification)

	return request, nil
}

// AcceptRequest flips a pending request addressed to the actor. A second
// accept of the same request finds no pending row and reports NotFound.
func (s *connectionService) AcceptRequest(ctx context.Context, actor entity.Actor, requestID uuid.UUID) error {
	actorID := actor.ID
	notification := &entity.Notification{
		// UserID is set to the original sender inside the transaction.
		ActorID:   &actorID,
		Type:      entity.NotificationConnectionAccepted,
		Title:     "Connection accepted",
		Message:   fmt.Sprintf("%s accepted your connection request", actor.Name),
		RelatedID: &requestID,
	}

	if err := s.repo.AcceptRequest(ctx, requestID, actor.ID, notification); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.New(http.StatusNotFound, "pending request not found", apperror.ErrNotFound)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.New(http.StatusConflict, "users are already connected", apperror.ErrConflict)
		}
		return err
	}

	s.notifier.Publish(ctx, notification)
	return nil
}

func (s *connectionService) RejectRequest(ctx context.Context, actor entity.Actor, requestID uuid.UUID) error {
	if err := s.repo.RejectRequest(ctx, requestID, actor.ID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.New(http.StatusNotFound, "pending request not found", apperror.ErrNotFound)
		}
		return err
	}

	return nil
}

// RemoveConnection deletes the pair row in whichever direction it was
// stored. Removing a non-existent connection is a no-op.
func (s *connectionService) RemoveConnection(ctx context.Context, actor entity.Actor, otherUserID uuid.UUID) error {
	return s.repo.DeleteConnection(ctx, actor.ID, otherUserID)
}

func (s *connectionService) CheckStatus(ctx context.Context, actor entity.Actor, otherUserID uuid.UUID) (*connDto.StatusResponse, error) {
	connection, err := s.repo.FindConnectionByPair(ctx, actor.ID, otherUserID)
	if err != nil {
		return nil, err
	}
	if connection != nil {
		return &connDto.StatusResponse{IsConnected: true, RequestStatus: "none"}, nil
	}

	request, err := s.repo.FindRequestByPair(ctx, actor.ID, otherUserID)
	if err != nil {
		return nil, err
	}
	if request != nil && request.Status == entity.RequestStatusPending {
		direction := connRepo.DirectionIncoming
		if request.FromUserID == actor.ID {
			direction = connRepo.DirectionOutgoing
		}
		return &connDto.StatusResponse{
			IsConnected:   false,
			RequestStatus: string(entity.RequestStatusPending),
			Direction:     &direction,
		}, nil
	}

	return &connDto.StatusResponse{IsConnected: false, RequestStatus: "none"}, nil
}

func (s *connectionService) ListConnections(ctx context.Context, actor entity.Actor, query connDto.ListConnectionsQuery) (*connDto.PaginatedConnectionsResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}

	connections, total, err := s.repo.ListConnections(ctx, actor.ID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	data := make([]connDto.ConnectionResponse, 0, len(connections))
	for i := range connections {
		conn := &connections[i]
		other := conn.UserHigh
		if conn.UserHighID == actor.ID {
			other = conn.UserLow
		}
		if other == nil {
			continue
		}
		data = append(data, connDto.ConnectionResponse{
			User:        connDto.NewUserCard(other),
			ConnectedAt: conn.ConnectedAt,
		})
	}

	return &connDto.PaginatedConnectionsResponse{
		Data: data,
		Meta: commonDto.NewPaginationMeta(page, limit, total),
	}, nil
}

func (s *connectionService) ListRequests(ctx context.Context, actor entity.Actor, direction string) ([]connDto.RequestResponse, error) {
	if direction == "" {
		direction = connRepo.DirectionIncoming
	}

	requests, err := s.repo.ListRequests(ctx, actor.ID, direction)
	if err != nil {
		return nil, err
	}

	responses := make([]connDto.RequestResponse, 0, len(requests))
	for i := range requests {
		req := &requests[i]
		counterpart := req.FromUser
		if direction == connRepo.DirectionOutgoing {
			counterpart = req.ToUser
		}
		if counterpart == nil {
			continue
		}
		responses = append(responses, connDto.RequestResponse{
			ID:        req.ID,
			Status:    string(req.Status),
			Direction: direction,
			User:      connDto.NewUserCard(counterpart),
			CreatedAt: req.CreatedAt,
		})
	}

	return responses, nil
}

// Suggestions returns same-tenant candidates in strategy order. No ranking
// guarantee is part of the contract; callers treat the order as cosmetic.
func (s *connectionService) Suggestions(ctx context.Context, actor entity.Actor, limit int) ([]connDto.UserCard, error) {
	if actor.UniversityID == nil {
		return []connDto.UserCard{}, nil
	}
	if limit < 1 {
		limit = 10
	}

	candidates, err := s.repo.Suggestions(ctx, actor.ID, *actor.UniversityID, limit*suggestionOverfetch)
	if err != nil {
		return nil, err
	}

	s.ranker.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	cards := make([]connDto.UserCard, 0, len(candidates))
	for i := range candidates {
		cards = append(cards, connDto.NewUserCard(&candidates[i]))
	}

	return cards, nil
}
