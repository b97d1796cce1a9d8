package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alumninet/alumninet/internal/entity"
	notifRepo "github.com/alumninet/alumninet/internal/modules/notification/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type NotificationService interface {
	// CreateNotification inserts the row and pushes it in one call. Used by
	// call sites that are not already inside a business transaction.
	CreateNotification(ctx context.Context, notification *entity.Notification) error
	// Publish pushes an already-committed notification to the user's Redis
	// channel. Best-effort: the row is durable regardless.
	Publish(ctx context.Context, notification *entity.Notification)
	GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error)
	MarkAsRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo        notifRepo.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo notifRepo.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

func (s *notificationService) CreateNotification(ctx context.Context, notification *entity.Notification) error {
	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	s.Publish(ctx, notification)
	return nil
}

func (s *notificationService) Publish(ctx context.Context, notification *entity.Notification) {
	if s.redisClient == nil || notification == nil {
		return
	}

	channel := fmt.Sprintf("user_notifications:%s", notification.UserID.String())

	payload, err := json.Marshal(notification)
	if err == nil {
		s.redisClient.Publish(ctx, channel, payload)
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error) {
	return s.repo.GetByUserID(ctx, userID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, userID, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
