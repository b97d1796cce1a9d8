package repository

import (
	"context"

	"github.com/alumninet/alumninet/internal/entity"
	"github.com/alumninet/alumninet/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
)

type ConnectionRepository interface {
	// CreateRequest re-runs the duplicate checks and inserts the request
	// plus its notification inside one transaction. The unique pair_key
	// index backs the check against concurrent senders.
	CreateRequest(ctx context.Context, request *entity.ConnectionRequest, notification *entity.Notification) error
	// AcceptRequest flips a pending request owned by actorID to accepted,
	// creates the single symmetric connection row and the notification,
	// all in one transaction. Returns ErrNotFound when no pending request
	// matches, which is what the second of two concurrent acceptors sees.
	AcceptRequest(ctx context.Context, requestID, actorID uuid.UUID, notification *entity.Notification) error
	RejectRequest(ctx context.Context, requestID, actorID uuid.UUID) error
	FindRequestByID(ctx context.Context, id uuid.UUID) (*entity.ConnectionRequest, error)
	FindRequestByPair(ctx context.Context, a, b uuid.UUID) (*entity.ConnectionRequest, error)
	FindConnectionByPair(ctx context.Context, a, b uuid.UUID) (*entity.Connection, error)
	DeleteConnection(ctx context.Context, a, b uuid.UUID) error
	ListConnections(ctx context.Context, userID uuid.UUID, offset, limit int) ([]entity.Connection, int64, error)
	ListRequests(ctx context.Context, userID uuid.UUID, direction string) ([]entity.ConnectionRequest, error)
	// Suggestions returns active users in the given university excluding
	// the user, anyone already connected to them, and anyone they have a
	// live outbound request to. Order is storage-defined; ranking happens
	// in the service.
	Suggestions(ctx context.Context, userID uuid.UUID, universityID string, limit int) ([]entity.User, error)
}

type connectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) CreateRequest(ctx context.Context, request *entity.ConnectionRequest, notification *entity.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lo, hi := entity.NormalizePair(request.FromUserID, request.ToUserID)

		var count int64
		if err := tx.Model(&entity.Connection{}).
			Where("user_low_id = ? AND user_high_id = ?", lo, hi).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperror.ErrConflict
		}

		if err := tx.Model(&entity.ConnectionRequest{}).
			Where("pair_key = ?", entity.PairKey(request.FromUserID, request.ToUserID)).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperror.ErrConflict
		}

		if err := tx.Create(request).Error; err != nil {
			return err
		}

		if notification != nil {
			if err := tx.Create(notification).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *connectionRepository) AcceptRequest(ctx context.Context, requestID, actorID uuid.UUID, notification *entity.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.ConnectionRequest{}).
			Where("id = ? AND to_user_id = ? AND status = ?", requestID, actorID, entity.RequestStatusPending).
			Update("status", entity.RequestStatusAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.ErrNotFound
		}

		var request entity.ConnectionRequest
		if err := tx.Where("id = ?", requestID).First(&request).Error; err != nil {
			return err
		}

		if err := tx.Create(entity.NewConnection(request.FromUserID, request.ToUserID)).Error; err != nil {
			return err
		}

		if notification != nil {
			notification.UserID = request.FromUserID
			if err := tx.Create(notification).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *connectionRepository) RejectRequest(ctx context.Context, requestID, actorID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&entity.ConnectionRequest{}).
		Where("id = ? AND to_user_id = ? AND status = ?", requestID, actorID, entity.RequestStatusPending).
		Update("status", entity.RequestStatusRejected)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}

	return nil
}

func (r *connectionRepository) FindRequestByID(ctx context.Context, id uuid.UUID) (*entity.ConnectionRequest, error) {
	var request entity.ConnectionRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}

	return &request, nil
}

func (r *connectionRepository) FindRequestByPair(ctx context.Context, a, b uuid.UUID) (*entity.ConnectionRequest, error) {
	var requests []entity.ConnectionRequest
	err := r.db.WithContext(ctx).
		Where("pair_key = ?", entity.PairKey(a, b)).
		Limit(1).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, nil
	}

	return &requests[0], nil
}

func (r *connectionRepository) FindConnectionByPair(ctx context.Context, a, b uuid.UUID) (*entity.Connection, error) {
	lo, hi := entity.NormalizePair(a, b)

	var connections []entity.Connection
	err := r.db.WithContext(ctx).
		Where("user_low_id = ? AND user_high_id = ?", lo, hi).
		Limit(1).
		Find(&connections).Error
	if err != nil {
		return nil, err
	}
	if len(connections) == 0 {
		return nil, nil
	}

	return &connections[0], nil
}

func (r *connectionRepository) DeleteConnection(ctx context.Context, a, b uuid.UUID) error {
	lo, hi := entity.NormalizePair(a, b)
	return r.db.WithContext(ctx).
		Where("user_low_id = ? AND user_high_id = ?", lo, hi).
		Delete(&entity.Connection{}).Error
}

func (r *connectionRepository) ListConnections(ctx context.Context, userID uuid.UUID, offset, limit int) ([]entity.Connection, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.Connection{}).
		Where("user_low_id = ? OR user_high_id = ?", userID, userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var connections []entity.Connection
	if err := query.
		Preload("UserLow").
		Preload("UserHigh").
		Order("connected_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&connections).Error; err != nil {
		return nil, 0, err
	}

	return connections, total, nil
}

func (r *connectionRepository) ListRequests(ctx context.Context, userID uuid.UUID, direction string) ([]entity.ConnectionRequest, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.ConnectionRequest{}).
		Where("status = ?", entity.RequestStatusPending)

	switch direction {
	case DirectionOutgoing:
		query = query.Where("from_user_id = ?", userID).Preload("ToUser")
	default:
		query = query.Where("to_user_id = ?", userID).Preload("FromUser")
	}

	var requests []entity.ConnectionRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *connectionRepository) Suggestions(ctx context.Context, userID uuid.UUID, universityID string, limit int) ([]entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("university_id = ?", universityID).
		Where("status = ?", entity.UserStatusActive).
		Where("id <> ?", userID).
		Where("id NOT IN (SELECT user_high_id FROM connections WHERE user_low_id = ?)", userID).
		Where("id NOT IN (SELECT user_low_id FROM connections WHERE user_high_id = ?)", userID).
		Where("id NOT IN (SELECT to_user_id FROM connection_requests WHERE from_user_id = ? AND status = ?)", userID, entity.RequestStatusPending).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}
