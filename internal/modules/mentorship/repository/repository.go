package repository

import (
	"context"

	"github.com/alumninet/alumninet/internal/entity"
	"github.com/alumninet/alumninet/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MentorFilter struct {
	UniversityID *string
	Expertise    string
	Availability string
	Search       string
	MentorIDs    []uuid.UUID
	Offset       int
	Limit        int
}

type MentorshipRepository interface {
	FindMentorByID(ctx context.Context, id uuid.UUID) (*entity.Mentor, error)
	FindMentorByUserID(ctx context.Context, userID uuid.UUID) (*entity.Mentor, error)
	// EnableMentor flips the user's mentor flag and creates or reactivates
	// the mentor profile in one transaction. The existing mentees counter
	// and request history survive a reactivation.
	EnableMentor(ctx context.Context, user *entity.User, profile *entity.Mentor) (*entity.Mentor, error)
	// DisableMentor soft-deactivates the profile; mentorship history stays
	// resolvable.
	DisableMentor(ctx context.Context, user *entity.User) (*entity.Mentor, error)
	// CreateRequest re-checks pair uniqueness inside the transaction and
	// inserts the request with its notification.
	CreateRequest(ctx context.Context, request *entity.MentorshipRequest, notification *entity.Notification) error
	FindRequestByID(ctx context.Context, id uuid.UUID) (*entity.MentorshipRequest, error)
	// AcceptRequest flips a pending request, bumps the mentor's mentees
	// counter by exactly one, and records the notification atomically.
	// Returns ErrNotFound when no pending row matches.
	AcceptRequest(ctx context.Context, requestID uuid.UUID, notification *entity.Notification) error
	RejectRequest(ctx context.Context, requestID uuid.UUID) error
	ListMentors(ctx context.Context, filter MentorFilter) ([]entity.Mentor, int64, error)
	ListRequestsForMentor(ctx context.Context, mentorID uuid.UUID) ([]entity.MentorshipRequest, error)
	ListRequestsForMentee(ctx context.Context, menteeID uuid.UUID) ([]entity.MentorshipRequest, error)
}

type mentorshipRepository struct {
	db *gorm.DB
}

func NewMentorshipRepository(db *gorm.DB) MentorshipRepository {
	return &mentorshipRepository{db: db}
}

func (r *mentorshipRepository) FindMentorByID(ctx context.Context, id uuid.UUID) (*entity.Mentor, error) {
	var mentor entity.Mentor
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&mentor).Error; err != nil {
		return nil, err
	}

	return &mentor, nil
}

func (r *mentorshipRepository) FindMentorByUserID(ctx context.Context, userID uuid.UUID) (*entity.Mentor, error) {
	var mentors []entity.Mentor
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&mentors).Error
	if err != nil {
		return nil, err
	}
	if len(mentors) == 0 {
		return nil, nil
	}

	return &mentors[0], nil
}

func (r *mentorshipRepository) EnableMentor(ctx context.Context, user *entity.User, profile *entity.Mentor) (*entity.Mentor, error) {
	var result *entity.Mentor
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.User{}).
			Where("id = ?", user.ID).
			Update("is_mentor", true).Error; err != nil {
			return err
		}

		var existing []entity.Mentor
		if err := tx.Where("user_id = ?", user.ID).Limit(1).Find(&existing).Error; err != nil {
			return err
		}

		if len(existing) > 0 {
			mentor := existing[0]
			mentor.Status = entity.MentorStatusActive
			if profile != nil {
				if len(profile.Expertise) > 0 {
					mentor.Expertise = profile.Expertise
				}
				if profile.Availability != "" {
					mentor.Availability = profile.Availability
				}
				if profile.YearsExperience > 0 {
					mentor.YearsExperience = profile.YearsExperience
				}
			}
			if err := tx.Save(&mentor).Error; err != nil {
				return err
			}
			result = &mentor
			return nil
		}

		mentor := &entity.Mentor{
			UserID: user.ID,
			Status: entity.MentorStatusActive,
		}
		if profile != nil {
			mentor.Expertise = profile.Expertise
			mentor.Availability = profile.Availability
			mentor.YearsExperience = profile.YearsExperience
		}
		if err := tx.Create(mentor).Error; err != nil {
			return err
		}
		result = mentor
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *mentorshipRepository) DisableMentor(ctx context.Context, user *entity.User) (*entity.Mentor, error) {
	var result *entity.Mentor
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.User{}).
			Where("id = ?", user.ID).
			Update("is_mentor", false).Error; err != nil {
			return err
		}

		var mentors []entity.Mentor
		if err := tx.Where("user_id = ?", user.ID).Limit(1).Find(&mentors).Error; err != nil {
			return err
		}
		if len(mentors) == 0 {
			return nil
		}

		mentor := mentors[0]
		mentor.Status = entity.MentorStatusInactive
		if err := tx.Save(&mentor).Error; err != nil {
			return err
		}
		result = &mentor
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *mentorshipRepository) CreateRequest(ctx context.Context, request *entity.MentorshipRequest, notification *entity.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.MentorshipRequest{}).
			Where("mentor_id = ? AND mentee_id = ?", request.MentorID, request.MenteeID).
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

func (r *mentorshipRepository) FindRequestByID(ctx context.Context, id uuid.UUID) (*entity.MentorshipRequest, error) {
	var request entity.MentorshipRequest
	if err := r.db.WithContext(ctx).
		Preload("Mentor").
		Preload("Mentee").
		Where("id = ?", id).
		First(&request).Error; err != nil {
		return nil, err
	}

	return &request, nil
}

func (r *mentorshipRepository) AcceptRequest(ctx context.Context, requestID uuid.UUID, notification *entity.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.MentorshipRequest{}).
			Where("id = ? AND status = ?", requestID, entity.RequestStatusPending).
			Update("status", entity.RequestStatusAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.ErrNotFound
		}

		var request entity.MentorshipRequest
		if err := tx.Where("id = ?", requestID).First(&request).Error; err != nil {
			return err
		}

		if err := tx.Model(&entity.Mentor{}).
			Where("id = ?", request.MentorID).
			UpdateColumn("mentees_count", gorm.Expr("mentees_count + ?", 1)).Error; err != nil {
			return err
		}

		if notification != nil {
			notification.UserID = request.MenteeID
			if err := tx.Create(notification).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *mentorshipRepository) RejectRequest(ctx context.Context, requestID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&entity.MentorshipRequest{}).
		Where("id = ? AND status = ?", requestID, entity.RequestStatusPending).
		Update("status", entity.RequestStatusRejected)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}

	return nil
}

func (r *mentorshipRepository) ListMentors(ctx context.Context, filter MentorFilter) ([]entity.Mentor, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.Mentor{}).
		Joins("JOIN users ON users.id = mentors.user_id").
		Where("mentors.status = ?", entity.MentorStatusActive).
		Where("users.status = ?", entity.UserStatusActive)

	if filter.UniversityID != nil {
		query = query.Where("users.university_id = ?", *filter.UniversityID)
	}
	if filter.Expertise != "" {
		query = query.Where(datatypes.JSONArrayQuery("expertise").Contains(filter.Expertise))
	}
	if filter.Availability != "" {
		query = query.Where("mentors.availability = ?", filter.Availability)
	}
	if len(filter.MentorIDs) > 0 {
		query = query.Where("mentors.id IN ?", filter.MentorIDs)
	} else if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("users.name ILIKE ? OR mentors.expertise::text ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var mentors []entity.Mentor
	if err := query.
		Preload("User").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&mentors).Error; err != nil {
		return nil, 0, err
	}

	return mentors, total, nil
}

func (r *mentorshipRepository) ListRequestsForMentor(ctx context.Context, mentorID uuid.UUID) ([]entity.MentorshipRequest, error) {
	var requests []entity.MentorshipRequest
	if err := r.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Preload("Mentee").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *mentorshipRepository) ListRequestsForMentee(ctx context.Context, menteeID uuid.UUID) ([]entity.MentorshipRequest, error) {
	var requests []entity.MentorshipRequest
	if err := r.db.WithContext(ctx).
		Where("mentee_id = ?", menteeID).
		Preload("Mentor.User").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}
