package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"

	"github.com/alumninet/alumninet/internal/entity"
	connDto "github.com/alumninet/alumninet/internal/modules/connection/dto"
	mentorDto "github.com/alumninet/alumninet/internal/modules/mentorship/dto"
	mentorRepo "github.com/alumninet/alumninet/internal/modules/mentorship/repository"
	notifService "github.com/alumninet/alumninet/internal/modules/notification/service"
	searchService "github.com/alumninet/alumninet/internal/modules/search/service"
	userRepo "github.com/alumninet/alumninet/internal/modules/user/repository"
	"github.com/alumninet/alumninet/internal/ranking"
	"github.com/alumninet/alumninet/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type MentorshipService interface {
	ToggleMentor(ctx context.Context, actor entity.Actor, input mentorDto.ToggleMentorInput) (*entity.Mentor, error)
	RequestMentorship(ctx context.Context, actor entity.Actor, mentorID uuid.UUID, input mentorDto.RequestMentorshipInput) (*entity.MentorshipRequest, error)
	AcceptRequest(ctx context.Context, actor entity.Actor, requestID uuid.UUID) error
	RejectRequest(ctx context.Context, actor entity.Actor, requestID uuid.UUID) error
	ListMentors(ctx context.Context, actor entity.Actor, query mentorDto.ListMentorsQuery) ([]mentorDto.MentorResponse, error)
	ListRequests(ctx context.Context, actor entity.Actor, direction string) ([]mentorDto.MentorshipRequestResponse, error)
}

type mentorshipService struct {
	repo      mentorRepo.MentorshipRepository
	users     userRepo.UserRepository
	notifier  notifService.NotificationService
	search    searchService.MentorSearchService
	ranker    ranking.Strategy
	sanitizer *bluemonday.Policy
}

// NewMentorshipService wires the matching engine. search may be nil; the
// service falls back to SQL matching when it is.
func NewMentorshipService(repo mentorRepo.MentorshipRepository, users userRepo.UserRepository, notifier notifService.NotificationService, search searchService.MentorSearchService, ranker ranking.Strategy) MentorshipService {
	return &mentorshipService{
		repo:      repo,
		users:     users,
		notifier:  notifier,
		search:    search,
		ranker:    ranker,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// ToggleMentor flips the actor's mentor status. Enabling lazily creates the
// profile or reactivates a previously disabled one; disabling soft-disables
// so history and the mentee counter survive.
func (s *mentorshipService) ToggleMentor(ctx context.Context, actor entity.Actor, input mentorDto.ToggleMentorInput) (*entity.Mentor, error) {
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if user.IsMentor {
		mentor, err := s.repo.DisableMentor(ctx, user)
		if err != nil {
			return nil, err
		}
		s.reindex(mentor, user)
		return mentor, nil
	}

	profile := &entity.Mentor{
		Expertise:       input.Expertise,
		Availability:    s.sanitizer.Sanitize(input.Availability),
		YearsExperience: input.YearsExperience,
	}

	mentor, err := s.repo.EnableMentor(ctx, user, profile)
	if err != nil {
		return nil, err
	}

	s.reindex(mentor, user)
	return mentor, nil
}

func (s *mentorshipService) RequestMentorship(ctx context.Context, actor entity.Actor, mentorID uuid.UUID, input mentorDto.RequestMentorshipInput) (*entity.MentorshipRequest, error) {
	mentor, err := s.repo.FindMentorByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "mentor not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if mentor.UserID == actor.ID {
		return nil, apperror.New(http.StatusBadRequest, "cannot request mentorship from yourself", apperror.ErrInvalidOperation)
	}
	if !mentor.IsActive() || mentor.User == nil || !mentor.User.IsActive() {
		return nil, apperror.New(http.StatusNotFound, "mentor not found", apperror.ErrNotFound)
	}
	if !actor.IsSuperadmin() && !actor.SameTenant(mentor.User) {
		return nil, apperror.New(http.StatusForbidden, "mentorship is limited to your university", apperror.ErrForbidden)
	}

	request := &entity.MentorshipRequest{
		ID:       uuid.New(),
		MentorID: mentor.ID,
		MenteeID: actor.ID,
		Message:  s.sanitizer.Sanitize(input.Message),
		Status:   entity.RequestStatusPending,
	}

	actorID := actor.ID
	notification := &entity.Notification{
		UserID:    mentor.UserID,
		ActorID:   &actorID,
		Type:      entity.NotificationMentorshipRequest,
		Title:     "New mentorship request",
		Message:   fmt.Sprintf("%s asked you to be their mentor", actor.Name),
		RelatedID: &request.ID,
	}

	if err := s.repo.CreateRequest(ctx, request, notification); err != nil {
		if errors.Is(err, apperror.ErrConflict) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(http.StatusConflict, "a mentorship request for this mentor already exists", apperror.ErrConflict)
		}
		return nil, err
	}

	s.notifier.Publish(ctx, notification)
	return request, nil
}

// AcceptRequest requires the actor to be the mentor's underlying user. The
// repository re-checks the pending status inside the transaction, so a
// second accept reports NotFound and the counter moves exactly once.
func (s *mentorshipService) AcceptRequest(ctx context.Context, actor entity.Actor, requestID uuid.UUID) error {
	request, err := s.loadOwnedRequest(ctx, actor, requestID)
	if err != nil {
		return err
	}

	actorID := actor.ID
	notification := &entity.Notification{
		// UserID is set to the mentee inside the transaction.
		ActorID:   &actorID,
		Type:      entity.NotificationMentorshipAccepted,
		Title:     "Mentorship accepted",
		Message:   fmt.Sprintf("%s accepted your mentorship request", actor.Name),
		RelatedID: &request.ID,
	}

	if err := s.repo.AcceptRequest(ctx, requestID, notification); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.New(http.StatusNotFound, "pending request not found", apperror.ErrNotFound)
		}
		return err
	}

	s.notifier.Publish(ctx, notification)
	return nil
}

func (s *mentorshipService) RejectRequest(ctx context.Context, actor entity.Actor, requestID uuid.UUID) error {
	if _, err := s.loadOwnedRequest(ctx, actor, requestID); err != nil {
		return err
	}

	if err := s.repo.RejectRequest(ctx, requestID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.New(http.StatusNotFound, "pending request not found", apperror.ErrNotFound)
		}
		return err
	}

	return nil
}

func (s *mentorshipService) ListMentors(ctx context.Context, actor entity.Actor, query mentorDto.ListMentorsQuery) ([]mentorDto.MentorResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}

	filter := mentorRepo.MentorFilter{
		Expertise:    query.Expertise,
		Availability: query.Availability,
		Search:       query.Search,
		Offset:       (page - 1) * limit,
		Limit:        limit,
	}

	// Tenant scoping: alumni and admins never see outside their university.
	// Superadmins span all tenants only when they ask to.
	if actor.IsSuperadmin() {
		if query.UniversityID != "" {
			filter.UniversityID = &query.UniversityID
		} else if !query.AllUniversities {
			filter.UniversityID = actor.UniversityID
		}
	} else {
		if actor.UniversityID == nil {
			return []mentorDto.MentorResponse{}, nil
		}
		filter.UniversityID = actor.UniversityID
	}

	if query.Search != "" && s.search != nil {
		ids, err := s.search.SearchMentors(query.Search, filter.UniversityID, limit*5)
		if err != nil {
			log.Printf("mentor search unavailable, falling back to SQL: %v", err)
		} else {
			if len(ids) == 0 {
				return []mentorDto.MentorResponse{}, nil
			}
			filter.MentorIDs = ids
		}
	}

	mentors, _, err := s.repo.ListMentors(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]mentorDto.MentorResponse, 0, len(mentors))
	for i := range mentors {
		mentor := &mentors[i]
		if mentor.User == nil {
			continue
		}
		responses = append(responses, mentorDto.MentorResponse{
			ID:              mentor.ID,
			User:            connDto.NewUserCard(mentor.User),
			Expertise:       mentor.Expertise,
			Availability:    mentor.Availability,
			YearsExperience: mentor.YearsExperience,
			MenteesCount:    mentor.MenteesCount,
			MatchScore:      s.ranker.MatchScore(mentor.ID),
		})
	}

	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].MatchScore > responses[j].MatchScore
	})

	return responses, nil
}

func (s *mentorshipService) ListRequests(ctx context.Context, actor entity.Actor, direction string) ([]mentorDto.MentorshipRequestResponse, error) {
	if direction == "outgoing" {
		requests, err := s.repo.ListRequestsForMentee(ctx, actor.ID)
		if err != nil {
			return nil, err
		}

		responses := make([]mentorDto.MentorshipRequestResponse, 0, len(requests))
		for i := range requests {
			req := &requests[i]
			if req.Mentor == nil || req.Mentor.User == nil {
				continue
			}
			responses = append(responses, mentorDto.MentorshipRequestResponse{
				ID:        req.ID,
				MentorID:  req.MentorID,
				Status:    string(req.Status),
				Message:   req.Message,
				User:      connDto.NewUserCard(req.Mentor.User),
				CreatedAt: req.CreatedAt,
			})
		}
		return responses, nil
	}

	mentor, err := s.repo.FindMentorByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if mentor == nil {
		return []mentorDto.MentorshipRequestResponse{}, nil
	}

	requests, err := s.repo.ListRequestsForMentor(ctx, mentor.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]mentorDto.MentorshipRequestResponse, 0, len(requests))
	for i := range requests {
		req := &requests[i]
		if req.Mentee == nil {
			continue
		}
		responses = append(responses, mentorDto.MentorshipRequestResponse{
			ID:        req.ID,
			MentorID:  req.MentorID,
			Status:    string(req.Status),
			Message:   req.Message,
			User:      connDto.NewUserCard(req.Mentee),
			CreatedAt: req.CreatedAt,
		})
	}

	return responses, nil
}

func (s *mentorshipService) loadOwnedRequest(ctx context.Context, actor entity.Actor, requestID uuid.UUID) (*entity.MentorshipRequest, error) {
	request, err := s.repo.FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "request not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if request.Mentor == nil || request.Mentor.UserID != actor.ID {
		return nil, apperror.New(http.StatusNotFound, "request not found", apperror.ErrNotFound)
	}

	return request, nil
}

func (s *mentorshipService) reindex(mentor *entity.Mentor, user *entity.User) {
	if s.search == nil || mentor == nil {
		return
	}
	if mentor.User == nil {
		mentor.User = user
	}
	if err := s.search.IndexMentor(mentor); err != nil {
		log.Printf("Failed to index mentor %s: %v", mentor.ID, err)
	}
}
