package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/alumninet/alumninet/internal/entity"
	"github.com/alumninet/alumninet/internal/modules/university/dto"
	"github.com/alumninet/alumninet/internal/modules/university/repository"
	"github.com/alumninet/alumninet/pkg/apperror"
	"gorm.io/gorm"
)

type UniversityService interface {
	Create(ctx context.Context, actor entity.Actor, input dto.CreateUniversityInput) (*entity.University, error)
	Update(ctx context.Context, actor entity.Actor, id string, input dto.UpdateUniversityInput) (*entity.University, error)
	List(ctx context.Context, actor entity.Actor) ([]*entity.University, error)
	GetOwn(ctx context.Context, actor entity.Actor) (*entity.University, error)
}

type universityService struct {
	repo repository.UniversityRepository
}

func NewUniversityService(repo repository.UniversityRepository) UniversityService {
	return &universityService{repo: repo}
}

func (s *universityService) Create(ctx context.Context, actor entity.Actor, input dto.CreateUniversityInput) (*entity.University, error) {
	if !actor.IsSuperadmin() {
		return nil, apperror.New(http.StatusForbidden, "superadmin access required", apperror.ErrForbidden)
	}

	university := &entity.University{
		ID:     input.ID,
		Name:   input.Name,
		Status: entity.UniversityStatusActive,
	}

	if err := s.repo.Create(ctx, university); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(http.StatusConflict, "university slug already exists", apperror.ErrConflict)
		}
		return nil, err
	}

	return university, nil
}

// Update edits name or status. Disabling blocks login for the university's
// members but keeps every row in place.
func (s *universityService) Update(ctx context.Context, actor entity.Actor, id string, input dto.UpdateUniversityInput) (*entity.University, error) {
	if !actor.IsSuperadmin() {
		return nil, apperror.New(http.StatusForbidden, "superadmin access required", apperror.ErrForbidden)
	}

	university, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "university not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if input.Name != nil {
		university.Name = *input.Name
	}
	if input.Status != nil {
		university.Status = entity.UniversityStatus(*input.Status)
	}

	if err := s.repo.Update(ctx, university); err != nil {
		return nil, err
	}

	return university, nil
}

func (s *universityService) List(ctx context.Context, actor entity.Actor) ([]*entity.University, error) {
	if !actor.IsSuperadmin() {
		return nil, apperror.New(http.StatusForbidden, "superadmin access required", apperror.ErrForbidden)
	}

	return s.repo.FindAll(ctx)
}

func (s *universityService) GetOwn(ctx context.Context, actor entity.Actor) (*entity.University, error) {
	if actor.UniversityID == nil {
		return nil, apperror.New(http.StatusNotFound, "no university attached to this account", apperror.ErrNotFound)
	}

	university, err := s.repo.FindByID(ctx, *actor.UniversityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "university not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	return university, nil
}
