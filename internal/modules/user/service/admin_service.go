package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/alumninet/alumninet/internal/entity"
	"github.com/alumninet/alumninet/internal/modules/user/dto"
	"github.com/alumninet/alumninet/internal/modules/user/repository"
	universityRepo "github.com/alumninet/alumninet/internal/modules/university/repository"
	"github.com/alumninet/alumninet/pkg/apperror"
	commonDto "github.com/alumninet/alumninet/pkg/dto"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminService interface {
	CreateUser(ctx context.Context, actor entity.Actor, input dto.CreateUserInput) (*entity.User, error)
	ListUsers(ctx context.Context, actor entity.Actor, query dto.ListUsersQuery) (*dto.PaginatedUsersResponse, error)
	UpdateUser(ctx context.Context, actor entity.Actor, userID uuid.UUID, input dto.UpdateUserInput) (*entity.User, error)
	DeactivateUser(ctx context.Context, actor entity.Actor, userID uuid.UUID) error
}

type adminService struct {
	users        repository.UserRepository
	universities universityRepo.UniversityRepository
}

func NewAdminService(users repository.UserRepository, universities universityRepo.UniversityRepository) AdminService {
	return &adminService{users: users, universities: universities}
}

func (s *adminService) CreateUser(ctx context.Context, actor entity.Actor, input dto.CreateUserInput) (*entity.User, error) {
	role := input.Role
	if role == "" {
		role = entity.RoleAlumni
	}

	universityID := input.UniversityID
	if universityID == nil && actor.Role == entity.RoleAdmin {
		universityID = actor.UniversityID
	}

	switch role {
	case entity.RoleSuperadmin:
		if !actor.IsSuperadmin() {
			return nil, apperror.New(http.StatusForbidden, "only superadmin can create superadmin accounts", apperror.ErrForbidden)
		}
	case entity.RoleAdmin:
		if !actor.IsSuperadmin() {
			return nil, apperror.New(http.StatusForbidden, "only superadmin can create admin accounts", apperror.ErrForbidden)
		}
	default:
		if universityID == nil {
			return nil, apperror.New(http.StatusBadRequest, "university is required for alumni accounts", apperror.ErrBadRequest)
		}
		if !actor.CanAccessTenant(*universityID) {
			return nil, apperror.New(http.StatusForbidden, "cannot create users outside your university", apperror.ErrForbidden)
		}
	}

	if universityID != nil {
		if _, err := s.universities.FindByID(ctx, *universityID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.New(http.StatusNotFound, "university not found", apperror.ErrNotFound)
			}
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:          input.Email,
		PasswordHash:   string(hash),
		Name:           input.Name,
		Role:           role,
		UniversityID:   universityID,
		Status:         entity.UserStatusActive,
		GraduationYear: input.GraduationYear,
		Major:          input.Major,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(http.StatusConflict, "email is already registered", apperror.ErrConflict)
		}
		return nil, err
	}

	return user, nil
}

func (s *adminService) ListUsers(ctx context.Context, actor entity.Actor, query dto.ListUsersQuery) (*dto.PaginatedUsersResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}

	filter := repository.ListUsersFilter{
		Role:   query.Role,
		Status: entity.UserStatus(query.Status),
		Offset: (page - 1) * limit,
		Limit:  limit,
	}

	// Admins are pinned to their own tenant; superadmins may filter or span all.
	if actor.IsSuperadmin() {
		if query.UniversityID != "" {
			filter.UniversityID = &query.UniversityID
		}
	} else {
		if actor.UniversityID == nil {
			return nil, apperror.New(http.StatusForbidden, "no university scope", apperror.ErrForbidden)
		}
		filter.UniversityID = actor.UniversityID
	}

	users, total, err := s.users.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.PaginatedUsersResponse{
		Data: users,
		Meta: commonDto.NewPaginationMeta(page, limit, total),
	}, nil
}

func (s *adminService) UpdateUser(ctx context.Context, actor entity.Actor, userID uuid.UUID, input dto.UpdateUserInput) (*entity.User, error) {
	user, err := s.loadManagedUser(ctx, actor, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		if !actor.IsSuperadmin() {
			return nil, apperror.New(http.StatusForbidden, "only superadmin can change roles", apperror.ErrForbidden)
		}
		user.Role = *input.Role
	}
	if input.Status != nil {
		user.Status = entity.UserStatus(*input.Status)
	}
	if input.GraduationYear != nil {
		user.GraduationYear = input.GraduationYear
	}
	if input.Major != nil {
		user.Major = input.Major
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeactivateUser soft-disables the account; rows referencing the user stay
// intact.
func (s *adminService) DeactivateUser(ctx context.Context, actor entity.Actor, userID uuid.UUID) error {
	user, err := s.loadManagedUser(ctx, actor, userID)
	if err != nil {
		return err
	}

	user.Status = entity.UserStatusInactive
	return s.users.Update(ctx, user)
}

func (s *adminService) loadManagedUser(ctx context.Context, actor entity.Actor, userID uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if !actor.IsSuperadmin() {
		if user.Role != entity.RoleAlumni {
			return nil, apperror.New(http.StatusForbidden, "admins can only manage alumni accounts", apperror.ErrForbidden)
		}
		if user.UniversityID == nil || !actor.CanAccessTenant(*user.UniversityID) {
			return nil, apperror.New(http.StatusForbidden, "user belongs to another university", apperror.ErrForbidden)
		}
	}

	return user, nil
}
