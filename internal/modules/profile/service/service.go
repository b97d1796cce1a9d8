package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/alumninet/alumninet/internal/entity"
	profileDto "github.com/alumninet/alumninet/internal/modules/profile/dto"
	userRepo "github.com/alumninet/alumninet/internal/modules/user/repository"
	"github.com/alumninet/alumninet/pkg/apperror"
	"github.com/alumninet/alumninet/pkg/storage"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, actor entity.Actor, input profileDto.UpdateProfileInput, avatar *profileDto.AvatarFile) (*entity.User, error)
}

type profileService struct {
	users        userRepo.UserRepository
	imageStorage storage.ImageStorage
	sanitizer    *bluemonday.Policy
}

func NewProfileService(users userRepo.UserRepository, imageStorage storage.ImageStorage) ProfileService {
	return &profileService{
		users:        users,
		imageStorage: imageStorage,
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "profile not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	if !user.IsActive() {
		return nil, apperror.New(http.StatusNotFound, "profile not found", apperror.ErrNotFound)
	}

	return user, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, actor entity.Actor, input profileDto.UpdateProfileInput, avatar *profileDto.AvatarFile) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Headline != nil {
		headline := s.sanitizer.Sanitize(*input.Headline)
		user.Headline = &headline
	}
	if input.Bio != nil {
		bio := s.sanitizer.Sanitize(*input.Bio)
		user.Bio = &bio
	}
	if input.GraduationYear != nil {
		user.GraduationYear = input.GraduationYear
	}
	if input.Major != nil {
		user.Major = input.Major
	}

	if avatar != nil && s.imageStorage != nil {
		oldURL := user.AvatarURL

		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, "avatars", avatar.FileName)
		if err != nil {
			return nil, apperror.New(http.StatusBadRequest, "failed to upload avatar", err)
		}
		user.AvatarURL = &url

		if oldURL != nil {
			// Old asset removal is best-effort.
			_ = s.imageStorage.DeleteImage(ctx, *oldURL)
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
