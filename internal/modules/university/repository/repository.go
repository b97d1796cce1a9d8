package repository

import (
	"context"

	"github.com/alumninet/alumninet/internal/entity"
	"gorm.io/gorm"
)

type UniversityRepository interface {
	Create(ctx context.Context, university *entity.University) error
	FindByID(ctx context.Context, id string) (*entity.University, error)
	FindAll(ctx context.Context) ([]*entity.University, error)
	Update(ctx context.Context, university *entity.University) error
}

type universityRepository struct {
	db *gorm.DB
}

func NewUniversityRepository(db *gorm.DB) UniversityRepository {
	return &universityRepository{db: db}
}

func (r *universityRepository) Create(ctx context.Context, university *entity.University) error {
	return r.db.WithContext(ctx).Create(university).Error
}

func (r *universityRepository) FindByID(ctx context.Context, id string) (*entity.University, error) {
	var university entity.University
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&university).Error; err != nil {
		return nil, err
	}

	return &university, nil
}

func (r *universityRepository) FindAll(ctx context.Context) ([]*entity.University, error) {
	var universities []*entity.University
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&universities).Error; err != nil {
		return nil, err
	}

	return universities, nil
}

func (r *universityRepository) Update(ctx context.Context, university *entity.University) error {
	return r.db.WithContext(ctx).Save(university).Error
}
