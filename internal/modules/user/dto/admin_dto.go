package dto

import (
	"github.com/alumninet/alumninet/internal/entity"
	commonDto "github.com/alumninet/alumninet/pkg/dto"
)

type CreateUserInput struct {
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required,min=8"`
	Name           string  `json:"name" binding:"required,max=100"`
	Role           string  `json:"role" binding:"omitempty,oneof=alumni admin superadmin"`
	UniversityID   *string `json:"university_id"`
	GraduationYear *int    `json:"graduation_year"`
	Major          *string `json:"major"`
}

type UpdateUserInput struct {
	Name           *string `json:"name" binding:"omitempty,max=100"`
	Role           *string `json:"role" binding:"omitempty,oneof=alumni admin"`
	Status         *string `json:"status" binding:"omitempty,oneof=active inactive"`
	GraduationYear *int    `json:"graduation_year"`
	Major          *string `json:"major"`
}

type ListUsersQuery struct {
	UniversityID string `form:"university_id"`
	Role         string `form:"role" binding:"omitempty,oneof=alumni admin superadmin"`
	Status       string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page         int    `form:"page"`
	Limit        int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type PaginatedUsersResponse struct {
	Data []*entity.User           `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}
