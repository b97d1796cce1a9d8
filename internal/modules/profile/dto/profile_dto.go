package dto

import "io"

// AvatarFile is an uploaded avatar stream handed to image storage.
type AvatarFile struct {
	Reader   io.Reader
	FileName string
}

type UpdateProfileInput struct {
	Name           *string `form:"name" json:"name" binding:"omitempty,max=100"`
	Headline       *string `form:"headline" json:"headline" binding:"omitempty,max=150"`
	Bio            *string `form:"bio" json:"bio" binding:"omitempty,max=2000"`
	GraduationYear *int    `form:"graduation_year" json:"graduation_year" binding:"omitempty,min=1900,max=2100"`
	Major          *string `form:"major" json:"major" binding:"omitempty,max=100"`
}
