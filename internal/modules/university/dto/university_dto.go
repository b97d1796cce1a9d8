package dto

type CreateUniversityInput struct {
	ID   string `json:"id" binding:"required,min=2,max=50,lowercase,alphanum"`
	Name string `json:"name" binding:"required,max=150"`
}

type UpdateUniversityInput struct {
	Name   *string `json:"name" binding:"omitempty,max=150"`
	Status *string `json:"status" binding:"omitempty,oneof=active disabled"`
}
