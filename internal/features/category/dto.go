package category

// Requests

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50,noAllRepeatingChars"`
	Description string `json:"description" validate:"max=350"`
}
