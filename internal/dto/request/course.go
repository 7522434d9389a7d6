package request

// CreateCourseRequest arrives as multipart form fields alongside an optional
// image file; price is in the smallest currency unit.
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"required,min=3"`
	Price       int64  `json:"price" validate:"gte=0"`
}

// UpdateCourseRequest carries partial updates; nil fields are left untouched.
type UpdateCourseRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=3"`
	Price       *int64  `json:"price,omitempty" validate:"omitempty,gte=0"`
}

// AddVideoRequest arrives as multipart form fields alongside the video file.
type AddVideoRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description"`
}
