package request

// LoginRequest carries credentials; the email is matched case-insensitively.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}
