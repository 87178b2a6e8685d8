package user

// UserInput is the body of the create and update endpoints. Login rules are
// enforced by the user service.
type UserInput struct {
	Login string `json:"login"`
	Email string `json:"email" validate:"omitempty,email,max=255"`
}
