package structs

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}
