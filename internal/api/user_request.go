package api

// swagger:model api.CredentialsRequest
type CredentialsRequest struct {
	Username string `json:"username" form:"username" validate:"required" example:"alice"`
	Password string `json:"password" form:"password" validate:"required" example:"Secret123!"`
}

// swagger:model api.CreateUserResponse
type CreateUserResponse struct {
	Message string `json:"message" example:"User added successfully"`
	UserID  int    `json:"userId" example:"7"`
}
