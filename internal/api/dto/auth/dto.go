package auth

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Login    string `json:"login" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"` // bcrypt режет все после 72 байт
}

type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}
