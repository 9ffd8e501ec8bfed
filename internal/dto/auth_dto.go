package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CrearUsuarioRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Password string `json:"password" validate:"required,min=4"`
	Rol      string `json:"rol"      validate:"required,oneof=admin administrativo vendedor tecnico"`
	Sucursal string `json:"sucursal"`
}

type CambiarPasswordRequest struct {
	NuevaPassword string `json:"nueva_password" validate:"required,min=4"`
}

type UsuarioResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Rol      string `json:"rol"`
	Sucursal string `json:"sucursal"`
}
