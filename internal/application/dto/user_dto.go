package dto

// LoginRequest entrada para login. Si el username no existe se registra con esa contraseña.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// UserResponse usuario de la sesión (sin password).
type UserResponse struct {
	Username string `json:"username"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
