package model

// RegisterRequest は新規登録APIのリクエストボディ
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse は登録・ログイン成功時のレスポンス
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
