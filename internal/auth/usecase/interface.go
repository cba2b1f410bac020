package usecase

import (
	authdomain "knugget-backend/internal/auth/domain"
	authdto "knugget-backend/internal/auth/dto"
)

// AuthUsecase defines the authentication operations used by delivery
type AuthUsecase interface {
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	GoogleSignIn(idToken string) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	ValidateToken(token string) (*authdomain.User, error)
}
