package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/oauth"
)

const googleProvider = "google"

type AuthServiceImpl struct {
	userRepo    user.UserRepository
	jwtService  jwt.Service
	googleOAuth oauth.GoogleService
}

func NewAuthService(
	userRepo user.UserRepository,
	jwtService jwt.Service,
	googleOAuth oauth.GoogleService,
) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		jwtService:  jwtService,
		googleOAuth: googleOAuth,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	account, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	if account.PasswordHash == nil {
		// OAuth-only account, no password to check.
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*account.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(account)
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string) (auth.TokenResponse, error) {
	token, err := a.googleOAuth.Exchange(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	info, err := a.googleOAuth.FetchUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to fetch google user: %w", err)
	}
	if !info.VerifiedEmail {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	account, err := a.userRepo.GetByOAuth(ctx, googleProvider, info.GoogleID)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
		}
		// First Google sign-in for an existing email account links it.
		account, err = a.userRepo.GetByEmail(ctx, info.Email)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return auth.TokenResponse{}, auth.ErrUserNotFound
			}
			return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
		}
	}

	return a.issueTokens(account)
}

func (a *AuthServiceImpl) issueTokens(account user.User) (auth.TokenResponse, error) {
	accessToken, expiresAt, err := a.jwtService.GenerateAccessToken(
		account.ID, account.Email, account.EmployeeID, account.CompanyID, account.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, _, err := a.jwtService.GenerateRefreshToken(account.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if a.jwtService.IsTokenRevoked(req.RefreshToken) {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userID, err := a.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	account, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrUserNotFound
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	accessToken, expiresAt, err := a.jwtService.GenerateAccessToken(
		account.ID, account.Email, account.EmployeeID, account.CompanyID, account.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(_ context.Context, refreshToken string) error {
	if refreshToken == "" {
		return auth.ErrInvalidToken
	}
	if _, err := a.jwtService.ValidateRefreshToken(refreshToken); err != nil {
		return auth.ErrInvalidToken
	}
	a.jwtService.RevokeToken(refreshToken)
	return nil
}
