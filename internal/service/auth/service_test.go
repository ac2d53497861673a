package auth

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/oauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users []user.User
}

func (r *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.users = append(r.users, u)
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByOAuth(_ context.Context, provider, providerID string) (user.User, error) {
	for _, u := range r.users {
		if u.OAuthProvider != nil && *u.OAuthProvider == provider &&
			u.OAuthProviderID != nil && *u.OAuthProviderID == providerID {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

type fakeGoogleService struct {
	info oauth.GoogleInformation
}

func (g *fakeGoogleService) RedirectURL(state string) string { return "https://example.com/" + state }

func (g *fakeGoogleService) Exchange(_ context.Context, _ string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "google-token"}, nil
}

func (g *fakeGoogleService) FetchUser(_ context.Context, _ *oauth2.Token) (oauth.GoogleInformation, error) {
	return g.info, nil
}

func newService(t *testing.T, users *fakeUserRepo, google oauth.GoogleService) auth.AuthService {
	t.Helper()
	jwtService := jwt.NewJWTService("test-secret", "15m", "168h")
	return NewAuthService(users, jwtService, google)
}

func seedUser(t *testing.T, repo *fakeUserRepo, password string) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hashed := string(hash)
	employeeID := "employee-1"
	u := user.User{
		ID:           "user-1",
		CompanyID:    "company-1",
		Email:        "jordan@example.com",
		PasswordHash: &hashed,
		Role:         user.RoleEmployee,
		EmployeeID:   &employeeID,
	}
	repo.users = append(repo.users, u)
	return u
}

func TestLoginIssuesTokens(t *testing.T) {
	users := &fakeUserRepo{}
	seedUser(t, users, "correct horse")
	svc := newService(t, users, &fakeGoogleService{})

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jordan@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.ExpiresAt, int64(0))
}

func TestLoginWrongPassword(t *testing.T) {
	users := &fakeUserRepo{}
	seedUser(t, users, "correct horse")
	svc := newService(t, users, &fakeGoogleService{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jordan@example.com",
		Password: "battery staple",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newService(t, &fakeUserRepo{}, &fakeGoogleService{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginOAuthOnlyAccountRejected(t *testing.T) {
	provider := "google"
	providerID := "google-123"
	users := &fakeUserRepo{users: []user.User{{
		ID:              "user-2",
		CompanyID:       "company-1",
		Email:           "sam@example.com",
		Role:            user.RoleEmployee,
		OAuthProvider:   &provider,
		OAuthProviderID: &providerID,
	}}}
	svc := newService(t, users, &fakeGoogleService{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "sam@example.com",
		Password: "anything",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginWithGoogleLinksByEmail(t *testing.T) {
	users := &fakeUserRepo{}
	seedUser(t, users, "correct horse")
	svc := newService(t, users, &fakeGoogleService{info: oauth.GoogleInformation{
		GoogleID:      "google-999",
		Email:         "jordan@example.com",
		VerifiedEmail: true,
	}})

	resp, err := svc.LoginWithGoogle(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginWithGoogleUnverifiedEmail(t *testing.T) {
	svc := newService(t, &fakeUserRepo{}, &fakeGoogleService{info: oauth.GoogleInformation{
		GoogleID: "google-999",
		Email:    "jordan@example.com",
	}})

	_, err := svc.LoginWithGoogle(context.Background(), "auth-code")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	users := &fakeUserRepo{}
	seedUser(t, users, "correct horse")
	svc := newService(t, users, &fakeGoogleService{})

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jordan@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshAfterLogoutRevoked(t *testing.T) {
	users := &fakeUserRepo{}
	seedUser(t, users, "correct horse")
	svc := newService(t, users, &fakeGoogleService{})

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jordan@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	users := &fakeUserRepo{}
	seedUser(t, users, "correct horse")
	svc := newService(t, users, &fakeGoogleService{})

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jordan@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: login.AccessToken,
	})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
