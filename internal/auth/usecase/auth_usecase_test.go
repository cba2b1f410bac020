package usecase

import (
	"testing"
	"time"

	authdomain "knugget-backend/internal/auth/domain"
	authdto "knugget-backend/internal/auth/dto"
	"knugget-backend/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo is an in-memory UserRepository for usecase tests
type fakeUserRepo struct {
	users  map[string]*authdomain.User // keyed by id
	tokens map[string]*authdomain.RefreshToken
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  map[string]*authdomain.User{},
		tokens: map[string]*authdomain.RefreshToken{},
	}
}

func (f *fakeUserRepo) Create(user *authdomain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*authdomain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(id string) (*authdomain.User, error) {
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(user *authdomain.User) error {
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) SaveRefreshToken(token *authdomain.RefreshToken) error {
	clone := *token
	f.tokens[token.Token] = &clone
	return nil
}

func (f *fakeUserRepo) FindRefreshToken(token string) (*authdomain.RefreshToken, error) {
	if t, ok := f.tokens[token]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) DeleteRefreshToken(token string) error {
	delete(f.tokens, token)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, testConfig())

	tokens, err := uc.Register(&authdto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery staple",
		Name:     "Alice",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	// Stored password is hashed, never plaintext
	stored, err := repo.FindByEmail("alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", stored.Password)

	loggedIn, err := uc.Login(&authdto.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)
	assert.Equal(t, stored.ID, loggedIn.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, testConfig())

	_, err := uc.Register(&authdto.RegisterRequest{Email: "alice@example.com", Password: "pw123456", Name: "Alice"})
	require.NoError(t, err)

	_, err = uc.Register(&authdto.RegisterRequest{Email: "alice@example.com", Password: "other", Name: "Imposter"})
	assert.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, testConfig())

	_, err := uc.Register(&authdto.RegisterRequest{Email: "alice@example.com", Password: "pw123456", Name: "Alice"})
	require.NoError(t, err)

	_, err = uc.Login(&authdto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.Error(t, err)

	_, err = uc.Login(&authdto.LoginRequest{Email: "nobody@example.com", Password: "pw123456"})
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, testConfig())

	tokens, err := uc.Register(&authdto.RegisterRequest{Email: "alice@example.com", Password: "pw123456", Name: "Alice"})
	require.NoError(t, err)

	user, err := uc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	_, err = uc.ValidateToken("not.a.jwt")
	assert.Error(t, err)

	// A token signed with a different secret is rejected
	other := NewAuthUsecase(repo, &config.Config{
		JWTSecret:        "different-secret",
		JWTAccessExpiry:  time.Minute,
		JWTRefreshExpiry: time.Hour,
	})
	foreign, err := other.Register(&authdto.RegisterRequest{Email: "bob@example.com", Password: "pw123456", Name: "Bob"})
	require.NoError(t, err)
	_, err = uc.ValidateToken(foreign.AccessToken)
	assert.Error(t, err)
}

func TestRefreshTokenRotation(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUsecase(repo, testConfig())

	tokens, err := uc.Register(&authdto.RegisterRequest{Email: "alice@example.com", Password: "pw123456", Name: "Alice"})
	require.NoError(t, err)

	refreshed, err := uc.RefreshToken(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Logout invalidates the stored refresh token
	require.NoError(t, uc.Logout(tokens.RefreshToken))
	_, err = uc.RefreshToken(tokens.RefreshToken)
	assert.Error(t, err)
}
