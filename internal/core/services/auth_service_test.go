package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"wealthdesk/internal/adapters/persistence/models"
	"wealthdesk/internal/config"
	"wealthdesk/internal/pkg/jwt"
	"wealthdesk/internal/pkg/password"
)

// --- fakes ---

type fakeUserRepo struct {
	usersByEmail map[string]*models.User
	usersByID    map[string]*models.User
	created      []*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByEmail: map[string]*models.User{},
		usersByID:    map[string]*models.User{},
	}
}

func (f *fakeUserRepo) add(u *models.User) {
	f.usersByEmail[u.Email] = u
	f.usersByID[u.ID] = u
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.created = append(f.created, user)
	f.add(user)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.usersByID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id string) error         { return nil }

func (f *fakeUserRepo) List(ctx context.Context, role string, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	for _, u := range f.usersByID {
		if role == "" || u.Role == role {
			users = append(users, u)
		}
	}
	return users, int64(len(users)), nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.usersByEmail[email]
	return ok, nil
}

type fakeRefreshTokenRepo struct {
	byHash map[string]*models.RefreshToken
	nextID uint
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{byHash: map[string]*models.RefreshToken{}}
}

func (f *fakeRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	f.nextID++
	token.ID = f.nextID
	f.byHash[token.TokenHash] = token
	return nil
}

func (f *fakeRefreshTokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	if t, ok := f.byHash[tokenHash]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRefreshTokenRepo) Revoke(ctx context.Context, id uint) error { return nil }

func (f *fakeRefreshTokenRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	if t, ok := f.byHash[tokenHash]; ok {
		now := time.Now()
		t.RevokedAt = &now
	}
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeAllByUserID(ctx context.Context, userID string) error {
	for _, t := range f.byHash {
		if t.UserID == userID {
			now := time.Now()
			t.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteExpired(ctx context.Context) error { return nil }

func (f *fakeRefreshTokenRepo) CountActiveByUserID(ctx context.Context, userID string) (int64, error) {
	var n int64
	for _, t := range f.byHash {
		if t.UserID == userID && !t.IsRevoked() {
			n++
		}
	}
	return n, nil
}

// --- tests ---

func newTestAuthService(userRepo *fakeUserRepo, tokenRepo *fakeRefreshTokenRepo) *AuthService {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "auth-test-secret",
			AccessTokenMins:  60,
			RefreshTokenDays: 7,
		},
	}
	return NewAuthService(userRepo, tokenRepo, cfg)
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, plain, role string, active bool) *models.User {
	t.Helper()
	hash, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("password.Hash error: %v", err)
	}
	u := &models.User{
		ID:       "uid-" + email,
		Name:     "Test User",
		Email:    email,
		Password: hash,
		Role:     role,
		IsActive: active,
	}
	repo.add(u)
	return u
}

func TestRegister_DefaultsToInvestorRole(t *testing.T) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	svc := newTestAuthService(userRepo, tokenRepo)

	resp, err := svc.Register(context.Background(), &RegisterInput{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "longenough",
		Role:     "superuser", // not a known role
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if resp.User.Role != "investor" {
		t.Errorf("expected investor role, got %q", resp.User.Role)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected both tokens to be issued")
	}
	if len(tokenRepo.byHash) != 1 {
		t.Errorf("expected one stored refresh token, got %d", len(tokenRepo.byHash))
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo, newFakeRefreshTokenRepo())
	seedUser(t, userRepo, "dup@example.com", "password1", "investor", true)

	_, err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Dup",
		Email:    "dup@example.com",
		Password: "password1",
	})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	svc := newTestAuthService(userRepo, tokenRepo)
	seedUser(t, userRepo, "investor@example.com", "demo123", "investor", true)

	resp, err := svc.Login(context.Background(), &LoginInput{
		Email:    "investor@example.com",
		Password: "demo123",
	})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	claims, err := jwt.Validate(resp.AccessToken, "auth-test-secret")
	if err != nil {
		t.Fatalf("access token does not validate: %v", err)
	}
	if claims.Role != "investor" || claims.Email != "investor@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo, newFakeRefreshTokenRepo())
	seedUser(t, userRepo, "known@example.com", "rightpass", "investor", true)

	_, errUnknown := svc.Login(context.Background(), &LoginInput{
		Email: "nobody@example.com", Password: "whatever",
	})
	_, errWrongPass := svc.Login(context.Background(), &LoginInput{
		Email: "known@example.com", Password: "wrongpass",
	})

	// Both failures collapse into the same error
	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrongPass, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPass)
	}
}

func TestLogin_InactiveUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo, newFakeRefreshTokenRepo())
	seedUser(t, userRepo, "gone@example.com", "demo123", "investor", false)

	_, err := svc.Login(context.Background(), &LoginInput{
		Email: "gone@example.com", Password: "demo123",
	})
	if !errors.Is(err, ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}

func TestRefreshAccessToken_DoesNotRotateRefreshToken(t *testing.T) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	svc := newTestAuthService(userRepo, tokenRepo)
	seedUser(t, userRepo, "investor@example.com", "demo123", "investor", true)

	resp, err := svc.Login(context.Background(), &LoginInput{
		Email: "investor@example.com", Password: "demo123",
	})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	access, err := svc.RefreshAccessToken(context.Background(), resp.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshAccessToken error: %v", err)
	}
	if access == "" {
		t.Fatal("expected a new access token")
	}
	if len(tokenRepo.byHash) != 1 {
		t.Errorf("refresh token must not be rotated, have %d stored", len(tokenRepo.byHash))
	}

	// The same refresh token keeps working
	if _, err := svc.RefreshAccessToken(context.Background(), resp.RefreshToken); err != nil {
		t.Fatalf("second refresh failed: %v", err)
	}
}

func TestRefreshAccessToken_RevokedToken(t *testing.T) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	svc := newTestAuthService(userRepo, tokenRepo)
	seedUser(t, userRepo, "investor@example.com", "demo123", "investor", true)

	resp, err := svc.Login(context.Background(), &LoginInput{
		Email: "investor@example.com", Password: "demo123",
	})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	if err := svc.Logout(context.Background(), resp.RefreshToken); err != nil {
		t.Fatalf("Logout error: %v", err)
	}

	_, err = svc.RefreshAccessToken(context.Background(), resp.RefreshToken)
	if !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}
}

func TestRefreshAccessToken_UnknownToken(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo, newFakeRefreshTokenRepo())
	seedUser(t, userRepo, "investor@example.com", "demo123", "investor", true)

	// Well-signed but never stored
	tok, err := jwt.GenerateRefreshToken("uid-investor@example.com", "investor@example.com", "investor", "auth-test-secret", 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken error: %v", err)
	}

	_, err = svc.RefreshAccessToken(context.Background(), tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLogoutAll_RevokesEverySession(t *testing.T) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	svc := newTestAuthService(userRepo, tokenRepo)
	u := seedUser(t, userRepo, "investor@example.com", "demo123", "investor", true)

	for i := 0; i < 3; i++ {
		if _, err := svc.Login(context.Background(), &LoginInput{
			Email: "investor@example.com", Password: "demo123",
		}); err != nil {
			t.Fatalf("Login error: %v", err)
		}
	}

	if err := svc.LogoutAll(context.Background(), u.ID); err != nil {
		t.Fatalf("LogoutAll error: %v", err)
	}

	active, _ := tokenRepo.CountActiveByUserID(context.Background(), u.ID)
	if active != 0 {
		t.Errorf("expected 0 active sessions, got %d", active)
	}
}
