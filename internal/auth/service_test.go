package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderflowhq/orderflow-backend/internal/users"
	pkgauth "github.com/orderflowhq/orderflow-backend/pkg/auth"
	"github.com/orderflowhq/orderflow-backend/pkg/config"
	"github.com/orderflowhq/orderflow-backend/pkg/db/models"
	"github.com/orderflowhq/orderflow-backend/pkg/enums"
	pkgerrors "github.com/orderflowhq/orderflow-backend/pkg/errors"
	"github.com/orderflowhq/orderflow-backend/pkg/pagination"
	"github.com/orderflowhq/orderflow-backend/pkg/security"
)

type stubUserRepo struct {
	byID map[uuid.UUID]*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[uuid.UUID]*models.User)}
}

func (r *stubUserRepo) WithTx(tx *gorm.DB) users.Repository { return r }

func (r *stubUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	copied := *user
	copied.ID = uuid.New()
	r.byID[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (r *stubUserRepo) FindByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if user, ok := r.byID[userID]; ok {
		out := *user
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range r.byID {
		if user.Username == username {
			out := *user
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.byID {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(ctx context.Context, params pagination.Params) ([]models.User, error) {
	out := make([]models.User, 0, len(r.byID))
	for _, user := range r.byID {
		out = append(out, *user)
	}
	return out, nil
}

func (r *stubUserRepo) Update(ctx context.Context, userID uuid.UUID, updates map[string]any) error {
	if _, ok := r.byID[userID]; !ok {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *stubUserRepo) RecordLoginSuccess(ctx context.Context, userID uuid.UUID, at time.Time) error {
	user, ok := r.byID[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	stamped := at
	user.LastLoginAt = &stamped
	return nil
}

func (r *stubUserRepo) RecordLoginFailure(ctx context.Context, userID uuid.UUID, attempts int, lockedUntil *time.Time) error {
	user, ok := r.byID[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.FailedLoginAttempts = attempts
	user.LockedUntil = lockedUntil
	return nil
}

var testNow = time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

func testConfigs() (config.JWTConfig, config.PasswordConfig, config.LockoutConfig) {
	jwtCfg := config.JWTConfig{Secret: "test-secret", Issuer: "orderflow", ExpirationMinutes: 60}
	pwCfg := config.PasswordConfig{ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}
	lockCfg := config.LockoutConfig{MaxFailedAttempts: 3, Duration: 30 * time.Minute}
	return jwtCfg, pwCfg, lockCfg
}

func newTestService(t *testing.T, repo *stubUserRepo) (*service, config.JWTConfig) {
	t.Helper()
	jwtCfg, pwCfg, lockCfg := testConfigs()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		JWTConfig:      jwtCfg,
		PasswordConfig: pwCfg,
		LockoutConfig:  lockCfg,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	impl := svc.(*service)
	impl.now = func() time.Time { return testNow }
	return impl, jwtCfg
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password string) *models.User {
	t.Helper()
	_, pwCfg, _ := testConfigs()
	hash, err := security.HashPassword(password, pwCfg)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := repo.Create(context.Background(), &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		CompanyName:  "Acme Trading",
		Role:         enums.UserRoleCustomer,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestRegisterCreatesCustomerAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(t, repo)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username:    "alice",
		Email:       "Alice@Example.com",
		Password:    "s3cret-pass",
		CompanyName: "Acme Trading",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != enums.UserRoleCustomer {
		t.Fatalf("role = %s, want customer", user.Role)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email = %s, want lowercased", user.Email)
	}
	if !user.IsActive {
		t.Fatal("expected new account to be active")
	}
	ok, err := security.VerifyPassword("s3cret-pass", user.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("stored hash does not verify: ok=%v err=%v", ok, err)
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(t, repo)
	seedUser(t, repo, "alice", "whatever-1")

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "s3cret-pass",
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(t, repo)
	seedUser(t, repo, "alice", "whatever-1")

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestLoginSuccessMintsTokenAndResetsCounter(t *testing.T) {
	repo := newStubUserRepo()
	svc, jwtCfg := newTestService(t, repo)
	seeded := seedUser(t, repo, "alice", "s3cret-pass")
	repo.byID[seeded.ID].FailedLoginAttempts = 2

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.TokenType != "bearer" {
		t.Fatalf("token type = %s, want bearer", resp.TokenType)
	}

	claims, err := pkgauth.ParseAccessToken(jwtCfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Username != "alice" || claims.Role != enums.UserRoleCustomer {
		t.Fatalf("claims = %+v, want alice/customer", claims)
	}

	stored := repo.byID[seeded.ID]
	if stored.FailedLoginAttempts != 0 {
		t.Fatalf("failed attempts = %d, want 0 after success", stored.FailedLoginAttempts)
	}
	if stored.LastLoginAt == nil || !stored.LastLoginAt.Equal(testNow) {
		t.Fatalf("last login = %v, want %v", stored.LastLoginAt, testNow)
	}
}

func TestLoginWrongPasswordIncrementsCounter(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(t, repo)
	seeded := seedUser(t, repo, "alice", "s3cret-pass")

	_, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "wrong"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}

	stored := repo.byID[seeded.ID]
	if stored.FailedLoginAttempts != 1 {
		t.Fatalf("failed attempts = %d, want 1", stored.FailedLoginAttempts)
	}
	if stored.LockedUntil != nil {
		t.Fatalf("locked until = %v, want nil before threshold", stored.LockedUntil)
	}
}

func TestLoginThirdFailureLocksAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(t, repo)
	seeded := seedUser(t, repo, "alice", "s3cret-pass")
	repo.byID[seeded.ID].FailedLoginAttempts = 2

	_, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "wrong"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
	if !strings.Contains(err.Error(), "locked") {
		t.Fatalf("err = %v, want lockout message", err)
	}

	stored := repo.byID[seeded.ID]
	if stored.FailedLoginAttempts != 3 {
		t.Fatalf("failed attempts = %d, want 3", stored.FailedLoginAttempts)
	}
	want := testNow.Add(30 * time.Minute)
	if stored.LockedUntil == nil || !stored.LockedUntil.Equal(want) {
		t.Fatalf("locked until = %v, want %v", stored.LockedUntil, want)
	}
}

func TestLoginRejectedWhileLocked(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(t, repo)
	seeded := seedUser(t, repo, "alice", "s3cret-pass")
	until := testNow.Add(10 * time.Minute)
	repo.byID[seeded.ID].FailedLoginAttempts = 3
	repo.byID[seeded.ID].LockedUntil = &until

	_, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "s3cret-pass"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
	if !strings.Contains(err.Error(), "locked") {
		t.Fatalf("err = %v, want lockout message", err)
	}
}

func TestLoginExpiredLockUnlocksAndSucceeds(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(t, repo)
	seeded := seedUser(t, repo, "alice", "s3cret-pass")
	until := testNow.Add(-time.Minute)
	repo.byID[seeded.ID].FailedLoginAttempts = 3
	repo.byID[seeded.ID].LockedUntil = &until

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Login after lock expiry: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}

	stored := repo.byID[seeded.ID]
	if stored.FailedLoginAttempts != 0 || stored.LockedUntil != nil {
		t.Fatalf("lock state = %d/%v, want cleared", stored.FailedLoginAttempts, stored.LockedUntil)
	}
}

func TestLoginUnknownUserUnauthorized(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(t, repo)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "whatever"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}

func TestLoginInactiveAccountRejected(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(t, repo)
	seeded := seedUser(t, repo, "alice", "s3cret-pass")
	repo.byID[seeded.ID].IsActive = false

	_, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "s3cret-pass"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}
