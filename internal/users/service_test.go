package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderflowhq/orderflow-backend/pkg/config"
	"github.com/orderflowhq/orderflow-backend/pkg/db/models"
	"github.com/orderflowhq/orderflow-backend/pkg/enums"
	pkgerrors "github.com/orderflowhq/orderflow-backend/pkg/errors"
	"github.com/orderflowhq/orderflow-backend/pkg/pagination"
	"github.com/orderflowhq/orderflow-backend/pkg/security"
)

type stubRepo struct {
	byID map[uuid.UUID]*models.User
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: make(map[uuid.UUID]*models.User)}
}

func (r *stubRepo) WithTx(tx *gorm.DB) Repository { return r }

func (r *stubRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	copied := *user
	copied.ID = uuid.New()
	r.byID[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (r *stubRepo) FindByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if user, ok := r.byID[userID]; ok {
		out := *user
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range r.byID {
		if user.Username == username {
			out := *user
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.byID {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) List(ctx context.Context, params pagination.Params) ([]models.User, error) {
	out := make([]models.User, 0, len(r.byID))
	for _, user := range r.byID {
		out = append(out, *user)
	}
	return out, nil
}

func (r *stubRepo) Update(ctx context.Context, userID uuid.UUID, updates map[string]any) error {
	user, ok := r.byID[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "email":
			user.Email = value.(string)
		case "company_name":
			user.CompanyName = value.(string)
		case "password_hash":
			user.PasswordHash = value.(string)
		case "role":
			user.Role = value.(enums.UserRole)
		case "is_active":
			user.IsActive = value.(bool)
		}
	}
	return nil
}

func (r *stubRepo) RecordLoginSuccess(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return nil
}

func (r *stubRepo) RecordLoginFailure(ctx context.Context, userID uuid.UUID, attempts int, lockedUntil *time.Time) error {
	return nil
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}
}

func newTestService(t *testing.T) (Service, *stubRepo) {
	t.Helper()
	repo := newStubRepo()
	svc, err := NewService(repo, testPasswordConfig())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo
}

func seedUser(t *testing.T, repo *stubRepo, username, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
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

func TestGetUnknownUserNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestUpdateProfileChangesEmailAndCompany(t *testing.T) {
	svc, repo := newTestService(t)
	seeded := seedUser(t, repo, "alice", "s3cret-pass")

	email := "new@example.com"
	company := "Globex"
	updated, err := svc.UpdateProfile(context.Background(), seeded.ID, UpdateProfileInput{
		Email:       &email,
		CompanyName: &company,
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Email != email || updated.CompanyName != company {
		t.Fatalf("profile = %s/%s, want %s/%s", updated.Email, updated.CompanyName, email, company)
	}
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "alice", "s3cret-pass")
	bob := seedUser(t, repo, "bob", "s3cret-pass")

	email := "alice@example.com"
	_, err := svc.UpdateProfile(context.Background(), bob.ID, UpdateProfileInput{Email: &email})
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestUpdateProfileKeepingOwnEmailAllowed(t *testing.T) {
	svc, repo := newTestService(t)
	seeded := seedUser(t, repo, "alice", "s3cret-pass")

	email := seeded.Email
	if _, err := svc.UpdateProfile(context.Background(), seeded.ID, UpdateProfileInput{Email: &email}); err != nil {
		t.Fatalf("UpdateProfile with own email: %v", err)
	}
}

func TestChangePasswordVerifiesOldPassword(t *testing.T) {
	svc, repo := newTestService(t)
	seeded := seedUser(t, repo, "alice", "s3cret-pass")

	err := svc.ChangePassword(context.Background(), seeded.ID, ChangePasswordInput{
		OldPassword: "wrong",
		NewPassword: "brand-new-pass",
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("err = %v, want validation", err)
	}

	if err := svc.ChangePassword(context.Background(), seeded.ID, ChangePasswordInput{
		OldPassword: "s3cret-pass",
		NewPassword: "brand-new-pass",
	}); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	stored := repo.byID[seeded.ID]
	ok, err := security.VerifyPassword("brand-new-pass", stored.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("new hash does not verify: ok=%v err=%v", ok, err)
	}
}

func TestUpdateRoleValidatesRole(t *testing.T) {
	svc, repo := newTestService(t)
	seeded := seedUser(t, repo, "alice", "s3cret-pass")

	if _, err := svc.UpdateRole(context.Background(), seeded.ID, enums.UserRole("wizard")); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("err for unknown role, want validation")
	}

	updated, err := svc.UpdateRole(context.Background(), seeded.ID, enums.UserRoleAccountManager)
	if err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	if updated.Role != enums.UserRoleAccountManager {
		t.Fatalf("role = %s, want account_manager", updated.Role)
	}
}

func TestSetActiveTogglesFlag(t *testing.T) {
	svc, repo := newTestService(t)
	seeded := seedUser(t, repo, "alice", "s3cret-pass")

	updated, err := svc.SetActive(context.Background(), seeded.ID, false)
	if err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if updated.IsActive {
		t.Fatal("expected account to be deactivated")
	}
}
