package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/tenant-passport/internal/auth"
	"github.com/spec-kit/tenant-passport/internal/config"
	"github.com/spec-kit/tenant-passport/internal/domain"
	"github.com/spec-kit/tenant-passport/internal/repository"
	"github.com/spec-kit/tenant-passport/internal/service"
	apperrors "github.com/spec-kit/tenant-passport/pkg/util"
)

type mockAccountRepo struct {
	accounts []domain.Account
	nextID   int
}

var _ repository.AccountRepository = (*mockAccountRepo)(nil)

func (m *mockAccountRepo) Create(_ context.Context, account *domain.Account) error {
	m.nextID++
	account.ID = fmt.Sprintf("acct-%d", m.nextID)
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	m.accounts = append(m.accounts, *account)
	return nil
}

func (m *mockAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	for i := range m.accounts {
		if m.accounts[i].ID == id {
			account := m.accounts[i]
			return &account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for i := range m.accounts {
		if m.accounts[i].Email == email {
			account := m.accounts[i]
			return &account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 5,
			BcryptCost:            4, // min cost keeps the tests fast
		},
	}
}

func newAuthService(repo *mockAccountRepo, revoker auth.Revoker) *service.AuthService {
	return service.NewAuthService(testConfig(), service.AuthDependencies{
		AccountRepo: repo,
		Revoker:     revoker,
	})
}

func TestSignUpThenSignIn(t *testing.T) {
	svc := newAuthService(&mockAccountRepo{}, auth.NewMemoryRevoker())
	ctx := context.Background()

	account, err := svc.SignUp(ctx, "manal@example.com", "hunter2!")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if account.ID == "" {
		t.Error("account has no id")
	}
	if account.PasswordHash == "hunter2!" {
		t.Error("password stored in plaintext")
	}

	signedIn, token, exp, err := svc.SignIn(ctx, "manal@example.com", "hunter2!")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if signedIn.ID != account.ID {
		t.Errorf("signed-in id = %q, want %q", signedIn.ID, account.ID)
	}
	if token == "" || !exp.After(time.Now()) {
		t.Errorf("token %q / exp %v invalid", token, exp)
	}
}

func TestSignUpDoesNotEstablishSession(t *testing.T) {
	svc := newAuthService(&mockAccountRepo{}, auth.NewMemoryRevoker())

	// SignUp returns only the account; there is no token to present until
	// the caller signs in.
	account, err := svc.SignUp(context.Background(), "a@example.com", "pw")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if account == nil || account.Email != "a@example.com" {
		t.Fatalf("account = %+v", account)
	}
}

func TestSignUpDuplicateEmailConflicts(t *testing.T) {
	svc := newAuthService(&mockAccountRepo{}, auth.NewMemoryRevoker())
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "dup@example.com", "pw"); err != nil {
		t.Fatalf("first SignUp: %v", err)
	}
	_, err := svc.SignUp(ctx, "dup@example.com", "pw2")
	if err == nil {
		t.Fatal("expected conflict")
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "CONFLICT" {
		t.Errorf("err = %v, want CONFLICT DomainError", err)
	}
}

func TestSignInBadCredentials(t *testing.T) {
	svc := newAuthService(&mockAccountRepo{}, auth.NewMemoryRevoker())
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "a@example.com", "right"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if _, _, _, err := svc.SignIn(ctx, "a@example.com", "wrong"); err == nil {
		t.Error("expected error for wrong password")
	}
	if _, _, _, err := svc.SignIn(ctx, "nobody@example.com", "pw"); err == nil {
		t.Error("expected error for unknown email")
	}
}

func TestSignOutRevokesToken(t *testing.T) {
	revoker := auth.NewMemoryRevoker()
	svc := newAuthService(&mockAccountRepo{}, revoker)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "a@example.com", "pw"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	_, token, exp, err := svc.SignIn(ctx, "a@example.com", "pw")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}

	if err := svc.SignOut(ctx, claims.ID, exp); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	revoked, err := revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if !revoked {
		t.Error("token not revoked after sign-out")
	}

	// Sign-out is idempotent.
	if err := svc.SignOut(ctx, claims.ID, exp); err != nil {
		t.Errorf("second SignOut: %v", err)
	}
}
