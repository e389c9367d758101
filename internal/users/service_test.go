package users

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/brightcart/storefront-backend/pkg/config"
	pkgerrors "github.com/brightcart/storefront-backend/pkg/errors"
)

type memUserStore struct {
	byEmail map[string]*User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byEmail: map[string]*User{}}
}

func (m *memUserStore) Create(_ context.Context, user *User) (*User, error) {
	m.byEmail[user.Email] = user
	return user, nil
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := m.byEmail[strings.ToLower(email)]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserStore) FindByID(_ context.Context, id uuid.UUID) (*User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserStore) UpdateName(_ context.Context, id uuid.UUID, name string) error {
	for _, u := range m.byEmail {
		if u.ID == id {
			u.Name = name
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type recordingSessions struct {
	created []string
	revoked []string
}

func (r *recordingSessions) Create(_ context.Context, accessID string) error {
	r.created = append(r.created, accessID)
	return nil
}

func (r *recordingSessions) Revoke(_ context.Context, accessID string) error {
	r.revoked = append(r.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "brightcart-test",
		ExpirationMinutes: 15,
		SessionTTLMinutes: 30,
	}
}

func newTestService(t *testing.T) (Service, *memUserStore, *recordingSessions) {
	t.Helper()
	store := newMemUserStore()
	sessions := &recordingSessions{}
	svc, err := NewService(store, sessions, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, store, sessions
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, store, _ := newTestService(t)

	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Jordan Blake",
		Email:    "Jordan@Example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.Email != "jordan@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "correct horse battery" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse battery")); err != nil {
		t.Fatalf("expected bcrypt hash to verify: %v", err)
	}
	if _, ok := store.byEmail["jordan@example.com"]; !ok {
		t.Fatal("expected user persisted under normalized email")
	}
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	input := RegisterInput{Name: "Jordan", Email: "jordan@example.com", Password: "password123"}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(ctx, input)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Jordan", Email: "jordan@example.com", Password: "short",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSignIn_MintsTokenAndOpensSession(t *testing.T) {
	svc, _, sessions := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		Name: "Jordan", Email: "jordan@example.com", Password: "password123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.SignIn(ctx, "jordan@example.com", "password123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a signed token")
	}
	if len(sessions.created) != 1 {
		t.Fatalf("expected one session created, got %d", len(sessions.created))
	}
}

func TestSignIn_WrongPasswordUnauthorized(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		Name: "Jordan", Email: "jordan@example.com", Password: "password123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.SignIn(ctx, "jordan@example.com", "wrong-password")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	// unknown accounts look identical to wrong passwords
	_, err = svc.SignIn(ctx, "nobody@example.com", "password123")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}
}

func TestSignOut_RevokesSession(t *testing.T) {
	svc, _, sessions := newTestService(t)

	if err := svc.SignOut(context.Background(), "jti-123"); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "jti-123" {
		t.Fatalf("expected session jti-123 revoked, got %v", sessions.revoked)
	}
}

func TestUpdateName(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Name: "Jordan", Email: "jordan@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.UpdateName(ctx, user.ID, "  Jordan B.  ")
	if err != nil {
		t.Fatalf("update name: %v", err)
	}
	if updated.Name != "Jordan B." {
		t.Fatalf("expected trimmed name, got %q", updated.Name)
	}

	_, err = svc.UpdateName(ctx, uuid.New(), "Ghost")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}
}
